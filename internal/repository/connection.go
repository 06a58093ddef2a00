package repository

import (
	"context"
	"errors"

	"linknet/internal/models"

	"gorm.io/gorm"
)

// ConnectionRepository defines the interface for connection data operations
type ConnectionRepository interface {
	CreateRequest(ctx context.Context, requesterID, recipientID uint) (*models.Connection, error)
	GetByID(ctx context.Context, id uint) (*models.Connection, error)
	GetByPair(ctx context.Context, userID1, userID2 uint) (*models.Connection, error)
	UpdateStatus(ctx context.Context, connectionID uint, status models.ConnectionStatus) error
	GetAccepted(ctx context.Context, userID uint) ([]models.Connection, error)
	GetPendingIncoming(ctx context.Context, userID uint) ([]models.Connection, error)
}

// connectionRepository implements ConnectionRepository
type connectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository creates a new connection repository
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

// pairWhere scopes a query to the unordered pair via the canonical columns.
func pairWhere(db *gorm.DB, userID1, userID2 uint) *gorm.DB {
	lo, hi := userID1, userID2
	if lo > hi {
		lo, hi = hi, lo
	}
	return db.Where("pair_min = ? AND pair_max = ?", lo, hi)
}

// CreateRequest inserts a new pending connection for the pair. The duplicate
// check and the insert run in one transaction; a rejected row for the same
// pair is replaced rather than treated as a duplicate, so at most one row per
// unordered pair ever exists. The unique index on (pair_min, pair_max) backs
// this up against racing requesters.
func (r *connectionRepository) CreateRequest(ctx context.Context, requesterID, recipientID uint) (*models.Connection, error) {
	conn := &models.Connection{
		RequesterID: requesterID,
		RecipientID: recipientID,
		Status:      models.ConnectionStatusPending,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Connection
		err := pairWhere(tx, requesterID, recipientID).First(&existing).Error
		switch {
		case err == nil:
			if existing.Status != models.ConnectionStatusRejected {
				return models.NewConflictError("Connection already exists")
			}
			// A rejected request does not block a fresh one.
			if delErr := tx.Delete(&models.Connection{}, existing.ID).Error; delErr != nil {
				return delErr
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if createErr := tx.Create(conn).Error; createErr != nil {
			// A racing requester can slip past the check above; the
			// canonical-pair index catches it and the loser gets the
			// same conflict as the sequential case.
			if errors.Is(createErr, gorm.ErrDuplicatedKey) {
				return models.NewConflictError("Connection already exists")
			}
			return createErr
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, models.NewInternalError(err)
	}
	return conn, nil
}

func (r *connectionRepository) GetByID(ctx context.Context, id uint) (*models.Connection, error) {
	var conn models.Connection
	if err := r.db.WithContext(ctx).First(&conn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Connection", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &conn, nil
}

// GetByPair returns the connection between the two users in either direction,
// or nil when none exists.
func (r *connectionRepository) GetByPair(ctx context.Context, userID1, userID2 uint) (*models.Connection, error) {
	var conn models.Connection
	if err := pairWhere(r.db.WithContext(ctx), userID1, userID2).First(&conn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &conn, nil
}

func (r *connectionRepository) UpdateStatus(ctx context.Context, connectionID uint, status models.ConnectionStatus) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Connection{}).
		Where("id = ?", connectionID).
		Update("status", status).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *connectionRepository) GetAccepted(ctx context.Context, userID uint) ([]models.Connection, error) {
	var connections []models.Connection
	if err := r.db.WithContext(ctx).
		Where("status = ? AND (requester_id = ? OR recipient_id = ?)",
			models.ConnectionStatusAccepted, userID, userID).
		Find(&connections).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return connections, nil
}

func (r *connectionRepository) GetPendingIncoming(ctx context.Context, userID uint) ([]models.Connection, error) {
	var connections []models.Connection
	if err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND status = ?", userID, models.ConnectionStatusPending).
		Preload("Requester").
		Find(&connections).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return connections, nil
}
