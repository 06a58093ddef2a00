package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"linknet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUsers(t *testing.T, repo UserRepository, n int) []models.User {
	t.Helper()
	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user := models.User{
			Username: "user" + string(rune('a'+i)),
			Email:    "user" + string(rune('a'+i)) + "@example.com",
			Password: "hashed",
		}
		require.NoError(t, repo.Create(context.Background(), &user))
		users = append(users, user)
	}
	return users
}

func TestConnectionRepositoryDuplicateSameDirection(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectionRepository(db)
	users := seedUsers(t, NewUserRepository(db), 2)

	_, err := repo.CreateRequest(context.Background(), users[0].ID, users[1].ID)
	require.NoError(t, err)

	_, err = repo.CreateRequest(context.Background(), users[0].ID, users[1].ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestConnectionRepositoryDuplicateOppositeDirection(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectionRepository(db)
	users := seedUsers(t, NewUserRepository(db), 2)

	_, err := repo.CreateRequest(context.Background(), users[0].ID, users[1].ID)
	require.NoError(t, err)

	// The reverse request hits the same canonical pair.
	_, err = repo.CreateRequest(context.Background(), users[1].ID, users[0].ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestConnectionRepositoryRacingRequestersGetConflict(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectionRepository(db)
	users := seedUsers(t, NewUserRepository(db), 2)

	// Sneak a competing row for the same pair in after the duplicate check
	// but before the insert, reproducing two first-time requesters racing.
	injected := false
	err := db.Callback().Create().Before("gorm:create").Register("competing_requester", func(tx *gorm.DB) {
		if injected || tx.Statement.Table != "connections" {
			return
		}
		injected = true
		now := time.Now()
		tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO connections (requester_id, recipient_id, pair_min, pair_max, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			users[1].ID, users[0].ID, users[0].ID, users[1].ID, models.ConnectionStatusPending, now, now,
		)
	})
	require.NoError(t, err)

	_, err = repo.CreateRequest(context.Background(), users[0].ID, users[1].ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CONFLICT", appErr.Code, "race loser must conflict, not fail internally")
	assert.True(t, injected)
}

func TestConnectionRepositoryRejectedPairCanRetry(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectionRepository(db)
	users := seedUsers(t, NewUserRepository(db), 2)

	first, err := repo.CreateRequest(context.Background(), users[0].ID, users[1].ID)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(context.Background(), first.ID, models.ConnectionStatusRejected))

	// Either side may start over after a rejection; the old row is replaced.
	second, err := repo.CreateRequest(context.Background(), users[1].ID, users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusPending, second.Status)
	assert.Equal(t, users[1].ID, second.RequesterID)

	var count int64
	require.NoError(t, db.Model(&models.Connection{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "at most one row per pair")
}

func TestConnectionRepositoryGetByPairEitherOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectionRepository(db)
	users := seedUsers(t, NewUserRepository(db), 2)

	created, err := repo.CreateRequest(context.Background(), users[0].ID, users[1].ID)
	require.NoError(t, err)

	forward, err := repo.GetByPair(context.Background(), users[0].ID, users[1].ID)
	require.NoError(t, err)
	reverse, err := repo.GetByPair(context.Background(), users[1].ID, users[0].ID)
	require.NoError(t, err)

	require.NotNil(t, forward)
	require.NotNil(t, reverse)
	assert.Equal(t, created.ID, forward.ID)
	assert.Equal(t, created.ID, reverse.ID)

	missing, err := repo.GetByPair(context.Background(), users[0].ID, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestConnectionRepositoryAcceptedVisibleToBothSides(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectionRepository(db)
	users := seedUsers(t, NewUserRepository(db), 3)

	conn, err := repo.CreateRequest(context.Background(), users[0].ID, users[1].ID)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(context.Background(), conn.ID, models.ConnectionStatusAccepted))

	// Pending request to a third user stays out of both accepted lists.
	_, err = repo.CreateRequest(context.Background(), users[0].ID, users[2].ID)
	require.NoError(t, err)

	for _, userID := range []uint{users[0].ID, users[1].ID} {
		accepted, err := repo.GetAccepted(context.Background(), userID)
		require.NoError(t, err)
		require.Len(t, accepted, 1)
		assert.Equal(t, conn.ID, accepted[0].ID)
	}
}

func TestConnectionRepositoryPendingIncomingOnly(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectionRepository(db)
	users := seedUsers(t, NewUserRepository(db), 3)

	// users[1] receives one request and sends another.
	_, err := repo.CreateRequest(context.Background(), users[0].ID, users[1].ID)
	require.NoError(t, err)
	_, err = repo.CreateRequest(context.Background(), users[1].ID, users[2].ID)
	require.NoError(t, err)

	incoming, err := repo.GetPendingIncoming(context.Background(), users[1].ID)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, users[0].ID, incoming[0].RequesterID)
	assert.Equal(t, users[0].ID, incoming[0].Requester.ID, "requester should be preloaded")
}
