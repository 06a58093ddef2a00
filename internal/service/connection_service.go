// Package service provides business logic for the application.
package service

import (
	"context"
	"sort"

	"linknet/internal/models"
	"linknet/internal/repository"
)

// StatusResolver answers relation queries between two users. MessageService
// depends on this rather than on ConnectionService directly.
type StatusResolver interface {
	IsConnected(ctx context.Context, userID, otherID uint) (bool, error)
}

// ConnectionService provides connection-request and connection business logic.
type ConnectionService struct {
	connRepo    repository.ConnectionRepository
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
}

// NewConnectionService returns a new ConnectionService.
func NewConnectionService(connRepo repository.ConnectionRepository, userRepo repository.UserRepository, profileRepo repository.ProfileRepository) *ConnectionService {
	return &ConnectionService{
		connRepo:    connRepo,
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// SendRequest sends a connection request to the target user. A rejected
// earlier request does not block a new one; any live row for the pair does.
func (s *ConnectionService) SendRequest(ctx context.Context, userID, targetUserID uint) (*models.Connection, error) {
	if userID == targetUserID {
		return nil, models.NewValidationError("Cannot send a connection request to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return nil, err
	}

	return s.connRepo.CreateRequest(ctx, userID, targetUserID)
}

// Respond accepts or rejects a pending request addressed to the caller.
func (s *ConnectionService) Respond(ctx context.Context, userID, connectionID uint, accept bool) (*models.Connection, error) {
	conn, err := s.connRepo.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}

	if conn.RecipientID != userID {
		return nil, models.NewUnauthorizedError("You can only respond to requests sent to you")
	}
	if conn.Status != models.ConnectionStatusPending {
		return nil, models.NewConflictError("Connection request is not pending")
	}

	status := models.ConnectionStatusRejected
	if accept {
		status = models.ConnectionStatusAccepted
	}
	if err := s.connRepo.UpdateStatus(ctx, connectionID, status); err != nil {
		return nil, err
	}

	return s.connRepo.GetByID(ctx, connectionID)
}

// ResolveStatus classifies the relation between the viewer and another user.
// A rejected request reads as none, so either side may try again.
func (s *ConnectionService) ResolveStatus(ctx context.Context, viewerID, otherID uint) (models.RelationState, error) {
	if viewerID == otherID {
		return models.RelationSelf, nil
	}

	conn, err := s.connRepo.GetByPair(ctx, viewerID, otherID)
	if err != nil {
		return "", err
	}
	if conn == nil {
		return models.RelationNone, nil
	}

	switch conn.Status {
	case models.ConnectionStatusAccepted:
		return models.RelationConnected, nil
	case models.ConnectionStatusPending:
		if conn.RequesterID == viewerID {
			return models.RelationPendingSent, nil
		}
		return models.RelationPendingReceived, nil
	default:
		return models.RelationNone, nil
	}
}

// IsConnected reports whether the two users have an accepted connection.
func (s *ConnectionService) IsConnected(ctx context.Context, userID, otherID uint) (bool, error) {
	state, err := s.ResolveStatus(ctx, userID, otherID)
	if err != nil {
		return false, err
	}
	return state == models.RelationConnected, nil
}

// ListAccepted returns the user's connections with each counterpart's account
// and profile attached, newest first.
func (s *ConnectionService) ListAccepted(ctx context.Context, userID uint) ([]models.ConnectionPeer, error) {
	connections, err := s.connRepo.GetAccepted(ctx, userID)
	if err != nil {
		return nil, err
	}

	peerIDs := make([]uint, 0, len(connections))
	for i := range connections {
		peerIDs = append(peerIDs, connections[i].OtherUserID(userID))
	}
	users, err := s.userRepo.GetByIDs(ctx, peerIDs)
	if err != nil {
		return nil, err
	}
	profiles, err := s.profileRepo.GetByUserIDs(ctx, peerIDs)
	if err != nil {
		return nil, err
	}

	peers := make([]models.ConnectionPeer, 0, len(connections))
	for i := range connections {
		peerID := connections[i].OtherUserID(userID)
		peers = append(peers, models.ConnectionPeer{
			ConnectionID: connections[i].ID,
			UserID:       peerID,
			User:         users[peerID],
			Profile:      profiles[peerID],
			ConnectedAt:  connections[i].UpdatedAt,
		})
	}
	sort.Slice(peers, func(i, j int) bool {
		return peers[i].ConnectedAt.After(peers[j].ConnectedAt)
	})
	return peers, nil
}

// ListPendingIncoming returns requests awaiting the user's response, newest
// first, with requester details attached.
func (s *ConnectionService) ListPendingIncoming(ctx context.Context, userID uint) ([]models.PendingRequest, error) {
	connections, err := s.connRepo.GetPendingIncoming(ctx, userID)
	if err != nil {
		return nil, err
	}

	requesterIDs := make([]uint, 0, len(connections))
	for i := range connections {
		requesterIDs = append(requesterIDs, connections[i].RequesterID)
	}
	profiles, err := s.profileRepo.GetByUserIDs(ctx, requesterIDs)
	if err != nil {
		return nil, err
	}

	requests := make([]models.PendingRequest, 0, len(connections))
	for i := range connections {
		conn := &connections[i]
		req := models.PendingRequest{
			ConnectionID:     conn.ID,
			RequesterID:      conn.RequesterID,
			RequesterProfile: profiles[conn.RequesterID],
			CreatedAt:        conn.CreatedAt,
		}
		if conn.Requester.ID != 0 {
			req.Requester = &conn.Requester
		}
		requests = append(requests, req)
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
	return requests, nil
}
