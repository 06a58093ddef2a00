package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"linknet/internal/models"
)

func TestConnectionServiceSendRequestSelf(t *testing.T) {
	svc := NewConnectionService(noopConnRepo(), noopUserRepo(), noopProfileRepo())
	_, err := svc.SendRequest(context.Background(), 3, 3)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestConnectionServiceSendRequestUnknownRecipient(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := NewConnectionService(noopConnRepo(), users, noopProfileRepo())
	_, err := svc.SendRequest(context.Background(), 1, 99)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not-found app error, got %#v", err)
	}
}

func TestConnectionServiceSendRequestDuplicate(t *testing.T) {
	repo := noopConnRepo()
	repo.createRequestFn = func(context.Context, uint, uint) (*models.Connection, error) {
		return nil, models.NewConflictError("Connection already exists")
	}

	svc := NewConnectionService(repo, noopUserRepo(), noopProfileRepo())
	_, err := svc.SendRequest(context.Background(), 1, 2)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "CONFLICT" {
		t.Fatalf("expected conflict app error, got %#v", err)
	}
}

func TestConnectionServiceRespondUnauthorized(t *testing.T) {
	repo := noopConnRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Connection, error) {
		return &models.Connection{
			ID:          5,
			RequesterID: 10,
			RecipientID: 11,
			Status:      models.ConnectionStatusPending,
		}, nil
	}

	svc := NewConnectionService(repo, noopUserRepo(), noopProfileRepo())
	_, err := svc.Respond(context.Background(), 12, 5, true)
	if err == nil {
		t.Fatal("expected unauthorized error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "UNAUTHORIZED" {
		t.Fatalf("expected unauthorized app error, got %#v", err)
	}
}

func TestConnectionServiceRespondNotPending(t *testing.T) {
	repo := noopConnRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Connection, error) {
		return &models.Connection{
			ID:          5,
			RequesterID: 10,
			RecipientID: 11,
			Status:      models.ConnectionStatusAccepted,
		}, nil
	}

	svc := NewConnectionService(repo, noopUserRepo(), noopProfileRepo())
	_, err := svc.Respond(context.Background(), 11, 5, false)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "CONFLICT" {
		t.Fatalf("expected conflict app error, got %#v", err)
	}
}

func TestConnectionServiceRespondAccept(t *testing.T) {
	var updated models.ConnectionStatus
	repo := noopConnRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Connection, error) {
		return &models.Connection{
			ID:          5,
			RequesterID: 10,
			RecipientID: 11,
			Status:      models.ConnectionStatusPending,
		}, nil
	}
	repo.updateStatusFn = func(_ context.Context, _ uint, status models.ConnectionStatus) error {
		updated = status
		return nil
	}

	svc := NewConnectionService(repo, noopUserRepo(), noopProfileRepo())
	if _, err := svc.Respond(context.Background(), 11, 5, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != models.ConnectionStatusAccepted {
		t.Fatalf("expected accepted status, got %q", updated)
	}
}

func TestConnectionServiceResolveStatus(t *testing.T) {
	cases := []struct {
		name string
		conn *models.Connection
		want models.RelationState
	}{
		{"none", nil, models.RelationNone},
		{"connected", &models.Connection{RequesterID: 2, RecipientID: 1, Status: models.ConnectionStatusAccepted}, models.RelationConnected},
		{"pending sent", &models.Connection{RequesterID: 1, RecipientID: 2, Status: models.ConnectionStatusPending}, models.RelationPendingSent},
		{"pending received", &models.Connection{RequesterID: 2, RecipientID: 1, Status: models.ConnectionStatusPending}, models.RelationPendingReceived},
		{"rejected reads as none", &models.Connection{RequesterID: 1, RecipientID: 2, Status: models.ConnectionStatusRejected}, models.RelationNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := noopConnRepo()
			repo.getByPairFn = func(context.Context, uint, uint) (*models.Connection, error) {
				return tc.conn, nil
			}
			svc := NewConnectionService(repo, noopUserRepo(), noopProfileRepo())

			state, err := svc.ResolveStatus(context.Background(), 1, 2)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if state != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, state)
			}
		})
	}
}

func TestConnectionServiceResolveStatusSelf(t *testing.T) {
	svc := NewConnectionService(noopConnRepo(), noopUserRepo(), noopProfileRepo())
	state, err := svc.ResolveStatus(context.Background(), 7, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != models.RelationSelf {
		t.Fatalf("expected self, got %q", state)
	}
}

func TestConnectionServiceListAcceptedEnrichment(t *testing.T) {
	now := time.Now()
	repo := noopConnRepo()
	repo.getAcceptedFn = func(context.Context, uint) ([]models.Connection, error) {
		return []models.Connection{
			{ID: 1, RequesterID: 1, RecipientID: 2, Status: models.ConnectionStatusAccepted, UpdatedAt: now.Add(-time.Hour)},
			{ID: 2, RequesterID: 3, RecipientID: 1, Status: models.ConnectionStatusAccepted, UpdatedAt: now},
		}, nil
	}
	users := noopUserRepo()
	users.getByIDsFn = func(_ context.Context, ids []uint) (map[uint]*models.User, error) {
		out := make(map[uint]*models.User, len(ids))
		for _, id := range ids {
			out[id] = &models.User{ID: id}
		}
		return out, nil
	}

	svc := NewConnectionService(repo, users, noopProfileRepo())
	peers, err := svc.ListAccepted(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(peers) != 2 {
		t.Fatalf("expected 2 peers, got %d", len(peers))
	}
	// Newest connection first, counterpart resolved from either direction.
	if peers[0].UserID != 3 || peers[1].UserID != 2 {
		t.Fatalf("unexpected peer order: %d, %d", peers[0].UserID, peers[1].UserID)
	}
	if peers[0].User == nil || peers[0].User.ID != 3 {
		t.Fatal("expected peer user to be attached")
	}
}
