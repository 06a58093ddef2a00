package service

import (
	"context"
	"sort"
	"strings"

	"linknet/internal/models"
	"linknet/internal/repository"
)

// MessageService provides direct-messaging business logic. Sending is gated
// on an accepted connection; reading existing history is not, so a thread
// stays visible even after the relation changes.
type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	connections StatusResolver
}

// NewMessageService returns a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository, profileRepo repository.ProfileRepository, connections StatusResolver) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		connections: connections,
	}
}

// Send delivers a message from the caller to a connected user.
func (s *MessageService) Send(ctx context.Context, senderID, recipientID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Message content cannot be empty")
	}
	if senderID == recipientID {
		return nil, models.NewValidationError("Cannot send a message to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, recipientID); err != nil {
		return nil, err
	}

	connected, err := s.connections.IsConnected(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if !connected {
		return nil, models.NewUnauthorizedError("You can only message your connections")
	}

	msg := &models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// ListThread returns the full conversation between the caller and a partner
// in chronological order.
func (s *MessageService) ListThread(ctx context.Context, userID, partnerID uint) ([]models.Message, error) {
	if _, err := s.userRepo.GetByID(ctx, partnerID); err != nil {
		return nil, err
	}
	return s.messageRepo.GetBetween(ctx, userID, partnerID)
}

// ListConversations folds the user's message log into one summary per
// counterpart: their latest message and how many of theirs are still unread.
// Sorted by latest activity, newest first.
func (s *MessageService) ListConversations(ctx context.Context, userID uint) ([]models.ConversationSummary, error) {
	messages, err := s.messageRepo.GetAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byPartner := make(map[uint]*models.ConversationSummary)
	for i := range messages {
		msg := &messages[i]
		partnerID := msg.SenderID
		if partnerID == userID {
			partnerID = msg.RecipientID
		}
		summary, ok := byPartner[partnerID]
		if !ok {
			summary = &models.ConversationSummary{PartnerID: partnerID}
			byPartner[partnerID] = summary
		}
		// Messages arrive in chronological order, so the last one seen
		// per partner is the latest.
		summary.LastMessage = *msg
		if msg.RecipientID == userID && !msg.IsRead {
			summary.UnreadCount++
		}
	}

	partnerIDs := make([]uint, 0, len(byPartner))
	for id := range byPartner {
		partnerIDs = append(partnerIDs, id)
	}
	users, err := s.userRepo.GetByIDs(ctx, partnerIDs)
	if err != nil {
		return nil, err
	}
	profiles, err := s.profileRepo.GetByUserIDs(ctx, partnerIDs)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.ConversationSummary, 0, len(byPartner))
	for id, summary := range byPartner {
		summary.Partner = users[id]
		summary.PartnerProfile = profiles[id]
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i].LastMessage, summaries[j].LastMessage
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return summaries, nil
}

// MarkRead marks every message from partner to the caller as read. Calling
// it again is a no-op.
func (s *MessageService) MarkRead(ctx context.Context, userID, partnerID uint) error {
	return s.messageRepo.MarkRead(ctx, userID, partnerID)
}

// UnreadTotal returns the caller's unread count across all conversations.
func (s *MessageService) UnreadTotal(ctx context.Context, userID uint) (int64, error) {
	return s.messageRepo.CountUnread(ctx, userID)
}
