package server

import (
	"linknet/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SendMessage handles POST /api/messages/:userId
func (s *Server) SendMessage(c *fiber.Ctx) error {
	recipientID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	msg, err := s.messageService.Send(c.Context(), currentUserID(c), recipientID, req.Content)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// GetConversations handles GET /api/messages/conversations
func (s *Server) GetConversations(c *fiber.Ctx) error {
	conversations, err := s.messageService.ListConversations(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"conversations": conversations})
}

// GetThread handles GET /api/messages/conversations/:userId
func (s *Server) GetThread(c *fiber.Ctx) error {
	partnerID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	messages, err := s.messageService.ListThread(c.Context(), currentUserID(c), partnerID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"messages": messages})
}

// MarkConversationRead handles POST /api/messages/conversations/:userId/read
func (s *Server) MarkConversationRead(c *fiber.Ctx) error {
	partnerID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.messageService.MarkRead(c.Context(), currentUserID(c), partnerID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetUnreadCount handles GET /api/messages/unread-count. Anonymous callers
// get a zero badge rather than a rejection.
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	userID := viewerID(c)
	if userID == 0 {
		return c.JSON(fiber.Map{"unread_count": 0})
	}

	count, err := s.messageService.UnreadTotal(c.Context(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"unread_count": count})
}
