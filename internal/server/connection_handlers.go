package server

import (
	"linknet/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SendConnectionRequest handles POST /api/connections/requests/:userId
func (s *Server) SendConnectionRequest(c *fiber.Ctx) error {
	targetUserID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	conn, err := s.connectionService.SendRequest(c.Context(), currentUserID(c), targetUserID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(conn)
}

// GetPendingRequests handles GET /api/connections/requests
func (s *Server) GetPendingRequests(c *fiber.Ctx) error {
	requests, err := s.connectionService.ListPendingIncoming(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"requests": requests})
}

// AcceptConnectionRequest handles POST /api/connections/requests/:requestId/accept
func (s *Server) AcceptConnectionRequest(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	conn, err := s.connectionService.Respond(c.Context(), currentUserID(c), requestID, true)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(conn)
}

// RejectConnectionRequest handles POST /api/connections/requests/:requestId/reject
func (s *Server) RejectConnectionRequest(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	conn, err := s.connectionService.Respond(c.Context(), currentUserID(c), requestID, false)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(conn)
}

// GetConnections handles GET /api/connections
func (s *Server) GetConnections(c *fiber.Ctx) error {
	peers, err := s.connectionService.ListAccepted(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"connections": peers})
}

// GetConnectionStatus handles GET /api/connections/status/:userId
func (s *Server) GetConnectionStatus(c *fiber.Ctx) error {
	otherUserID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	state, err := s.connectionService.ResolveStatus(c.Context(), currentUserID(c), otherUserID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"status": state})
}
