package server

import (
	"linknet/internal/models"
	"linknet/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/profiles/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.Get(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(profile)
}

// GetProfile handles GET /api/profiles/:userId
func (s *Server) GetProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.Get(c.Context(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(profile)
}

// UpsertMyProfile handles PUT /api/profiles/me
func (s *Server) UpsertMyProfile(c *fiber.Ctx) error {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Headline  string `json:"headline"`
		Location  string `json:"location"`
		About     string `json:"about"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.CreateOrUpdate(c.Context(), currentUserID(c), service.ProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Headline:  req.Headline,
		Location:  req.Location,
		About:     req.About,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(profile)
}

// AddExperience handles POST /api/profiles/me/experience
func (s *Server) AddExperience(c *fiber.Ctx) error {
	var req models.Experience
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.AddExperience(c.Context(), currentUserID(c), req)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(profile)
}

// AddSkill handles POST /api/profiles/me/skills
func (s *Server) AddSkill(c *fiber.Ctx) error {
	var req struct {
		Skill string `json:"skill"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.AddSkill(c.Context(), currentUserID(c), req.Skill)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(profile)
}

// UpdateProfileImage handles POST /api/profiles/me/image
func (s *Server) UpdateProfileImage(c *fiber.Ctx) error {
	var req struct {
		Ref string `json:"ref"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Ref == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Image reference is required"))
	}

	profile, err := s.profileService.UpdateImage(c.Context(), currentUserID(c), req.Ref)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(profile)
}

// SearchPeople handles GET /api/people/search
func (s *Server) SearchPeople(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.JSON(fiber.Map{"results": []models.Profile{}})
	}

	profiles, err := s.profileService.SearchPeople(c.Context(), query)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}
	return c.JSON(fiber.Map{"results": profiles})
}
