package server

import (
	"path/filepath"

	"linknet/internal/models"

	"github.com/gofiber/fiber/v2"
)

// maxUploadBytes caps a single media upload at 10 MiB.
const maxUploadBytes = 10 << 20

// UploadMedia handles POST /api/uploads. It stores the uploaded file as an
// opaque blob and returns the reference to attach to a post or profile.
func (s *Server) UploadMedia(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A file field is required"))
	}
	if fileHeader.Size > maxUploadBytes {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("File exceeds the 10MB upload limit"))
	}

	f, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	defer f.Close()

	ref, err := s.blobs.Save(c.Context(), filepath.Ext(fileHeader.Filename), f)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ref": ref,
		"url": s.blobs.URL(ref),
	})
}
