package server

import (
	"seedbed/internal/cache"
	"seedbed/internal/models"
	"seedbed/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GenerateDraft handles POST /api/ai-posts/generate-draft. Multipart form
// data with an optional image file, optional text, and an optional style tag.
// At least one of image or text must be present.
func (s *Server) GenerateDraft(c *fiber.Ctx) error {
	userID := currentUserID(c)

	in := service.DraftInput{
		UserID: userID,
		Text:   c.FormValue("text"),
		Style:  c.FormValue("style"),
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		content, rerr := readFormFile(file)
		if rerr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unable to read uploaded file"))
		}
		in.Image = content
		in.Filename = file.Filename
		in.ContentType = file.Header.Get("Content-Type")
	}

	result, err := s.aiService.GenerateDraft(c.UserContext(), in)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}

// GardenerComment handles POST /api/ai-posts/gardener-comment
func (s *Server) GardenerComment(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		PostID           uint     `json:"post_id"`
		PostTitle        string   `json:"post_title"`
		PostContent      string   `json:"post_content"`
		ExistingComments []string `json:"existing_comments"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("post_id is required"))
	}

	result, err := s.aiService.GardenerComment(c.UserContext(), service.GardenerInput{
		UserID:           userID,
		PostID:           req.PostID,
		PostTitle:        req.PostTitle,
		PostContent:      req.PostContent,
		ExistingComments: req.ExistingComments,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	cache.InvalidatePost(c.UserContext(), req.PostID)

	return c.JSON(result)
}

// Summarize handles POST /api/ai-posts/summarize
func (s *Server) Summarize(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		PostTitle   string   `json:"post_title"`
		PostContent string   `json:"post_content"`
		Comments    []string `json:"comments"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.aiService.Summarize(c.UserContext(), service.SummarizeInput{
		UserID:      userID,
		PostTitle:   req.PostTitle,
		PostContent: req.PostContent,
		Comments:    req.Comments,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}
