package server

import (
	"encoding/json"
	"time"

	"seedbed/internal/cache"
	"seedbed/internal/models"
	"seedbed/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts. Accepts JSON, or multipart form data
// with title/content fields and an optional image file.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := currentUserID(c)

	in := service.CreatePostInput{UserID: userID}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		in.Title = c.FormValue("title")
		in.Content = c.FormValue("content")

		if file, ferr := c.FormFile("image"); ferr == nil && file != nil {
			content, rerr := readFormFile(file)
			if rerr != nil {
				return models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewValidationError("Unable to read uploaded file"))
			}
			url, serr := s.imageService.Save(service.SaveImageInput{
				Kind:        service.ImageKindPost,
				Filename:    file.Filename,
				ContentType: file.Header.Get("Content-Type"),
				Content:     content,
			})
			if serr != nil {
				return respondServiceError(c, serr)
			}
			in.ImageURL = url
		}
	} else {
		var req struct {
			Title    string `json:"title"`
			Content  string `json:"content"`
			ImageURL string `json:"image_url,omitempty"`
		}
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body"))
		}
		in.Title = req.Title
		in.Content = req.Content
		in.ImageURL = req.ImageURL
	}

	post, err := s.postService.CreatePost(c.UserContext(), in)
	if err != nil {
		if in.ImageURL != "" {
			s.imageService.Delete(in.ImageURL)
		}
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	userID := currentUserID(c)

	result, err := s.postService.ListPosts(c.UserContext(), page.Limit, page.Offset, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts": result.Posts,
		"total": result.Total,
	})
}

// GetPost handles GET /api/posts/:id. The view counter is bumped unless the
// caller passes increment_view=false (edit forms use this). Anonymous reads
// go through a cache-aside on the post body; the view counter is still
// recorded on every hit but the cached copy's count can lag until the entry
// expires or is invalidated.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	ctx := c.UserContext()
	userID := currentUserID(c)
	incrementView := c.QueryBool("increment_view", true)

	if userID == 0 {
		if cached, ok := cache.Get(ctx, cache.PostKey(id)); ok {
			var post models.Post
			if jerr := json.Unmarshal([]byte(cached), &post); jerr == nil {
				if incrementView {
					if verr := s.postService.RecordView(ctx, id); verr == nil {
						post.ViewCount++
					}
				}
				return c.JSON(&post)
			}
		}
	}

	post, err := s.postService.GetPost(ctx, service.GetPostInput{
		PostID:        id,
		CurrentUserID: userID,
		IncrementView: incrementView,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	if userID == 0 {
		if encoded, jerr := json.Marshal(post); jerr == nil {
			cache.Set(ctx, cache.PostKey(id), string(encoded), cache.PostTTL)
		}
	}
	return c.JSON(post)
}

// UpdatePost handles PATCH /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := currentUserID(c)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title    *string `json:"title"`
		Content  *string `json:"content"`
		ImageURL *string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		UserID:   userID,
		PostID:   postID,
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	cache.InvalidatePost(c.UserContext(), postID)

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := currentUserID(c)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), userID, postID); err != nil {
		return respondServiceError(c, err)
	}
	cache.InvalidatePost(c.UserContext(), postID)

	return c.SendStatus(fiber.StatusNoContent)
}

// LikePost handles POST /api/posts/:id/like
func (s *Server) LikePost(c *fiber.Ctx) error {
	userID := currentUserID(c)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	like, err := s.postService.LikePost(c.UserContext(), userID, postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	cache.InvalidatePost(c.UserContext(), postID)

	return c.Status(fiber.StatusCreated).JSON(like)
}

// GetPostLikes handles GET /api/posts/:id/likes
func (s *Server) GetPostLikes(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	likes, err := s.postService.GetPostLikes(c.UserContext(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	type likeEntry struct {
		ID        uint              `json:"id"`
		User      models.PublicUser `json:"user"`
		CreatedAt time.Time         `json:"created_at"`
	}
	entries := make([]likeEntry, 0, len(likes))
	for _, like := range likes {
		entries = append(entries, likeEntry{
			ID:        like.ID,
			User:      like.User.Public(),
			CreatedAt: like.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{
		"likes": entries,
		"total": len(entries),
	})
}

// UnlikePost handles DELETE /api/posts/:id/like
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	userID := currentUserID(c)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.UnlikePost(c.UserContext(), userID, postID); err != nil {
		return respondServiceError(c, err)
	}
	cache.InvalidatePost(c.UserContext(), postID)

	return c.SendStatus(fiber.StatusNoContent)
}

// UploadImage handles POST /api/images for standalone uploads that are later
// referenced by image_url.
func (s *Server) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	content, err := readFormFile(file)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}

	url, err := s.imageService.Save(service.SaveImageInput{
		Kind:        service.ImageKindPost,
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"url": url,
	})
}
