package server

import (
	"encoding/json"

	"seedbed/internal/cache"
	"seedbed/internal/models"
	"seedbed/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAllUsers handles GET /api/users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	users, err := s.userService.ListUsers(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	public := make([]models.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}
	return c.JSON(public)
}

// CheckEmail handles GET /api/users/check-email. Public, used by signup
// forms to flag a taken address before submit.
func (s *Server) CheckEmail(c *fiber.Ctx) error {
	exists, err := s.userService.EmailExists(c.UserContext(), c.Query("email"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"exists": exists})
}

// CheckName handles GET /api/users/check-name
func (s *Server) CheckName(c *fiber.Ctx) error {
	exists, err := s.userService.NameExists(c.UserContext(), c.Query("name"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"exists": exists})
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	user, err := s.userService.GetUser(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id with cache-aside on the public
// profile. Entries are invalidated on profile updates and withdrawal.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	ctx := c.UserContext()
	if cached, ok := cache.Get(ctx, cache.UserKey(id)); ok {
		var public models.PublicUser
		if jerr := json.Unmarshal([]byte(cached), &public); jerr == nil {
			return c.JSON(public)
		}
	}

	user, err := s.userService.GetUser(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	public := user.Public()
	if encoded, jerr := json.Marshal(public); jerr == nil {
		cache.Set(ctx, cache.UserKey(id), string(encoded), cache.UserTTL)
	}
	return c.JSON(public)
}

// UpdateMyProfile handles PATCH /api/users/me. Accepts JSON with a name, or
// multipart form data with a name field and/or a profile_image file.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	in := service.UpdateProfileInput{UserID: userID}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		if vals := form.Value["name"]; len(vals) > 0 {
			in.Name = &vals[0]
		}
		if file, ferr := c.FormFile("profile_image"); ferr == nil && file != nil {
			content, rerr := readFormFile(file)
			if rerr != nil {
				return models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewValidationError("Unable to read uploaded file"))
			}
			url, serr := s.imageService.Save(service.SaveImageInput{
				Kind:        service.ImageKindProfile,
				Filename:    file.Filename,
				ContentType: file.Header.Get("Content-Type"),
				Content:     content,
			})
			if serr != nil {
				return respondServiceError(c, serr)
			}
			in.ProfileImage = &url
		}
	} else {
		var req struct {
			Name         *string `json:"name"`
			ProfileImage *string `json:"profile_image"`
		}
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body"))
		}
		in.Name = req.Name
		in.ProfileImage = req.ProfileImage
	}

	old, err := s.userService.GetUser(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), in)
	if err != nil {
		if in.ProfileImage != nil && *in.ProfileImage != "" {
			s.imageService.Delete(*in.ProfileImage)
		}
		return respondServiceError(c, err)
	}

	// The old image is unreferenced once the profile points elsewhere.
	if in.ProfileImage != nil && old.ProfileImage != "" && old.ProfileImage != *in.ProfileImage {
		s.imageService.Delete(old.ProfileImage)
	}
	cache.InvalidateUser(c.UserContext(), userID)

	return c.JSON(user)
}

// ChangeMyPassword handles PUT /api/users/me/password
func (s *Server) ChangeMyPassword(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
		PasswordConfirm string `json:"password_confirm"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	err := s.userService.ChangePassword(c.UserContext(), service.ChangePasswordInput{
		UserID:          userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Password updated",
	})
}

// Withdraw handles DELETE /api/users/me. The account is soft-deleted with
// anonymized identity fields and the session cookie is cleared.
func (s *Server) Withdraw(c *fiber.Ctx) error {
	userID := currentUserID(c)

	if err := s.userService.Withdraw(c.UserContext(), userID); err != nil {
		return respondServiceError(c, err)
	}

	cache.InvalidateUser(c.UserContext(), userID)
	s.clearAuthCookie(c)
	return c.JSON(fiber.Map{
		"message": "Account deleted",
	})
}
