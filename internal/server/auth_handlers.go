package server

import (
	"fmt"
	"strconv"
	"time"

	"seedbed/internal/middleware"
	"seedbed/internal/models"
	"seedbed/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// accessTokenTTL is the lifetime of the auth cookie and the JWT inside it.
const accessTokenTTL = 15 * time.Minute

// Signup handles POST /api/auth/signup
// @Summary User signup
// @Description Register a new user account. Accepts JSON or multipart form
// @Description data with an optional profile_image file.
// @Tags auth
// @Accept json,mpfd
// @Produce json
// @Success 201 {object} object{user=models.PublicUser}
// @Failure 409 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /auth/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var in service.RegisterInput

	if form, err := c.MultipartForm(); err == nil && form != nil {
		in.Email = c.FormValue("email")
		in.Name = c.FormValue("name")
		in.Password = c.FormValue("password")
		in.PasswordConfirm = c.FormValue("password_confirm")

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
			in.ProfileImage = url
		}
	} else {
		var req struct {
			Email           string `json:"email"`
			Name            string `json:"name"`
			Password        string `json:"password"`
			PasswordConfirm string `json:"password_confirm"`
		}
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body"))
		}
		in = service.RegisterInput{
			Email:           req.Email,
			Name:            req.Name,
			Password:        req.Password,
			PasswordConfirm: req.PasswordConfirm,
		}
	}

	user, err := s.userService.Register(c.UserContext(), in)
	if err != nil {
		// A stored profile image is orphaned if registration fails.
		if in.ProfileImage != "" {
			s.imageService.Delete(in.ProfileImage)
		}
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": user.Public(),
	})
}

// Login handles POST /api/auth/login
// @Summary User login
// @Description Authenticate and set the HTTP-only access token cookie
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} object{user=models.PublicUser}
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	s.setAuthCookie(c, token)

	return c.JSON(fiber.Map{
		"user": user.Public(),
	})
}

// Logout handles POST /api/auth/logout by expiring the auth cookie.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.clearAuthCookie(c)
	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}

// generateToken creates a short-lived JWT for the given user.
func (s *Server) generateToken(user *models.User) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(user.ID), 10),
		"email": user.Email,
		"name":  user.Name,
		"iss":   "seedbed-api",
		"aud":   "seedbed-client",
		"exp":   now.Add(accessTokenTTL).Unix(),
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

func (s *Server) setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(accessTokenTTL),
		HTTPOnly: true,
		Secure:   s.config.Env == "production" || s.config.Env == "prod",
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (s *Server) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   s.config.Env == "production" || s.config.Env == "prod",
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
