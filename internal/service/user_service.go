package service

import (
	"context"
	"fmt"
	"time"

	"seedbed/internal/models"
	"seedbed/internal/repository"
	"seedbed/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type RegisterInput struct {
	Email           string
	Name            string
	Password        string
	PasswordConfirm string
	ProfileImage    string
}

type UpdateProfileInput struct {
	UserID       uint
	Name         *string
	ProfileImage *string
}

type ChangePasswordInput struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
	PasswordConfirm string
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Password != in.PasswordConfirm {
		return nil, models.NewValidationError("Password confirmation does not match")
	}

	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("Email already in use")
	}
	if existing, err := s.userRepo.GetByName(ctx, in.Name); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("Name already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: string(hash),
		ProfileImage: in.ProfileImage,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials. Unknown email and wrong password share
// one message so callers cannot probe which accounts exist.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthenticatedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.NewUnauthenticatedError("Invalid email or password")
	}
	if user.IsDeleted {
		return nil, models.NewForbiddenError("Account has been deleted")
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// EmailExists reports whether any account, active or withdrawn, holds the
// email. Signup forms poll this before submitting.
func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return false, models.NewValidationError(err.Error())
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// NameExists reports whether any account holds the display name.
func (s *UserService) NameExists(ctx context.Context, name string) (bool, error) {
	if err := validation.ValidateName(name); err != nil {
		return false, models.NewValidationError(err.Error())
	}
	user, err := s.userRepo.GetByName(ctx, name)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// GetUser distinguishes a user that never existed from a withdrawn one.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted {
		return nil, models.NewGoneError("User")
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := resolveActiveUser(ctx, s.userRepo, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name == nil && in.ProfileImage == nil {
		return nil, models.NewBadRequestError("Nothing to update")
	}

	if in.Name != nil {
		if err := validation.ValidateName(*in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if *in.Name != user.Name {
			if existing, err := s.userRepo.GetByName(ctx, *in.Name); err != nil {
				return nil, err
			} else if existing != nil && existing.ID != user.ID {
				return nil, models.NewConflictError("Name already in use")
			}
		}
		user.Name = *in.Name
	}
	if in.ProfileImage != nil {
		user.ProfileImage = *in.ProfileImage
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	user, err := resolveActiveUser(ctx, s.userRepo, in.UserID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return models.NewUnauthenticatedError("Current password is incorrect")
	}
	if in.NewPassword == in.CurrentPassword {
		return models.NewBadRequestError("New password must differ from the current one")
	}
	if err := validation.ValidatePassword(in.NewPassword); err != nil {
		return models.NewValidationError(err.Error())
	}
	if in.NewPassword != in.PasswordConfirm {
		return models.NewValidationError("Password confirmation does not match")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcryptCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.PasswordHash = string(hash)
	return s.userRepo.Update(ctx, user)
}

// Withdraw soft-deletes the account, anonymizing email and name in the same
// update so the originals become reusable immediately.
func (s *UserService) Withdraw(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsDeleted {
		return models.NewBadRequestError("Account is already deleted")
	}

	anonEmail := fmt.Sprintf("deleted_%d_%s@deleted.com", userID, time.Now().Format("20060102150405"))
	anonName := fmt.Sprintf("탈퇴한사용자_%d", userID)
	return s.userRepo.SoftDelete(ctx, userID, anonEmail, anonName)
}
