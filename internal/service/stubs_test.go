package service

import (
	"context"
	"testing"

	"seedbed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Repository stubs use function fields so each test overrides only the
// calls it cares about. Unset fields fall back to a permissive default.

type userRepoStub struct {
	getByIDFn    func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn func(ctx context.Context, email string) (*models.User, error)
	getByNameFn  func(ctx context.Context, name string) (*models.User, error)
	createFn     func(ctx context.Context, user *models.User) error
	updateFn     func(ctx context.Context, user *models.User) error
	softDeleteFn func(ctx context.Context, id uint, anonEmail, anonName string) error
	listFn       func(ctx context.Context, limit, offset int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return &models.User{ID: id, Email: "user@example.com", Name: "씨앗이"}, nil
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (s *userRepoStub) GetByName(ctx context.Context, name string) (*models.User, error) {
	if s.getByNameFn != nil {
		return s.getByNameFn(ctx, name)
	}
	return nil, nil
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	user.ID = 1
	return nil
}

func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, user)
	}
	return nil
}

func (s *userRepoStub) SoftDelete(ctx context.Context, id uint, anonEmail, anonName string) error {
	if s.softDeleteFn != nil {
		return s.softDeleteFn(ctx, id, anonEmail, anonName)
	}
	return nil
}

func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	if s.listFn != nil {
		return s.listFn(ctx, limit, offset)
	}
	return nil, nil
}

type postRepoStub struct {
	createFn             func(ctx context.Context, post *models.Post) error
	getByIDFn            func(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	listFn               func(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error)
	countFn              func(ctx context.Context) (int64, error)
	updateFn             func(ctx context.Context, post *models.Post) error
	softDeleteFn         func(ctx context.Context, id uint) error
	incrementViewCountFn func(ctx context.Context, id uint) error
	isLikedFn            func(ctx context.Context, userID, postID uint) (bool, error)
	likeFn               func(ctx context.Context, userID, postID uint) (*models.Like, error)
	unlikeFn             func(ctx context.Context, userID, postID uint) (bool, error)
	listLikesFn          func(ctx context.Context, postID uint) ([]*models.Like, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	if s.createFn != nil {
		return s.createFn(ctx, post)
	}
	post.ID = 1
	return nil
}

func (s *postRepoStub) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id, currentUserID)
	}
	return &models.Post{ID: id, Title: "제목", Content: "내용", UserID: 1}, nil
}

func (s *postRepoStub) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	if s.listFn != nil {
		return s.listFn(ctx, limit, offset, currentUserID)
	}
	return nil, nil
}

func (s *postRepoStub) Count(ctx context.Context) (int64, error) {
	if s.countFn != nil {
		return s.countFn(ctx)
	}
	return 0, nil
}

func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, post)
	}
	return nil
}

func (s *postRepoStub) SoftDelete(ctx context.Context, id uint) error {
	if s.softDeleteFn != nil {
		return s.softDeleteFn(ctx, id)
	}
	return nil
}

func (s *postRepoStub) IncrementViewCount(ctx context.Context, id uint) error {
	if s.incrementViewCountFn != nil {
		return s.incrementViewCountFn(ctx, id)
	}
	return nil
}

func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	if s.isLikedFn != nil {
		return s.isLikedFn(ctx, userID, postID)
	}
	return false, nil
}

func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) (*models.Like, error) {
	if s.likeFn != nil {
		return s.likeFn(ctx, userID, postID)
	}
	return &models.Like{ID: 1, UserID: userID, PostID: postID}, nil
}

func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) (bool, error) {
	if s.unlikeFn != nil {
		return s.unlikeFn(ctx, userID, postID)
	}
	return true, nil
}

func (s *postRepoStub) ListLikes(ctx context.Context, postID uint) ([]*models.Like, error) {
	if s.listLikesFn != nil {
		return s.listLikesFn(ctx, postID)
	}
	return nil, nil
}

type commentRepoStub struct {
	createFn        func(ctx context.Context, comment *models.Comment) error
	getByIDFn       func(ctx context.Context, id uint) (*models.Comment, error)
	listByPostFn    func(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error)
	countByPostFn   func(ctx context.Context, postID uint) (int64, error)
	countAIByPostFn func(ctx context.Context, postID uint) (int64, error)
	updateFn        func(ctx context.Context, comment *models.Comment) error
	softDeleteFn    func(ctx context.Context, id uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	if s.createFn != nil {
		return s.createFn(ctx, comment)
	}
	comment.ID = 1
	return nil
}

func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return &models.Comment{ID: id, Content: "댓글", PostID: 1, UserID: 1}, nil
}

func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	if s.listByPostFn != nil {
		return s.listByPostFn(ctx, postID, limit, offset)
	}
	return nil, nil
}

func (s *commentRepoStub) CountByPost(ctx context.Context, postID uint) (int64, error) {
	if s.countByPostFn != nil {
		return s.countByPostFn(ctx, postID)
	}
	return 0, nil
}

func (s *commentRepoStub) CountAIByPost(ctx context.Context, postID uint) (int64, error) {
	if s.countAIByPostFn != nil {
		return s.countAIByPostFn(ctx, postID)
	}
	return 0, nil
}

func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, comment)
	}
	return nil
}

func (s *commentRepoStub) SoftDelete(ctx context.Context, id uint) error {
	if s.softDeleteFn != nil {
		return s.softDeleteFn(ctx, id)
	}
	return nil
}

type generatorStub struct {
	generateTextFn      func(ctx context.Context, prompt string) (string, error)
	generateWithImageFn func(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

func (s *generatorStub) GenerateText(ctx context.Context, prompt string) (string, error) {
	if s.generateTextFn != nil {
		return s.generateTextFn(ctx, prompt)
	}
	return "생성된 응답", nil
}

func (s *generatorStub) GenerateWithImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	if s.generateWithImageFn != nil {
		return s.generateWithImageFn(ctx, prompt, image, mimeType)
	}
	return "생성된 응답", nil
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}
