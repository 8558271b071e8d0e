package service

import (
	"context"
	"testing"

	"seedbed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCommentService_CreateComment(t *testing.T) {
	t.Parallel()

	t.Run("creates and refetches with author", func(t *testing.T) {
		t.Parallel()

		comments := &commentRepoStub{
			createFn: func(_ context.Context, comment *models.Comment) error {
				comment.ID = 11
				return nil
			},
			getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
				return &models.Comment{ID: id, Content: "응원해요", PostID: 4, UserID: 1, User: models.User{ID: 1, Name: "씨앗이"}}, nil
			},
		}
		svc := NewCommentService(comments, &postRepoStub{}, &userRepoStub{})

		comment, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 4, Content: "응원해요"})
		require.NoError(t, err)
		assert.Equal(t, uint(11), comment.ID)
		assert.Equal(t, "씨앗이", comment.User.Name)
	})

	t.Run("rejects blank content", func(t *testing.T) {
		t.Parallel()

		svc := NewCommentService(&commentRepoStub{}, &postRepoStub{}, &userRepoStub{})
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 4, Content: "   "})
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("deleted post rejects new comments", func(t *testing.T) {
		t.Parallel()

		posts := &postRepoStub{
			getByIDFn: func(_ context.Context, id uint, _ uint) (*models.Post, error) {
				return &models.Post{ID: id, IsDeleted: true}, nil
			},
		}
		svc := NewCommentService(&commentRepoStub{}, posts, &userRepoStub{})

		_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 4, Content: "응원해요"})
		assertAppErrorCode(t, err, models.CodeGone)
	})

	t.Run("missing post is not found", func(t *testing.T) {
		t.Parallel()

		posts := &postRepoStub{
			getByIDFn: func(_ context.Context, _ uint, _ uint) (*models.Post, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := NewCommentService(&commentRepoStub{}, posts, &userRepoStub{})

		_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 99, Content: "응원해요"})
		assertAppErrorCode(t, err, models.CodeNotFound)
	})
}

func TestCommentService_ListComments(t *testing.T) {
	t.Parallel()

	t.Run("returns page with total", func(t *testing.T) {
		t.Parallel()

		comments := &commentRepoStub{
			listByPostFn: func(_ context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
				return []*models.Comment{{ID: 1, PostID: postID}, {ID: 2, PostID: postID}}, nil
			},
			countByPostFn: func(_ context.Context, _ uint) (int64, error) {
				return 5, nil
			},
		}
		svc := NewCommentService(comments, &postRepoStub{}, &userRepoStub{})

		page, err := svc.ListComments(context.Background(), 4, 2, 0)
		require.NoError(t, err)
		assert.Len(t, page.Comments, 2)
		assert.Equal(t, int64(5), page.Total)
	})

	t.Run("deleted post is gone", func(t *testing.T) {
		t.Parallel()

		posts := &postRepoStub{
			getByIDFn: func(_ context.Context, id uint, _ uint) (*models.Post, error) {
				return &models.Post{ID: id, IsDeleted: true}, nil
			},
		}
		svc := NewCommentService(&commentRepoStub{}, posts, &userRepoStub{})

		_, err := svc.ListComments(context.Background(), 4, 10, 0)
		assertAppErrorCode(t, err, models.CodeGone)
	})
}

func TestCommentService_UpdateComment(t *testing.T) {
	t.Parallel()

	t.Run("owner updates content", func(t *testing.T) {
		t.Parallel()

		var saved *models.Comment
		comments := &commentRepoStub{
			updateFn: func(_ context.Context, comment *models.Comment) error {
				saved = comment
				return nil
			},
		}
		svc := NewCommentService(comments, &postRepoStub{}, &userRepoStub{})

		_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 1, CommentID: 3, Content: "고친 댓글"})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "고친 댓글", saved.Content)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		t.Parallel()

		comments := &commentRepoStub{
			getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
				return &models.Comment{ID: id, UserID: 2}, nil
			},
		}
		svc := NewCommentService(comments, &postRepoStub{}, &userRepoStub{})

		_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 1, CommentID: 3, Content: "고친 댓글"})
		assertAppErrorCode(t, err, models.CodeForbidden)
	})

	t.Run("deleted comment is gone", func(t *testing.T) {
		t.Parallel()

		comments := &commentRepoStub{
			getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
				return &models.Comment{ID: id, UserID: 1, IsDeleted: true}, nil
			},
		}
		svc := NewCommentService(comments, &postRepoStub{}, &userRepoStub{})

		_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 1, CommentID: 3, Content: "고친 댓글"})
		assertAppErrorCode(t, err, models.CodeGone)
	})
}

func TestCommentService_DeleteComment(t *testing.T) {
	t.Parallel()

	t.Run("owner soft-deletes", func(t *testing.T) {
		t.Parallel()

		deleted := uint(0)
		comments := &commentRepoStub{
			softDeleteFn: func(_ context.Context, id uint) error {
				deleted = id
				return nil
			},
		}
		svc := NewCommentService(comments, &postRepoStub{}, &userRepoStub{})

		require.NoError(t, svc.DeleteComment(context.Background(), 1, 3))
		assert.Equal(t, uint(3), deleted)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		t.Parallel()

		comments := &commentRepoStub{
			getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
				return &models.Comment{ID: id, UserID: 2}, nil
			},
		}
		svc := NewCommentService(comments, &postRepoStub{}, &userRepoStub{})

		err := svc.DeleteComment(context.Background(), 1, 3)
		assertAppErrorCode(t, err, models.CodeForbidden)
	})
}
