package service

import (
	"context"
	"strings"

	"seedbed/internal/models"
	"seedbed/internal/repository"
	"seedbed/internal/validation"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	images   *ImageService
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, images *ImageService) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo, images: images}
}

type CreatePostInput struct {
	UserID   uint
	Title    string
	Content  string
	ImageURL string
}

type UpdatePostInput struct {
	UserID   uint
	PostID   uint
	Title    *string
	Content  *string
	ImageURL *string
}

type GetPostInput struct {
	PostID        uint
	CurrentUserID uint
	// IncrementView is false when fetching for an edit form.
	IncrementView bool
}

type PostPage struct {
	Posts []*models.Post
	Total int64
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if _, err := resolveActiveUser(ctx, s.userRepo, in.UserID); err != nil {
		return nil, err
	}
	if err := validation.ValidatePostTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePostContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		Title:    strings.TrimSpace(in.Title),
		Content:  in.Content,
		ImageURL: in.ImageURL,
		UserID:   in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}

	// Re-fetch so the response carries the author and computed counts.
	return resolvePost(ctx, s.postRepo, post.ID, in.UserID)
}

// GetPost returns a post detail, bumping the view counter unless the caller
// opted out.
func (s *PostService) GetPost(ctx context.Context, in GetPostInput) (*models.Post, error) {
	post, err := resolvePost(ctx, s.postRepo, in.PostID, in.CurrentUserID)
	if err != nil {
		return nil, err
	}

	if in.IncrementView {
		if err := s.postRepo.IncrementViewCount(ctx, in.PostID); err != nil {
			return nil, models.NewInternalError(err)
		}
		post.ViewCount++
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, limit, offset int, currentUserID uint) (*PostPage, error) {
	posts, err := s.postRepo.List(ctx, limit, offset, currentUserID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &PostPage{Posts: posts, Total: total}, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if _, err := resolveActiveUser(ctx, s.userRepo, in.UserID); err != nil {
		return nil, err
	}
	post, err := resolvePost(ctx, s.postRepo, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}

	if in.Title == nil && in.Content == nil && in.ImageURL == nil {
		return nil, models.NewBadRequestError("Nothing to update")
	}

	if in.Title != nil {
		if err := validation.ValidatePostTitle(*in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		if err := validation.ValidatePostContent(*in.Content); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Content = *in.Content
	}
	if in.ImageURL != nil {
		if s.images != nil && post.ImageURL != "" && post.ImageURL != *in.ImageURL {
			s.images.Delete(post.ImageURL)
		}
		post.ImageURL = *in.ImageURL
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return resolvePost(ctx, s.postRepo, in.PostID, in.UserID)
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	if _, err := resolveActiveUser(ctx, s.userRepo, userID); err != nil {
		return err
	}
	post, err := resolvePost(ctx, s.postRepo, postID, userID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	if err := s.postRepo.SoftDelete(ctx, postID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// RecordView bumps the view counter without refetching the post. Used when
// the post body itself was served from cache.
func (s *PostService) RecordView(ctx context.Context, postID uint) error {
	if err := s.postRepo.IncrementViewCount(ctx, postID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// LikePost rejects a duplicate like as BadRequest instead of relying on the
// uniqueness constraint alone. Returns the created like row.
func (s *PostService) LikePost(ctx context.Context, userID, postID uint) (*models.Like, error) {
	if _, err := resolveActiveUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}
	if _, err := resolvePost(ctx, s.postRepo, postID, userID); err != nil {
		return nil, err
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if liked {
		return nil, models.NewBadRequestError("Post is already liked")
	}

	like, err := s.postRepo.Like(ctx, userID, postID)
	if err != nil {
		// Concurrent likes can slip past the pre-check; the constraint
		// still blocks the second row.
		if repository.IsUniqueConstraintError(err) {
			return nil, models.NewBadRequestError("Post is already liked")
		}
		return nil, models.NewInternalError(err)
	}
	return like, nil
}

func (s *PostService) UnlikePost(ctx context.Context, userID, postID uint) error {
	if _, err := resolveActiveUser(ctx, s.userRepo, userID); err != nil {
		return err
	}
	if _, err := resolvePost(ctx, s.postRepo, postID, userID); err != nil {
		return err
	}

	removed, err := s.postRepo.Unlike(ctx, userID, postID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !removed {
		return models.NewBadRequestError("Post is not liked")
	}
	return nil
}

// GetPostLikes lists the likes on a post, newest first. Public, no auth.
func (s *PostService) GetPostLikes(ctx context.Context, postID uint) ([]*models.Like, error) {
	if _, err := resolvePost(ctx, s.postRepo, postID, 0); err != nil {
		return nil, err
	}

	likes, err := s.postRepo.ListLikes(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return likes, nil
}
