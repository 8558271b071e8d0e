package service

import (
	"context"

	"seedbed/internal/models"
	"seedbed/internal/repository"
	"seedbed/internal/validation"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

type CreateCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

type CommentPage struct {
	Comments []*models.Comment
	Total    int64
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if _, err := resolveActiveUser(ctx, s.userRepo, in.UserID); err != nil {
		return nil, err
	}
	if _, err := resolvePost(ctx, s.postRepo, in.PostID, 0); err != nil {
		return nil, err
	}
	if err := validation.ValidateCommentContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	comment := &models.Comment{
		Content: in.Content,
		UserID:  in.UserID,
		PostID:  in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListComments(ctx context.Context, postID uint, limit, offset int) (*CommentPage, error) {
	if _, err := resolvePost(ctx, s.postRepo, postID, 0); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	total, err := s.commentRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &CommentPage{Comments: comments, Total: total}, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	if _, err := resolveActiveUser(ctx, s.userRepo, in.UserID); err != nil {
		return nil, err
	}
	comment, err := resolveComment(ctx, s.commentRepo, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}
	if err := validation.ValidateCommentContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	if _, err := resolveActiveUser(ctx, s.userRepo, userID); err != nil {
		return err
	}
	comment, err := resolveComment(ctx, s.commentRepo, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return models.NewForbiddenError("You can only delete your own comments")
	}

	if err := s.commentRepo.SoftDelete(ctx, commentID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
