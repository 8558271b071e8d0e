package service

import (
	"context"
	"errors"

	"seedbed/internal/models"
	"seedbed/internal/repository"

	"gorm.io/gorm"
)

// resolveActiveUser gates authenticated writes: the token subject must map
// to a live account. A vanished row is NotFound, a withdrawn account is
// Forbidden.
func resolveActiveUser(ctx context.Context, repo repository.UserRepository, userID uint) (*models.User, error) {
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted {
		return nil, models.NewForbiddenError("Account has been deleted")
	}
	return user, nil
}

// resolvePost distinguishes a post that never existed (NotFound) from one
// that was soft-deleted (Gone).
func resolvePost(ctx context.Context, repo repository.PostRepository, postID, currentUserID uint) (*models.Post, error) {
	post, err := repo.GetByID(ctx, postID, currentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, models.NewInternalError(err)
	}
	if post.IsDeleted {
		return nil, models.NewGoneError("Post")
	}
	return post, nil
}

// resolveComment applies the same NotFound/Gone split to comments.
func resolveComment(ctx context.Context, repo repository.CommentRepository, commentID uint) (*models.Comment, error) {
	comment, err := repo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", commentID)
		}
		return nil, models.NewInternalError(err)
	}
	if comment.IsDeleted {
		return nil, models.NewGoneError("Comment")
	}
	return comment, nil
}
