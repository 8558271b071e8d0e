package models

import (
	"strings"
	"time"
)

// AICommentMarker identifies gardener comments by content prefix. The quota
// counts any comment starting with the emoji, with or without the space, so
// variants that lost the separator still count. Generated comments always
// carry the full AICommentPrefix.
const (
	AICommentMarker = "🤖"
	AICommentPrefix = AICommentMarker + " "
)

// Comment represents a comment on a post.
type Comment struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	PostID    uint       `gorm:"not null;index" json:"post_id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	User      User       `gorm:"foreignKey:UserID" json:"user"`
	IsDeleted bool       `gorm:"not null;default:false;index" json:"-"`
	DeletedAt *time.Time `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IsAIComment reports whether the comment was written by the AI gardener.
func (c *Comment) IsAIComment() bool {
	return strings.HasPrefix(c.Content, AICommentMarker)
}
