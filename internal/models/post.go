package models

import "time"

// Post represents a community posting. Soft-deleted posts keep their row so
// that lookups can distinguish "never existed" from "was deleted".
type Post struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Title     string `gorm:"size:100;not null" json:"title"`
	Content   string `gorm:"type:text;not null" json:"content"`
	ImageURL  string `json:"image_url"`
	UserID    uint   `gorm:"not null;index" json:"user_id"`
	User      User   `gorm:"foreignKey:UserID" json:"user"`
	ViewCount int    `gorm:"not null;default:0" json:"view_count"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool       `gorm:"->" json:"liked"`
	IsDeleted bool       `gorm:"not null;default:false;index" json:"-"`
	DeletedAt *time.Time `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
