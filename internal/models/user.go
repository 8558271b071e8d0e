// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account. Soft deletion keeps the row so that
// content references stay resolvable; the email and name are anonymized on
// withdrawal and the ID can never log in again.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Name         string     `gorm:"uniqueIndex;size:30;not null" json:"name"`
	PasswordHash string     `gorm:"not null" json:"-"`
	ProfileImage string     `json:"profile_image"`
	IsDeleted    bool       `gorm:"not null;default:false;index" json:"-"`
	DeletedAt    *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// PublicUser is the reduced account shape embedded in posts and comments.
type PublicUser struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	ProfileImage string `json:"profile_image"`
}

// Public strips private fields for embedding in other responses.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, ProfileImage: u.ProfileImage}
}
