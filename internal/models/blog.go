// internal/models/blog.go
package models

import (
	"github.com/google/uuid"
)

type Blog struct {
	BaseModel
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Username    string    `json:"username" gorm:"size:100;not null"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`

	// Relationships
	Likes    []Like    `json:"likes,omitempty" gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE"`
}

// Like records one user liking one blog, at most once.
type Like struct {
	BaseModel
	BlogID uuid.UUID `json:"blog_id" gorm:"type:uuid;not null;uniqueIndex:idx_likes_blog_user"`
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_likes_blog_user"`
}

type Comment struct {
	BaseModel
	BlogID   uuid.UUID `json:"blog_id" gorm:"type:uuid;not null;index"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Username string    `json:"username" gorm:"size:100;not null"`
	Content  string    `json:"content" gorm:"type:text;not null"`
}
