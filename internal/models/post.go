package models

import (
	"time"
)

// PostType classifies the media attached to a post.
type PostType string

const (
	PostTypeText    PostType = "text"
	PostTypeImage   PostType = "image"
	PostTypeVideo   PostType = "video"
	PostTypeArticle PostType = "article"
)

// ValidPostType reports whether t is one of the known post types.
func ValidPostType(t PostType) bool {
	switch t {
	case PostTypeText, PostTypeImage, PostTypeVideo, PostTypeArticle:
		return true
	}
	return false
}

// Post is a feed entry. LikesCount and CommentsCount are persisted running
// totals, updated in the same transaction as the Like/Comment row mutation
// that changes them. They are never recomputed at read time.
type Post struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AuthorID      uint      `gorm:"not null;index" json:"author_id"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	Type          PostType  `gorm:"type:varchar(20);not null;default:'text'" json:"type"`
	MediaRef      string    `json:"media_ref,omitempty"`
	Title         string    `json:"title,omitempty"`
	LikesCount    int       `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount int       `gorm:"not null;default:0" json:"comments_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	// Computed per request, never persisted.
	IsLiked       bool     `gorm:"-" json:"is_liked"`
	AuthorProfile *Profile `gorm:"-" json:"author_profile,omitempty"`
	MediaURL      string   `gorm:"-" json:"media_url,omitempty"`
}

// TableName specifies the table name for GORM
func (Post) TableName() string {
	return "posts"
}

// Like marks that a user liked a post. The (post, user) pair is unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_post_user" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_post_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Like) TableName() string {
	return "likes"
}

// Comment is an append-only comment on a post.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	AuthorID  uint      `gorm:"not null" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`

	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	AuthorProfile *Profile `gorm:"-" json:"author_profile,omitempty"`
}

// TableName specifies the table name for GORM
func (Comment) TableName() string {
	return "comments"
}
