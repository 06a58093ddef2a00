package models

import (
	"time"
)

// Experience is one position in a profile's work history, ordered oldest first.
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

// Profile holds the professional profile for a user (1:1 with User).
type Profile struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	UserID     uint         `gorm:"not null;uniqueIndex" json:"user_id"`
	FirstName  string       `gorm:"not null" json:"first_name"`
	LastName   string       `gorm:"not null" json:"last_name"`
	Headline   string       `gorm:"not null" json:"headline"`
	Location   string       `json:"location,omitempty"`
	About      string       `json:"about,omitempty"`
	ImageRef   string       `json:"image_ref,omitempty"`
	Experience []Experience `gorm:"serializer:json" json:"experience,omitempty"`
	Skills     []string     `gorm:"serializer:json" json:"skills,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	// ImageURL is resolved from ImageRef by the blob store at read time.
	ImageURL string `gorm:"-" json:"image_url,omitempty"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

// FullName returns the display name for search and enrichment.
func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}
