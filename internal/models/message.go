package models

import (
	"time"
)

// Message is one direct message in the append-only log. Messages are never
// deleted; the only mutation is the one-way is_read flip.
type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SenderID    uint      `gorm:"not null;index" json:"sender_id"`
	RecipientID uint      `gorm:"not null;index" json:"recipient_id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	IsRead      bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`

	Sender    User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

// TableName specifies the table name for GORM
func (Message) TableName() string {
	return "messages"
}

// ConversationSummary is a derived, non-persisted view over the message log:
// one counterpart, their latest message, and the caller's unread count.
type ConversationSummary struct {
	PartnerID      uint     `json:"partner_id"`
	Partner        *User    `json:"partner,omitempty"`
	PartnerProfile *Profile `json:"partner_profile,omitempty"`
	LastMessage    Message  `json:"last_message"`
	UnreadCount    int      `json:"unread_count"`
}
