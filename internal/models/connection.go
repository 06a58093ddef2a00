package models

import (
	"time"

	"gorm.io/gorm"
)

// ConnectionStatus represents the status of a connection request.
type ConnectionStatus string

const (
	// ConnectionStatusPending indicates a request awaiting a response.
	ConnectionStatusPending ConnectionStatus = "pending"
	// ConnectionStatusAccepted indicates an established connection.
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	// ConnectionStatusRejected indicates a declined request.
	ConnectionStatusRejected ConnectionStatus = "rejected"
)

// RelationState is the viewer-relative classification of a user pair.
type RelationState string

const (
	RelationSelf            RelationState = "self"
	RelationNone            RelationState = "none"
	RelationPendingSent     RelationState = "pending_sent"
	RelationPendingReceived RelationState = "pending_received"
	RelationConnected       RelationState = "connected"
)

// Connection records a directed request between two users and its resolution.
// PairMin/PairMax hold the canonically ordered user IDs; their unique index
// guarantees at most one row per unordered pair, whichever direction the
// request was sent in.
type Connection struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RequesterID uint             `gorm:"not null;index" json:"requester_id"`
	RecipientID uint             `gorm:"not null;index" json:"recipient_id"`
	PairMin     uint             `gorm:"not null;uniqueIndex:idx_connection_pair" json:"-"`
	PairMax     uint             `gorm:"not null;uniqueIndex:idx_connection_pair" json:"-"`
	Status      ConnectionStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	// Relationships
	Requester User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

// TableName specifies the table name for GORM
func (Connection) TableName() string {
	return "connections"
}

// BeforeCreate fills the canonical pair columns. Direction is preserved in
// requester/recipient; the pair columns only back the uniqueness constraint.
func (c *Connection) BeforeCreate(_ *gorm.DB) error {
	c.PairMin, c.PairMax = c.RequesterID, c.RecipientID
	if c.PairMin > c.PairMax {
		c.PairMin, c.PairMax = c.PairMax, c.PairMin
	}
	return nil
}

// OtherUserID returns the counterpart of userID in this connection.
func (c *Connection) OtherUserID(userID uint) uint {
	if c.RequesterID == userID {
		return c.RecipientID
	}
	return c.RequesterID
}

// ConnectionPeer is one entry in a user's accepted-connections list.
type ConnectionPeer struct {
	ConnectionID uint      `json:"connection_id"`
	UserID       uint      `json:"user_id"`
	User         *User     `json:"user,omitempty"`
	Profile      *Profile  `json:"profile,omitempty"`
	ConnectedAt  time.Time `json:"connected_at"`
}

// PendingRequest is one entry in a user's incoming-request list.
type PendingRequest struct {
	ConnectionID     uint      `json:"connection_id"`
	RequesterID      uint      `json:"requester_id"`
	Requester        *User     `json:"requester,omitempty"`
	RequesterProfile *Profile  `json:"requester_profile,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
