package models

import (
	"database/sql"
	"time"
)

// Notification is the model for the 'notifications' table.
// Notifications are broadcast announcements, optionally pointing at a book.
type Notification struct {
	ID           int64          `json:"id" db:"id"`
	Message      string         `json:"message" db:"message"`
	Type         string         `json:"type" db:"type"` // e.g. general, new-arrival, offer
	AttachedBook sql.NullString `json:"attachedBook,omitempty" db:"attached_book"`
	CreatedAt    time.Time      `json:"createdAt" db:"created_at"`
}
