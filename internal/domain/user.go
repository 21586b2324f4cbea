package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a read-only profile view; account management lives elsewhere.
type User struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
