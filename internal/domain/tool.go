package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tool is a read-only view of the tool catalog, which is managed outside
// this service. The engine only needs ownership and lendability.
type Tool struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Name       string    `json:"name"`
	Brand      string    `json:"brand,omitempty"`
	Category   string    `json:"category,omitempty"`
	Condition  string    `json:"condition,omitempty"`
	IsLendable bool      `json:"is_lendable"`
	CreatedAt  time.Time `json:"created_at"`
}
