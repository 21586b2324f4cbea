package domain

import (
	"time"

	"github.com/google/uuid"
)

type BorrowRequestStatus string

const (
	StatusPending    BorrowRequestStatus = "pending"
	StatusApproved   BorrowRequestStatus = "approved"
	StatusDeclined   BorrowRequestStatus = "declined"
	StatusActive     BorrowRequestStatus = "active"
	StatusReturned   BorrowRequestStatus = "returned"
	StatusCancelled  BorrowRequestStatus = "cancelled"
	StatusWaitlisted BorrowRequestStatus = "waitlisted"
)

// StatusCategory is the single source of truth for grouping statuses.
// Every call site that needs "is this open / holding / queued / done"
// goes through these helpers instead of ad hoc status lists.
type StatusCategory int

const (
	CategoryOpen    StatusCategory = iota // pending: awaiting lender response
	CategoryHolder                        // approved, active: occupies the tool's holder slot
	CategoryQueued                        // waitlisted: waiting for the holder slot to free
	CategoryClosed                        // declined, returned, cancelled: terminal
)

func (s BorrowRequestStatus) Category() StatusCategory {
	switch s {
	case StatusPending:
		return CategoryOpen
	case StatusApproved, StatusActive:
		return CategoryHolder
	case StatusWaitlisted:
		return CategoryQueued
	default:
		return CategoryClosed
	}
}

func (s BorrowRequestStatus) IsTerminal() bool { return s.Category() == CategoryClosed }

// IsHolder reports whether a request in this status occupies the tool's
// single holder slot.
func (s BorrowRequestStatus) IsHolder() bool { return s.Category() == CategoryHolder }

func (s BorrowRequestStatus) IsNonTerminal() bool { return !s.IsTerminal() }

// NonTerminalStatuses are the statuses that block a borrower from opening
// another request for the same tool.
func NonTerminalStatuses() []BorrowRequestStatus {
	return []BorrowRequestStatus{StatusPending, StatusApproved, StatusActive, StatusWaitlisted}
}

// HolderStatuses are the statuses that occupy a tool's holder slot.
func HolderStatuses() []BorrowRequestStatus {
	return []BorrowRequestStatus{StatusApproved, StatusActive}
}

// BorrowRequest is the central lifecycle entity. lender_id is denormalized
// from the tool's owner at request time and never changes afterwards.
type BorrowRequest struct {
	ID         uuid.UUID           `json:"id"`
	ToolID     uuid.UUID           `json:"tool_id"`
	BorrowerID uuid.UUID           `json:"borrower_id"`
	LenderID   uuid.UUID           `json:"lender_id"`
	Status     BorrowRequestStatus `json:"status"`
	Message    string              `json:"message,omitempty"`

	RequestedAt time.Time  `json:"requested_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	PickedUpAt  *time.Time `json:"picked_up_at,omitempty"`
	ReturnedAt  *time.Time `json:"returned_at,omitempty"`

	BorrowerConfirmedPickupAt *time.Time `json:"borrower_confirmed_pickup_at,omitempty"`
	LenderConfirmedPickupAt   *time.Time `json:"lender_confirmed_pickup_at,omitempty"`
	BorrowerConfirmedReturnAt *time.Time `json:"borrower_confirmed_return_at,omitempty"`
	LenderConfirmedReturnAt   *time.Time `json:"lender_confirmed_return_at,omitempty"`
}

// IsParticipant reports whether userID is the borrower or the lender.
func (r *BorrowRequest) IsParticipant(userID uuid.UUID) bool {
	return r.BorrowerID == userID || r.LenderID == userID
}

// ConfirmationPhase identifies one leg of the dual-confirmation handshake.
type ConfirmationPhase string

const (
	PhasePickup ConfirmationPhase = "pickup"
	PhaseReturn ConfirmationPhase = "return"
)

// FromStatus is the status a request must hold for this phase's
// confirmations to be accepted.
func (p ConfirmationPhase) FromStatus() BorrowRequestStatus {
	if p == PhasePickup {
		return StatusApproved
	}
	return StatusActive
}

// ToStatus is the status the aggregate transition produces once both
// sides of the phase have confirmed.
func (p ConfirmationPhase) ToStatus() BorrowRequestStatus {
	if p == PhasePickup {
		return StatusActive
	}
	return StatusReturned
}

// ConfirmationSide identifies which party is confirming.
type ConfirmationSide string

const (
	SideBorrower ConfirmationSide = "borrower"
	SideLender   ConfirmationSide = "lender"
)

// Confirmed reports whether the given side has already confirmed the phase.
func (r *BorrowRequest) Confirmed(phase ConfirmationPhase, side ConfirmationSide) bool {
	switch {
	case phase == PhasePickup && side == SideBorrower:
		return r.BorrowerConfirmedPickupAt != nil
	case phase == PhasePickup && side == SideLender:
		return r.LenderConfirmedPickupAt != nil
	case phase == PhaseReturn && side == SideBorrower:
		return r.BorrowerConfirmedReturnAt != nil
	default:
		return r.LenderConfirmedReturnAt != nil
	}
}

// BothConfirmed reports whether both parties have confirmed the phase.
func (r *BorrowRequest) BothConfirmed(phase ConfirmationPhase) bool {
	return r.Confirmed(phase, SideBorrower) && r.Confirmed(phase, SideLender)
}
