package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusCategory(t *testing.T) {
	assert.Equal(t, CategoryOpen, StatusPending.Category())
	assert.Equal(t, CategoryHolder, StatusApproved.Category())
	assert.Equal(t, CategoryHolder, StatusActive.Category())
	assert.Equal(t, CategoryQueued, StatusWaitlisted.Category())
	assert.Equal(t, CategoryClosed, StatusDeclined.Category())
	assert.Equal(t, CategoryClosed, StatusReturned.Category())
	assert.Equal(t, CategoryClosed, StatusCancelled.Category())
}

func TestStatusClassification(t *testing.T) {
	terminal := []BorrowRequestStatus{StatusDeclined, StatusReturned, StatusCancelled}
	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), "expected %s to be terminal", s)
		assert.False(t, s.IsNonTerminal())
		assert.False(t, s.IsHolder())
	}

	for _, s := range NonTerminalStatuses() {
		assert.False(t, s.IsTerminal(), "expected %s to be non-terminal", s)
	}

	assert.ElementsMatch(t,
		[]BorrowRequestStatus{StatusPending, StatusApproved, StatusActive, StatusWaitlisted},
		NonTerminalStatuses())
	assert.ElementsMatch(t,
		[]BorrowRequestStatus{StatusApproved, StatusActive},
		HolderStatuses())
	for _, s := range HolderStatuses() {
		assert.True(t, s.IsHolder())
	}
	assert.False(t, StatusPending.IsHolder())
	assert.False(t, StatusWaitlisted.IsHolder())
}

func TestConfirmationPhaseEndpoints(t *testing.T) {
	assert.Equal(t, StatusApproved, PhasePickup.FromStatus())
	assert.Equal(t, StatusActive, PhasePickup.ToStatus())
	assert.Equal(t, StatusActive, PhaseReturn.FromStatus())
	assert.Equal(t, StatusReturned, PhaseReturn.ToStatus())
}

func TestConfirmed(t *testing.T) {
	now := time.Now()
	req := &BorrowRequest{}

	assert.False(t, req.Confirmed(PhasePickup, SideBorrower))
	assert.False(t, req.BothConfirmed(PhasePickup))

	req.BorrowerConfirmedPickupAt = &now
	assert.True(t, req.Confirmed(PhasePickup, SideBorrower))
	assert.False(t, req.Confirmed(PhasePickup, SideLender))
	assert.False(t, req.BothConfirmed(PhasePickup))
	assert.False(t, req.Confirmed(PhaseReturn, SideBorrower))

	req.LenderConfirmedPickupAt = &now
	assert.True(t, req.BothConfirmed(PhasePickup))
	assert.False(t, req.BothConfirmed(PhaseReturn))

	req.BorrowerConfirmedReturnAt = &now
	req.LenderConfirmedReturnAt = &now
	assert.True(t, req.BothConfirmed(PhaseReturn))
}
