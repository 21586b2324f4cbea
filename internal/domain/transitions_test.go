package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    BorrowRequestStatus
		action  BorrowAction
		allowed bool
	}{
		{StatusPending, ActionApprove, true},
		{StatusPending, ActionDecline, true},
		{StatusPending, ActionCancel, true},
		{StatusPending, ActionConfirmPickup, false},
		{StatusApproved, ActionConfirmPickup, true},
		{StatusApproved, ActionApprove, false},
		{StatusApproved, ActionCancel, false},
		{StatusActive, ActionConfirmReturn, true},
		{StatusActive, ActionConfirmPickup, false},
		{StatusActive, ActionCancel, false},
		{StatusWaitlisted, ActionCancel, true},
		{StatusWaitlisted, ActionLeaveWaitlist, true},
		{StatusWaitlisted, ActionApprove, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.action),
			"%s from %s", tc.action, tc.from)
	}
}

func TestTerminalStatusesAcceptNoAction(t *testing.T) {
	actions := []BorrowAction{
		ActionApprove, ActionDecline, ActionCancel,
		ActionConfirmPickup, ActionConfirmReturn, ActionLeaveWaitlist,
	}
	for _, from := range []BorrowRequestStatus{StatusDeclined, StatusReturned, StatusCancelled} {
		for _, action := range actions {
			assert.False(t, CanTransition(from, action), "%s from %s", action, from)
		}
	}
}

func TestTargetStatus(t *testing.T) {
	cases := map[BorrowAction]BorrowRequestStatus{
		ActionApprove:       StatusApproved,
		ActionDecline:       StatusDeclined,
		ActionCancel:        StatusCancelled,
		ActionConfirmPickup: StatusActive,
		ActionConfirmReturn: StatusReturned,
		ActionLeaveWaitlist: StatusCancelled,
	}
	for action, want := range cases {
		got, ok := TargetStatus(action)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := TargetStatus(BorrowAction("bogus"))
	assert.False(t, ok)
}

func TestRequiredRole(t *testing.T) {
	role, ok := RequiredRole(ActionApprove)
	assert.True(t, ok)
	assert.Equal(t, RoleLender, role)

	role, ok = RequiredRole(ActionCancel)
	assert.True(t, ok)
	assert.Equal(t, RoleBorrower, role)

	role, ok = RequiredRole(ActionConfirmPickup)
	assert.True(t, ok)
	assert.Equal(t, RoleParticipant, role)

	_, ok = RequiredRole(BorrowAction("bogus"))
	assert.False(t, ok)
}
