package domain

// BorrowAction is a caller-requested lifecycle action.
type BorrowAction string

const (
	ActionApprove       BorrowAction = "approve"
	ActionDecline       BorrowAction = "decline"
	ActionCancel        BorrowAction = "cancel"
	ActionConfirmPickup BorrowAction = "confirm_pickup"
	ActionConfirmReturn BorrowAction = "confirm_return"
	ActionLeaveWaitlist BorrowAction = "leave_waitlist"
)

// ActorRole names who is allowed to trigger an action on a request.
type ActorRole int

const (
	RoleLender ActorRole = iota
	RoleBorrower
	RoleParticipant // either side, used for the confirmation handshake
)

type transitionRule struct {
	role ActorRole
	from []BorrowRequestStatus
	to   BorrowRequestStatus
}

// transitionTable is the full set of legal lifecycle edges. Confirmation
// actions are listed with their aggregate target; the status only changes
// once both sides have confirmed the phase. Promotion (waitlisted→pending)
// is engine-triggered and intentionally absent here.
var transitionTable = map[BorrowAction]transitionRule{
	ActionApprove:       {role: RoleLender, from: []BorrowRequestStatus{StatusPending}, to: StatusApproved},
	ActionDecline:       {role: RoleLender, from: []BorrowRequestStatus{StatusPending}, to: StatusDeclined},
	ActionCancel:        {role: RoleBorrower, from: []BorrowRequestStatus{StatusPending, StatusWaitlisted}, to: StatusCancelled},
	ActionConfirmPickup: {role: RoleParticipant, from: []BorrowRequestStatus{StatusApproved}, to: StatusActive},
	ActionConfirmReturn: {role: RoleParticipant, from: []BorrowRequestStatus{StatusActive}, to: StatusReturned},
	ActionLeaveWaitlist: {role: RoleBorrower, from: []BorrowRequestStatus{StatusWaitlisted}, to: StatusCancelled},
}

// RequiredRole returns the actor role that may trigger the action.
func RequiredRole(action BorrowAction) (ActorRole, bool) {
	rule, ok := transitionTable[action]
	return rule.role, ok
}

// CanTransition reports whether the action is legal from the given status.
func CanTransition(from BorrowRequestStatus, action BorrowAction) bool {
	rule, ok := transitionTable[action]
	if !ok {
		return false
	}
	for _, s := range rule.from {
		if s == from {
			return true
		}
	}
	return false
}

// TargetStatus returns the status the action produces when it completes.
func TargetStatus(action BorrowAction) (BorrowRequestStatus, bool) {
	rule, ok := transitionTable[action]
	return rule.to, ok
}
