package domain

import "github.com/google/uuid"

// Authorize checks whether actor may trigger action on req. Pure function;
// the transition engine calls it before touching any state. Participation
// is checked first so a third party always gets ErrForbidden, never a
// status-based error that would leak request state.
func Authorize(actor uuid.UUID, req *BorrowRequest, action BorrowAction) error {
	if !req.IsParticipant(actor) {
		return Forbiddenf("you are not a participant of this request")
	}

	role, ok := RequiredRole(action)
	if !ok {
		return InvalidTransitionf("unknown action %q", action)
	}

	switch role {
	case RoleLender:
		if actor != req.LenderID {
			return Forbiddenf("only the lender can %s this request", action)
		}
	case RoleBorrower:
		if actor != req.BorrowerID {
			return Forbiddenf("only the borrower can %s this request", action)
		}
	case RoleParticipant:
		// Participation already verified.
	}
	return nil
}

// SideOf maps an actor to their side of the confirmation handshake.
func SideOf(actor uuid.UUID, req *BorrowRequest) (ConfirmationSide, bool) {
	switch actor {
	case req.BorrowerID:
		return SideBorrower, true
	case req.LenderID:
		return SideLender, true
	}
	return "", false
}
