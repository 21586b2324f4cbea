package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"toolshed-backend/internal/domain"
	"toolshed-backend/internal/logger"
	"toolshed-backend/internal/repository"
)

type borrowService struct {
	requestRepo repository.BorrowRequestRepository
	toolRepo    repository.ToolRepository
	friendRepo  repository.FriendshipRepository
	userRepo    repository.UserRepository
	noteRepo    repository.NotificationRepository
	emailSvc    EmailService
}

func NewBorrowService(
	requestRepo repository.BorrowRequestRepository,
	toolRepo repository.ToolRepository,
	friendRepo repository.FriendshipRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) BorrowService {
	return &borrowService{
		requestRepo: requestRepo,
		toolRepo:    toolRepo,
		friendRepo:  friendRepo,
		userRepo:    userRepo,
		noteRepo:    noteRepo,
		emailSvc:    emailSvc,
	}
}

// checkCreatePreconditions runs the shared validation for CreateRequest and
// JoinWaitlist and reports whether the tool currently has a holder.
func (s *borrowService) checkCreatePreconditions(ctx context.Context, borrowerID, toolID uuid.UUID) (*domain.Tool, bool, error) {
	tool, err := s.toolRepo.GetByID(ctx, toolID)
	if err != nil {
		return nil, false, err
	}
	if tool.OwnerID == borrowerID {
		return nil, false, domain.InvalidTransitionf("you cannot borrow your own tool")
	}
	if !tool.IsLendable {
		return nil, false, domain.InvalidTransitionf("this tool is not available for lending")
	}

	friends, err := s.friendRepo.AreFriends(ctx, borrowerID, tool.OwnerID)
	if err != nil {
		return nil, false, err
	}
	if !friends {
		return nil, false, domain.InvalidTransitionf("you can only borrow tools from friends")
	}

	open, err := s.requestRepo.ListForTool(ctx, toolID, domain.NonTerminalStatuses())
	if err != nil {
		return nil, false, err
	}
	holderExists := false
	for _, r := range open {
		if r.BorrowerID == borrowerID {
			return nil, false, domain.InvalidTransitionf("you already have a request for this tool")
		}
		if r.Status.IsHolder() {
			holderExists = true
		}
	}
	return tool, holderExists, nil
}

func (s *borrowService) CreateRequest(ctx context.Context, borrowerID, toolID uuid.UUID, message string) (*domain.BorrowRequest, error) {
	tool, holderExists, err := s.checkCreatePreconditions(ctx, borrowerID, toolID)
	if err != nil {
		return nil, err
	}
	if holderExists {
		return nil, domain.InvalidTransitionf("this tool is currently borrowed; join the waitlist instead")
	}

	req := &domain.BorrowRequest{
		ToolID:     toolID,
		BorrowerID: borrowerID,
		LenderID:   tool.OwnerID,
		Status:     domain.StatusPending,
		Message:    message,
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	logger.Info("Borrow request created", "requestID", req.ID, "toolID", toolID, "borrowerID", borrowerID)

	borrower, _ := s.userRepo.GetByID(ctx, borrowerID)
	lender, _ := s.userRepo.GetByID(ctx, tool.OwnerID)
	if borrower != nil && lender != nil {
		_ = s.emailSvc.SendBorrowRequestNotification(ctx, lender.Email, lender.DisplayName, borrower.DisplayName, tool.Name)
		s.notify(ctx, tool.OwnerID, "New Borrow Request",
			fmt.Sprintf("%s wants to borrow your %s", borrower.DisplayName, tool.Name),
			"borrow_request", req.ID)
	}
	return req, nil
}

func (s *borrowService) JoinWaitlist(ctx context.Context, borrowerID, toolID uuid.UUID, message string) (*domain.BorrowRequest, error) {
	tool, holderExists, err := s.checkCreatePreconditions(ctx, borrowerID, toolID)
	if err != nil {
		return nil, err
	}
	if !holderExists {
		return nil, domain.InvalidTransitionf("this tool is available; request it directly instead")
	}

	req := &domain.BorrowRequest{
		ToolID:     toolID,
		BorrowerID: borrowerID,
		LenderID:   tool.OwnerID,
		Status:     domain.StatusWaitlisted,
		Message:    message,
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	logger.Info("Joined waitlist", "requestID", req.ID, "toolID", toolID, "borrowerID", borrowerID)

	borrower, _ := s.userRepo.GetByID(ctx, borrowerID)
	if borrower != nil {
		s.notify(ctx, tool.OwnerID, "New Waitlist Entry",
			fmt.Sprintf("%s joined the waitlist for your %s", borrower.DisplayName, tool.Name),
			"waitlist_joined", req.ID)
	}
	return req, nil
}

// transition loads the request, authorizes the actor, checks transition
// legality, and applies the conditional status update. Every simple
// lifecycle action funnels through here.
func (s *borrowService) transition(ctx context.Context, actorID, requestID uuid.UUID, action domain.BorrowAction) (*domain.BorrowRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(actorID, req, action); err != nil {
		return nil, err
	}
	if !domain.CanTransition(req.Status, action) {
		if req.Status.IsTerminal() {
			return nil, domain.InvalidTransitionf("this request is already %s", req.Status)
		}
		return nil, domain.InvalidTransitionf("cannot %s a %s request", action, req.Status)
	}

	target, _ := domain.TargetStatus(action)
	updated, err := s.requestRepo.UpdateStatus(ctx, requestID, repository.StatusUpdate{
		ExpectedStatus: req.Status,
		NewStatus:      target,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Borrow request transitioned", "requestID", requestID, "action", action, "status", updated.Status)
	return updated, nil
}

func (s *borrowService) Approve(ctx context.Context, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(actorID, req, domain.ActionApprove); err != nil {
		return nil, err
	}
	if !domain.CanTransition(req.Status, domain.ActionApprove) {
		return nil, domain.InvalidTransitionf("cannot approve a %s request", req.Status)
	}

	// Approving hands over the holder slot; reject while another borrower
	// holds the tool. The partial unique index backstops the race where
	// two approvals for the same tool land together.
	holders, err := s.requestRepo.ListForTool(ctx, req.ToolID, domain.HolderStatuses())
	if err != nil {
		return nil, err
	}
	if len(holders) > 0 {
		return nil, domain.InvalidTransitionf("another borrower currently has this tool")
	}

	updated, err := s.requestRepo.UpdateStatus(ctx, requestID, repository.StatusUpdate{
		ExpectedStatus: domain.StatusPending,
		NewStatus:      domain.StatusApproved,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Borrow request approved", "requestID", requestID, "lenderID", actorID)

	s.notifyBorrower(ctx, updated, "Request Approved", "approved your request to borrow", "request_approved",
		func(to, toName, fromName, toolName string) error {
			return s.emailSvc.SendRequestApprovedNotification(ctx, to, toName, fromName, toolName)
		})
	return updated, nil
}

func (s *borrowService) Decline(ctx context.Context, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error) {
	updated, err := s.transition(ctx, actorID, requestID, domain.ActionDecline)
	if err != nil {
		return nil, err
	}

	s.notifyBorrower(ctx, updated, "Request Declined", "declined your request to borrow", "request_declined",
		func(to, toName, fromName, toolName string) error {
			return s.emailSvc.SendRequestDeclinedNotification(ctx, to, toName, fromName, toolName)
		})
	return updated, nil
}

func (s *borrowService) Cancel(ctx context.Context, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error) {
	updated, err := s.transition(ctx, actorID, requestID, domain.ActionCancel)
	if err != nil {
		return nil, err
	}

	borrower, _ := s.userRepo.GetByID(ctx, updated.BorrowerID)
	lender, _ := s.userRepo.GetByID(ctx, updated.LenderID)
	tool, _ := s.toolRepo.GetByID(ctx, updated.ToolID)
	if borrower != nil && lender != nil && tool != nil {
		_ = s.emailSvc.SendRequestCancelledNotification(ctx, lender.Email, lender.DisplayName, borrower.DisplayName, tool.Name)
		s.notify(ctx, updated.LenderID, "Request Cancelled",
			fmt.Sprintf("%s cancelled their request for %s", borrower.DisplayName, tool.Name),
			"request_cancelled", updated.ID)
	}
	return updated, nil
}

func (s *borrowService) LeaveWaitlist(ctx context.Context, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error) {
	updated, err := s.transition(ctx, actorID, requestID, domain.ActionLeaveWaitlist)
	if err != nil {
		return nil, err
	}
	logger.Info("Left waitlist", "requestID", requestID)
	return updated, nil
}

func (s *borrowService) ConfirmPickup(ctx context.Context, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error) {
	return s.confirm(ctx, actorID, requestID, domain.PhasePickup)
}

func (s *borrowService) ConfirmReturn(ctx context.Context, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error) {
	return s.confirm(ctx, actorID, requestID, domain.PhaseReturn)
}

// confirm runs one leg of the dual-confirmation handshake. Re-confirming
// is a no-op; the aggregate transition fires exactly once, on whichever
// confirmation completes the pair.
func (s *borrowService) confirm(ctx context.Context, actorID, requestID uuid.UUID, phase domain.ConfirmationPhase) (*domain.BorrowRequest, error) {
	action := domain.ActionConfirmPickup
	if phase == domain.PhaseReturn {
		action = domain.ActionConfirmReturn
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(actorID, req, action); err != nil {
		return nil, err
	}
	side, ok := domain.SideOf(actorID, req)
	if !ok {
		return nil, domain.Forbiddenf("you are not a participant of this request")
	}

	if req.Status != phase.FromStatus() {
		// Already past this phase and our confirmation is on record:
		// idempotent success rather than an error.
		if req.Confirmed(phase, side) {
			return req, nil
		}
		if req.Status.IsTerminal() {
			return nil, domain.InvalidTransitionf("this request is already %s", req.Status)
		}
		return nil, domain.InvalidTransitionf("cannot confirm %s on a %s request", phase, req.Status)
	}

	updated, promoted, err := s.requestRepo.ConfirmHandoff(ctx, requestID, phase, side)
	if errors.Is(err, domain.ErrNotFound) {
		// The status moved under us between read and write. If our
		// confirmation landed via the other path, treat as success.
		current, getErr := s.requestRepo.GetByID(ctx, requestID)
		if getErr != nil {
			return nil, getErr
		}
		if current.Confirmed(phase, side) {
			return current, nil
		}
		return nil, fmt.Errorf("%w: request no longer %s", domain.ErrConflictRetry, phase.FromStatus())
	}
	if err != nil {
		return nil, err
	}

	if updated.Status == phase.ToStatus() {
		logger.Info("Handoff complete", "requestID", requestID, "phase", phase, "status", updated.Status)
		s.notifyHandoffComplete(ctx, updated, phase)
	}
	if promoted != nil {
		s.notifyPromoted(ctx, promoted)
	}
	return updated, nil
}

func (s *borrowService) GetRequest(ctx context.Context, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !req.IsParticipant(actorID) {
		return nil, domain.Forbiddenf("you are not a participant of this request")
	}
	return req, nil
}

// notify writes a best-effort notification row; delivery failures are
// logged, never surfaced to the caller.
func (s *borrowService) notify(ctx context.Context, userID uuid.UUID, title, message, eventType string, requestID uuid.UUID) {
	note := &domain.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"type":       eventType,
			"request_id": requestID.String(),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to create notification", "userID", userID, "type", eventType, "error", err)
	}
}

func (s *borrowService) notifyBorrower(ctx context.Context, req *domain.BorrowRequest, title, verb, eventType string, send func(to, toName, fromName, toolName string) error) {
	borrower, _ := s.userRepo.GetByID(ctx, req.BorrowerID)
	lender, _ := s.userRepo.GetByID(ctx, req.LenderID)
	tool, _ := s.toolRepo.GetByID(ctx, req.ToolID)
	if borrower == nil || lender == nil || tool == nil {
		return
	}
	_ = send(borrower.Email, borrower.DisplayName, lender.DisplayName, tool.Name)
	s.notify(ctx, req.BorrowerID, title,
		fmt.Sprintf("%s %s %s", lender.DisplayName, verb, tool.Name),
		eventType, req.ID)
}

func (s *borrowService) notifyHandoffComplete(ctx context.Context, req *domain.BorrowRequest, phase domain.ConfirmationPhase) {
	tool, _ := s.toolRepo.GetByID(ctx, req.ToolID)
	if tool == nil {
		return
	}
	if phase == domain.PhasePickup {
		s.notify(ctx, req.LenderID, "Tool Picked Up",
			fmt.Sprintf("Your %s is now on loan", tool.Name), "pickup_complete", req.ID)
		s.notify(ctx, req.BorrowerID, "Pickup Confirmed",
			fmt.Sprintf("Your loan of %s is now active", tool.Name), "pickup_complete", req.ID)
		return
	}
	lender, _ := s.userRepo.GetByID(ctx, req.LenderID)
	if lender != nil {
		_ = s.emailSvc.SendLoanReturnedNotification(ctx, lender.Email, lender.DisplayName, tool.Name)
	}
	s.notify(ctx, req.LenderID, "Tool Returned",
		fmt.Sprintf("Your %s has been returned", tool.Name), "return_complete", req.ID)
	s.notify(ctx, req.BorrowerID, "Return Confirmed",
		fmt.Sprintf("Your loan of %s is complete", tool.Name), "return_complete", req.ID)
}

func (s *borrowService) notifyPromoted(ctx context.Context, promoted *domain.BorrowRequest) {
	logger.Info("Waitlisted request promoted", "requestID", promoted.ID, "toolID", promoted.ToolID)
	borrower, _ := s.userRepo.GetByID(ctx, promoted.BorrowerID)
	tool, _ := s.toolRepo.GetByID(ctx, promoted.ToolID)
	if borrower == nil || tool == nil {
		return
	}
	_ = s.emailSvc.SendWaitlistPromotedNotification(ctx, borrower.Email, borrower.DisplayName, tool.Name)
	s.notify(ctx, promoted.BorrowerID, "You're Next in Line",
		fmt.Sprintf("%s is available again; your request is now awaiting the lender's approval", tool.Name),
		"waitlist_promoted", promoted.ID)
	s.notify(ctx, promoted.LenderID, "Waitlisted Request Ready",
		fmt.Sprintf("The next borrower in line is waiting for your approval on %s", tool.Name),
		"waitlist_promoted", promoted.ID)
}
