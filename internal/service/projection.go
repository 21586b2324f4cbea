package service

import (
	"context"

	"github.com/google/uuid"

	"toolshed-backend/internal/domain"
	"toolshed-backend/internal/repository"
)

// ToolAvailability is the per-viewer view of a tool's borrow state.
// Waitlist position and count are derived from arrival order on every
// read; they are never stored.
type ToolAvailability struct {
	CanRequest          bool                  `json:"can_request"`
	CanJoinWaitlist     bool                  `json:"can_join_waitlist"`
	ExistingRequest     *domain.BorrowRequest `json:"existing_request,omitempty"`
	IsCurrentlyBorrowed bool                  `json:"is_currently_borrowed"`
	CurrentBorrowerID   *uuid.UUID            `json:"current_borrower_id,omitempty"`
	WaitlistPosition    int                   `json:"waitlist_position,omitempty"`
	WaitlistCount       int                   `json:"waitlist_count"`
}

type projectionService struct {
	requestRepo repository.BorrowRequestRepository
	toolRepo    repository.ToolRepository
}

func NewProjectionService(requestRepo repository.BorrowRequestRepository, toolRepo repository.ToolRepository) ProjectionService {
	return &projectionService{requestRepo: requestRepo, toolRepo: toolRepo}
}

func (s *projectionService) Incoming(ctx context.Context, userID uuid.UUID) ([]domain.BorrowRequest, error) {
	return s.requestRepo.ListForUser(ctx, userID, repository.RoleLender, domain.NonTerminalStatuses())
}

func (s *projectionService) Outgoing(ctx context.Context, userID uuid.UUID) ([]domain.BorrowRequest, error) {
	return s.requestRepo.ListForUser(ctx, userID, repository.RoleBorrower, domain.NonTerminalStatuses())
}

func (s *projectionService) ActiveLoans(ctx context.Context, userID uuid.UUID) (lentOut, borrowed []domain.BorrowRequest, err error) {
	loans, err := s.requestRepo.ListForUser(ctx, userID, repository.RoleAny, domain.HolderStatuses())
	if err != nil {
		return nil, nil, err
	}
	for _, loan := range loans {
		if loan.LenderID == userID {
			lentOut = append(lentOut, loan)
		} else {
			borrowed = append(borrowed, loan)
		}
	}
	return lentOut, borrowed, nil
}

func (s *projectionService) ToolAvailability(ctx context.Context, viewerID, toolID uuid.UUID) (*ToolAvailability, error) {
	tool, err := s.toolRepo.GetByID(ctx, toolID)
	if err != nil {
		return nil, err
	}
	// Owners see their tool's state but never request/waitlist buttons.
	if tool.OwnerID == viewerID {
		viewerID = uuid.Nil
	}

	open, err := s.requestRepo.ListForTool(ctx, toolID, domain.NonTerminalStatuses())
	if err != nil {
		return nil, err
	}

	view := &ToolAvailability{}
	waitlistPos := 0
	for i := range open {
		r := &open[i]
		if viewerID != uuid.Nil && r.BorrowerID == viewerID && view.ExistingRequest == nil {
			cp := *r
			view.ExistingRequest = &cp
		}
		if r.Status.IsHolder() {
			view.IsCurrentlyBorrowed = true
			id := r.BorrowerID
			view.CurrentBorrowerID = &id
		}
		if r.Status == domain.StatusWaitlisted {
			view.WaitlistCount++
			if r.BorrowerID == viewerID {
				// Rows arrive ordered by requested_at; the position is
				// the viewer's rank within the waitlisted subset.
				waitlistPos = view.WaitlistCount
			}
		}
	}
	if view.ExistingRequest != nil && view.ExistingRequest.Status == domain.StatusWaitlisted {
		view.WaitlistPosition = waitlistPos
	}

	eligible := viewerID != uuid.Nil && tool.IsLendable && view.ExistingRequest == nil
	view.CanRequest = eligible && !view.IsCurrentlyBorrowed
	view.CanJoinWaitlist = eligible && view.IsCurrentlyBorrowed
	return view, nil
}

func (s *projectionService) PendingIncomingCount(ctx context.Context, userID uuid.UUID) (int, error) {
	pending, err := s.requestRepo.ListForUser(ctx, userID, repository.RoleLender, []domain.BorrowRequestStatus{domain.StatusPending})
	if err != nil {
		return 0, err
	}
	return len(pending), nil
}
