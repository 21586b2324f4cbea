package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"toolshed-backend/internal/domain"
	"toolshed-backend/internal/repository"
)

func TestActiveLoansSplit(t *testing.T) {
	requestRepo := new(MockBorrowRequestRepo)
	toolRepo := new(MockToolRepo)
	svc := NewProjectionService(requestRepo, toolRepo)

	userID := uuid.New()
	asLender := domain.BorrowRequest{ID: uuid.New(), LenderID: userID, BorrowerID: uuid.New(), Status: domain.StatusActive}
	asBorrower := domain.BorrowRequest{ID: uuid.New(), LenderID: uuid.New(), BorrowerID: userID, Status: domain.StatusApproved}
	requestRepo.On("ListForUser", mock.Anything, userID, repository.RoleAny, domain.HolderStatuses()).
		Return([]domain.BorrowRequest{asLender, asBorrower}, nil)

	lentOut, borrowed, err := svc.ActiveLoans(context.Background(), userID)
	assert.NoError(t, err)
	assert.Len(t, lentOut, 1)
	assert.Len(t, borrowed, 1)
	assert.Equal(t, asLender.ID, lentOut[0].ID)
	assert.Equal(t, asBorrower.ID, borrowed[0].ID)
}

func TestIncomingOutgoing(t *testing.T) {
	requestRepo := new(MockBorrowRequestRepo)
	toolRepo := new(MockToolRepo)
	svc := NewProjectionService(requestRepo, toolRepo)
	userID := uuid.New()

	requestRepo.On("ListForUser", mock.Anything, userID, repository.RoleLender, domain.NonTerminalStatuses()).
		Return([]domain.BorrowRequest{{ID: uuid.New()}}, nil)
	requestRepo.On("ListForUser", mock.Anything, userID, repository.RoleBorrower, domain.NonTerminalStatuses()).
		Return([]domain.BorrowRequest{}, nil)

	incoming, err := svc.Incoming(context.Background(), userID)
	assert.NoError(t, err)
	assert.Len(t, incoming, 1)

	outgoing, err := svc.Outgoing(context.Background(), userID)
	assert.NoError(t, err)
	assert.Empty(t, outgoing)
}

func TestPendingIncomingCount(t *testing.T) {
	requestRepo := new(MockBorrowRequestRepo)
	toolRepo := new(MockToolRepo)
	svc := NewProjectionService(requestRepo, toolRepo)
	userID := uuid.New()

	requestRepo.On("ListForUser", mock.Anything, userID, repository.RoleLender, []domain.BorrowRequestStatus{domain.StatusPending}).
		Return([]domain.BorrowRequest{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	count, err := svc.PendingIncomingCount(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestToolAvailability(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	toolID := uuid.New()
	tool := &domain.Tool{ID: toolID, OwnerID: ownerID, Name: "Ladder", IsLendable: true}

	newSvc := func(open []domain.BorrowRequest) ProjectionService {
		requestRepo := new(MockBorrowRequestRepo)
		toolRepo := new(MockToolRepo)
		toolRepo.On("GetByID", mock.Anything, toolID).Return(tool, nil)
		requestRepo.On("ListForTool", mock.Anything, toolID, domain.NonTerminalStatuses()).Return(open, nil)
		return NewProjectionService(requestRepo, toolRepo)
	}

	t.Run("FreeToolCanBeRequested", func(t *testing.T) {
		svc := newSvc(nil)
		view, err := svc.ToolAvailability(ctx, uuid.New(), toolID)
		assert.NoError(t, err)
		assert.True(t, view.CanRequest)
		assert.False(t, view.CanJoinWaitlist)
		assert.False(t, view.IsCurrentlyBorrowed)
		assert.Zero(t, view.WaitlistCount)
	})

	t.Run("HeldToolOffersWaitlist", func(t *testing.T) {
		holder := uuid.New()
		svc := newSvc([]domain.BorrowRequest{
			{ID: uuid.New(), ToolID: toolID, BorrowerID: holder, LenderID: ownerID, Status: domain.StatusActive},
		})
		view, err := svc.ToolAvailability(ctx, uuid.New(), toolID)
		assert.NoError(t, err)
		assert.False(t, view.CanRequest)
		assert.True(t, view.CanJoinWaitlist)
		assert.True(t, view.IsCurrentlyBorrowed)
		assert.Equal(t, holder, *view.CurrentBorrowerID)
	})

	t.Run("WaitlistPositionDerivedFromArrivalOrder", func(t *testing.T) {
		viewerID := uuid.New()
		base := time.Now().Add(-time.Hour)
		// Rows arrive ordered by requested_at, as the repository returns them.
		svc := newSvc([]domain.BorrowRequest{
			{ID: uuid.New(), ToolID: toolID, BorrowerID: uuid.New(), LenderID: ownerID, Status: domain.StatusActive, RequestedAt: base},
			{ID: uuid.New(), ToolID: toolID, BorrowerID: uuid.New(), LenderID: ownerID, Status: domain.StatusWaitlisted, RequestedAt: base.Add(time.Minute)},
			{ID: uuid.New(), ToolID: toolID, BorrowerID: viewerID, LenderID: ownerID, Status: domain.StatusWaitlisted, RequestedAt: base.Add(2 * time.Minute)},
			{ID: uuid.New(), ToolID: toolID, BorrowerID: uuid.New(), LenderID: ownerID, Status: domain.StatusWaitlisted, RequestedAt: base.Add(3 * time.Minute)},
		})
		view, err := svc.ToolAvailability(ctx, viewerID, toolID)
		assert.NoError(t, err)
		assert.NotNil(t, view.ExistingRequest)
		assert.Equal(t, 3, view.WaitlistCount)
		assert.Equal(t, 2, view.WaitlistPosition)
		assert.False(t, view.CanRequest)
		assert.False(t, view.CanJoinWaitlist)
	})

	t.Run("OwnerSeesStateWithoutButtons", func(t *testing.T) {
		svc := newSvc([]domain.BorrowRequest{
			{ID: uuid.New(), ToolID: toolID, BorrowerID: uuid.New(), LenderID: ownerID, Status: domain.StatusActive},
		})
		view, err := svc.ToolAvailability(ctx, ownerID, toolID)
		assert.NoError(t, err)
		assert.False(t, view.CanRequest)
		assert.False(t, view.CanJoinWaitlist)
		assert.True(t, view.IsCurrentlyBorrowed)
		assert.Nil(t, view.ExistingRequest)
	})

	t.Run("ExistingPendingRequestBlocksBoth", func(t *testing.T) {
		viewerID := uuid.New()
		svc := newSvc([]domain.BorrowRequest{
			{ID: uuid.New(), ToolID: toolID, BorrowerID: viewerID, LenderID: ownerID, Status: domain.StatusPending},
		})
		view, err := svc.ToolAvailability(ctx, viewerID, toolID)
		assert.NoError(t, err)
		assert.NotNil(t, view.ExistingRequest)
		assert.False(t, view.CanRequest)
		assert.False(t, view.CanJoinWaitlist)
		assert.Zero(t, view.WaitlistPosition)
	})
}
