package http

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"toolshed-backend/internal/domain"
	"toolshed-backend/internal/service"
)

// MockBorrowService
type MockBorrowService struct {
	mock.Mock
}

func (m *MockBorrowService) CreateRequest(ctx context.Context, borrowerID, toolID uuid.UUID, message string) (*domain.BorrowRequest, error) {
	args := m.Called(ctx, borrowerID, toolID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRequest), args.Error(1)
}
func (m *MockBorrowService) JoinWaitlist(ctx context.Context, borrowerID, toolID uuid.UUID, message string) (*domain.BorrowRequest, error) {
	args := m.Called(ctx, borrowerID, toolID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRequest), args.Error(1)
}
func (m *MockBorrowService) Approve(ctx context.Context, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error) {
	args := m.Called(ctx, actorID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRequest), args.Error(1)
}
func (m *MockBorrowService) Decline(ctx context.Context, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error) {
	args := m.Called(ctx, actorID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRequest), args.Error(1)
}
func (m *MockBorrowService) Cancel(ctx context.Context, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error) {
	args := m.Called(ctx, actorID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRequest), args.Error(1)
}
func (m *MockBorrowService) LeaveWaitlist(ctx context.Context, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error) {
	args := m.Called(ctx, actorID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRequest), args.Error(1)
}
func (m *MockBorrowService) ConfirmPickup(ctx context.Context, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error) {
	args := m.Called(ctx, actorID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRequest), args.Error(1)
}
func (m *MockBorrowService) ConfirmReturn(ctx context.Context, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error) {
	args := m.Called(ctx, actorID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRequest), args.Error(1)
}
func (m *MockBorrowService) GetRequest(ctx context.Context, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error) {
	args := m.Called(ctx, actorID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRequest), args.Error(1)
}

// MockProjectionService
type MockProjectionService struct {
	mock.Mock
}

func (m *MockProjectionService) Incoming(ctx context.Context, userID uuid.UUID) ([]domain.BorrowRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BorrowRequest), args.Error(1)
}
func (m *MockProjectionService) Outgoing(ctx context.Context, userID uuid.UUID) ([]domain.BorrowRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BorrowRequest), args.Error(1)
}
func (m *MockProjectionService) ActiveLoans(ctx context.Context, userID uuid.UUID) ([]domain.BorrowRequest, []domain.BorrowRequest, error) {
	args := m.Called(ctx, userID)
	var lentOut, borrowed []domain.BorrowRequest
	if args.Get(0) != nil {
		lentOut = args.Get(0).([]domain.BorrowRequest)
	}
	if args.Get(1) != nil {
		borrowed = args.Get(1).([]domain.BorrowRequest)
	}
	return lentOut, borrowed, args.Error(2)
}
func (m *MockProjectionService) ToolAvailability(ctx context.Context, viewerID, toolID uuid.UUID) (*service.ToolAvailability, error) {
	args := m.Called(ctx, viewerID, toolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ToolAvailability), args.Error(1)
}
func (m *MockProjectionService) PendingIncomingCount(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// MockNotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, int32(args.Int(1)), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), int32(args.Int(1)), args.Error(2)
}
func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, notificationID int64) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}
