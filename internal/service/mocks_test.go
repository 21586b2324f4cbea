package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"toolshed-backend/internal/domain"
	"toolshed-backend/internal/repository"
)

// MockBorrowRequestRepo
type MockBorrowRequestRepo struct {
	mock.Mock
}

func (m *MockBorrowRequestRepo) Create(ctx context.Context, req *domain.BorrowRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockBorrowRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.BorrowRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRequest), args.Error(1)
}
func (m *MockBorrowRequestRepo) ListForTool(ctx context.Context, toolID uuid.UUID, statuses []domain.BorrowRequestStatus) ([]domain.BorrowRequest, error) {
	args := m.Called(ctx, toolID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BorrowRequest), args.Error(1)
}
func (m *MockBorrowRequestRepo) ListForUser(ctx context.Context, userID uuid.UUID, role repository.RequestRole, statuses []domain.BorrowRequestStatus) ([]domain.BorrowRequest, error) {
	args := m.Called(ctx, userID, role, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BorrowRequest), args.Error(1)
}
func (m *MockBorrowRequestRepo) UpdateStatus(ctx context.Context, id uuid.UUID, upd repository.StatusUpdate) (*domain.BorrowRequest, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRequest), args.Error(1)
}
func (m *MockBorrowRequestRepo) ConfirmHandoff(ctx context.Context, id uuid.UUID, phase domain.ConfirmationPhase, side domain.ConfirmationSide) (*domain.BorrowRequest, *domain.BorrowRequest, error) {
	args := m.Called(ctx, id, phase, side)
	var updated, promoted *domain.BorrowRequest
	if args.Get(0) != nil {
		updated = args.Get(0).(*domain.BorrowRequest)
	}
	if args.Get(1) != nil {
		promoted = args.Get(1).(*domain.BorrowRequest)
	}
	return updated, promoted, args.Error(2)
}
func (m *MockBorrowRequestRepo) PromoteNextInLine(ctx context.Context, toolID uuid.UUID) (*domain.BorrowRequest, error) {
	args := m.Called(ctx, toolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRequest), args.Error(1)
}
func (m *MockBorrowRequestRepo) ListStalePending(ctx context.Context, olderThan time.Time) ([]domain.BorrowRequest, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BorrowRequest), args.Error(1)
}
func (m *MockBorrowRequestRepo) ListLongRunningActive(ctx context.Context, pickedUpBefore time.Time) ([]domain.BorrowRequest, error) {
	args := m.Called(ctx, pickedUpBefore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BorrowRequest), args.Error(1)
}

// MockToolRepo
type MockToolRepo struct {
	mock.Mock
}

func (m *MockToolRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tool), args.Error(1)
}

// MockFriendshipRepo
type MockFriendshipRepo struct {
	mock.Mock
}

func (m *MockFriendshipRepo) AreFriends(ctx context.Context, userA, userB uuid.UUID) (bool, error) {
	args := m.Called(ctx, userA, userB)
	return args.Bool(0), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, int32(args.Int(1)), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), int32(args.Int(1)), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id int64, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBorrowRequestNotification(ctx context.Context, toEmail, toName, borrowerName, toolName string) error {
	args := m.Called(ctx, toEmail, toName, borrowerName, toolName)
	return args.Error(0)
}
func (m *MockEmailService) SendRequestApprovedNotification(ctx context.Context, toEmail, toName, lenderName, toolName string) error {
	args := m.Called(ctx, toEmail, toName, lenderName, toolName)
	return args.Error(0)
}
func (m *MockEmailService) SendRequestDeclinedNotification(ctx context.Context, toEmail, toName, lenderName, toolName string) error {
	args := m.Called(ctx, toEmail, toName, lenderName, toolName)
	return args.Error(0)
}
func (m *MockEmailService) SendRequestCancelledNotification(ctx context.Context, toEmail, toName, borrowerName, toolName string) error {
	args := m.Called(ctx, toEmail, toName, borrowerName, toolName)
	return args.Error(0)
}
func (m *MockEmailService) SendLoanReturnedNotification(ctx context.Context, toEmail, toName, toolName string) error {
	args := m.Called(ctx, toEmail, toName, toolName)
	return args.Error(0)
}
func (m *MockEmailService) SendWaitlistPromotedNotification(ctx context.Context, toEmail, toName, toolName string) error {
	args := m.Called(ctx, toEmail, toName, toolName)
	return args.Error(0)
}
func (m *MockEmailService) SendPendingRequestReminder(ctx context.Context, toEmail, toName, borrowerName, toolName string, daysPending int) error {
	args := m.Called(ctx, toEmail, toName, borrowerName, toolName, daysPending)
	return args.Error(0)
}
func (m *MockEmailService) SendLongRunningLoanReminder(ctx context.Context, toEmail, toName, toolName string, daysOut int) error {
	args := m.Called(ctx, toEmail, toName, toolName, daysOut)
	return args.Error(0)
}
