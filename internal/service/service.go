package service

import (
	"context"

	"github.com/google/uuid"

	"toolshed-backend/internal/domain"
)

// BorrowService is the borrow-request lifecycle engine. Every method
// validates the actor and the current status before writing, applies at
// most one transition, and never leaves a partial update visible to other
// callers.
type BorrowService interface {
	CreateRequest(ctx context.Context, borrowerID, toolID uuid.UUID, message string) (*domain.BorrowRequest, error)
	JoinWaitlist(ctx context.Context, borrowerID, toolID uuid.UUID, message string) (*domain.BorrowRequest, error)
	Approve(ctx context.Context, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error)
	Decline(ctx context.Context, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error)
	Cancel(ctx context.Context, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error)
	LeaveWaitlist(ctx context.Context, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error)
	ConfirmPickup(ctx context.Context, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error)
	ConfirmReturn(ctx context.Context, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error)
	GetRequest(ctx context.Context, actorID, requestID uuid.UUID) (*domain.BorrowRequest, error)
}

// ProjectionService assembles read-only views over the persisted request
// set. Pure derivations; nothing here mutates state.
type ProjectionService interface {
	Incoming(ctx context.Context, userID uuid.UUID) ([]domain.BorrowRequest, error)
	Outgoing(ctx context.Context, userID uuid.UUID) ([]domain.BorrowRequest, error)
	ActiveLoans(ctx context.Context, userID uuid.UUID) (lentOut, borrowed []domain.BorrowRequest, err error)
	ToolAvailability(ctx context.Context, viewerID, toolID uuid.UUID) (*ToolAvailability, error)
	PendingIncomingCount(ctx context.Context, userID uuid.UUID) (int, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID uuid.UUID, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID uuid.UUID, notificationID int64) error
}

type EmailService interface {
	SendBorrowRequestNotification(ctx context.Context, toEmail, toName, borrowerName, toolName string) error
	SendRequestApprovedNotification(ctx context.Context, toEmail, toName, lenderName, toolName string) error
	SendRequestDeclinedNotification(ctx context.Context, toEmail, toName, lenderName, toolName string) error
	SendRequestCancelledNotification(ctx context.Context, toEmail, toName, borrowerName, toolName string) error
	SendLoanReturnedNotification(ctx context.Context, toEmail, toName, toolName string) error
	SendWaitlistPromotedNotification(ctx context.Context, toEmail, toName, toolName string) error
	SendPendingRequestReminder(ctx context.Context, toEmail, toName, borrowerName, toolName string, daysPending int) error
	SendLongRunningLoanReminder(ctx context.Context, toEmail, toName, toolName string, daysOut int) error
}
