package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"toolshed-backend/internal/domain"
)

// RequestRole selects which side of a request a user query matches.
type RequestRole string

const (
	RoleBorrower RequestRole = "borrower"
	RoleLender   RequestRole = "lender"
	RoleAny      RequestRole = "any"
)

// StatusUpdate describes one conditional transition write. The repository
// applies it only while the row still holds ExpectedStatus; losing that
// race surfaces as domain.ErrConflictRetry.
type StatusUpdate struct {
	ExpectedStatus domain.BorrowRequestStatus
	NewStatus      domain.BorrowRequestStatus
	// StampRespondedAt/StampReturnedAt etc. are expressed by the repository
	// from NewStatus; each lifecycle timestamp is written exactly once, by
	// the transition that produces it.
}

type BorrowRequestRepository interface {
	Create(ctx context.Context, req *domain.BorrowRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BorrowRequest, error)
	ListForTool(ctx context.Context, toolID uuid.UUID, statuses []domain.BorrowRequestStatus) ([]domain.BorrowRequest, error)
	ListForUser(ctx context.Context, userID uuid.UUID, role RequestRole, statuses []domain.BorrowRequestStatus) ([]domain.BorrowRequest, error)

	// UpdateStatus applies a single conditional transition and stamps the
	// timestamp that belongs to it. Returns domain.ErrConflictRetry when
	// the row no longer holds upd.ExpectedStatus at write time.
	UpdateStatus(ctx context.Context, id uuid.UUID, upd StatusUpdate) (*domain.BorrowRequest, error)

	// ConfirmHandoff records one side's confirmation for a phase. Setting
	// the same confirmation twice is a no-op. When the counterpart
	// confirmation is already present the aggregate transition
	// (approved→active or active→returned) fires in the same statement,
	// and for the return phase the earliest waitlisted request for the
	// tool is promoted to pending in the same database transaction.
	// Returns the updated request and the promoted one (nil if none).
	ConfirmHandoff(ctx context.Context, id uuid.UUID, phase domain.ConfirmationPhase, side domain.ConfirmationSide) (*domain.BorrowRequest, *domain.BorrowRequest, error)

	// PromoteNextInLine moves the earliest waitlisted request for the tool
	// to pending, provided no holder exists. Returns nil when the waitlist
	// is empty or a holder is still present.
	PromoteNextInLine(ctx context.Context, toolID uuid.UUID) (*domain.BorrowRequest, error)

	// Reminder queries for the cron jobs. Both are read-only.
	ListStalePending(ctx context.Context, olderThan time.Time) ([]domain.BorrowRequest, error)
	ListLongRunningActive(ctx context.Context, pickedUpBefore time.Time) ([]domain.BorrowRequest, error)
}

type ToolRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tool, error)
}

type FriendshipRepository interface {
	// AreFriends reports whether an accepted friendship exists between the
	// two users, in either direction.
	AreFriends(ctx context.Context, userA, userB uuid.UUID) (bool, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id int64, userID uuid.UUID) error
}
