package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"toolshed-backend/internal/domain"
	"toolshed-backend/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.BorrowRequestRepository
	repository.ToolRepository
	repository.FriendshipRepository
	repository.UserRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                      db,
		BorrowRequestRepository: NewBorrowRequestRepository(db),
		ToolRepository:          NewToolRepository(db),
		FriendshipRepository:    NewFriendshipRepository(db),
		UserRepository:          NewUserRepository(db),
		NotificationRepository:  NewNotificationRepository(db),
	}
}

// Partial unique index names from migrations/001_borrow_requests.sql. The
// database is the last line of defense for the single-holder and
// single-open-request invariants; violations are classified here.
const (
	constraintSingleHolder      = "borrow_requests_single_holder"
	constraintSingleOpenRequest = "borrow_requests_single_open_request"
)

// classifyError maps driver errors onto the domain failure taxonomy.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		switch pqErr.Constraint {
		case constraintSingleHolder:
			// Lost the holder slot to a concurrent writer.
			return fmt.Errorf("%w: tool already has a holder", domain.ErrConflictRetry)
		case constraintSingleOpenRequest:
			return domain.InvalidTransitionf("you already have a request for this tool")
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
}
