package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"toolshed-backend/internal/domain"
	"toolshed-backend/internal/logger"
	"toolshed-backend/internal/repository"
)

type borrowRequestRepository struct {
	db *sql.DB
}

func NewBorrowRequestRepository(db *sql.DB) repository.BorrowRequestRepository {
	return &borrowRequestRepository{db: db}
}

const requestColumns = `id, tool_id, borrower_id, lender_id, status, message,
	requested_at, responded_at, picked_up_at, returned_at,
	borrower_confirmed_pickup_at, lender_confirmed_pickup_at,
	borrower_confirmed_return_at, lender_confirmed_return_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*domain.BorrowRequest, error) {
	var req domain.BorrowRequest
	var message sql.NullString
	var responded, pickedUp, returned sql.NullTime
	var bcp, lcp, bcr, lcr sql.NullTime

	err := row.Scan(
		&req.ID, &req.ToolID, &req.BorrowerID, &req.LenderID, &req.Status, &message,
		&req.RequestedAt, &responded, &pickedUp, &returned,
		&bcp, &lcp, &bcr, &lcr,
	)
	if err != nil {
		return nil, err
	}

	req.Message = message.String
	req.RespondedAt = nullableTime(responded)
	req.PickedUpAt = nullableTime(pickedUp)
	req.ReturnedAt = nullableTime(returned)
	req.BorrowerConfirmedPickupAt = nullableTime(bcp)
	req.LenderConfirmedPickupAt = nullableTime(lcp)
	req.BorrowerConfirmedReturnAt = nullableTime(bcr)
	req.LenderConfirmedReturnAt = nullableTime(lcr)
	return &req, nil
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func (r *borrowRequestRepository) Create(ctx context.Context, req *domain.BorrowRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}

	query := `INSERT INTO borrow_requests (id, tool_id, borrower_id, lender_id, status, message, requested_at)
	          VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NOW()) RETURNING requested_at`
	logger.DatabaseCall("INSERT", "borrow_requests", "toolID", req.ToolID, "borrowerID", req.BorrowerID, "status", req.Status)

	err := r.db.QueryRowContext(ctx, query,
		req.ID, req.ToolID, req.BorrowerID, req.LenderID, req.Status, req.Message,
	).Scan(&req.RequestedAt)
	logger.DatabaseResult("INSERT", 1, err, "requestID", req.ID)
	if err != nil {
		return classifyError(err)
	}
	return nil
}

func (r *borrowRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BorrowRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM borrow_requests WHERE id = $1`
	req, err := scanRequest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, classifyError(err)
	}
	return req, nil
}

func (r *borrowRequestRepository) ListForTool(ctx context.Context, toolID uuid.UUID, statuses []domain.BorrowRequestStatus) ([]domain.BorrowRequest, error) {
	// Waitlist position is derived from this ordering; it is never stored.
	query := `SELECT ` + requestColumns + ` FROM borrow_requests
	          WHERE tool_id = $1 AND status = ANY($2)
	          ORDER BY requested_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, toolID, statusArray(statuses))
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (r *borrowRequestRepository) ListForUser(ctx context.Context, userID uuid.UUID, role repository.RequestRole, statuses []domain.BorrowRequestStatus) ([]domain.BorrowRequest, error) {
	var where string
	switch role {
	case repository.RoleBorrower:
		where = "borrower_id = $1"
	case repository.RoleLender:
		where = "lender_id = $1"
	default:
		where = "(borrower_id = $1 OR lender_id = $1)"
	}

	query := `SELECT ` + requestColumns + ` FROM borrow_requests
	          WHERE ` + where + ` AND status = ANY($2)
	          ORDER BY requested_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID, statusArray(statuses))
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()
	return collectRequests(rows)
}

// stampColumn returns the timestamp column a transition writes, if any.
// Each lifecycle timestamp is set exactly once, by the transition that
// produces it.
func stampColumn(newStatus domain.BorrowRequestStatus) string {
	switch newStatus {
	case domain.StatusApproved, domain.StatusDeclined:
		return "responded_at"
	case domain.StatusActive:
		return "picked_up_at"
	case domain.StatusReturned:
		return "returned_at"
	default:
		return ""
	}
}

func (r *borrowRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, upd repository.StatusUpdate) (*domain.BorrowRequest, error) {
	set := "status = $1"
	if col := stampColumn(upd.NewStatus); col != "" {
		set += ", " + col + " = NOW()"
	}

	query := `UPDATE borrow_requests SET ` + set + `
	          WHERE id = $2 AND status = $3 RETURNING ` + requestColumns
	logger.DatabaseCall("UPDATE", "borrow_requests", "requestID", id, "from", upd.ExpectedStatus, "to", upd.NewStatus)

	req, err := scanRequest(r.db.QueryRowContext(ctx, query, upd.NewStatus, id, upd.ExpectedStatus))
	if err == nil {
		logger.DatabaseResult("UPDATE", 1, nil, "requestID", id, "status", req.Status)
		return req, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		logger.DatabaseResult("UPDATE", 0, err, "requestID", id)
		return nil, classifyError(err)
	}

	// Zero rows: the row is gone, or its status moved on under us.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, fmt.Errorf("%w: request no longer %s", domain.ErrConflictRetry, upd.ExpectedStatus)
}

// confirmationColumn maps a phase and side to its timestamp column. Values
// are compile-time constants, never caller input.
func confirmationColumn(phase domain.ConfirmationPhase, side domain.ConfirmationSide) (own, other string) {
	switch {
	case phase == domain.PhasePickup && side == domain.SideBorrower:
		return "borrower_confirmed_pickup_at", "lender_confirmed_pickup_at"
	case phase == domain.PhasePickup && side == domain.SideLender:
		return "lender_confirmed_pickup_at", "borrower_confirmed_pickup_at"
	case phase == domain.PhaseReturn && side == domain.SideBorrower:
		return "borrower_confirmed_return_at", "lender_confirmed_return_at"
	default:
		return "lender_confirmed_return_at", "borrower_confirmed_return_at"
	}
}

func (r *borrowRequestRepository) ConfirmHandoff(ctx context.Context, id uuid.UUID, phase domain.ConfirmationPhase, side domain.ConfirmationSide) (*domain.BorrowRequest, *domain.BorrowRequest, error) {
	own, other := confirmationColumn(phase, side)
	from := phase.FromStatus()
	to := phase.ToStatus()
	stamp := stampColumn(to)

	// One statement: record the caller's confirmation (idempotently) and
	// fire the aggregate transition iff the counterpart already confirmed.
	// Concurrent confirmations serialize on the row lock, so the
	// transition fires exactly once.
	query := fmt.Sprintf(`UPDATE borrow_requests SET
		%[1]s = COALESCE(%[1]s, NOW()),
		%[3]s = CASE WHEN %[2]s IS NOT NULL THEN COALESCE(%[3]s, NOW()) ELSE %[3]s END,
		status = CASE WHEN %[2]s IS NOT NULL THEN '%[4]s' ELSE status END
		WHERE id = $1 AND status = '%[5]s'
		RETURNING `+requestColumns, own, other, stamp, to, from)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, classifyError(err)
	}
	defer tx.Rollback()

	logger.DatabaseCall("UPDATE", "borrow_requests", "requestID", id, "phase", phase, "side", side)
	req, err := scanRequest(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "requestID", id)
		return nil, nil, classifyError(err)
	}

	// When the return leg closes out the loan the holder slot frees;
	// promotion must land in the same transaction or not at all.
	var promoted *domain.BorrowRequest
	if phase == domain.PhaseReturn && req.Status == domain.StatusReturned {
		promoted, err = promoteNextInLine(ctx, tx, req.ToolID, false)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, classifyError(err)
	}
	logger.DatabaseResult("UPDATE", 1, nil, "requestID", id, "status", req.Status)
	return req, promoted, nil
}

func (r *borrowRequestRepository) PromoteNextInLine(ctx context.Context, toolID uuid.UUID) (*domain.BorrowRequest, error) {
	return promoteNextInLine(ctx, r.db, toolID, true)
}

type execQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// promoteNextInLine moves the earliest-queued waitlisted request for the
// tool back to pending so the lender re-approves it. checkHolder guards
// the standalone path; inside ConfirmHandoff the slot was freed in the
// same transaction, so the guard is skipped.
func promoteNextInLine(ctx context.Context, q execQuerier, toolID uuid.UUID, checkHolder bool) (*domain.BorrowRequest, error) {
	query := `UPDATE borrow_requests SET status = 'pending'
	          WHERE id = (
	              SELECT id FROM borrow_requests
	              WHERE tool_id = $1 AND status = 'waitlisted'
	              ORDER BY requested_at ASC, id ASC
	              LIMIT 1
	          )`
	if checkHolder {
		query += ` AND NOT EXISTS (
	              SELECT 1 FROM borrow_requests h
	              WHERE h.tool_id = $1 AND h.status IN ('approved', 'active')
	          )`
	}
	query += ` RETURNING ` + requestColumns

	promoted, err := scanRequest(q.QueryRowContext(ctx, query, toolID))
	if errors.Is(err, sql.ErrNoRows) {
		// Empty waitlist (or holder still present); nothing to promote.
		return nil, nil
	}
	if err != nil {
		return nil, classifyError(err)
	}
	logger.Debug("Promoted waitlisted request", "requestID", promoted.ID, "toolID", toolID)
	return promoted, nil
}

func (r *borrowRequestRepository) ListStalePending(ctx context.Context, olderThan time.Time) ([]domain.BorrowRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM borrow_requests
	          WHERE status = 'pending' AND requested_at < $1
	          ORDER BY requested_at ASC`
	rows, err := r.db.QueryContext(ctx, query, olderThan)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (r *borrowRequestRepository) ListLongRunningActive(ctx context.Context, pickedUpBefore time.Time) ([]domain.BorrowRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM borrow_requests
	          WHERE status = 'active' AND picked_up_at < $1
	          ORDER BY picked_up_at ASC`
	rows, err := r.db.QueryContext(ctx, query, pickedUpBefore)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()
	return collectRequests(rows)
}

func collectRequests(rows *sql.Rows) ([]domain.BorrowRequest, error) {
	var requests []domain.BorrowRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, classifyError(err)
		}
		requests = append(requests, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err)
	}
	return requests, nil
}

func statusArray(statuses []domain.BorrowRequestStatus) pq.StringArray {
	arr := make(pq.StringArray, len(statuses))
	for i, s := range statuses {
		arr[i] = string(s)
	}
	return arr
}
