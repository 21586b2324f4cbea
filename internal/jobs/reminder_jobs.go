package jobs

import (
	"context"
	"time"

	"toolshed-backend/internal/logger"
)

// RemindStalePendingRequests nudges lenders who have left a borrow request
// unanswered. Read-only over the request set; no transitions fire here.
func (jr *JobRunner) RemindStalePendingRequests() {
	jr.runWithRecovery("RemindStalePendingRequests", func() {
		ctx := context.Background()
		days := jr.config.Reminders.StalePendingAfterDays
		cutoff := time.Now().AddDate(0, 0, -days)

		stale, err := jr.requestRepo.ListStalePending(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list stale pending requests", "error", err)
			return
		}

		count := 0
		for _, req := range stale {
			lender, err := jr.userRepo.GetByID(ctx, req.LenderID)
			if err != nil {
				logger.Warn("Skipping reminder, lender lookup failed", "requestID", req.ID, "error", err)
				continue
			}
			borrower, err := jr.userRepo.GetByID(ctx, req.BorrowerID)
			if err != nil {
				logger.Warn("Skipping reminder, borrower lookup failed", "requestID", req.ID, "error", err)
				continue
			}
			tool, err := jr.toolRepo.GetByID(ctx, req.ToolID)
			if err != nil {
				logger.Warn("Skipping reminder, tool lookup failed", "requestID", req.ID, "error", err)
				continue
			}

			daysPending := int(time.Since(req.RequestedAt).Hours() / 24)
			if err := jr.emailSvc.SendPendingRequestReminder(ctx, lender.Email, lender.DisplayName, borrower.DisplayName, tool.Name, daysPending); err != nil {
				logger.Warn("Failed to send pending reminder", "requestID", req.ID, "error", err)
				continue
			}
			count++
		}
		logger.Info("Sent stale pending reminders", "count", count, "stale", len(stale))
	})
}

// RemindLongRunningLoans nudges borrowers who have held a tool for a while.
func (jr *JobRunner) RemindLongRunningLoans() {
	jr.runWithRecovery("RemindLongRunningLoans", func() {
		ctx := context.Background()
		days := jr.config.Reminders.LongRunningLoanAfterDays
		cutoff := time.Now().AddDate(0, 0, -days)

		loans, err := jr.requestRepo.ListLongRunningActive(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list long-running loans", "error", err)
			return
		}

		count := 0
		for _, loan := range loans {
			borrower, err := jr.userRepo.GetByID(ctx, loan.BorrowerID)
			if err != nil {
				logger.Warn("Skipping reminder, borrower lookup failed", "requestID", loan.ID, "error", err)
				continue
			}
			tool, err := jr.toolRepo.GetByID(ctx, loan.ToolID)
			if err != nil {
				logger.Warn("Skipping reminder, tool lookup failed", "requestID", loan.ID, "error", err)
				continue
			}

			daysOut := 0
			if loan.PickedUpAt != nil {
				daysOut = int(time.Since(*loan.PickedUpAt).Hours() / 24)
			}
			if err := jr.emailSvc.SendLongRunningLoanReminder(ctx, borrower.Email, borrower.DisplayName, tool.Name, daysOut); err != nil {
				logger.Warn("Failed to send loan reminder", "requestID", loan.ID, "error", err)
				continue
			}
			count++
		}
		logger.Info("Sent long-running loan reminders", "count", count, "loans", len(loans))
	})
}
