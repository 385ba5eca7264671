package jobs

import (
	"context"

	"sacco-backend/internal/logger"
)

// WeeklyWelfareDeduction charges the flat welfare fee against every account
// and records the paired withdrawal transactions.
func (jr *JobRunner) WeeklyWelfareDeduction() {
	jr.runWithRecovery("WeeklyWelfareDeduction", func() {
		ctx := context.Background()

		result, err := jr.batch.WeeklyWelfareDeduction(ctx)
		if err != nil {
			logger.Error("Weekly welfare deduction failed", "error", err)
			return
		}

		logger.Info("Weekly welfare deduction finished",
			"processed", result.Processed,
			"errors", result.Errors)
	})
}

// ApplyOverdueInterest penalizes loans past their repayment window, once per
// calendar month per loan.
func (jr *JobRunner) ApplyOverdueInterest() {
	jr.runWithRecovery("ApplyOverdueInterest", func() {
		ctx := context.Background()

		result, err := jr.batch.ApplyOverdueInterest(ctx)
		if err != nil {
			logger.Error("Overdue interest run failed", "error", err)
			return
		}

		logger.Info("Overdue interest run finished",
			"updated", result.Updated,
			"skipped", result.Skipped)
	})
}
