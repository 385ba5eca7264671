package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"sacco-backend/internal/config"
	"sacco-backend/internal/domain"
	"sacco-backend/internal/logger"
	"sacco-backend/internal/repository"
)

type batchService struct {
	accountRepo repository.AccountRepository
	welfareRepo repository.WelfareRepository
	loanRepo    repository.LoanRepository
	notifier    Notifier
	cfg         config.LedgerConfig
}

func NewBatchService(
	accountRepo repository.AccountRepository,
	welfareRepo repository.WelfareRepository,
	loanRepo repository.LoanRepository,
	notifier Notifier,
	cfg config.LedgerConfig,
) BatchService {
	return &batchService{
		accountRepo: accountRepo,
		welfareRepo: welfareRepo,
		loanRepo:    loanRepo,
		notifier:    notifier,
		cfg:         cfg,
	}
}

// WeeklyWelfareDeduction charges the flat welfare fee against every account.
// One account failing never aborts the run; failures are counted and logged.
func (s *batchService) WeeklyWelfareDeduction(ctx context.Context) (domain.BatchResult, error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return domain.BatchResult{}, err
	}

	weekDate := time.Now()
	description := fmt.Sprintf("Weekly welfare deduction (%s)", weekDate.Format("2006-01-02"))

	var result domain.BatchResult
	for _, account := range accounts {
		if _, err := s.welfareRepo.ChargeAccount(ctx, account.ID, s.cfg.WelfareWeeklyAmount, weekDate, description); err != nil {
			logger.Error("Welfare deduction failed for account",
				"account_id", account.ID, "account_number", account.AccountNumber, "error", err)
			result.Errors++
			continue
		}
		result.Processed++
	}

	logger.Info("Weekly welfare deduction completed",
		"processed", result.Processed, "errors", result.Errors, "amount", s.cfg.WelfareWeeklyAmount)
	return result, nil
}

// ApplyOverdueInterest adds the penalty to every live loan past its repayment
// window, at most once per calendar month per loan.
func (s *batchService) ApplyOverdueInterest(ctx context.Context) (domain.OverdueResult, error) {
	loans, err := s.loanRepo.ListActiveWithBalance(ctx)
	if err != nil {
		return domain.OverdueResult{}, err
	}

	now := time.Now()
	period := now.Format("2006-01")

	var result domain.OverdueResult
	for _, loan := range loans {
		if loan.DisbursedAt == nil {
			result.Skipped++
			continue
		}
		expectedEnd := loan.DisbursedAt.AddDate(0, int(loan.RepaymentMonths), 0)
		if !now.After(expectedEnd) {
			result.Skipped++
			continue
		}

		penalty := int64(math.Round(float64(loan.Amount) * s.cfg.OverduePenaltyRate / 100.0))
		applied, err := s.loanRepo.AddOverduePenalty(ctx, loan.ID, period, penalty)
		if err != nil {
			logger.Error("Overdue penalty failed for loan", "loan_id", loan.ID, "period", period, "error", err)
			result.Skipped++
			continue
		}
		if !applied {
			// Already penalized this month.
			result.Skipped++
			continue
		}
		result.Updated++
		s.emitOverdueReminder(ctx, &loan, penalty, now)
	}

	logger.Info("Overdue interest run completed",
		"updated", result.Updated, "skipped", result.Skipped, "period", period)
	return result, nil
}

func (s *batchService) emitOverdueReminder(ctx context.Context, loan *domain.Loan, penalty int64, occurredAt time.Time) {
	account, err := s.accountRepo.GetByID(ctx, loan.AccountID)
	if err != nil {
		logger.Warn("Skipping overdue reminder, account lookup failed",
			"loan_id", loan.ID, "account_id", loan.AccountID, "error", err)
		return
	}
	s.notifier.ReminderCreated(ctx, domain.ReminderEvent{
		LoanID:      loan.ID,
		AccountID:   loan.AccountID,
		MemberName:  account.OwnerName,
		MemberEmail: account.OwnerEmail,
		Subject:     "Loan repayment overdue",
		Detail: fmt.Sprintf("Loan #%d is past its repayment window. A penalty of %d was added; outstanding balance is now %d.",
			loan.ID, penalty, loan.OutstandingBalance+penalty),
		Amount:     penalty,
		OccurredAt: occurredAt,
	})
}
