package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"sacco-backend/internal/config"
	"sacco-backend/internal/domain"
	"sacco-backend/internal/interest"
	"sacco-backend/internal/logger"
	"sacco-backend/internal/repository"
)

type loanService struct {
	loanRepo    repository.LoanRepository
	accountRepo repository.AccountRepository
	txnRepo     repository.TransactionRepository
	txnSvc      TransactionService
	eligibility EligibilityService
	notifier    Notifier
	cfg         config.LedgerConfig
}

func NewLoanService(
	loanRepo repository.LoanRepository,
	accountRepo repository.AccountRepository,
	txnRepo repository.TransactionRepository,
	txnSvc TransactionService,
	eligibility EligibilityService,
	notifier Notifier,
	cfg config.LedgerConfig,
) LoanService {
	return &loanService{
		loanRepo:    loanRepo,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		txnSvc:      txnSvc,
		eligibility: eligibility,
		notifier:    notifier,
		cfg:         cfg,
	}
}

func (s *loanService) Apply(ctx context.Context, accountID int32, amount int64) (*domain.Loan, error) {
	if amount <= 0 {
		return nil, domain.NewValidationError("loan amount must be positive")
	}
	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	// Eligibility is re-checked here rather than trusting the caller to have
	// gated the application.
	eligible, err := s.eligibility.LoanEligible(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, domain.NewValidationError("account is not eligible for a loan")
	}

	rate := s.cfg.DefaultInterestRate
	firstMonthInterest := int64(math.Round(float64(amount) * rate / 100.0))
	total := amount + firstMonthInterest

	loan := &domain.Loan{
		AccountID:          accountID,
		Amount:             amount,
		InterestRate:       rate,
		RepaymentMonths:    1,
		TotalAmount:        total,
		OutstandingBalance: total,
		Status:             domain.LoanStatusPending,
	}
	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}
	s.emitStatusChanged(ctx, loan)
	return loan, nil
}

func (s *loanService) AssignGuarantor(ctx context.Context, loanID, guarantorAccountID int32) error {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return err
	}
	if loan.Terminal() || loan.Status == domain.LoanStatusRejected {
		return fmt.Errorf("loan %d is %s: %w", loanID, loan.Status, domain.ErrInvalidState)
	}
	if guarantorAccountID == loan.AccountID {
		return domain.NewValidationError("an account cannot guarantee its own loan")
	}
	if _, err := s.accountRepo.GetByID(ctx, guarantorAccountID); err != nil {
		return err
	}

	pending := domain.GuarantorStatusPending
	loan.GuarantorAccountID = &guarantorAccountID
	loan.GuarantorStatus = &pending
	return s.loanRepo.Update(ctx, loan)
}

func (s *loanService) GuarantorRespond(ctx context.Context, loanID, callerAccountID int32, decision domain.GuarantorStatus) error {
	if decision != domain.GuarantorStatusApproved && decision != domain.GuarantorStatusRejected {
		return domain.NewValidationError("guarantor decision must be approved or rejected")
	}
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return err
	}
	if loan.GuarantorAccountID == nil {
		return fmt.Errorf("loan %d has no guarantor assigned: %w", loanID, domain.ErrInvalidState)
	}
	if *loan.GuarantorAccountID != callerAccountID {
		return fmt.Errorf("caller is not the assigned guarantor: %w", domain.ErrInvalidState)
	}

	loan.GuarantorStatus = &decision
	return s.loanRepo.Update(ctx, loan)
}

func (s *loanService) Approve(ctx context.Context, loanID, approverID int32) error {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return err
	}
	if loan.Status != domain.LoanStatusPending {
		return fmt.Errorf("loan %d is %s: %w", loanID, loan.Status, domain.ErrInvalidState)
	}
	if loan.GuarantorAccountID != nil &&
		(loan.GuarantorStatus == nil || *loan.GuarantorStatus != domain.GuarantorStatusApproved) {
		return domain.ErrGuarantorPending
	}

	loan.Status = domain.LoanStatusActive
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return err
	}
	logger.Info("Loan approved", "loan_id", loanID, "approver_id", approverID)
	s.emitStatusChanged(ctx, loan)
	return nil
}

func (s *loanService) Reject(ctx context.Context, loanID, approverID int32) error {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return err
	}
	if loan.Status != domain.LoanStatusPending {
		return fmt.Errorf("loan %d is %s: %w", loanID, loan.Status, domain.ErrInvalidState)
	}

	loan.Status = domain.LoanStatusRejected
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return err
	}
	logger.Info("Loan rejected", "loan_id", loanID, "approver_id", approverID)
	s.emitStatusChanged(ctx, loan)
	return nil
}

func (s *loanService) Disburse(ctx context.Context, loanID int32) (*domain.Transaction, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	disbursable := loan.Status == domain.LoanStatusApproved ||
		(loan.Status == domain.LoanStatusActive && loan.DisbursedAt == nil)
	if !disbursable {
		return nil, fmt.Errorf("loan %d is %s: %w", loanID, loan.Status, domain.ErrInvalidState)
	}

	// The disbursement still goes through the pending/approved workflow; funds
	// reach the account only when an administrator approves the transaction.
	txn, err := s.txnSvc.Create(ctx, CreateTransactionInput{
		AccountID:   loan.AccountID,
		Type:        domain.TransactionTypeLoanDisbursement,
		Amount:      loan.Amount,
		Description: fmt.Sprintf("Disbursement of loan #%d", loan.ID),
		LoanID:      &loan.ID,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	loan.DisbursedAt = &now
	loan.Status = domain.LoanStatusDisbursed
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}
	s.emitStatusChanged(ctx, loan)
	return txn, nil
}

func (s *loanService) EditDetails(ctx context.Context, loanID int32, edit domain.LoanEdit) error {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return err
	}

	if edit.RepaymentMonths != nil {
		if *edit.RepaymentMonths <= 0 {
			return domain.NewValidationError("repayment months must be positive")
		}
		loan.RepaymentMonths = *edit.RepaymentMonths
	}
	if edit.DisbursedAt != nil {
		loan.DisbursedAt = edit.DisbursedAt
	}
	if edit.GuarantorAccountID != nil {
		if *edit.GuarantorAccountID == loan.AccountID {
			return domain.NewValidationError("an account cannot guarantee its own loan")
		}
		if _, err := s.accountRepo.GetByID(ctx, *edit.GuarantorAccountID); err != nil {
			return err
		}
		pending := domain.GuarantorStatusPending
		loan.GuarantorAccountID = edit.GuarantorAccountID
		loan.GuarantorStatus = &pending
	}

	totalRepaid, err := s.txnRepo.SumApprovedRepayments(ctx, loanID)
	if err != nil {
		return err
	}
	accrual := interest.Accrued(loan.Amount, loan.InterestRate, loan.DisbursedAt, time.Now())
	loan.TotalAmount = accrual.TotalAmount
	loan.OutstandingBalance = accrual.TotalAmount - totalRepaid
	if loan.OutstandingBalance < 0 {
		loan.OutstandingBalance = 0
	}

	previous := loan.Status
	switch {
	case loan.OutstandingBalance <= 0:
		loan.Status = domain.LoanStatusFullyPaid
	case loan.DisbursedAt != nil:
		loan.Status = domain.LoanStatusDisbursed
	}

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return err
	}
	if loan.Status != previous {
		s.emitStatusChanged(ctx, loan)
	}
	return nil
}

func (s *loanService) Get(ctx context.Context, loanID int32) (*domain.Loan, error) {
	return s.loanRepo.GetByID(ctx, loanID)
}

func (s *loanService) ListByAccount(ctx context.Context, accountID int32) ([]domain.Loan, error) {
	return s.loanRepo.ListByAccount(ctx, accountID)
}

func (s *loanService) ListByStatus(ctx context.Context, statuses ...domain.LoanStatus) ([]domain.Loan, error) {
	return s.loanRepo.ListByStatus(ctx, statuses...)
}

func (s *loanService) PaymentSchedule(ctx context.Context, loanID int32) ([]interest.Installment, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.DisbursedAt == nil {
		return nil, domain.NewValidationError("loan has not been disbursed")
	}
	totalRepaid, err := s.txnRepo.SumApprovedRepayments(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return interest.Schedule(loan.Amount, loan.InterestRate, *loan.DisbursedAt, int(loan.RepaymentMonths), totalRepaid), nil
}

func (s *loanService) emitStatusChanged(ctx context.Context, loan *domain.Loan) {
	account, err := s.accountRepo.GetByID(ctx, loan.AccountID)
	if err != nil {
		logger.Warn("Skipping loan status event, account lookup failed",
			"loan_id", loan.ID, "account_id", loan.AccountID, "error", err)
		return
	}
	s.notifier.LoanStatusChanged(ctx, domain.LoanStatusEvent{
		LoanID:      loan.ID,
		AccountID:   loan.AccountID,
		MemberName:  account.OwnerName,
		MemberEmail: account.OwnerEmail,
		NewStatus:   loan.Status,
		Amount:      loan.Amount,
		Outstanding: loan.OutstandingBalance,
		OccurredAt:  time.Now(),
	})
}
