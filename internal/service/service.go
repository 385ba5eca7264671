package service

import (
	"context"
	"time"

	"sacco-backend/internal/domain"
	"sacco-backend/internal/interest"
)

type AccountService interface {
	CreateAccount(ctx context.Context, ownerName, ownerEmail string, accountType domain.AccountType, parentAccountID *int32) (*domain.Account, error)
	GetAccount(ctx context.Context, id int32) (*domain.Account, error)
	GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// SavingsHistory lists the account's weekly savings records since a point
	// in time.
	SavingsHistory(ctx context.Context, accountID int32, since time.Time) ([]domain.SavingsRecord, error)

	// RecordWeeklySavings is the entry point for the deposit-side bookkeeping
	// feed consumed by the eligibility evaluator.
	RecordWeeklySavings(ctx context.Context, record *domain.SavingsRecord) error

	// WelfareHistory lists an account's welfare deductions, newest first.
	WelfareHistory(ctx context.Context, accountID int32) ([]domain.WelfareEntry, error)
}

// CreateTransactionInput carries a request for a new pending transaction.
type CreateTransactionInput struct {
	AccountID   int32
	Type        domain.TransactionType
	Amount      int64
	Description string
	LoanID      *int32
}

type TransactionService interface {
	Create(ctx context.Context, in CreateTransactionInput) (*domain.Transaction, error)
	Approve(ctx context.Context, id, approverID int32) error
	Reject(ctx context.Context, id, approverID int32) error
	Delete(ctx context.Context, id int32) error
	Get(ctx context.Context, id int32) (*domain.Transaction, error)
	ListByAccount(ctx context.Context, accountID int32, from, to *time.Time, page, pageSize int32) ([]domain.Transaction, int32, error)
}

type LoanService interface {
	Apply(ctx context.Context, accountID int32, amount int64) (*domain.Loan, error)
	AssignGuarantor(ctx context.Context, loanID, guarantorAccountID int32) error
	GuarantorRespond(ctx context.Context, loanID, callerAccountID int32, decision domain.GuarantorStatus) error
	Approve(ctx context.Context, loanID, approverID int32) error
	Reject(ctx context.Context, loanID, approverID int32) error
	Disburse(ctx context.Context, loanID int32) (*domain.Transaction, error)
	EditDetails(ctx context.Context, loanID int32, edit domain.LoanEdit) error
	Get(ctx context.Context, loanID int32) (*domain.Loan, error)
	ListByAccount(ctx context.Context, accountID int32) ([]domain.Loan, error)
	ListByStatus(ctx context.Context, statuses ...domain.LoanStatus) ([]domain.Loan, error)
	PaymentSchedule(ctx context.Context, loanID int32) ([]interest.Installment, error)
}

type EligibilityService interface {
	LoanEligible(ctx context.Context, accountID int32) (bool, error)
	GuarantorCandidates(ctx context.Context, applicantAccountID int32) ([]domain.Account, error)
}

type BatchService interface {
	WeeklyWelfareDeduction(ctx context.Context) (domain.BatchResult, error)
	ApplyOverdueInterest(ctx context.Context) (domain.OverdueResult, error)
}

type NotificationService interface {
	List(ctx context.Context, accountID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, accountID, id int32) error
}

// Notifier receives the structured events the engine emits. Implementations
// deliver them (email, in-app); the engine never blocks or fails on delivery.
type Notifier interface {
	LoanStatusChanged(ctx context.Context, ev domain.LoanStatusEvent)
	ReminderCreated(ctx context.Context, ev domain.ReminderEvent)
}

// EmailSender sends one plain message. Delivery details live behind this
// boundary.
type EmailSender interface {
	Send(ctx context.Context, toEmail, toName, subject, body string) error
}
