package repository

import (
	"context"
	"time"

	"sacco-backend/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int32) (*domain.Account, error)
	GetByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)

	// ListGuarantorCandidates returns every account other than the applicant
	// whose total savings are at least minSavings and which is not currently
	// committed as guarantor on a live loan with an outstanding balance.
	ListGuarantorCandidates(ctx context.Context, applicantID int32, minSavings int64) ([]domain.Account, error)
}

// TransactionFilter narrows reporting reads over an account's transactions.
type TransactionFilter struct {
	From *time.Time
	To   *time.Time
}

type TransactionRepository interface {
	Create(ctx context.Context, txn *domain.Transaction) error
	GetByID(ctx context.Context, id int32) (*domain.Transaction, error)
	ListByAccount(ctx context.Context, accountID int32, filter TransactionFilter, page, pageSize int32) ([]domain.Transaction, int32, error)
	SumApprovedRepayments(ctx context.Context, loanID int32) (int64, error)

	// Approve applies the full balance effect of a pending transaction as one
	// atomic unit: account balances, loan outstanding/status for repayments, and
	// the transaction row itself. The authoritative funds check happens here.
	Approve(ctx context.Context, id, approverID int32) error

	// Reject marks a pending transaction rejected. No balance effect.
	Reject(ctx context.Context, id, approverID int32) error

	// Delete removes a transaction. For approved transactions the exact balance
	// effect is reversed first, including loan outstanding restoration.
	Delete(ctx context.Context, id int32) error
}

type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id int32) (*domain.Loan, error)
	Update(ctx context.Context, loan *domain.Loan) error
	ListByAccount(ctx context.Context, accountID int32) ([]domain.Loan, error)
	ListByStatus(ctx context.Context, statuses ...domain.LoanStatus) ([]domain.Loan, error)

	// ListActiveWithBalance returns loans in the disbursed/active states that
	// still carry an outstanding balance. Candidates for overdue interest.
	ListActiveWithBalance(ctx context.Context) ([]domain.Loan, error)

	// AddOverduePenalty inserts the (loanID, periodMonth) marker and bumps the
	// loan's outstanding balance by amount in one atomic unit. Returns false
	// when the marker already exists and nothing was applied.
	AddOverduePenalty(ctx context.Context, loanID int32, periodMonth string, amount int64) (bool, error)
}

type SavingsRepository interface {
	Create(ctx context.Context, record *domain.SavingsRecord) error
	ListByAccount(ctx context.Context, accountID int32, since time.Time) ([]domain.SavingsRecord, error)

	// CountQualifyingWeeks counts distinct saved weeks starting at or after
	// since whose amount is at least minAmount.
	CountQualifyingWeeks(ctx context.Context, accountID int32, since time.Time, minAmount int64) (int32, error)
}

type WelfareRepository interface {
	ListByAccount(ctx context.Context, accountID int32) ([]domain.WelfareEntry, error)

	// ChargeAccount writes one welfare entry, deducts amount from the account's
	// balance and total savings (clamped at zero) and records the matching
	// already-approved withdrawal transaction, all in one atomic unit.
	ChargeAccount(ctx context.Context, accountID int32, amount int64, weekDate time.Time, description string) (*domain.Transaction, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, accountID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, accountID int32) error
}
