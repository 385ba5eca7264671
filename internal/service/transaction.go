package service

import (
	"context"
	"time"

	"sacco-backend/internal/domain"
	"sacco-backend/internal/repository"
)

type transactionService struct {
	txnRepo     repository.TransactionRepository
	accountRepo repository.AccountRepository
}

func NewTransactionService(txnRepo repository.TransactionRepository, accountRepo repository.AccountRepository) TransactionService {
	return &transactionService{txnRepo: txnRepo, accountRepo: accountRepo}
}

func (s *transactionService) Create(ctx context.Context, in CreateTransactionInput) (*domain.Transaction, error) {
	if in.Amount <= 0 {
		return nil, domain.NewValidationError("amount must be positive")
	}
	if !domain.ValidTransactionType(in.Type) {
		return nil, domain.NewValidationError("unknown transaction type")
	}
	if in.Type == domain.TransactionTypeLoanRepayment && in.LoanID == nil {
		return nil, domain.NewValidationError("loan repayment requires a loan reference")
	}

	account, err := s.accountRepo.GetByID(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}

	// Sufficient-balance checks are deferred to approval; the balance recorded
	// here is a creation-time snapshot that approval overwrites.
	txn := &domain.Transaction{
		AccountID:    in.AccountID,
		Type:         in.Type,
		Amount:       in.Amount,
		BalanceAfter: account.Balance,
		Description:  in.Description,
		Status:       domain.TransactionStatusPending,
		LoanID:       in.LoanID,
	}
	if err := s.txnRepo.Create(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) Approve(ctx context.Context, id, approverID int32) error {
	return s.txnRepo.Approve(ctx, id, approverID)
}

func (s *transactionService) Reject(ctx context.Context, id, approverID int32) error {
	return s.txnRepo.Reject(ctx, id, approverID)
}

func (s *transactionService) Delete(ctx context.Context, id int32) error {
	return s.txnRepo.Delete(ctx, id)
}

func (s *transactionService) Get(ctx context.Context, id int32) (*domain.Transaction, error) {
	return s.txnRepo.GetByID(ctx, id)
}

func (s *transactionService) ListByAccount(ctx context.Context, accountID int32, from, to *time.Time, page, pageSize int32) ([]domain.Transaction, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	filter := repository.TransactionFilter{From: from, To: to}
	return s.txnRepo.ListByAccount(ctx, accountID, filter, page, pageSize)
}
