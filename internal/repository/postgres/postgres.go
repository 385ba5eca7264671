package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"sacco-backend/internal/domain"
	"sacco-backend/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.AccountRepository
	repository.TransactionRepository
	repository.LoanRepository
	repository.SavingsRepository
	repository.WelfareRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		AccountRepository:      NewAccountRepository(db),
		TransactionRepository:  NewTransactionRepository(db),
		LoanRepository:         NewLoanRepository(db),
		SavingsRepository:      NewSavingsRepository(db),
		WelfareRepository:      NewWelfareRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}

const maxWriteAttempts = 3

// retryable reports whether err is a Postgres serialization failure or
// deadlock, the two conflicts a balance write is retried for.
func retryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}

// withRetry runs fn up to maxWriteAttempts times and surfaces ErrBusy once the
// conflict persists.
func withRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		err = fn()
		if !retryable(err) {
			return err
		}
	}
	return domain.ErrBusy
}
