package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"sacco-backend/internal/domain"
	"sacco-backend/internal/repository"
)

type welfareRepository struct {
	db *sql.DB
}

func NewWelfareRepository(db *sql.DB) repository.WelfareRepository {
	return &welfareRepository{db: db}
}

func (r *welfareRepository) ListByAccount(ctx context.Context, accountID int32) ([]domain.WelfareEntry, error) {
	query := `SELECT id, account_id, amount, week_date, description, created_on
	          FROM welfare_entries WHERE account_id = $1 ORDER BY week_date DESC`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.WelfareEntry
	for rows.Next() {
		var e domain.WelfareEntry
		if err := rows.Scan(&e.ID, &e.AccountID, &e.Amount, &e.WeekDate, &e.Description, &e.CreatedOn); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *welfareRepository) ChargeAccount(ctx context.Context, accountID int32, amount int64, weekDate time.Time, description string) (*domain.Transaction, error) {
	var txn *domain.Transaction
	err := withRetry(func() error {
		charged, err := r.chargeOnce(ctx, accountID, amount, weekDate, description)
		if err != nil {
			return err
		}
		txn = charged
		return nil
	})
	return txn, err
}

// chargeOnce runs the welfare entry, the clamped deduction and the paired
// already-approved withdrawal as one database transaction. The withdrawal is
// recorded at the flat fee even when clamping absorbed part of it, keeping the
// 1:1 entry/withdrawal audit pairing.
func (r *welfareRepository) chargeOnce(ctx context.Context, accountID int32, amount int64, weekDate time.Time, description string) (*domain.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var balance, savings int64
	err = tx.QueryRowContext(ctx,
		`SELECT balance, total_savings FROM accounts WHERE id = $1 FOR UPDATE`, accountID,
	).Scan(&balance, &savings)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	newBalance := clampZero(balance - amount)
	newSavings := clampZero(savings - amount)

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO welfare_entries (account_id, amount, week_date, description, created_on)
		 VALUES ($1, $2, $3, $4, NOW())`,
		accountID, amount, weekDate, description); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE accounts SET balance = $1, total_savings = $2, updated_on = NOW() WHERE id = $3`,
		newBalance, newSavings, accountID); err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		AccountID:    accountID,
		Type:         domain.TransactionTypeWithdrawal,
		Amount:       amount,
		BalanceAfter: newBalance,
		Description:  description,
		Status:       domain.TransactionStatusApproved,
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO transactions (account_id, type, amount, balance_after, description, status, created_at, approved_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW()) RETURNING id, created_at`,
		txn.AccountID, txn.Type, txn.Amount, txn.BalanceAfter, txn.Description, txn.Status,
	).Scan(&txn.ID, &txn.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return txn, nil
}
