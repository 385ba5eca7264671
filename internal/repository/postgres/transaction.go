package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"sacco-backend/internal/domain"
	"sacco-backend/internal/repository"
)

type transactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `id, account_id, type, amount, balance_after, description, status, loan_id, receipt_number, approved_by, created_at, approved_at`

func (r *transactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	query := `INSERT INTO transactions (account_id, type, amount, balance_after, description, status, loan_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NOW()) RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		t.AccountID, t.Type, t.Amount, t.BalanceAfter, t.Description, t.Status, t.LoanID,
	).Scan(&t.ID, &t.CreatedAt)
}

func (r *transactionRepository) GetByID(ctx context.Context, id int32) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	var t domain.Transaction
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.AccountID, &t.Type, &t.Amount, &t.BalanceAfter, &t.Description,
		&t.Status, &t.LoanID, &t.ReceiptNumber, &t.ApprovedBy, &t.CreatedAt, &t.ApprovedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepository) ListByAccount(ctx context.Context, accountID int32, filter repository.TransactionFilter, page, pageSize int32) ([]domain.Transaction, int32, error) {
	where := `WHERE account_id = $1`
	args := []any{accountID}
	if filter.From != nil {
		args = append(args, *filter.From)
		where += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM transactions `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	args = append(args, pageSize, offset)
	query := fmt.Sprintf(`SELECT %s FROM transactions %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		transactionColumns, where, len(args)-1, len(args))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.AccountID, &t.Type, &t.Amount, &t.BalanceAfter, &t.Description,
			&t.Status, &t.LoanID, &t.ReceiptNumber, &t.ApprovedBy, &t.CreatedAt, &t.ApprovedAt); err != nil {
			return nil, 0, err
		}
		txns = append(txns, t)
	}
	return txns, count, rows.Err()
}

func (r *transactionRepository) SumApprovedRepayments(ctx context.Context, loanID int32) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE loan_id = $1 AND type = $2 AND status = $3`
	err := r.db.QueryRowContext(ctx, query, loanID, domain.TransactionTypeLoanRepayment, domain.TransactionStatusApproved).Scan(&total)
	return total, err
}

func (r *transactionRepository) Approve(ctx context.Context, id, approverID int32) error {
	return withRetry(func() error {
		return r.approveOnce(ctx, id, approverID)
	})
}

// approveOnce performs the whole approval mutation inside one database
// transaction so two concurrent approvers can never both read the same
// pre-mutation balance.
func (r *transactionRepository) approveOnce(ctx context.Context, id, approverID int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var t domain.Transaction
	err = tx.QueryRowContext(ctx,
		`SELECT id, account_id, type, amount, status, loan_id FROM transactions WHERE id = $1 FOR UPDATE`, id,
	).Scan(&t.ID, &t.AccountID, &t.Type, &t.Amount, &t.Status, &t.LoanID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	if t.Status != domain.TransactionStatusPending {
		return fmt.Errorf("transaction %d is %s: %w", id, t.Status, domain.ErrInvalidState)
	}

	var balance, savings int64
	err = tx.QueryRowContext(ctx,
		`SELECT balance, total_savings FROM accounts WHERE id = $1 FOR UPDATE`, t.AccountID,
	).Scan(&balance, &savings)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}

	switch t.Type {
	case domain.TransactionTypeDeposit:
		balance += t.Amount
		savings += t.Amount
	case domain.TransactionTypeWithdrawal, domain.TransactionTypeLoanRepayment:
		if t.Amount > balance {
			return domain.ErrInsufficientFunds
		}
		balance -= t.Amount
	case domain.TransactionTypeLoanDisbursement:
		balance += t.Amount
	default:
		return fmt.Errorf("transaction %d has unknown type %q: %w", id, t.Type, domain.ErrInvalidState)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE accounts SET balance = $1, total_savings = $2, updated_on = NOW() WHERE id = $3`,
		balance, savings, t.AccountID); err != nil {
		return err
	}

	if t.Type == domain.TransactionTypeLoanRepayment && t.LoanID != nil {
		var outstanding int64
		var status domain.LoanStatus
		err = tx.QueryRowContext(ctx,
			`SELECT outstanding_balance, status FROM loans WHERE id = $1 FOR UPDATE`, *t.LoanID,
		).Scan(&outstanding, &status)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		outstanding -= t.Amount
		if outstanding <= 0 {
			outstanding = 0
			status = domain.LoanStatusFullyPaid
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE loans SET outstanding_balance = $1, status = $2, updated_on = NOW() WHERE id = $3`,
			outstanding, status, *t.LoanID); err != nil {
			return err
		}
	}

	// balance_after was a creation-time snapshot; overwrite it with the true
	// post-mutation balance now that the mutation is effective.
	receipt := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`UPDATE transactions SET status = $1, approved_by = $2, approved_at = NOW(), balance_after = $3, receipt_number = $4 WHERE id = $5`,
		domain.TransactionStatusApproved, approverID, balance, receipt, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *transactionRepository) Reject(ctx context.Context, id, approverID int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET status = $1, approved_by = $2, approved_at = NOW() WHERE id = $3 AND status = $4`,
		domain.TransactionStatusRejected, approverID, id, domain.TransactionStatusPending)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("transaction %d is not pending: %w", id, domain.ErrInvalidState)
	}
	return nil
}

func (r *transactionRepository) Delete(ctx context.Context, id int32) error {
	return withRetry(func() error {
		return r.deleteOnce(ctx, id)
	})
}

func (r *transactionRepository) deleteOnce(ctx context.Context, id int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var t domain.Transaction
	err = tx.QueryRowContext(ctx,
		`SELECT id, account_id, type, amount, status, loan_id FROM transactions WHERE id = $1 FOR UPDATE`, id,
	).Scan(&t.ID, &t.AccountID, &t.Type, &t.Amount, &t.Status, &t.LoanID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}

	if t.Status == domain.TransactionStatusApproved {
		if err := reverseEffect(ctx, tx, &t); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// reverseEffect undoes the balance mutation an approved transaction performed.
// Deductions clamp at zero; the balance >= 0 invariant outranks exactness when
// the funds were already spent.
func reverseEffect(ctx context.Context, tx *sql.Tx, t *domain.Transaction) error {
	var balance, savings int64
	err := tx.QueryRowContext(ctx,
		`SELECT balance, total_savings FROM accounts WHERE id = $1 FOR UPDATE`, t.AccountID,
	).Scan(&balance, &savings)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}

	switch t.Type {
	case domain.TransactionTypeDeposit:
		balance = clampZero(balance - t.Amount)
		savings = clampZero(savings - t.Amount)
	case domain.TransactionTypeWithdrawal:
		balance += t.Amount
	case domain.TransactionTypeLoanDisbursement:
		balance = clampZero(balance - t.Amount)
	case domain.TransactionTypeLoanRepayment:
		balance += t.Amount
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE accounts SET balance = $1, total_savings = $2, updated_on = NOW() WHERE id = $3`,
		balance, savings, t.AccountID); err != nil {
		return err
	}

	if t.Type == domain.TransactionTypeLoanRepayment && t.LoanID != nil {
		var outstanding, totalAmount int64
		var status domain.LoanStatus
		err = tx.QueryRowContext(ctx,
			`SELECT outstanding_balance, total_amount, status FROM loans WHERE id = $1 FOR UPDATE`, *t.LoanID,
		).Scan(&outstanding, &totalAmount, &status)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		outstanding += t.Amount
		if outstanding > totalAmount {
			outstanding = totalAmount
		}
		// A loan paid off by this repayment re-opens; disbursed is the only
		// state a repayment can have been approved from.
		if (status == domain.LoanStatusFullyPaid || status == domain.LoanStatusCompleted) && outstanding > 0 {
			status = domain.LoanStatusDisbursed
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE loans SET outstanding_balance = $1, status = $2, updated_on = NOW() WHERE id = $3`,
			outstanding, status, *t.LoanID); err != nil {
			return err
		}
	}
	return nil
}

func clampZero(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
