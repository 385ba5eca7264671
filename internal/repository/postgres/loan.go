package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"sacco-backend/internal/domain"
	"sacco-backend/internal/repository"
)

type loanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) repository.LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `id, account_id, amount, interest_rate, repayment_months, total_amount, outstanding_balance, status, disbursed_at, guarantor_account_id, guarantor_status, created_on, updated_on`

func (r *loanRepository) Create(ctx context.Context, l *domain.Loan) error {
	query := `INSERT INTO loans (account_id, amount, interest_rate, repayment_months, total_amount, outstanding_balance, status, disbursed_at, guarantor_account_id, guarantor_status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()) RETURNING id, created_on, updated_on`
	return r.db.QueryRowContext(ctx, query,
		l.AccountID, l.Amount, l.InterestRate, l.RepaymentMonths, l.TotalAmount, l.OutstandingBalance,
		l.Status, l.DisbursedAt, l.GuarantorAccountID, guarantorStatusValue(l.GuarantorStatus),
	).Scan(&l.ID, &l.CreatedOn, &l.UpdatedOn)
}

func (r *loanRepository) GetByID(ctx context.Context, id int32) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	l, err := scanLoan(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *loanRepository) Update(ctx context.Context, l *domain.Loan) error {
	query := `UPDATE loans SET repayment_months = $1, total_amount = $2, outstanding_balance = $3, status = $4,
	          disbursed_at = $5, guarantor_account_id = $6, guarantor_status = $7, updated_on = NOW()
	          WHERE id = $8`
	res, err := r.db.ExecContext(ctx, query,
		l.RepaymentMonths, l.TotalAmount, l.OutstandingBalance, l.Status,
		l.DisbursedAt, l.GuarantorAccountID, guarantorStatusValue(l.GuarantorStatus), l.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *loanRepository) ListByAccount(ctx context.Context, accountID int32) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE account_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLoans(rows)
}

func (r *loanRepository) ListByStatus(ctx context.Context, statuses ...domain.LoanStatus) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE status = ANY($1) ORDER BY created_on DESC`
	vals := make([]string, len(statuses))
	for i, s := range statuses {
		vals[i] = string(s)
	}
	rows, err := r.db.QueryContext(ctx, query, pq.Array(vals))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLoans(rows)
}

func (r *loanRepository) ListActiveWithBalance(ctx context.Context) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans
	          WHERE status = ANY($1) AND outstanding_balance > 0 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query,
		pq.Array([]string{string(domain.LoanStatusDisbursed), string(domain.LoanStatusActive)}))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLoans(rows)
}

func (r *loanRepository) AddOverduePenalty(ctx context.Context, loanID int32, periodMonth string, amount int64) (bool, error) {
	applied := false
	err := withRetry(func() error {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		// The marker is what makes the charge once-per-calendar-month.
		res, err := tx.ExecContext(ctx,
			`INSERT INTO loan_penalties (loan_id, period_month, amount, created_on)
			 VALUES ($1, $2, $3, NOW()) ON CONFLICT (loan_id, period_month) DO NOTHING`,
			loanID, periodMonth, amount)
		if err != nil {
			return err
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			applied = false
			return nil
		}

		res, err = tx.ExecContext(ctx,
			`UPDATE loans SET outstanding_balance = outstanding_balance + $1, total_amount = total_amount + $1, updated_on = NOW() WHERE id = $2`,
			amount, loanID)
		if err != nil {
			return err
		}
		rows, err = res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrNotFound
		}
		applied = true
		return tx.Commit()
	})
	return applied, err
}

func guarantorStatusValue(s *domain.GuarantorStatus) any {
	if s == nil {
		return nil
	}
	return string(*s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLoan(row rowScanner) (*domain.Loan, error) {
	var l domain.Loan
	var gs sql.NullString
	err := row.Scan(&l.ID, &l.AccountID, &l.Amount, &l.InterestRate, &l.RepaymentMonths,
		&l.TotalAmount, &l.OutstandingBalance, &l.Status, &l.DisbursedAt,
		&l.GuarantorAccountID, &gs, &l.CreatedOn, &l.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if gs.Valid {
		status := domain.GuarantorStatus(gs.String)
		l.GuarantorStatus = &status
	}
	return &l, nil
}

func scanLoans(rows *sql.Rows) ([]domain.Loan, error) {
	var loans []domain.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, *l)
	}
	return loans, rows.Err()
}
