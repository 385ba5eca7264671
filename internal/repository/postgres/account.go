package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"sacco-backend/internal/domain"
	"sacco-backend/internal/repository"
)

type accountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = `id, owner_name, owner_email, account_number, account_type, parent_account_id, balance, total_savings, created_on, updated_on`

func (r *accountRepository) Create(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO accounts (owner_name, owner_email, account_number, account_type, parent_account_id, balance, total_savings, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW()) RETURNING id, created_on, updated_on`
	return r.db.QueryRowContext(ctx, query,
		a.OwnerName, a.OwnerEmail, a.AccountNumber, a.AccountType, a.ParentAccountID, a.Balance, a.TotalSavings,
	).Scan(&a.ID, &a.CreatedOn, &a.UpdatedOn)
}

func (r *accountRepository) GetByID(ctx context.Context, id int32) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return scanAccountRow(r.db.QueryRowContext(ctx, query, id))
}

func (r *accountRepository) GetByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1`
	return scanAccountRow(r.db.QueryRowContext(ctx, query, accountNumber))
}

func (r *accountRepository) List(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAccounts(rows)
}

func (r *accountRepository) ListGuarantorCandidates(ctx context.Context, applicantID int32, minSavings int64) ([]domain.Account, error) {
	// An account already guaranteeing a live loan with money still owed is
	// excluded: committed guarantee capacity is never double-booked.
	query := `SELECT ` + accountColumns + ` FROM accounts a
	          WHERE a.id <> $1
	            AND a.total_savings >= $2
	            AND NOT EXISTS (
	                SELECT 1 FROM loans l
	                WHERE l.guarantor_account_id = a.id
	                  AND l.status = ANY($3)
	                  AND l.outstanding_balance > 0)
	          ORDER BY a.total_savings DESC, a.id`
	statuses := make([]string, len(domain.ActiveGuaranteeStatuses))
	for i, s := range domain.ActiveGuaranteeStatuses {
		statuses[i] = string(s)
	}
	rows, err := r.db.QueryContext(ctx, query, applicantID, minSavings, pq.Array(statuses))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAccounts(rows)
}

func scanAccountRow(row *sql.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.OwnerName, &a.OwnerEmail, &a.AccountNumber, &a.AccountType,
		&a.ParentAccountID, &a.Balance, &a.TotalSavings, &a.CreatedOn, &a.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func scanAccounts(rows *sql.Rows) ([]domain.Account, error) {
	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.OwnerName, &a.OwnerEmail, &a.AccountNumber, &a.AccountType,
			&a.ParentAccountID, &a.Balance, &a.TotalSavings, &a.CreatedOn, &a.UpdatedOn); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
