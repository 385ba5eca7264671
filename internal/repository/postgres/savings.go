package postgres

import (
	"context"
	"database/sql"
	"time"

	"sacco-backend/internal/domain"
	"sacco-backend/internal/repository"
)

type savingsRepository struct {
	db *sql.DB
}

func NewSavingsRepository(db *sql.DB) repository.SavingsRepository {
	return &savingsRepository{db: db}
}

func (r *savingsRepository) Create(ctx context.Context, s *domain.SavingsRecord) error {
	query := `INSERT INTO savings_records (account_id, week_start, week_end, amount, created_on)
	          VALUES ($1, $2, $3, $4, NOW()) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, s.AccountID, s.WeekStart, s.WeekEnd, s.Amount).Scan(&s.ID, &s.CreatedOn)
}

func (r *savingsRepository) ListByAccount(ctx context.Context, accountID int32, since time.Time) ([]domain.SavingsRecord, error) {
	query := `SELECT id, account_id, week_start, week_end, amount, created_on
	          FROM savings_records WHERE account_id = $1 AND week_start >= $2 ORDER BY week_start DESC`
	rows, err := r.db.QueryContext(ctx, query, accountID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.SavingsRecord
	for rows.Next() {
		var s domain.SavingsRecord
		if err := rows.Scan(&s.ID, &s.AccountID, &s.WeekStart, &s.WeekEnd, &s.Amount, &s.CreatedOn); err != nil {
			return nil, err
		}
		records = append(records, s)
	}
	return records, rows.Err()
}

func (r *savingsRepository) CountQualifyingWeeks(ctx context.Context, accountID int32, since time.Time, minAmount int64) (int32, error) {
	var count int32
	query := `SELECT COUNT(DISTINCT week_start) FROM savings_records
	          WHERE account_id = $1 AND week_start >= $2 AND amount >= $3`
	err := r.db.QueryRowContext(ctx, query, accountID, since, minAmount).Scan(&count)
	return count, err
}
