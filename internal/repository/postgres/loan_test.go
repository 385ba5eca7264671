package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"sacco-backend/internal/domain"
)

func loanRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "account_id", "amount", "interest_rate", "repayment_months",
		"total_amount", "outstanding_balance", "status", "disbursed_at",
		"guarantor_account_id", "guarantor_status", "created_on", "updated_on",
	})
}

func TestLoanRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := &loanRepository{db: db}
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT id, account_id, amount, interest_rate").
			WithArgs(int32(10)).
			WillReturnRows(loanRows().
				AddRow(10, 1, 100000, 2.0, 1, 102000, 102000, "pending", nil, nil, nil, now, now))

		loan, err := repo.GetByID(ctx, 10)
		assert.NoError(t, err)
		assert.Equal(t, int32(10), loan.ID)
		assert.Equal(t, int64(102000), loan.OutstandingBalance)
		assert.Nil(t, loan.GuarantorStatus)
	})

	t.Run("GuarantorStatusScans", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT id, account_id, amount, interest_rate").
			WithArgs(int32(11)).
			WillReturnRows(loanRows().
				AddRow(11, 1, 100000, 2.0, 1, 102000, 102000, "pending", nil, 2, "pending", now, now))

		loan, err := repo.GetByID(ctx, 11)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), *loan.GuarantorAccountID)
		assert.Equal(t, domain.GuarantorStatusPending, *loan.GuarantorStatus)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, account_id, amount, interest_rate").
			WithArgs(int32(404)).
			WillReturnRows(loanRows())

		_, err := repo.GetByID(ctx, 404)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestLoanRepository_AddOverduePenalty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := &loanRepository{db: db}
	ctx := context.Background()

	t.Run("FirstChargeOfTheMonth", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO loan_penalties").
			WithArgs(int32(10), "2025-06", int64(2000)).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("UPDATE loans SET outstanding_balance").
			WithArgs(int64(2000), int32(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		applied, err := repo.AddOverduePenalty(ctx, 10, "2025-06", 2000)
		assert.NoError(t, err)
		assert.True(t, applied)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateMonthIsNoop", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO loan_penalties").
			WithArgs(int32(10), "2025-06", int64(2000)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		applied, err := repo.AddOverduePenalty(ctx, 10, "2025-06", 2000)
		assert.NoError(t, err)
		assert.False(t, applied)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLoanRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := &loanRepository{db: db}
	ctx := context.Background()

	t.Run("MissingLoan", func(t *testing.T) {
		loan := &domain.Loan{ID: 404, RepaymentMonths: 1, Status: domain.LoanStatusPending}
		mock.ExpectExec("UPDATE loans SET repayment_months").
			WithArgs(loan.RepaymentMonths, loan.TotalAmount, loan.OutstandingBalance, loan.Status,
				nil, nil, nil, loan.ID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, loan)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
