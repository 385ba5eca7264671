package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"sacco-backend/internal/domain"
)

func newMockRepo(t *testing.T) (*transactionRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	repo := &transactionRepository{db: db}
	return repo, mock, func() { db.Close() }
}

func TestTransactionRepository_Create(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		txn := &domain.Transaction{
			AccountID:    1,
			Type:         domain.TransactionTypeDeposit,
			Amount:       5000,
			BalanceAfter: 50000,
			Description:  "Weekly deposit",
			Status:       domain.TransactionStatusPending,
		}

		mock.ExpectQuery("INSERT INTO transactions").
			WithArgs(txn.AccountID, txn.Type, txn.Amount, txn.BalanceAfter, txn.Description, txn.Status, nil).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))

		err := repo.Create(ctx, txn)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), txn.ID)
	})
}

func TestTransactionRepository_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("DepositGrowsBalanceAndSavings", func(t *testing.T) {
		repo, mock, closeDB := newMockRepo(t)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id, account_id, type, amount, status, loan_id FROM transactions").
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "type", "amount", "status", "loan_id"}).
				AddRow(7, 1, "deposit", 5000, "pending", nil))
		mock.ExpectQuery("SELECT balance, total_savings FROM accounts").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"balance", "total_savings"}).AddRow(50000, 80000))
		mock.ExpectExec("UPDATE accounts SET balance").
			WithArgs(int64(55000), int64(85000), int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE transactions SET status").
			WithArgs(domain.TransactionStatusApproved, int32(99), int64(55000), sqlmock.AnyArg(), int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Approve(ctx, 7, 99)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("WithdrawalInsufficientFunds", func(t *testing.T) {
		repo, mock, closeDB := newMockRepo(t)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id, account_id, type, amount, status, loan_id FROM transactions").
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "type", "amount", "status", "loan_id"}).
				AddRow(7, 1, "withdrawal", 60000, "pending", nil))
		mock.ExpectQuery("SELECT balance, total_savings FROM accounts").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"balance", "total_savings"}).AddRow(50000, 80000))
		mock.ExpectRollback()

		err := repo.Approve(ctx, 7, 99)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RepaymentReducesLoanOutstanding", func(t *testing.T) {
		repo, mock, closeDB := newMockRepo(t)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id, account_id, type, amount, status, loan_id FROM transactions").
			WithArgs(int32(8)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "type", "amount", "status", "loan_id"}).
				AddRow(8, 1, "loan_repayment", 102000, "pending", 10))
		mock.ExpectQuery("SELECT balance, total_savings FROM accounts").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"balance", "total_savings"}).AddRow(150000, 80000))
		mock.ExpectExec("UPDATE accounts SET balance").
			WithArgs(int64(48000), int64(80000), int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT outstanding_balance, status FROM loans").
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"outstanding_balance", "status"}).AddRow(102000, "disbursed"))
		// Outstanding hits zero so the loan flips to fully_paid.
		mock.ExpectExec("UPDATE loans SET outstanding_balance").
			WithArgs(int64(0), domain.LoanStatusFullyPaid, int32(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE transactions SET status").
			WithArgs(domain.TransactionStatusApproved, int32(99), int64(48000), sqlmock.AnyArg(), int32(8)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Approve(ctx, 8, 99)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotPending", func(t *testing.T) {
		repo, mock, closeDB := newMockRepo(t)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id, account_id, type, amount, status, loan_id FROM transactions").
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "type", "amount", "status", "loan_id"}).
				AddRow(7, 1, "deposit", 5000, "approved", nil))
		mock.ExpectRollback()

		err := repo.Approve(ctx, 7, 99)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock, closeDB := newMockRepo(t)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id, account_id, type, amount, status, loan_id FROM transactions").
			WithArgs(int32(404)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "type", "amount", "status", "loan_id"}))
		mock.ExpectRollback()

		err := repo.Approve(ctx, 404, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestTransactionRepository_Reject(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mock, closeDB := newMockRepo(t)
		defer closeDB()

		mock.ExpectExec("UPDATE transactions SET status").
			WithArgs(domain.TransactionStatusRejected, int32(99), int32(7), domain.TransactionStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Reject(ctx, 7, 99)
		assert.NoError(t, err)
	})

	t.Run("AlreadyDecided", func(t *testing.T) {
		repo, mock, closeDB := newMockRepo(t)
		defer closeDB()

		mock.ExpectExec("UPDATE transactions SET status").
			WithArgs(domain.TransactionStatusRejected, int32(99), int32(7), domain.TransactionStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT id, account_id, type, amount, balance_after").
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "account_id", "type", "amount", "balance_after", "description",
				"status", "loan_id", "receipt_number", "approved_by", "created_at", "approved_at",
			}).AddRow(7, 1, "deposit", 5000, 55000, "", "approved", nil, nil, 99, time.Now(), time.Now()))

		err := repo.Reject(ctx, 7, 99)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestTransactionRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("PendingDeletedWithoutReversal", func(t *testing.T) {
		repo, mock, closeDB := newMockRepo(t)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id, account_id, type, amount, status, loan_id FROM transactions").
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "type", "amount", "status", "loan_id"}).
				AddRow(7, 1, "deposit", 5000, "pending", nil))
		mock.ExpectExec("DELETE FROM transactions").
			WithArgs(int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(ctx, 7)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ApprovedDepositReversedWithClamp", func(t *testing.T) {
		repo, mock, closeDB := newMockRepo(t)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id, account_id, type, amount, status, loan_id FROM transactions").
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "type", "amount", "status", "loan_id"}).
				AddRow(7, 1, "deposit", 5000, "approved", nil))
		// Balance already spent down to 3,000; reversal clamps at zero.
		mock.ExpectQuery("SELECT balance, total_savings FROM accounts").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"balance", "total_savings"}).AddRow(3000, 4000))
		mock.ExpectExec("UPDATE accounts SET balance").
			WithArgs(int64(0), int64(0), int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM transactions").
			WithArgs(int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(ctx, 7)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ApprovedRepaymentReopensLoan", func(t *testing.T) {
		repo, mock, closeDB := newMockRepo(t)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id, account_id, type, amount, status, loan_id FROM transactions").
			WithArgs(int32(8)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "type", "amount", "status", "loan_id"}).
				AddRow(8, 1, "loan_repayment", 102000, "approved", 10))
		mock.ExpectQuery("SELECT balance, total_savings FROM accounts").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"balance", "total_savings"}).AddRow(48000, 80000))
		mock.ExpectExec("UPDATE accounts SET balance").
			WithArgs(int64(150000), int64(80000), int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT outstanding_balance, total_amount, status FROM loans").
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"outstanding_balance", "total_amount", "status"}).
				AddRow(0, 102000, "fully_paid"))
		mock.ExpectExec("UPDATE loans SET outstanding_balance").
			WithArgs(int64(102000), domain.LoanStatusDisbursed, int32(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM transactions").
			WithArgs(int32(8)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(ctx, 8)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransactionRepository_SumApprovedRepayments(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()
	ctx := context.Background()

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM transactions`).
		WithArgs(int32(10), domain.TransactionTypeLoanRepayment, domain.TransactionStatusApproved).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(30000))

	total, err := repo.SumApprovedRepayments(ctx, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(30000), total)
}
