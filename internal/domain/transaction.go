package domain

import "time"

type TransactionType string

const (
	TransactionTypeDeposit          TransactionType = "deposit"
	TransactionTypeWithdrawal       TransactionType = "withdrawal"
	TransactionTypeLoanDisbursement TransactionType = "loan_disbursement"
	TransactionTypeLoanRepayment    TransactionType = "loan_repayment"
)

// ValidTransactionType reports whether t is one of the closed set of
// transaction types.
func ValidTransactionType(t TransactionType) bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal,
		TransactionTypeLoanDisbursement, TransactionTypeLoanRepayment:
		return true
	}
	return false
}

type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "pending"
	TransactionStatusApproved TransactionStatus = "approved"
	TransactionStatusRejected TransactionStatus = "rejected"
)

// Transaction records one request to move money on an account. BalanceAfter is
// a snapshot of the account balance at creation time; it is overwritten with
// the true post-mutation balance when the transaction is approved. Until then
// callers must not read it as the approved state.
type Transaction struct {
	ID            int32             `json:"id"`
	AccountID     int32             `json:"account_id"`
	Type          TransactionType   `json:"type"`
	Amount        int64             `json:"amount"`
	BalanceAfter  int64             `json:"balance_after"`
	Description   string            `json:"description"`
	Status        TransactionStatus `json:"status"`
	LoanID        *int32            `json:"loan_id,omitempty"`
	ReceiptNumber *string           `json:"receipt_number,omitempty"`
	ApprovedBy    *int32            `json:"approved_by,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	ApprovedAt    *time.Time        `json:"approved_at,omitempty"`
}
