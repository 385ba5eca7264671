package domain

import "time"

type AccountType string

const (
	AccountTypeMain AccountType = "main"
	AccountTypeSub  AccountType = "sub"
)

// Account holds a member's (or dependent's) monetary record. Balance is the
// current spendable amount; TotalSavings accumulates deposits over the account's
// lifetime and is only reduced by welfare deductions. Both are kept >= 0 by the
// store layer.
type Account struct {
	ID              int32       `json:"id"`
	OwnerName       string      `json:"owner_name"`
	OwnerEmail      string      `json:"owner_email"`
	AccountNumber   string      `json:"account_number"`
	AccountType     AccountType `json:"account_type"`
	ParentAccountID *int32      `json:"parent_account_id,omitempty"`
	Balance         int64       `json:"balance"`
	TotalSavings    int64       `json:"total_savings"`
	CreatedOn       time.Time   `json:"created_on"`
	UpdatedOn       time.Time   `json:"updated_on"`
}
