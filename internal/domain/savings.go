package domain

import "time"

// SavingsRecord is one row per account per calendar week actually saved.
// Rows are produced by deposit-side bookkeeping and consumed only by the
// eligibility evaluator.
type SavingsRecord struct {
	ID        int32     `json:"id"`
	AccountID int32     `json:"account_id"`
	WeekStart time.Time `json:"week_start"`
	WeekEnd   time.Time `json:"week_end"`
	Amount    int64     `json:"amount"`
	CreatedOn time.Time `json:"created_on"`
}
