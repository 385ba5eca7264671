package domain

import "time"

// WelfareEntry records one periodic welfare charge against an account. Every
// entry is paired with a matching approved withdrawal Transaction for audit.
type WelfareEntry struct {
	ID          int32     `json:"id"`
	AccountID   int32     `json:"account_id"`
	Amount      int64     `json:"amount"`
	WeekDate    time.Time `json:"week_date"`
	Description string    `json:"description"`
	CreatedOn   time.Time `json:"created_on"`
}

// BatchResult is the aggregate outcome of the weekly welfare deduction run.
type BatchResult struct {
	Processed int `json:"processed"`
	Errors    int `json:"errors"`
}

// OverdueResult is the aggregate outcome of the overdue-interest run. Skipped
// counts loans already penalized for the period or not yet past their window.
type OverdueResult struct {
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}
