package domain

import "time"

// LoanStatusEvent is emitted whenever a loan changes status. External
// collaborators (email, in-app alerts) turn it into a delivered message; the
// engine only produces the structured payload.
type LoanStatusEvent struct {
	LoanID      int32      `json:"loan_id"`
	AccountID   int32      `json:"account_id"`
	MemberName  string     `json:"member_name"`
	MemberEmail string     `json:"member_email"`
	NewStatus   LoanStatus `json:"new_status"`
	Amount      int64      `json:"amount"`
	Outstanding int64      `json:"outstanding"`
	OccurredAt  time.Time  `json:"occurred_at"`
}

// ReminderEvent is emitted when a batch job creates something a member should
// act on, such as an overdue-interest penalty.
type ReminderEvent struct {
	LoanID      int32     `json:"loan_id"`
	AccountID   int32     `json:"account_id"`
	MemberName  string    `json:"member_name"`
	MemberEmail string    `json:"member_email"`
	Subject     string    `json:"subject"`
	Detail      string    `json:"detail"`
	Amount      int64     `json:"amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}
