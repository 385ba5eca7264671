package domain

import "time"

type LoanStatus string

const (
	LoanStatusPending   LoanStatus = "pending"
	LoanStatusApproved  LoanStatus = "approved"
	LoanStatusRejected  LoanStatus = "rejected"
	LoanStatusActive    LoanStatus = "active"
	LoanStatusDisbursed LoanStatus = "disbursed"
	LoanStatusFullyPaid LoanStatus = "fully_paid"
	LoanStatusCompleted LoanStatus = "completed"
)

// ActiveGuaranteeStatuses are the loan states during which an assigned
// guarantor's capacity counts as committed.
var ActiveGuaranteeStatuses = []LoanStatus{
	LoanStatusPending,
	LoanStatusApproved,
	LoanStatusActive,
	LoanStatusDisbursed,
}

type GuarantorStatus string

const (
	GuarantorStatusPending  GuarantorStatus = "pending"
	GuarantorStatusApproved GuarantorStatus = "approved"
	GuarantorStatusRejected GuarantorStatus = "rejected"
)

// Loan is one loan application and its lifecycle. Amount is the principal;
// TotalAmount is principal plus interest for the current term; OutstandingBalance
// is what remains payable now, never above TotalAmount. Reaching zero forces a
// terminal paid status.
type Loan struct {
	ID                 int32            `json:"id"`
	AccountID          int32            `json:"account_id"`
	Amount             int64            `json:"amount"`
	InterestRate       float64          `json:"interest_rate"` // percent per month
	RepaymentMonths    int32            `json:"repayment_months"`
	TotalAmount        int64            `json:"total_amount"`
	OutstandingBalance int64            `json:"outstanding_balance"`
	Status             LoanStatus       `json:"status"`
	DisbursedAt        *time.Time       `json:"disbursed_at,omitempty"`
	GuarantorAccountID *int32           `json:"guarantor_account_id,omitempty"`
	GuarantorStatus    *GuarantorStatus `json:"guarantor_status,omitempty"`
	CreatedOn          time.Time        `json:"created_on"`
	UpdatedOn          time.Time        `json:"updated_on"`
}

// Terminal reports whether the loan is in a paid-off state.
func (l *Loan) Terminal() bool {
	return l.Status == LoanStatusFullyPaid || l.Status == LoanStatusCompleted
}

// LoanEdit carries the administrator-editable loan fields. Nil fields are left
// unchanged.
type LoanEdit struct {
	RepaymentMonths    *int32     `json:"repayment_months,omitempty"`
	DisbursedAt        *time.Time `json:"disbursed_at,omitempty"`
	GuarantorAccountID *int32     `json:"guarantor_account_id,omitempty"`
}

// LoanPenalty marks one overdue-interest charge against a loan. The
// (LoanID, PeriodMonth) pair is unique so a penalty is applied at most once per
// calendar month.
type LoanPenalty struct {
	ID          int32     `json:"id"`
	LoanID      int32     `json:"loan_id"`
	PeriodMonth string    `json:"period_month"` // format: 'YYYY-MM'
	Amount      int64     `json:"amount"`
	CreatedOn   time.Time `json:"created_on"`
}
