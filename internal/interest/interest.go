// Package interest holds the pure loan arithmetic: flat-rate accrual,
// outstanding balances, repayment splits and installment schedules. No I/O.
package interest

import (
	"math"
	"time"
)

// daysPerMonth is the flat-rate convention: every started 30-day block counts
// as one interest month.
const daysPerMonth = 30

// Accrual is the interest accumulated on a principal up to a point in time.
type Accrual struct {
	MonthsElapsed int   `json:"months_elapsed"`
	Interest      int64 `json:"interest"`
	TotalAmount   int64 `json:"total_amount"`
}

// Split is a repayment divided between principal and interest.
type Split struct {
	PrincipalPortion int64 `json:"principal_portion"`
	InterestPortion  int64 `json:"interest_portion"`
}

// Installment is one row of a repayment schedule.
type Installment struct {
	Month              int       `json:"month"`
	DueDate            time.Time `json:"due_date"`
	PrincipalPortion   int64     `json:"principal_portion"`
	InterestPortion    int64     `json:"interest_portion"`
	TotalDue           int64     `json:"total_due"`
	CumulativeInterest int64     `json:"cumulative_interest"`
	RemainingBalance   int64     `json:"remaining_balance"`
}

// MonthsElapsed returns the number of interest months between disbursal and
// asOf: ceil(days/30), floored at 1. A loan accrues its first month the moment
// it is disbursed.
func MonthsElapsed(disbursedAt, asOf time.Time) int {
	days := int(asOf.Sub(disbursedAt).Hours() / 24)
	if days < 0 {
		days = 0
	}
	months := (days + daysPerMonth - 1) / daysPerMonth
	if months < 1 {
		months = 1
	}
	return months
}

// Accrued computes elapsed-month interest on a principal at a flat monthly
// percentage rate. A loan that was never disbursed accrues nothing.
func Accrued(principal int64, monthlyRatePercent float64, disbursedAt *time.Time, asOf time.Time) Accrual {
	if disbursedAt == nil {
		return Accrual{MonthsElapsed: 0, Interest: 0, TotalAmount: principal}
	}
	months := MonthsElapsed(*disbursedAt, asOf)
	interest := int64(math.Round(float64(principal) * monthlyRatePercent / 100.0 * float64(months)))
	return Accrual{
		MonthsElapsed: months,
		Interest:      interest,
		TotalAmount:   principal + interest,
	}
}

// Outstanding is what remains payable now: accrued total minus what has been
// repaid, never below zero.
func Outstanding(principal int64, monthlyRatePercent float64, disbursedAt *time.Time, totalRepaid int64, asOf time.Time) int64 {
	accrual := Accrued(principal, monthlyRatePercent, disbursedAt, asOf)
	remaining := accrual.TotalAmount - totalRepaid
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SplitRepayment allocates a repayment between principal and interest in
// proportion to their share of the total owed. The portions are rounded
// independently and may drift from the input by at most one unit; the drift is
// accepted, not corrected.
func SplitRepayment(amount, principal, totalInterest int64) Split {
	total := principal + totalInterest
	if total <= 0 {
		return Split{}
	}
	return Split{
		PrincipalPortion: int64(math.Round(float64(amount) * float64(principal) / float64(total))),
		InterestPortion:  int64(math.Round(float64(amount) * float64(totalInterest) / float64(total))),
	}
}

// Schedule builds the planned repayment rows for a disbursed loan: equal
// principal installments plus a flat per-month interest of principal x rate/100.
// The interest does not decline as principal is repaid. The running remaining
// balance starts at the planned total minus what has already been repaid.
func Schedule(principal int64, monthlyRatePercent float64, disbursedAt time.Time, plannedMonths int, totalRepaid int64) []Installment {
	if plannedMonths <= 0 {
		return nil
	}

	monthlyInterest := int64(math.Round(float64(principal) * monthlyRatePercent / 100.0))
	monthlyPrincipal := principal / int64(plannedMonths)
	totalAmount := principal + monthlyInterest*int64(plannedMonths)

	remaining := totalAmount - totalRepaid
	if remaining < 0 {
		remaining = 0
	}

	schedule := make([]Installment, 0, plannedMonths)
	for month := 1; month <= plannedMonths; month++ {
		principalDue := monthlyPrincipal
		if month == plannedMonths {
			// Last installment absorbs the integer-division remainder.
			principalDue = principal - monthlyPrincipal*int64(plannedMonths-1)
		}
		totalDue := principalDue + monthlyInterest
		remaining -= totalDue
		if remaining < 0 {
			remaining = 0
		}
		schedule = append(schedule, Installment{
			Month:              month,
			DueDate:            disbursedAt.AddDate(0, month, 0),
			PrincipalPortion:   principalDue,
			InterestPortion:    monthlyInterest,
			TotalDue:           totalDue,
			CumulativeInterest: monthlyInterest * int64(month),
			RemainingBalance:   remaining,
		})
	}
	return schedule
}
