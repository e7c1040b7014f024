// Package payoff simulates debt payoff plans.
//
// The engine is pure: it reads immutable snapshots of debts and one-time
// fundings, keeps every running balance in a map owned by a single run, and
// returns plain values. Non-convergence, unpayable debts and implausible input
// are reported as result states or through an Observer, never as errors.
package payoff

import (
	"math"
	"time"
)

// Never marks a payoff that cannot happen within the simulated horizon.
const Never = -1

const (
	// DefaultHorizonMonths bounds every simulation (100 years).
	DefaultHorizonMonths = 1200
	// PaidOffEpsilon is the balance at or below which a debt counts as paid off.
	PaidOffEpsilon = 0.01
)

// Debt is a read-only snapshot of one liability. Monetary values are in major
// currency units.
type Debt struct {
	ID               string     `json:"id"`
	Name             string     `json:"name,omitempty"`
	Balance          float64    `json:"balance"`
	InterestRate     float64    `json:"interest_rate"` // annual percent
	MinimumPayment   float64    `json:"minimum_payment"`
	CurrencyCode     string     `json:"currency_code,omitempty"`
	IsGoldLoan       bool       `json:"is_gold_loan"`
	FinalPayoffDate  *time.Time `json:"final_payoff_date,omitempty"`
	InterestIncluded bool       `json:"interest_included"`
	OriginalRate     float64    `json:"original_rate,omitempty"`
}

// Scheduled reports whether the debt's payoff follows a fixed maturity date
// instead of amortization.
func (d Debt) Scheduled() bool {
	return d.IsGoldLoan && d.FinalPayoffDate != nil
}

// Funding is a scheduled one-time lump-sum payment.
type Funding struct {
	ID           string    `json:"id"`
	Amount       float64   `json:"amount"`
	PaymentDate  time.Time `json:"payment_date"`
	IsApplied    bool      `json:"is_applied"`
	CurrencyCode string    `json:"currency_code,omitempty"`
}

// Outcome is the terminal state of a simulation run.
type Outcome string

const (
	OutcomePaidOff            Outcome = "paid_off"
	OutcomeCapped             Outcome = "capped"
	OutcomeInsufficientBudget Outcome = "insufficient_budget"
	OutcomeNoDebts            Outcome = "no_debts"
)

// Allocation is the amount paid to one debt in one month.
type Allocation struct {
	DebtID  string  `json:"debt_id"`
	Minimum float64 `json:"minimum"`
	Extra   float64 `json:"extra"`
	Total   float64 `json:"total"`
}

// Redistribution records a paid-off debt's minimum payment being released to
// the debt that receives the surplus next.
type Redistribution struct {
	FromDebtID string  `json:"from_debt_id"`
	ToDebtID   string  `json:"to_debt_id,omitempty"`
	Amount     float64 `json:"amount"`
	Month      int     `json:"month"`
}

// DebtPayoff is the month (1-based) a debt reached zero, or Never.
type DebtPayoff struct {
	DebtID  string     `json:"debt_id"`
	Month   int        `json:"month"`
	Date    *time.Time `json:"date,omitempty"`
	PaidOff bool       `json:"paid_off"`
}

// MonthSnapshot describes one simulated month after the payoff sweep.
type MonthSnapshot struct {
	Month        int                `json:"month"`
	Date         time.Time          `json:"date"`
	Budget       float64            `json:"budget"`
	Released     float64            `json:"released"`
	Funding      float64            `json:"funding"`
	Interest     float64            `json:"interest"`
	MinimumsPaid float64            `json:"minimums_paid"`
	ExtraPaid    float64            `json:"extra_paid"`
	Unallocated  float64            `json:"unallocated"`
	Balances     map[string]float64 `json:"balances"`
}

// Result is the output of a single simulation run.
type Result struct {
	Outcome            Outcome          `json:"outcome"`
	Converged          bool             `json:"converged"`
	Months             int              `json:"months"`
	TotalInterest      float64          `json:"total_interest"`
	PayoffDate         time.Time        `json:"payoff_date"`
	FirstMonthPayments []Allocation     `json:"first_month_payments"`
	Redistributions    []Redistribution `json:"redistributions"`
	DebtPayoffs        []DebtPayoff     `json:"debt_payoffs"`
	Schedule           []MonthSnapshot  `json:"schedule,omitempty"`
}

// sanitize maps NaN, infinities and negatives to zero.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// roundCents rounds to two decimal places.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// addMonths adds n calendar months, clamping the day to the target month's end.
func addMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	target := first.AddDate(0, n, 0)
	lastDay := target.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(target.Year(), target.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// monthIndex is the number of calendar months from start's month to t's month.
func monthIndex(start, t time.Time) int {
	t = t.In(start.Location())
	return (t.Year()-start.Year())*12 + int(t.Month()) - int(start.Month())
}

// MonthsUntil is the whole-month calendar difference from now to date,
// floored at zero.
func MonthsUntil(now, date time.Time) int {
	date = date.In(now.Location())
	months := monthIndex(now, date)
	if date.Day() < now.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
