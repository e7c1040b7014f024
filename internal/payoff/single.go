package payoff

import (
	"fmt"
	"math"
	"time"
)

// maxMonths bounds any month count the engine reports.
const maxMonths = math.MaxInt32

// PayoffDetails is the closed-form estimate shown on a single debt.
type PayoffDetails struct {
	DebtID             string  `json:"debt_id"`
	Months             int     `json:"months"`
	Never              bool    `json:"never"`
	FormattedTime      string  `json:"formatted_time"`
	ProgressPercentage float64 `json:"progress_percentage"`
	EffectiveBalance   float64 `json:"effective_balance"`
	TotalPaid          float64 `json:"total_paid"`
}

// CalculatePayoffDetails estimates how long one debt takes to pay off at its
// minimum payment, and how much of it has been paid so far. Gold loans with a
// maturity date report the months left until that date.
func CalculatePayoffDetails(d Debt, totalPaidSoFar float64, now time.Time) PayoffDetails {
	balance := sanitize(d.Balance)
	paid := sanitize(totalPaidSoFar)

	effective := balance
	if d.InterestIncluded {
		effective = DerivedPrincipal(d)
	}

	months := payoffMonths(d, balance, now)
	details := PayoffDetails{
		DebtID:           d.ID,
		Months:           months,
		Never:            months == Never,
		FormattedTime:    FormatMonths(months),
		EffectiveBalance: effective,
		TotalPaid:        roundCents(paid),
	}
	if denom := effective + paid; denom > 0 {
		details.ProgressPercentage = roundCents(paid / denom * 100)
	}
	return details
}

func payoffMonths(d Debt, balance float64, now time.Time) int {
	if d.Scheduled() {
		return MonthsUntil(now, *d.FinalPayoffDate)
	}
	if balance <= PaidOffEpsilon {
		return 0
	}
	payment := sanitize(d.MinimumPayment)
	if payment <= 0 {
		return Never
	}

	rate := sanitize(d.InterestRate)
	if d.InterestIncluded || rate == 0 {
		return ceilMonths(balance / payment)
	}

	monthly := rate / 100 / 12
	if payment <= balance*monthly {
		return Never
	}
	n := math.Log(payment/(payment-balance*monthly)) / math.Log(1+monthly)
	return ceilMonths(n)
}

// ceilMonths rounds up while ignoring float noise just above an integer.
// Counts beyond maxMonths read as Never.
func ceilMonths(x float64) int {
	if math.IsNaN(x) || math.IsInf(x, 0) || x > maxMonths {
		return Never
	}
	return int(math.Ceil(x - 1e-9))
}

// DerivedPrincipal back-calculates the principal of an interest-included
// debt. The term is the number of minimum payments needed to clear the stated
// balance, and the rate is OriginalRate, falling back to InterestRate.
func DerivedPrincipal(d Debt) float64 {
	balance := sanitize(d.Balance)
	payment := sanitize(d.MinimumPayment)
	if payment <= 0 {
		return roundCents(balance)
	}
	rate := sanitize(d.OriginalRate)
	if rate == 0 {
		rate = sanitize(d.InterestRate)
	}
	return PrincipalFromTotal(balance, rate, ceilMonths(balance/payment))
}

// PrincipalFromTotal solves total = principal * (1 + rate * term/12) for the
// principal, using simple interest at annualRatePercent over termMonths.
func PrincipalFromTotal(total, annualRatePercent float64, termMonths int) float64 {
	total = sanitize(total)
	rate := sanitize(annualRatePercent)
	if rate == 0 || termMonths <= 0 {
		return roundCents(total)
	}
	return roundCents(total / (1 + rate/100*float64(termMonths)/12))
}

// FormatMonths renders a month count as a short English duration.
func FormatMonths(months int) string {
	switch {
	case months == Never || months < 0:
		return "Never"
	case months == 0:
		return "Paid off"
	}

	years, rest := months/12, months%12
	part := func(n int, unit string) string {
		if n == 1 {
			return fmt.Sprintf("1 %s", unit)
		}
		return fmt.Sprintf("%d %ss", n, unit)
	}
	switch {
	case years == 0:
		return part(rest, "month")
	case rest == 0:
		return part(years, "year")
	default:
		return part(years, "year") + " " + part(rest, "month")
	}
}
