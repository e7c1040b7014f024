package payoff

import "time"

// Eligible reports whether a funding takes part in a forward-looking
// simulation starting at start: it must be unapplied, positive and dated on or
// after start's calendar day.
func (f Funding) Eligible(start time.Time) bool {
	if f.IsApplied || !validPositive(f.Amount) {
		return false
	}
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	return !f.PaymentDate.Before(day)
}

// FundingsInMonth returns the eligible fundings whose calendar month and year
// equal startDate + monthIndex months.
func FundingsInMonth(fundings []Funding, month int, startDate time.Time) []Funding {
	var out []Funding
	for _, f := range fundings {
		if f.Eligible(startDate) && monthIndex(startDate, f.PaymentDate) == month {
			out = append(out, f)
		}
	}
	return out
}

// SumFundings adds up the funding amounts.
func SumFundings(fundings []Funding) float64 {
	var total float64
	for _, f := range fundings {
		total += sanitize(f.Amount)
	}
	return roundCents(total)
}

// Ledger indexes eligible fundings by simulated month.
type Ledger struct {
	byMonth map[int]float64
}

// NewLedger builds the ledger for a run starting at startDate.
func NewLedger(fundings []Funding, startDate time.Time) Ledger {
	l := Ledger{byMonth: make(map[int]float64)}
	for _, f := range fundings {
		if !f.Eligible(startDate) {
			continue
		}
		l.byMonth[monthIndex(startDate, f.PaymentDate)] += f.Amount
	}
	return l
}

// AmountForMonth is the summed funding due in the given 0-based month.
func (l Ledger) AmountForMonth(month int) float64 {
	return roundCents(l.byMonth[month])
}
