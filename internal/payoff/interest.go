package payoff

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	DefaultLargeBalanceThreshold = 1_000_000.0
	DefaultMaxMonthlyFraction    = 0.20
	DefaultMaxHorizonMultiple    = 1.5
)

var monthsPerYearPercent = decimal.NewFromInt(1200)

// InterestModel computes monthly accrual. The zero value is usable and picks
// up the defaults.
type InterestModel struct {
	// LargeBalanceThreshold switches rounding to decimal arithmetic above it.
	LargeBalanceThreshold float64
	// MaxMonthlyFraction caps one month's interest as a fraction of the balance.
	MaxMonthlyFraction float64
	// MaxHorizonMultiple caps compounded interest as a multiple of the principal.
	MaxHorizonMultiple float64
	Observer           Observer
}

// DefaultInterestModel returns a model with the default limits.
func DefaultInterestModel() InterestModel {
	return InterestModel{}.withDefaults()
}

func (m InterestModel) withDefaults() InterestModel {
	if !(m.LargeBalanceThreshold > 0) {
		m.LargeBalanceThreshold = DefaultLargeBalanceThreshold
	}
	if !(m.MaxMonthlyFraction > 0) {
		m.MaxMonthlyFraction = DefaultMaxMonthlyFraction
	}
	if !(m.MaxHorizonMultiple > 0) {
		m.MaxHorizonMultiple = DefaultMaxHorizonMultiple
	}
	if m.Observer == nil {
		m.Observer = nopObserver{}
	}
	return m
}

// MonthlyInterest returns balance * (annualRatePercent / 100) / 12 rounded to
// cents. Non-positive or invalid inputs yield zero.
func (m InterestModel) MonthlyInterest(balance, annualRatePercent float64) float64 {
	return m.withDefaults().accrue("", balance, annualRatePercent)
}

func (m InterestModel) accrue(debtID string, balance, rate float64) float64 {
	if !validPositive(balance) || !validPositive(rate) {
		return 0
	}

	var interest float64
	if balance > m.LargeBalanceThreshold {
		interest = decimal.NewFromFloat(balance).
			Mul(decimal.NewFromFloat(rate)).
			Div(monthsPerYearPercent).
			Round(2).
			InexactFloat64()
	} else {
		interest = roundCents(balance * (rate / 100) / 12)
	}

	limit := roundCents(balance * m.MaxMonthlyFraction)
	if interest > limit {
		m.Observer.Anomaly(Anomaly{
			Kind:   AnomalyMonthlyInterestCapped,
			DebtID: debtID,
			Value:  interest,
			Limit:  limit,
		})
		interest = limit
	}
	return interest
}

// TotalInterestOverHorizon compounds monthly interest for the given number of
// months. Once the running total passes MaxHorizonMultiple of the original
// balance the capped estimate is returned instead.
func (m InterestModel) TotalInterestOverHorizon(balance, annualRatePercent float64, months int) float64 {
	m = m.withDefaults()
	if months <= 0 || !validPositive(balance) || !validPositive(annualRatePercent) {
		return 0
	}

	limit := balance * m.MaxHorizonMultiple
	running := balance
	total := decimal.Zero
	for i := 0; i < months; i++ {
		interest := m.accrue("", running, annualRatePercent)
		total = total.Add(decimal.NewFromFloat(interest))
		running += interest
		if total.InexactFloat64() > limit {
			m.Observer.Anomaly(Anomaly{
				Kind:  AnomalyHorizonInterestCapped,
				Value: total.InexactFloat64(),
				Limit: limit,
			})
			return roundCents(limit)
		}
	}
	return total.Round(2).InexactFloat64()
}

func validPositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
