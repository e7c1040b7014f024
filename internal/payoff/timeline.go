package payoff

import (
	"math"
	"sync"
	"time"
)

// Comparison contrasts a minimum-payments-only run with the user's plan.
type Comparison struct {
	Strategy                  StrategyID       `json:"strategy"`
	MonthlyBudget             float64          `json:"monthly_budget"`
	BaselineBudget            float64          `json:"baseline_budget"`
	BaselineMonths            int              `json:"baseline_months"`
	AcceleratedMonths         int              `json:"accelerated_months"`
	BaselineInterest          float64          `json:"baseline_interest"`
	AcceleratedInterest       float64          `json:"accelerated_interest"`
	MonthsSaved               int              `json:"months_saved"`
	InterestSaved             float64          `json:"interest_saved"`
	PayoffDate                time.Time        `json:"payoff_date"`
	BaselinePayoffDate        time.Time        `json:"baseline_payoff_date"`
	BaselineOutcome           Outcome          `json:"baseline_outcome"`
	AcceleratedOutcome        Outcome          `json:"accelerated_outcome"`
	PerDebtFirstMonthPayments []Allocation     `json:"per_debt_first_month_payments"`
	DebtPayoffs               []DebtPayoff     `json:"debt_payoffs"`
	Redistributions           []Redistribution `json:"redistributions"`
	Schedule                  []MonthSnapshot  `json:"schedule,omitempty"`
}

// Compare runs the baseline and accelerated scenarios. The baseline pays only
// the sum of minimums with no fundings; the accelerated run uses the
// scenario's budget and fundings. Both runs execute concurrently on the same
// prepared input.
func (s *Simulator) Compare(sc Scenario) Comparison {
	start := startOf(sc)
	strategy := sc.Strategy
	if strategy == "" {
		strategy = DefaultStrategy
	}
	p := s.prepare(sc.Debts, start)
	budget := sanitize(sc.MonthlyBudget)

	var baseline, accelerated Result
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		baseline = s.run(p, strategy, p.required, Ledger{}, start)
	}()
	go func() {
		defer wg.Done()
		accelerated = s.run(p, strategy, budget, NewLedger(sc.Fundings, start), start)
	}()
	wg.Wait()

	c := Comparison{
		Strategy:                  strategy,
		MonthlyBudget:             budget,
		BaselineBudget:            p.required,
		BaselineMonths:            baseline.Months,
		AcceleratedMonths:         accelerated.Months,
		BaselineInterest:          baseline.TotalInterest,
		AcceleratedInterest:       accelerated.TotalInterest,
		PayoffDate:                accelerated.PayoffDate,
		BaselinePayoffDate:        baseline.PayoffDate,
		BaselineOutcome:           baseline.Outcome,
		AcceleratedOutcome:        accelerated.Outcome,
		PerDebtFirstMonthPayments: accelerated.FirstMonthPayments,
		DebtPayoffs:               accelerated.DebtPayoffs,
		Redistributions:           accelerated.Redistributions,
		Schedule:                  accelerated.Schedule,
	}

	c.MonthsSaved = max(0, baseline.Months-accelerated.Months)
	c.InterestSaved = roundCents(math.Max(0, baseline.TotalInterest-accelerated.TotalInterest))
	return c
}
