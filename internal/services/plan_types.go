package services

import (
	"time"

	"debtplanner/internal/payoff"
)

// PaymentAllocation is one debt's share of a month's payments. Money is in
// cents.
type PaymentAllocation struct {
	DebtID   string `json:"debt_id"`
	DebtName string `json:"debt_name"`
	Minimum  int64  `json:"minimum"`
	Extra    int64  `json:"extra"`
	Total    int64  `json:"total"`
}

// DebtPayoffDate reports when a debt is cleared. Month is -1 and Date nil
// when it is never cleared within the horizon.
type DebtPayoffDate struct {
	DebtID        string     `json:"debt_id"`
	DebtName      string     `json:"debt_name"`
	Month         int        `json:"month"`
	Date          *time.Time `json:"date,omitempty"`
	PaidOff       bool       `json:"paid_off"`
	FormattedTime string     `json:"formatted_time"`
}

// PaymentRedistribution is a freed minimum payment rolled onto another debt.
type PaymentRedistribution struct {
	FromDebtID   string `json:"from_debt_id"`
	FromDebtName string `json:"from_debt_name"`
	ToDebtID     string `json:"to_debt_id,omitempty"`
	ToDebtName   string `json:"to_debt_name,omitempty"`
	Amount       int64  `json:"amount"`
	Month        int    `json:"month"`
}

// ScheduleMonth is one simulated month in cents.
type ScheduleMonth struct {
	Month        int              `json:"month"`
	Date         time.Time        `json:"date"`
	Budget       int64            `json:"budget"`
	Released     int64            `json:"released"`
	Funding      int64            `json:"funding"`
	Interest     int64            `json:"interest"`
	MinimumsPaid int64            `json:"minimums_paid"`
	ExtraPaid    int64            `json:"extra_paid"`
	Unallocated  int64            `json:"unallocated"`
	Balances     map[string]int64 `json:"balances"`
}

// PlanComparison contrasts paying only minimums with the user's plan.
type PlanComparison struct {
	Strategy                  payoff.StrategyID       `json:"strategy"`
	Currency                  string                  `json:"currency"`
	MonthlyBudget             int64                   `json:"monthly_budget"`
	BaselineBudget            int64                   `json:"baseline_budget"`
	BaselineMonths            int                     `json:"baseline_months"`
	AcceleratedMonths         int                     `json:"accelerated_months"`
	BaselineFormattedTime     string                  `json:"baseline_formatted_time"`
	AcceleratedFormattedTime  string                  `json:"accelerated_formatted_time"`
	BaselineInterest          int64                   `json:"baseline_interest"`
	AcceleratedInterest       int64                   `json:"accelerated_interest"`
	MonthsSaved               int                     `json:"months_saved"`
	InterestSaved             int64                   `json:"interest_saved"`
	PayoffDate                time.Time               `json:"payoff_date"`
	BaselinePayoffDate        time.Time               `json:"baseline_payoff_date"`
	BaselineOutcome           payoff.Outcome          `json:"baseline_outcome"`
	AcceleratedOutcome        payoff.Outcome          `json:"accelerated_outcome"`
	PerDebtFirstMonthPayments []PaymentAllocation     `json:"per_debt_first_month_payments"`
	DebtPayoffs               []DebtPayoffDate        `json:"debt_payoffs"`
	Redistributions           []PaymentRedistribution `json:"redistributions"`
	Schedule                  []ScheduleMonth         `json:"schedule,omitempty"`
	Cached                    bool                    `json:"cached"`
}

// PlanSimulation is a single run of the user's plan.
type PlanSimulation struct {
	Strategy           payoff.StrategyID       `json:"strategy"`
	Currency           string                  `json:"currency"`
	MonthlyBudget      int64                   `json:"monthly_budget"`
	Outcome            payoff.Outcome          `json:"outcome"`
	Converged          bool                    `json:"converged"`
	Months             int                     `json:"months"`
	FormattedTime      string                  `json:"formatted_time"`
	TotalInterest      int64                   `json:"total_interest"`
	PayoffDate         time.Time               `json:"payoff_date"`
	FirstMonthPayments []PaymentAllocation     `json:"first_month_payments"`
	DebtPayoffs        []DebtPayoffDate        `json:"debt_payoffs"`
	Redistributions    []PaymentRedistribution `json:"redistributions"`
	Schedule           []ScheduleMonth         `json:"schedule,omitempty"`
	Cached             bool                    `json:"cached"`
}

// DebtPayoffSummary is the minimum-payment estimate for one debt.
type DebtPayoffSummary struct {
	DebtID             string     `json:"debt_id"`
	DebtName           string     `json:"debt_name"`
	Balance            int64      `json:"balance"`
	EffectiveBalance   int64      `json:"effective_balance"`
	TotalPaid          int64      `json:"total_paid"`
	Months             int        `json:"months"`
	Never              bool       `json:"never"`
	FormattedTime      string     `json:"formatted_time"`
	ProgressPercentage float64    `json:"progress_percentage"`
	PayoffDate         *time.Time `json:"payoff_date,omitempty"`
}

// debtNames resolves ids to display names.
type debtNames map[string]string

func (n debtNames) allocations(in []payoff.Allocation) []PaymentAllocation {
	out := make([]PaymentAllocation, len(in))
	for i, a := range in {
		out[i] = PaymentAllocation{
			DebtID:   a.DebtID,
			DebtName: n[a.DebtID],
			Minimum:  unitsToCents(a.Minimum),
			Extra:    unitsToCents(a.Extra),
			Total:    unitsToCents(a.Total),
		}
	}
	return out
}

func (n debtNames) payoffs(in []payoff.DebtPayoff) []DebtPayoffDate {
	out := make([]DebtPayoffDate, len(in))
	for i, p := range in {
		out[i] = DebtPayoffDate{
			DebtID:        p.DebtID,
			DebtName:      n[p.DebtID],
			Month:         p.Month,
			Date:          p.Date,
			PaidOff:       p.PaidOff,
			FormattedTime: payoff.FormatMonths(p.Month),
		}
	}
	return out
}

func (n debtNames) redistributions(in []payoff.Redistribution) []PaymentRedistribution {
	out := make([]PaymentRedistribution, len(in))
	for i, r := range in {
		out[i] = PaymentRedistribution{
			FromDebtID:   r.FromDebtID,
			FromDebtName: n[r.FromDebtID],
			ToDebtID:     r.ToDebtID,
			ToDebtName:   n[r.ToDebtID],
			Amount:       unitsToCents(r.Amount),
			Month:        r.Month,
		}
	}
	return out
}

func scheduleToCents(in []payoff.MonthSnapshot) []ScheduleMonth {
	if len(in) == 0 {
		return nil
	}
	out := make([]ScheduleMonth, len(in))
	for i, m := range in {
		balances := make(map[string]int64, len(m.Balances))
		for id, b := range m.Balances {
			balances[id] = unitsToCents(b)
		}
		out[i] = ScheduleMonth{
			Month:        m.Month,
			Date:         m.Date,
			Budget:       unitsToCents(m.Budget),
			Released:     unitsToCents(m.Released),
			Funding:      unitsToCents(m.Funding),
			Interest:     unitsToCents(m.Interest),
			MinimumsPaid: unitsToCents(m.MinimumsPaid),
			ExtraPaid:    unitsToCents(m.ExtraPaid),
			Unallocated:  unitsToCents(m.Unallocated),
			Balances:     balances,
		}
	}
	return out
}
