package payoff

import (
	"fmt"
	"math"
	"time"
)

// budgetTolerance absorbs float noise when comparing a budget to the sum of
// minimum payments.
const budgetTolerance = 0.005

// Scenario is the input of one simulation.
type Scenario struct {
	Debts         []Debt
	Strategy      StrategyID
	MonthlyBudget float64
	Fundings      []Funding
	// StartDate anchors month 0. The zero value means time.Now().
	StartDate time.Time
}

// Options configures a Simulator. Zero fields take defaults.
type Options struct {
	HorizonMonths int
	Interest      InterestModel
	Observer      Observer
	// RecordSchedule keeps a MonthSnapshot for every simulated month.
	RecordSchedule bool
}

// Simulator runs month-by-month payoff simulations. It holds no run state and
// is safe for concurrent use.
type Simulator struct {
	horizon  int
	interest InterestModel
	observer Observer
	schedule bool
}

// NewSimulator creates a Simulator.
func NewSimulator(opts Options) *Simulator {
	horizon := opts.HorizonMonths
	if horizon <= 0 {
		horizon = DefaultHorizonMonths
	}
	observer := opts.Observer
	if observer == nil {
		observer = nopObserver{}
	}
	interest := opts.Interest
	if interest.Observer == nil {
		interest.Observer = observer
	}
	return &Simulator{
		horizon:  horizon,
		interest: interest.withDefaults(),
		observer: observer,
		schedule: opts.RecordSchedule,
	}
}

// Horizon is the maximum number of simulated months.
func (s *Simulator) Horizon() int {
	return s.horizon
}

// Simulate runs one scenario.
func (s *Simulator) Simulate(sc Scenario) Result {
	start := startOf(sc)
	p := s.prepare(sc.Debts, start)
	return s.run(p, sc.Strategy, sanitize(sc.MonthlyBudget), NewLedger(sc.Fundings, start), start)
}

// scheduledDebt is a gold loan paid off by its maturity date.
type scheduledDebt struct {
	debt     Debt
	maturity int
}

// prepared is the validated, de-duplicated input shared by the runs of a
// comparison. Runs only read it.
type prepared struct {
	amortizing []Debt
	scheduled  []scheduledDebt
	settled    []Debt
	required   float64
	empty      bool
}

func (s *Simulator) prepare(debts []Debt, start time.Time) prepared {
	p := prepared{empty: len(debts) == 0}
	seen := make(map[string]bool, len(debts))

	for i, d := range debts {
		if d.ID == "" {
			d.ID = fmt.Sprintf("debt-%d", i)
		}
		if seen[d.ID] {
			s.observer.Anomaly(Anomaly{Kind: AnomalyDuplicateDebt, DebtID: d.ID})
			continue
		}
		seen[d.ID] = true

		d.Balance = s.clean(d.ID, d.Balance)
		d.InterestRate = s.clean(d.ID, d.InterestRate)
		d.MinimumPayment = s.clean(d.ID, d.MinimumPayment)
		d.OriginalRate = s.clean(d.ID, d.OriginalRate)

		switch {
		case d.Scheduled():
			maturity := MonthsUntil(start, *d.FinalPayoffDate)
			if maturity == 0 {
				p.settled = append(p.settled, d)
				continue
			}
			p.scheduled = append(p.scheduled, scheduledDebt{debt: d, maturity: maturity})
			p.required += d.MinimumPayment
		case d.Balance <= PaidOffEpsilon:
			p.settled = append(p.settled, d)
		default:
			p.amortizing = append(p.amortizing, d)
			p.required += d.MinimumPayment
		}
	}
	p.required = roundCents(p.required)
	return p
}

func (s *Simulator) clean(debtID string, v float64) float64 {
	clean := sanitize(v)
	if clean != v {
		s.observer.Anomaly(Anomaly{Kind: AnomalyInvalidInput, DebtID: debtID, Value: v})
	}
	return clean
}

// run executes the month loop. Every balance lives in the run's own map.
func (s *Simulator) run(p prepared, strategy StrategyID, budget float64, ledger Ledger, start time.Time) Result {
	res := Result{
		FirstMonthPayments: []Allocation{},
		Redistributions:    []Redistribution{},
		DebtPayoffs:        []DebtPayoff{},
		PayoffDate:         start,
	}
	if p.empty {
		res.Outcome = OutcomeNoDebts
		res.Converged = true
		return res
	}

	payoffs := make(map[string]DebtPayoff)
	order := make([]string, 0, len(p.settled)+len(p.scheduled)+len(p.amortizing))
	for _, d := range p.settled {
		payoffs[d.ID] = DebtPayoff{DebtID: d.ID, Month: 0, Date: timePtr(start), PaidOff: true}
		order = append(order, d.ID)
	}
	for _, g := range p.scheduled {
		order = append(order, g.debt.ID)
	}
	for _, d := range p.amortizing {
		order = append(order, d.ID)
	}
	collectPayoffs := func() {
		for _, id := range order {
			po, ok := payoffs[id]
			if !ok {
				po = DebtPayoff{DebtID: id, Month: Never}
			}
			res.DebtPayoffs = append(res.DebtPayoffs, po)
		}
	}

	if budget+budgetTolerance < p.required {
		res.Outcome = OutcomeInsufficientBudget
		res.Months = s.horizon
		res.PayoffDate = addMonths(start, s.horizon)
		var interest float64
		for _, d := range p.amortizing {
			if !d.InterestIncluded {
				interest += s.interest.TotalInterestOverHorizon(d.Balance, d.InterestRate, s.horizon)
			}
		}
		res.TotalInterest = roundCents(interest)
		collectPayoffs()
		return res
	}

	balances := make(map[string]float64, len(p.amortizing))
	for _, d := range p.amortizing {
		balances[d.ID] = d.Balance
	}
	active := append([]Debt(nil), p.amortizing...)
	pending := append([]scheduledDebt(nil), p.scheduled...)

	var released, totalInterest float64
	months := 0

	for month := 0; month < s.horizon && (len(active) > 0 || len(pending) > 0); month++ {
		months = month + 1
		ranked := strategy.Rank(views(active, balances))

		funding := ledger.AmountForMonth(month)
		snap := MonthSnapshot{
			Month:    months,
			Date:     addMonths(start, months),
			Budget:   budget,
			Released: released,
			Funding:  funding,
		}
		available := roundCents(budget + released + funding)
		released = 0

		allocs := make(map[string]*Allocation)
		allocOrder := make([]string, 0, len(pending)+len(ranked))
		alloc := func(id string) *Allocation {
			a, ok := allocs[id]
			if !ok {
				a = &Allocation{DebtID: id}
				allocs[id] = a
				allocOrder = append(allocOrder, id)
			}
			return a
		}

		// Schedule-driven loans reserve their minimum until maturity.
		for _, g := range pending {
			due := math.Min(g.debt.MinimumPayment, available)
			if due <= 0 {
				continue
			}
			available = clampZero(roundCents(available - due))
			alloc(g.debt.ID).Minimum += due
			snap.MinimumsPaid += due
		}

		// Interest accrual and minimum payments in ranked order.
		for _, d := range ranked {
			var interest float64
			if !d.InterestIncluded {
				interest = s.interest.accrue(d.ID, balances[d.ID], d.InterestRate)
			}
			balances[d.ID] = roundCents(balances[d.ID] + interest)
			totalInterest += interest
			snap.Interest += interest

			due := math.Min(d.MinimumPayment, balances[d.ID])
			if due <= 0 || available+budgetTolerance < due {
				continue
			}
			due = math.Min(due, available)
			balances[d.ID] = clampZero(roundCents(balances[d.ID] - due))
			available = clampZero(roundCents(available - due))
			alloc(d.ID).Minimum += due
			snap.MinimumsPaid += due
		}

		// Whatever is left goes to the top-ranked debt still carrying a balance.
		if available > 0 {
			for _, d := range ranked {
				if balances[d.ID] <= PaidOffEpsilon {
					continue
				}
				extra := math.Min(available, balances[d.ID])
				balances[d.ID] = clampZero(roundCents(balances[d.ID] - extra))
				available = clampZero(roundCents(available - extra))
				alloc(d.ID).Extra += extra
				snap.ExtraPaid += extra
				break
			}
		}
		snap.Unallocated = available

		// Payoff sweep.
		var paidOff []Debt
		remaining := active[:0:0]
		for _, d := range active {
			if balances[d.ID] <= PaidOffEpsilon {
				balances[d.ID] = 0
				paidOff = append(paidOff, d)
				continue
			}
			remaining = append(remaining, d)
		}
		stillPending := pending[:0:0]
		for _, g := range pending {
			if g.maturity <= months {
				paidOff = append(paidOff, g.debt)
				continue
			}
			stillPending = append(stillPending, g)
		}
		active, pending = remaining, stillPending

		if len(paidOff) > 0 {
			next := ""
			if len(active) > 0 {
				next = strategy.Rank(views(active, balances))[0].ID
			}
			date := addMonths(start, months)
			for _, d := range paidOff {
				payoffs[d.ID] = DebtPayoff{DebtID: d.ID, Month: months, Date: timePtr(date), PaidOff: true}
				if d.MinimumPayment <= 0 || (len(active) == 0 && len(pending) == 0) {
					continue
				}
				released += d.MinimumPayment
				res.Redistributions = append(res.Redistributions, Redistribution{
					FromDebtID: d.ID,
					ToDebtID:   next,
					Amount:     d.MinimumPayment,
					Month:      months,
				})
			}
			released = roundCents(released)
		}

		if month == 0 {
			for _, id := range allocOrder {
				a := allocs[id]
				a.Minimum = roundCents(a.Minimum)
				a.Extra = roundCents(a.Extra)
				a.Total = roundCents(a.Minimum + a.Extra)
				res.FirstMonthPayments = append(res.FirstMonthPayments, *a)
			}
		}

		if s.schedule {
			snap.Interest = roundCents(snap.Interest)
			snap.MinimumsPaid = roundCents(snap.MinimumsPaid)
			snap.ExtraPaid = roundCents(snap.ExtraPaid)
			snap.Balances = make(map[string]float64, len(balances))
			for id, b := range balances {
				snap.Balances[id] = b
			}
			res.Schedule = append(res.Schedule, snap)
		}
	}

	res.TotalInterest = roundCents(totalInterest)
	if len(active) > 0 || len(pending) > 0 {
		res.Outcome = OutcomeCapped
		res.Months = s.horizon
		res.PayoffDate = addMonths(start, s.horizon)
	} else {
		res.Outcome = OutcomePaidOff
		res.Converged = true
		res.Months = months
		res.PayoffDate = addMonths(start, months)
	}
	collectPayoffs()
	return res
}

// views copies debts with their current simulated balances for ranking.
func views(debts []Debt, balances map[string]float64) []Debt {
	out := make([]Debt, len(debts))
	for i, d := range debts {
		d.Balance = balances[d.ID]
		out[i] = d
	}
	return out
}

func startOf(sc Scenario) time.Time {
	if sc.StartDate.IsZero() {
		return time.Now()
	}
	return sc.StartDate
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func timePtr(t time.Time) *time.Time {
	return &t
}
