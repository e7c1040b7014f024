package payoff

// AnomalyKind classifies an input or result the engine had to correct.
type AnomalyKind string

const (
	// AnomalyMonthlyInterestCapped: monthly interest exceeded the plausible
	// fraction of the balance and was capped.
	AnomalyMonthlyInterestCapped AnomalyKind = "monthly_interest_capped"
	// AnomalyHorizonInterestCapped: compounded interest exceeded the allowed
	// multiple of the principal and was short-circuited.
	AnomalyHorizonInterestCapped AnomalyKind = "horizon_interest_capped"
	// AnomalyDuplicateDebt: a debt id appeared more than once; later copies
	// were dropped.
	AnomalyDuplicateDebt AnomalyKind = "duplicate_debt"
	// AnomalyInvalidInput: a NaN, infinite or negative field was treated as zero.
	AnomalyInvalidInput AnomalyKind = "invalid_input"
)

// Anomaly describes one correction.
type Anomaly struct {
	Kind   AnomalyKind
	DebtID string
	Value  float64
	Limit  float64
}

// Observer receives anomalies. Implementations must be safe for concurrent
// use when runs execute in parallel.
type Observer interface {
	Anomaly(a Anomaly)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(a Anomaly)

// Anomaly calls f(a).
func (f ObserverFunc) Anomaly(a Anomaly) { f(a) }

type nopObserver struct{}

func (nopObserver) Anomaly(Anomaly) {}
