package payoff

import (
	"fmt"
	"sort"
	"strings"
)

// StrategyID names one of the fixed prioritization rules.
type StrategyID string

const (
	Avalanche    StrategyID = "avalanche"
	Snowball     StrategyID = "snowball"
	BalanceRatio StrategyID = "balance-ratio"
)

// DefaultStrategy is used when no strategy is chosen.
const DefaultStrategy = Avalanche

// Strategy describes a ranking rule for display and selection.
type Strategy struct {
	ID          StrategyID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
}

var catalogue = []Strategy{
	{
		ID:          Avalanche,
		Name:        "Avalanche",
		Description: "Pay the highest interest rate first to minimise total interest.",
	},
	{
		ID:          Snowball,
		Name:        "Snowball",
		Description: "Pay the smallest balance first to close debts quickly.",
	},
	{
		ID:          BalanceRatio,
		Name:        "Balance ratio",
		Description: "Pay the debt with the highest interest-to-balance ratio first.",
	},
}

// Strategies returns the available strategies in display order.
func Strategies() []Strategy {
	out := make([]Strategy, len(catalogue))
	copy(out, catalogue)
	return out
}

// ParseStrategy resolves a strategy id, case-insensitively. The empty string
// resolves to DefaultStrategy.
func ParseStrategy(s string) (StrategyID, error) {
	id := StrategyID(strings.ToLower(strings.TrimSpace(s)))
	if id == "" {
		return DefaultStrategy, nil
	}
	for _, st := range catalogue {
		if st.ID == id {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown payoff strategy %q", s)
}

// Rank orders debts by the strategy: gold loans first, then regular loans,
// each group sorted by the strategy key. Equal keys keep their input order.
// The input slice is not modified. Unknown ids rank as DefaultStrategy.
func (id StrategyID) Rank(debts []Debt) []Debt {
	gold := make([]Debt, 0, len(debts))
	regular := make([]Debt, 0, len(debts))
	for _, d := range debts {
		if d.IsGoldLoan {
			gold = append(gold, d)
		} else {
			regular = append(regular, d)
		}
	}

	sortGroup(gold, id.key(true), id.ascending())
	sortGroup(regular, id.key(false), id.ascending())

	return append(gold, regular...)
}

func sortGroup(group []Debt, key func(Debt) float64, ascending bool) {
	sort.SliceStable(group, func(i, j int) bool {
		if ascending {
			return key(group[i]) < key(group[j])
		}
		return key(group[i]) > key(group[j])
	})
}

func (id StrategyID) ascending() bool {
	return id == Snowball
}

func (id StrategyID) key(gold bool) func(Debt) float64 {
	switch id {
	case Snowball:
		return func(d Debt) float64 { return sanitize(d.Balance) }
	case BalanceRatio:
		if gold {
			return goldRatioKey
		}
		return ratioKey
	default:
		return func(d Debt) float64 { return sanitize(d.InterestRate) }
	}
}

// ratioKey is rate / balance; a zero balance has nothing left to prioritise.
func ratioKey(d Debt) float64 {
	balance := sanitize(d.Balance)
	if balance == 0 {
		return 0
	}
	return sanitize(d.InterestRate) / balance
}

// goldRatioKey is rate * (balance / payment), falling back to rate * balance
// when there is no payment.
func goldRatioKey(d Debt) float64 {
	rate := sanitize(d.InterestRate)
	balance := sanitize(d.Balance)
	payment := sanitize(d.MinimumPayment)
	if payment == 0 {
		return rate * balance
	}
	return rate * (balance / payment)
}
