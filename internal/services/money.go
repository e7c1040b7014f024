package services

import (
	"math"

	"github.com/shopspring/decimal"

	"debtplanner/internal/models"
	"debtplanner/internal/payoff"
)

// centsToUnits converts stored cents to the engine's major units.
func centsToUnits(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}

// unitsToCents rounds major units half away from zero to whole cents.
// NaN and infinities map to 0.
func unitsToCents(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Shift(2).Round(0).IntPart()
}

func toEngineDebt(d models.Debt) payoff.Debt {
	return payoff.Debt{
		ID:               d.ID,
		Name:             d.Name,
		Balance:          centsToUnits(d.Balance),
		InterestRate:     d.InterestRate,
		MinimumPayment:   centsToUnits(d.MinimumPayment),
		CurrencyCode:     d.Currency,
		IsGoldLoan:       d.IsGoldLoan,
		FinalPayoffDate:  d.FinalPayoffDate,
		InterestIncluded: d.InterestIncluded,
		OriginalRate:     d.OriginalRate,
	}
}

func toEngineDebts(debts []models.Debt) []payoff.Debt {
	out := make([]payoff.Debt, len(debts))
	for i := range debts {
		out[i] = toEngineDebt(debts[i])
	}
	return out
}

func toEngineFundings(fundings []models.OneTimeFunding) []payoff.Funding {
	out := make([]payoff.Funding, len(fundings))
	for i, f := range fundings {
		out[i] = payoff.Funding{
			ID:           f.ID,
			Amount:       centsToUnits(f.Amount),
			PaymentDate:  f.PaymentDate,
			IsApplied:    f.IsApplied,
			CurrencyCode: f.Currency,
		}
	}
	return out
}
