package payoff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(debts []Debt) []string {
	out := make([]string, len(debts))
	for i, d := range debts {
		out[i] = d.ID
	}
	return out
}

func sampleDebts() []Debt {
	return []Debt{
		{ID: "card", Balance: 3000, InterestRate: 24, MinimumPayment: 90},
		{ID: "car", Balance: 8000, InterestRate: 6, MinimumPayment: 250},
		{ID: "store", Balance: 400, InterestRate: 18, MinimumPayment: 25},
		{ID: "gold", Balance: 5000, InterestRate: 12, MinimumPayment: 100, IsGoldLoan: true},
	}
}

func TestRank(t *testing.T) {
	t.Run("avalanche orders by rate descending with gold first", func(t *testing.T) {
		assert.Equal(t, []string{"gold", "card", "store", "car"}, ids(Avalanche.Rank(sampleDebts())))
	})

	t.Run("snowball orders by balance ascending", func(t *testing.T) {
		assert.Equal(t, []string{"gold", "store", "card", "car"}, ids(Snowball.Rank(sampleDebts())))
	})

	t.Run("balance ratio orders by rate over balance", func(t *testing.T) {
		// store 0.045, card 0.008, car 0.00075
		assert.Equal(t, []string{"gold", "store", "card", "car"}, ids(BalanceRatio.Rank(sampleDebts())))
	})

	t.Run("balance ratio sorts gold loans by rate times payments left", func(t *testing.T) {
		debts := []Debt{
			{ID: "g1", Balance: 1000, InterestRate: 10, MinimumPayment: 100, IsGoldLoan: true},
			{ID: "g2", Balance: 1000, InterestRate: 10, MinimumPayment: 50, IsGoldLoan: true},
			{ID: "g3", Balance: 1000, InterestRate: 1, IsGoldLoan: true},
		}
		// g1 100, g2 200, g3 1000
		assert.Equal(t, []string{"g3", "g2", "g1"}, ids(BalanceRatio.Rank(debts)))
	})

	t.Run("ties keep input order", func(t *testing.T) {
		debts := []Debt{
			{ID: "a", Balance: 100, InterestRate: 10},
			{ID: "b", Balance: 200, InterestRate: 10},
			{ID: "c", Balance: 300, InterestRate: 10},
		}
		assert.Equal(t, []string{"a", "b", "c"}, ids(Avalanche.Rank(debts)))
	})

	t.Run("empty list", func(t *testing.T) {
		assert.Empty(t, Snowball.Rank(nil))
	})

	t.Run("input is not modified", func(t *testing.T) {
		debts := sampleDebts()
		Snowball.Rank(debts)
		assert.Equal(t, sampleDebts(), debts)
	})

	t.Run("ranking is a fixed point", func(t *testing.T) {
		for _, st := range Strategies() {
			once := st.ID.Rank(sampleDebts())
			twice := st.ID.Rank(once)
			assert.Equal(t, ids(once), ids(twice), st.ID)
			assert.Len(t, once, len(sampleDebts()))
		}
	})
}

func TestParseStrategy(t *testing.T) {
	id, err := ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, DefaultStrategy, id)

	id, err = ParseStrategy(" Snowball ")
	require.NoError(t, err)
	assert.Equal(t, Snowball, id)

	id, err = ParseStrategy("balance-ratio")
	require.NoError(t, err)
	assert.Equal(t, BalanceRatio, id)

	_, err = ParseStrategy("lottery")
	assert.Error(t, err)
}

func TestStrategiesReturnsCopy(t *testing.T) {
	list := Strategies()
	require.Len(t, list, 3)
	list[0].Name = "changed"
	assert.Equal(t, "Avalanche", Strategies()[0].Name)
}
