package kpi

import (
	"testing"

	"fc-manager-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateBalance(t *testing.T) {
	tests := []struct {
		name  string
		entry model.BudgetEntry
		want  float64
	}{
		{
			name:  "all zero",
			entry: model.BudgetEntry{},
			want:  0,
		},
		{
			name: "signed terms",
			entry: model.BudgetEntry{
				InitialBudget:     10,
				TransferSales:     5,
				TransferPurchases: 3,
				MatchRevenue:      2,
				WageExpenses:      4,
				OtherExpenses:     1,
			},
			want: 9,
		},
		{
			name:  "other income excluded",
			entry: model.BudgetEntry{InitialBudget: 20, OtherIncome: 7},
			want:  20,
		},
		{
			name:  "negative balance",
			entry: model.BudgetEntry{InitialBudget: 5, TransferPurchases: 30},
			want:  -25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CalculateBalance(tt.entry), 1e-9)
		})
	}
}

func TestAggregateFinancials(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, Financials{}, AggregateFinancials(nil))
	})

	t.Run("two seasons", func(t *testing.T) {
		entries := []model.BudgetEntry{
			{Season: 1, InitialBudget: 50, TransferSales: 10, TransferPurchases: 20, MatchRevenue: 5, WageExpenses: 15, OtherIncome: 2, OtherExpenses: 1},
			{Season: 2, InitialBudget: 31, MatchRevenue: 6, WageExpenses: 16},
		}
		got := AggregateFinancials(entries)
		assert.InDelta(t, 104.0, got.TotalIncome, 1e-9)
		assert.InDelta(t, 52.0, got.TotalExpenses, 1e-9)
		assert.InDelta(t, 52.0, got.NetBalance, 1e-9)
	})
}

func TestSeasonBalancesAndNextSeason(t *testing.T) {
	entries := []model.BudgetEntry{
		{Season: 3, InitialBudget: 10},
		{Season: 1, InitialBudget: 4, WageExpenses: 1},
	}
	assert.Equal(t, []SeasonBalance{{Season: 3, Balance: 10}, {Season: 1, Balance: 3}}, SeasonBalances(entries))
	assert.Equal(t, 4, NextSeason(entries))
	assert.Equal(t, 1, NextSeason(nil))
}

func TestNetTransferSpend(t *testing.T) {
	transfers := []model.Transfer{
		{Type: model.TransferPurchase, Amount: 50},
		{Type: model.TransferSale, Amount: 20},
	}
	assert.InDelta(t, 30.0, NetTransferSpend(transfers), 1e-9)

	profit := []model.Transfer{{Type: model.TransferSale, Amount: 12}}
	assert.InDelta(t, -12.0, NetTransferSpend(profit), 1e-9)
	assert.Zero(t, NetTransferSpend(nil))
}

func TestTransferTotals(t *testing.T) {
	transfers := []model.Transfer{
		{Type: model.TransferPurchase, Amount: 50, Season: 1},
		{Type: model.TransferSale, Amount: 20, Season: 1},
		{Type: model.TransferSale, Amount: 8, Season: 2},
	}
	got := TransferTotals(transfers)
	assert.Equal(t, TransferSummary{TotalSales: 28, TotalPurchases: 50, NetSpend: 22, SaleCount: 2, PurchaseCount: 1}, got)

	sales, purchases := SeasonTransferTotals(transfers, 1)
	assert.Equal(t, 20.0, sales)
	assert.Equal(t, 50.0, purchases)

	sales, purchases = SeasonTransferTotals(transfers, 3)
	assert.Zero(t, sales)
	assert.Zero(t, purchases)
}

func TestSquadComposition_Empty(t *testing.T) {
	c := SquadComposition(nil)
	require.Len(t, c.ByStatus, 5)
	require.Len(t, c.ByOrigin, 3)
	for _, s := range append(c.ByStatus, c.ByOrigin...) {
		assert.Zero(t, s.Count, s.Category)
		assert.Zero(t, s.Percentage, s.Category)
	}
}

func TestSquadComposition_Order(t *testing.T) {
	players := []model.Player{
		{Status: model.StatusOnLoan, Origin: model.OriginPurchased},
		{Status: model.StatusStarter, Origin: model.OriginAcademy},
		{Status: model.StatusStarter, Origin: model.OriginAcademy},
		{Status: model.StatusReserve, Origin: model.OriginInitial},
	}
	c := SquadComposition(players)

	assert.Equal(t, 4, c.Total)
	assert.Equal(t, []CategoryShare{
		{Category: "Titulaire", Count: 2, Percentage: 50},
		{Category: "Remplaçant", Count: 0, Percentage: 0},
		{Category: "Réserve", Count: 1, Percentage: 25},
		{Category: "À vendre", Count: 0, Percentage: 0},
		{Category: "Prêt", Count: 1, Percentage: 25},
	}, c.ByStatus)
	assert.Equal(t, []CategoryShare{
		{Category: "Académie", Count: 2, Percentage: 50},
		{Category: "Initial", Count: 1, Percentage: 25},
		{Category: "Acheté", Count: 1, Percentage: 25},
	}, c.ByOrigin)
}

func TestSquadComposition_PercentageSumBound(t *testing.T) {
	for n := 1; n <= 40; n++ {
		players := make([]model.Player, n)
		for i := range players {
			players[i].Status = model.PlayerStatuses[i%len(model.PlayerStatuses)]
		}
		sum := 0
		for _, s := range SquadComposition(players).ByStatus {
			sum += s.Percentage
		}
		diff := sum - 100
		if diff < 0 {
			diff = -diff
		}
		assert.LessOrEqual(t, diff, len(model.PlayerStatuses)-1, "squad of %d", n)
	}
}

func TestAverageOverall(t *testing.T) {
	assert.Equal(t, 80, AverageOverall([]model.Player{{OVR: 70}, {OVR: 80}, {OVR: 90}}))
	assert.Equal(t, 0, AverageOverall(nil))
	assert.Equal(t, 72, AverageOverall([]model.Player{{OVR: 71}, {OVR: 72}}))
}

func TestSquad(t *testing.T) {
	players := []model.Player{
		{OVR: 60, Origin: model.OriginAcademy, PlayStyles: 7},
		{OVR: 70, Origin: model.OriginPurchased, PlayStyles: 3},
		{OVR: 80, Origin: model.OriginInitial, PlayStyles: 9},
	}
	assert.Equal(t, SquadKPIs{TotalPlayers: 3, AcademyPercentage: 33, AverageOverall: 70, ManyPlayStyles: 2}, Squad(players))
	assert.Equal(t, SquadKPIs{}, Squad(nil))
}

func TestPotentialTier(t *testing.T) {
	tests := []struct {
		ovr, potential int
		want           Tier
	}{
		{70, 80, HighPotential},
		{70, 95, HighPotential},
		{70, 79, MediumPotential},
		{70, 75, MediumPotential},
		{70, 74, SomePotential},
		{70, 71, SomePotential},
		{75, 75, AtPeak},
		{80, 72, AtPeak},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, PotentialTier(tt.ovr, tt.potential), "ovr=%d potential=%d", tt.ovr, tt.potential)
		})
	}
}

func TestTierCounts(t *testing.T) {
	counts := TierCounts([]model.Player{{OVR: 60, Potential: 85}, {OVR: 80, Potential: 80}})
	assert.Equal(t, map[Tier]int{AtPeak: 1, SomePotential: 0, MediumPotential: 0, HighPotential: 1}, counts)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "70 ⭐⭐⭐", FormatRating(70, 85))
	assert.Equal(t, "70 ⭐", FormatRating(70, 72))
	assert.Equal(t, "88", FormatRating(88, 88))
	assert.Equal(t, "12.50M€", FormatCurrency(12.5))
	assert.Equal(t, 0, Percentage(3, 0))

	text, err := MediumPotential.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "medium_potential", string(text))
}

func TestTierTextRoundTrip(t *testing.T) {
	for _, tier := range []Tier{AtPeak, SomePotential, MediumPotential, HighPotential} {
		text, err := tier.MarshalText()
		require.NoError(t, err)

		var got Tier
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, tier, got)
	}

	var bad Tier
	assert.Error(t, bad.UnmarshalText([]byte("legendary")))
}
