// Package kpi computes derived career statistics from records already in memory.
// Every function is pure and safe for concurrent use.
package kpi

import (
	"fmt"

	"fc-manager-backend/internal/model"
)

// Financials is the aggregate of a set of budget entries.
type Financials struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	NetBalance    float64 `json:"net_balance"`
}

// CalculateBalance returns the closing balance of one season.
// Other income is reported separately and is not part of the balance.
func CalculateBalance(e model.BudgetEntry) float64 {
	return e.InitialBudget +
		e.TransferSales -
		e.TransferPurchases +
		e.MatchRevenue -
		e.WageExpenses -
		e.OtherExpenses
}

// AggregateFinancials sums income and expenses across entries.
func AggregateFinancials(entries []model.BudgetEntry) Financials {
	var f Financials
	for _, e := range entries {
		f.TotalIncome += e.InitialBudget + e.TransferSales + e.MatchRevenue + e.OtherIncome
		f.TotalExpenses += e.TransferPurchases + e.WageExpenses + e.OtherExpenses
	}
	f.NetBalance = f.TotalIncome - f.TotalExpenses
	return f
}

// SeasonBalance pairs a season with its computed balance.
type SeasonBalance struct {
	Season  int     `json:"season"`
	Balance float64 `json:"balance"`
}

// SeasonBalances returns the balance of every entry in input order.
func SeasonBalances(entries []model.BudgetEntry) []SeasonBalance {
	out := make([]SeasonBalance, 0, len(entries))
	for _, e := range entries {
		out = append(out, SeasonBalance{Season: e.Season, Balance: CalculateBalance(e)})
	}
	return out
}

// NextSeason returns the season after the latest one, or 1 for an empty career.
func NextSeason(entries []model.BudgetEntry) int {
	latest := 0
	for _, e := range entries {
		if e.Season > latest {
			latest = e.Season
		}
	}
	return latest + 1
}

// FormatCurrency renders an amount in millions of euros.
func FormatCurrency(millions float64) string {
	return fmt.Sprintf("%.2fM€", millions)
}
