package kpi

import "fc-manager-backend/internal/model"

// TransferSummary totals a transfer ledger.
type TransferSummary struct {
	TotalSales     float64 `json:"total_sales"`
	TotalPurchases float64 `json:"total_purchases"`
	NetSpend       float64 `json:"net_spend"`
	SaleCount      int     `json:"sale_count"`
	PurchaseCount  int     `json:"purchase_count"`
}

// NetTransferSpend returns purchases minus sales. Positive means net spending.
func NetTransferSpend(transfers []model.Transfer) float64 {
	return TransferTotals(transfers).NetSpend
}

// TransferTotals sums sales and purchases separately.
func TransferTotals(transfers []model.Transfer) TransferSummary {
	var s TransferSummary
	for _, t := range transfers {
		switch t.Type {
		case model.TransferSale:
			s.TotalSales += t.Amount
			s.SaleCount++
		case model.TransferPurchase:
			s.TotalPurchases += t.Amount
			s.PurchaseCount++
		}
	}
	s.NetSpend = s.TotalPurchases - s.TotalSales
	return s
}

// SeasonTransferTotals returns the sales and purchases recorded for one season.
func SeasonTransferTotals(transfers []model.Transfer, season int) (sales, purchases float64) {
	for _, t := range transfers {
		if t.Season != season {
			continue
		}
		switch t.Type {
		case model.TransferSale:
			sales += t.Amount
		case model.TransferPurchase:
			purchases += t.Amount
		}
	}
	return sales, purchases
}
