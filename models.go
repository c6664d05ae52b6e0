package main

import (
	"fc-manager-backend/internal/kpi"
	"fc-manager-backend/internal/model"
)

// PlayerView is a player with its rating indicators.
type PlayerView struct {
	model.Player
	Tier   kpi.Tier `json:"tier"`
	Rating string   `json:"rating"`
}

func newPlayerView(p model.Player) PlayerView {
	return PlayerView{
		Player: p,
		Tier:   kpi.PotentialTier(p.OVR, p.Potential),
		Rating: kpi.FormatRating(p.OVR, p.Potential),
	}
}

// Overview contains the squad dashboard of a career.
type Overview struct {
	CareerID       string           `json:"career_id"`
	ClubName       string           `json:"club_name"`
	LeagueName     string           `json:"league_name"`
	CurrentSeason  int              `json:"current_season"`
	KPIs           kpi.SquadKPIs    `json:"kpis"`
	Composition    kpi.Composition  `json:"composition"`
	PotentialTiers map[kpi.Tier]int `json:"potential_tiers"`
}

// Finances contains the financial dashboard of a career.
type Finances struct {
	Summary          kpi.Financials      `json:"summary"`
	NetBalanceLabel  string              `json:"net_balance_label"`
	Seasons          []kpi.SeasonBalance `json:"seasons"`
	Transfers        kpi.TransferSummary `json:"transfers"`
	NetTransferSpend float64             `json:"net_transfer_spend"`
	NextSeason       int                 `json:"next_season"`
}

// TransferList is a transfer ledger with its totals.
type TransferList struct {
	Transfers []model.Transfer    `json:"transfers"`
	Summary   kpi.TransferSummary `json:"summary"`
}

// BudgetList is every season of a career with the aggregate figures.
type BudgetList struct {
	Entries    []model.BudgetEntry `json:"entries"`
	Summary    kpi.Financials      `json:"summary"`
	NextSeason int                 `json:"next_season"`
}

// ActiveCareerRequest selects a career; a null id clears the selection.
type ActiveCareerRequest struct {
	CareerID *string `json:"career_id"`
}
