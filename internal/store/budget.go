package store

import (
	"context"
	"database/sql"
	"fmt"

	"fc-manager-backend/internal/kpi"
	"fc-manager-backend/internal/model"

	"github.com/google/uuid"
)

const budgetColumns = `id, career_id, season, initial_budget, transfer_sales, transfer_purchases, match_revenue,
	wage_expenses, other_income, other_expenses, final_balance, created_at, updated_at`

func scanBudgetEntry(row rowScanner) (model.BudgetEntry, error) {
	var b model.BudgetEntry
	err := row.Scan(
		&b.ID, &b.CareerID, &b.Season, &b.InitialBudget, &b.TransferSales, &b.TransferPurchases, &b.MatchRevenue,
		&b.WageExpenses, &b.OtherIncome, &b.OtherExpenses, &b.FinalBalance, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

// ListBudgetEntries returns one entry per season in season order.
func (s *SQLStore) ListBudgetEntries(ctx context.Context, careerID string) ([]model.BudgetEntry, error) {
	return s.listBudgetEntries(ctx, s.db, careerID)
}

func (s *SQLStore) listBudgetEntries(ctx context.Context, q querier, careerID string) ([]model.BudgetEntry, error) {
	rows, err := s.query(ctx, q,
		`SELECT `+budgetColumns+` FROM budget_entries WHERE career_id = ? ORDER BY season`, careerID)
	if err != nil {
		return nil, fmt.Errorf("listing budget entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]model.BudgetEntry, 0)
	for rows.Next() {
		b, err := scanBudgetEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning budget entry: %w", err)
		}
		entries = append(entries, b)
	}
	return entries, rows.Err()
}

func (s *SQLStore) budgetEntryBySeason(ctx context.Context, q querier, careerID string, season int) (model.BudgetEntry, error) {
	b, err := scanBudgetEntry(s.queryRow(ctx, q,
		`SELECT `+budgetColumns+` FROM budget_entries WHERE career_id = ? AND season = ?`, careerID, season))
	if err != nil {
		return b, notFound(err, fmt.Sprintf("budget season %d", season))
	}
	return b, nil
}

// CreateBudgetEntry opens a season. When in.Season is zero the season after
// the latest existing one is used. Transfer totals are taken from the ledger.
func (s *SQLStore) CreateBudgetEntry(ctx context.Context, careerID string, in model.CreateBudgetInput) (model.BudgetEntry, error) {
	var entry model.BudgetEntry
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if in.Season == 0 {
			existing, err := s.listBudgetEntries(ctx, tx, careerID)
			if err != nil {
				return err
			}
			in.Season = kpi.NextSeason(existing)
		}
		var err error
		entry, err = s.insertBudgetEntry(ctx, tx, careerID, in)
		return err
	})
	return entry, err
}

// insertBudgetEntry relies on the (career_id, season) unique index, so two
// concurrent creates of one season leave exactly one row and one ErrConflict.
func (s *SQLStore) insertBudgetEntry(ctx context.Context, q querier, careerID string, in model.CreateBudgetInput) (model.BudgetEntry, error) {
	transfers, err := s.listTransfers(ctx, q, careerID, TransferFilter{Season: in.Season})
	if err != nil {
		return model.BudgetEntry{}, err
	}

	now := s.timestamp()
	b := model.BudgetEntry{
		ID:            uuid.NewString(),
		CareerID:      careerID,
		Season:        in.Season,
		InitialBudget: in.InitialBudget,
		MatchRevenue:  in.MatchRevenue,
		WageExpenses:  in.WageExpenses,
		OtherIncome:   in.OtherIncome,
		OtherExpenses: in.OtherExpenses,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	b.TransferSales, b.TransferPurchases = kpi.SeasonTransferTotals(transfers, in.Season)
	b.FinalBalance = kpi.CalculateBalance(b)

	_, err = s.exec(ctx, q, `
		INSERT INTO budget_entries (`+budgetColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.CareerID, b.Season, b.InitialBudget, b.TransferSales, b.TransferPurchases, b.MatchRevenue,
		b.WageExpenses, b.OtherIncome, b.OtherExpenses, b.FinalBalance, b.CreatedAt, b.UpdatedAt,
	)
	if uniqueViolation(err) {
		return model.BudgetEntry{}, fmt.Errorf("budget season %d: %w", in.Season, ErrConflict)
	}
	if err != nil {
		return model.BudgetEntry{}, fmt.Errorf("inserting budget entry: %w", err)
	}
	return b, nil
}

// UpdateBudgetEntry edits the manual amounts of a season and recomputes its balance.
func (s *SQLStore) UpdateBudgetEntry(ctx context.Context, careerID, id string, in model.UpdateBudgetInput) (model.BudgetEntry, error) {
	var entry model.BudgetEntry
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		b, err := scanBudgetEntry(s.queryRow(ctx, tx,
			`SELECT `+budgetColumns+` FROM budget_entries WHERE id = ? AND career_id = ?`, id, careerID))
		if err != nil {
			return notFound(err, "budget entry "+id)
		}
		in.Apply(&b)
		b.UpdatedAt = s.timestamp()
		if err := s.writeBudgetEntry(ctx, tx, b); err != nil {
			return err
		}
		entry = b
		entry.FinalBalance = kpi.CalculateBalance(b)
		return nil
	})
	return entry, err
}

// writeBudgetEntry stores every amount of b, deriving final_balance.
func (s *SQLStore) writeBudgetEntry(ctx context.Context, q querier, b model.BudgetEntry) error {
	res, err := s.exec(ctx, q, `
		UPDATE budget_entries SET initial_budget = ?, transfer_sales = ?, transfer_purchases = ?,
			match_revenue = ?, wage_expenses = ?, other_income = ?, other_expenses = ?,
			final_balance = ?, updated_at = ?
		WHERE id = ? AND career_id = ?`,
		b.InitialBudget, b.TransferSales, b.TransferPurchases, b.MatchRevenue, b.WageExpenses,
		b.OtherIncome, b.OtherExpenses, kpi.CalculateBalance(b), b.UpdatedAt,
		b.ID, b.CareerID,
	)
	if err != nil {
		return fmt.Errorf("updating budget entry: %w", err)
	}
	return requireAffected(res, "budget entry "+b.ID)
}
