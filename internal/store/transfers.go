package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fc-manager-backend/internal/kpi"
	"fc-manager-backend/internal/model"

	"github.com/google/uuid"
)

// TransferFilter narrows ListTransfers. Zero fields match everything.
type TransferFilter struct {
	Type   model.TransferType
	Season int
}

const transferColumns = `id, career_id, player_id, player_name, type, amount, season, transfer_date,
	from_club, to_club, notes, created_at`

func scanTransfer(row rowScanner) (model.Transfer, error) {
	var t model.Transfer
	err := row.Scan(
		&t.ID, &t.CareerID, &t.PlayerID, &t.PlayerName, &t.Type, &t.Amount, &t.Season, &t.TransferDate,
		&t.FromClub, &t.ToClub, &t.Notes, &t.CreatedAt,
	)
	return t, err
}

// ListTransfers returns transfers, latest season and newest record first.
func (s *SQLStore) ListTransfers(ctx context.Context, careerID string, f TransferFilter) ([]model.Transfer, error) {
	return s.listTransfers(ctx, s.db, careerID, f)
}

func (s *SQLStore) listTransfers(ctx context.Context, q querier, careerID string, f TransferFilter) ([]model.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE career_id = ?`
	args := []any{careerID}
	if f.Type != "" {
		query += ` AND type = ?`
		args = append(args, string(f.Type))
	}
	if f.Season > 0 {
		query += ` AND season = ?`
		args = append(args, f.Season)
	}
	query += ` ORDER BY season DESC, created_at DESC`

	rows, err := s.query(ctx, q, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transfers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	transfers := make([]model.Transfer, 0)
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transfer: %w", err)
		}
		transfers = append(transfers, t)
	}
	return transfers, rows.Err()
}

// CreateTransfer records a transfer and refreshes the season's budget entry.
func (s *SQLStore) CreateTransfer(ctx context.Context, careerID string, in model.CreateTransferInput) (model.Transfer, error) {
	var transfer model.Transfer
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		transfer, err = s.insertTransfer(ctx, tx, careerID, in)
		if err != nil {
			return err
		}
		return s.syncSeasonTransfers(ctx, tx, careerID, transfer.Season)
	})
	return transfer, err
}

func (s *SQLStore) insertTransfer(ctx context.Context, q querier, careerID string, in model.CreateTransferInput) (model.Transfer, error) {
	t := model.Transfer{
		ID:           uuid.NewString(),
		CareerID:     careerID,
		PlayerID:     in.PlayerID,
		PlayerName:   in.PlayerName,
		Type:         in.Type,
		Amount:       in.Amount,
		Season:       in.Season,
		TransferDate: in.TransferDate,
		FromClub:     in.FromClub,
		ToClub:       in.ToClub,
		Notes:        in.Notes,
		CreatedAt:    s.timestamp(),
	}
	_, err := s.exec(ctx, q, `
		INSERT INTO transfers (`+transferColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.CareerID, t.PlayerID, t.PlayerName, string(t.Type), t.Amount, t.Season, t.TransferDate,
		t.FromClub, t.ToClub, t.Notes, t.CreatedAt,
	)
	if err != nil {
		return t, fmt.Errorf("inserting transfer: %w", err)
	}
	return t, nil
}

// DeleteTransfer removes a transfer and refreshes the season's budget entry.
func (s *SQLStore) DeleteTransfer(ctx context.Context, careerID, id string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		var season int
		err := s.queryRow(ctx, tx, `SELECT season FROM transfers WHERE id = ? AND career_id = ?`, id, careerID).Scan(&season)
		if err != nil {
			return notFound(err, "transfer "+id)
		}
		if _, err := s.exec(ctx, tx, `DELETE FROM transfers WHERE id = ? AND career_id = ?`, id, careerID); err != nil {
			return fmt.Errorf("deleting transfer: %w", err)
		}
		return s.syncSeasonTransfers(ctx, tx, careerID, season)
	})
}

// syncSeasonTransfers copies the season's transfer totals onto its budget
// entry, if one exists, and recomputes the final balance.
func (s *SQLStore) syncSeasonTransfers(ctx context.Context, q querier, careerID string, season int) error {
	entry, err := s.budgetEntryBySeason(ctx, q, careerID, season)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	transfers, err := s.listTransfers(ctx, q, careerID, TransferFilter{Season: season})
	if err != nil {
		return err
	}
	entry.TransferSales, entry.TransferPurchases = kpi.SeasonTransferTotals(transfers, season)
	entry.UpdatedAt = s.timestamp()
	return s.writeBudgetEntry(ctx, q, entry)
}
