package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"fc-manager-backend/internal/model"

	"github.com/google/uuid"
)

const journalColumns = `id, career_id, season, entry_date, title, content, tags, created_at, updated_at`

func scanJournalEntry(row rowScanner) (model.JournalEntry, error) {
	var e model.JournalEntry
	var tags string
	err := row.Scan(&e.ID, &e.CareerID, &e.Season, &e.EntryDate, &e.Title, &e.Content, &tags, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return e, err
	}
	e.Tags = []string{}
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &e.Tags); err != nil {
			return e, fmt.Errorf("decoding journal tags: %w", err)
		}
	}
	return e, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encoding journal tags: %w", err)
	}
	return string(b), nil
}

// ListJournalEntries returns entries newest first. A positive season narrows the list.
func (s *SQLStore) ListJournalEntries(ctx context.Context, careerID string, season int) ([]model.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE career_id = ?`
	args := []any{careerID}
	if season > 0 {
		query += ` AND season = ?`
		args = append(args, season)
	}
	query += ` ORDER BY entry_date DESC, created_at DESC`

	rows, err := s.query(ctx, s.db, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing journal entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]model.JournalEntry, 0)
	for rows.Next() {
		e, err := scanJournalEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning journal entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CreateJournalEntry writes a new entry.
func (s *SQLStore) CreateJournalEntry(ctx context.Context, careerID string, in model.CreateJournalInput) (model.JournalEntry, error) {
	return s.insertJournalEntry(ctx, s.db, careerID, in)
}

func (s *SQLStore) insertJournalEntry(ctx context.Context, q querier, careerID string, in model.CreateJournalInput) (model.JournalEntry, error) {
	now := s.timestamp()
	e := model.JournalEntry{
		ID:        uuid.NewString(),
		CareerID:  careerID,
		Season:    in.Season,
		EntryDate: in.EntryDate,
		Title:     in.Title,
		Content:   in.Content,
		Tags:      in.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	tags, err := encodeTags(e.Tags)
	if err != nil {
		return e, err
	}

	_, err = s.exec(ctx, q, `
		INSERT INTO journal_entries (`+journalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CareerID, e.Season, e.EntryDate, e.Title, e.Content, tags, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return e, fmt.Errorf("inserting journal entry: %w", err)
	}
	return e, nil
}

// UpdateJournalEntry applies a partial update to an entry.
func (s *SQLStore) UpdateJournalEntry(ctx context.Context, careerID, id string, in model.UpdateJournalInput) (model.JournalEntry, error) {
	var entry model.JournalEntry
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		e, err := scanJournalEntry(s.queryRow(ctx, tx,
			`SELECT `+journalColumns+` FROM journal_entries WHERE id = ? AND career_id = ?`, id, careerID))
		if err != nil {
			return notFound(err, "journal entry "+id)
		}
		in.Apply(&e)
		if e.Tags == nil {
			e.Tags = []string{}
		}
		e.UpdatedAt = s.timestamp()

		tags, err := encodeTags(e.Tags)
		if err != nil {
			return err
		}
		res, err := s.exec(ctx, tx, `
			UPDATE journal_entries SET season = ?, entry_date = ?, title = ?, content = ?, tags = ?, updated_at = ?
			WHERE id = ? AND career_id = ?`,
			e.Season, e.EntryDate, e.Title, e.Content, tags, e.UpdatedAt, id, careerID,
		)
		if err != nil {
			return fmt.Errorf("updating journal entry: %w", err)
		}
		if err := requireAffected(res, "journal entry "+id); err != nil {
			return err
		}
		entry = e
		return nil
	})
	return entry, err
}

// DeleteJournalEntry removes an entry.
func (s *SQLStore) DeleteJournalEntry(ctx context.Context, careerID, id string) error {
	res, err := s.exec(ctx, s.db, `DELETE FROM journal_entries WHERE id = ? AND career_id = ?`, id, careerID)
	if err != nil {
		return fmt.Errorf("deleting journal entry: %w", err)
	}
	return requireAffected(res, "journal entry "+id)
}
