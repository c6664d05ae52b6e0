package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"fc-manager-backend/internal/model"

	"github.com/google/uuid"
)

var _ Store = (*SQLStore)(nil)

const careerColumns = `id, user_id, club_name, club_id, league_name, country, manager_name, project_type,
	current_season, budget, difficulty, start_date, is_active, is_archived, settings, created_at, updated_at`

func scanCareer(row rowScanner) (model.Career, error) {
	var c model.Career
	var settings string
	err := row.Scan(
		&c.ID, &c.UserID, &c.ClubName, &c.ClubID, &c.LeagueName, &c.Country, &c.ManagerName, &c.ProjectType,
		&c.CurrentSeason, &c.Budget, &c.Difficulty, &c.StartDate, &c.IsActive, &c.IsArchived, &settings,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return c, err
	}
	c.Settings = map[string]any{}
	if settings != "" {
		if err := json.Unmarshal([]byte(settings), &c.Settings); err != nil {
			return c, fmt.Errorf("decoding career settings: %w", err)
		}
	}
	return c, nil
}

// ListCareers returns the user's careers, newest first.
func (s *SQLStore) ListCareers(ctx context.Context, userID string) ([]model.Career, error) {
	rows, err := s.query(ctx, s.db,
		`SELECT `+careerColumns+` FROM careers WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing careers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	careers := make([]model.Career, 0)
	for rows.Next() {
		c, err := scanCareer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning career: %w", err)
		}
		careers = append(careers, c)
	}
	return careers, rows.Err()
}

// GetCareer returns one of the user's careers.
func (s *SQLStore) GetCareer(ctx context.Context, userID, id string) (model.Career, error) {
	return s.getCareer(ctx, s.db, userID, id)
}

func (s *SQLStore) getCareer(ctx context.Context, q querier, userID, id string) (model.Career, error) {
	c, err := scanCareer(s.queryRow(ctx, q,
		`SELECT `+careerColumns+` FROM careers WHERE id = ? AND user_id = ?`, id, userID))
	if err != nil {
		return c, notFound(err, "career "+id)
	}
	return c, nil
}

// CreateCareer inserts a career with defaults filled in and makes it the active one.
func (s *SQLStore) CreateCareer(ctx context.Context, userID string, in model.CreateCareerInput) (model.Career, error) {
	var career model.Career
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		career, err = s.insertCareer(ctx, tx, userID, in)
		if err != nil {
			return err
		}
		return s.setActive(ctx, tx, userID, &career.ID)
	})
	return career, err
}

func (s *SQLStore) insertCareer(ctx context.Context, q querier, userID string, in model.CreateCareerInput) (model.Career, error) {
	now := s.timestamp()
	c := model.Career{
		ID:            uuid.NewString(),
		UserID:        userID,
		ClubName:      in.ClubName,
		LeagueName:    in.LeagueName,
		Country:       in.Country,
		ManagerName:   in.ManagerName,
		ProjectType:   in.ProjectType,
		CurrentSeason: in.CurrentSeason,
		Budget:        in.Budget,
		Difficulty:    in.Difficulty,
		StartDate:     now,
		IsActive:      true,
		Settings:      map[string]any{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if c.Country == "" {
		c.Country = "Unknown"
	}
	if c.ProjectType == "" {
		c.ProjectType = model.DefaultProjectType
	}
	if c.CurrentSeason == 0 {
		c.CurrentSeason = 1
	}
	if c.Difficulty == "" {
		c.Difficulty = "Normal"
	}

	_, err := s.exec(ctx, q, `
		INSERT INTO careers (`+careerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.ClubName, c.ClubID, c.LeagueName, c.Country, c.ManagerName, string(c.ProjectType),
		c.CurrentSeason, c.Budget, c.Difficulty, c.StartDate, c.IsActive, c.IsArchived, "{}",
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return c, fmt.Errorf("inserting career: %w", err)
	}
	return c, nil
}

// UpdateCareer applies a partial update to one of the user's careers.
func (s *SQLStore) UpdateCareer(ctx context.Context, userID, id string, in model.UpdateCareerInput) (model.Career, error) {
	var career model.Career
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		c, err := s.getCareer(ctx, tx, userID, id)
		if err != nil {
			return err
		}
		in.Apply(&c)
		c.UpdatedAt = s.timestamp()

		res, err := s.exec(ctx, tx, `
			UPDATE careers SET club_name = ?, league_name = ?, country = ?, manager_name = ?, project_type = ?,
				current_season = ?, budget = ?, difficulty = ?, is_active = ?, is_archived = ?, updated_at = ?
			WHERE id = ? AND user_id = ?`,
			c.ClubName, c.LeagueName, c.Country, c.ManagerName, string(c.ProjectType),
			c.CurrentSeason, c.Budget, c.Difficulty, c.IsActive, c.IsArchived, c.UpdatedAt,
			id, userID,
		)
		if err != nil {
			return fmt.Errorf("updating career: %w", err)
		}
		if err := requireAffected(res, "career "+id); err != nil {
			return err
		}
		career = c
		return nil
	})
	return career, err
}

// DeleteCareer removes a career with all of its records and clears it as
// the active career.
func (s *SQLStore) DeleteCareer(ctx context.Context, userID, id string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := s.getCareer(ctx, tx, userID, id); err != nil {
			return err
		}
		for _, table := range []string{"players", "transfers", "budget_entries", "journal_entries"} {
			if _, err := s.exec(ctx, tx, `DELETE FROM `+table+` WHERE career_id = ?`, id); err != nil {
				return fmt.Errorf("deleting %s of career %s: %w", table, id, err)
			}
		}
		if _, err := s.exec(ctx, tx, `DELETE FROM careers WHERE id = ? AND user_id = ?`, id, userID); err != nil {
			return fmt.Errorf("deleting career: %w", err)
		}
		if _, err := s.exec(ctx, tx,
			`UPDATE user_settings SET active_career_id = NULL, updated_at = ? WHERE user_id = ? AND active_career_id = ?`,
			s.timestamp(), userID, id); err != nil {
			return fmt.Errorf("clearing active career: %w", err)
		}
		return nil
	})
}

// ActiveCareer returns the user's selected career, or nil when none is set.
// A selection pointing at a career that no longer exists is cleared.
func (s *SQLStore) ActiveCareer(ctx context.Context, userID string) (*model.Career, error) {
	var active sql.NullString
	err := s.queryRow(ctx, s.db, `SELECT active_career_id FROM user_settings WHERE user_id = ?`, userID).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !active.Valid) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading active career: %w", err)
	}

	c, err := s.GetCareer(ctx, userID, active.String)
	if errors.Is(err, ErrNotFound) {
		if err := s.setActive(ctx, s.db, userID, nil); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// SetActiveCareer selects careerID for the user; nil clears the selection.
func (s *SQLStore) SetActiveCareer(ctx context.Context, userID string, careerID *string) (*model.Career, error) {
	if careerID == nil {
		return nil, s.setActive(ctx, s.db, userID, nil)
	}
	c, err := s.GetCareer(ctx, userID, *careerID)
	if err != nil {
		return nil, err
	}
	if err := s.setActive(ctx, s.db, userID, careerID); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *SQLStore) setActive(ctx context.Context, q querier, userID string, careerID *string) error {
	_, err := s.exec(ctx, q, `
		INSERT INTO user_settings (user_id, active_career_id, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET active_career_id = excluded.active_career_id, updated_at = excluded.updated_at`,
		userID, careerID, s.timestamp())
	if err != nil {
		return fmt.Errorf("setting active career: %w", err)
	}
	return nil
}
