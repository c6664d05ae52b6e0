package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"fc-manager-backend/internal/model"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PlayerFilter narrows ListPlayers. Zero fields match everything.
type PlayerFilter struct {
	Status   model.PlayerStatus
	Origin   model.PlayerOrigin
	Position string
}

const playerColumns = `id, career_id, first_name, last_name, position, ovr, potential, age, origin, salary, value,
	status, play_styles, play_styles_plus, matches_played, minutes_played, goals, assists, clean_sheets,
	contract_expiry, jersey_number, nationality, notes, created_at, updated_at`

func scanPlayer(row rowScanner) (model.Player, error) {
	var p model.Player
	err := row.Scan(
		&p.ID, &p.CareerID, &p.FirstName, &p.LastName, &p.Position, &p.OVR, &p.Potential, &p.Age, &p.Origin,
		&p.Salary, &p.Value, &p.Status, &p.PlayStyles, &p.PlayStylesPlus, &p.MatchesPlayed, &p.MinutesPlayed,
		&p.Goals, &p.Assists, &p.CleanSheets, &p.ContractExpiry, &p.JerseyNumber, &p.Nationality, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// ListPlayers returns the squad sorted by last then first name using French collation.
func (s *SQLStore) ListPlayers(ctx context.Context, careerID string, f PlayerFilter) ([]model.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE career_id = ?`
	args := []any{careerID}
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(f.Status))
	}
	if f.Origin != "" {
		query += ` AND origin = ?`
		args = append(args, string(f.Origin))
	}
	if f.Position != "" {
		query += ` AND UPPER(position) = ?`
		args = append(args, strings.ToUpper(f.Position))
	}

	rows, err := s.query(ctx, s.db, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	defer func() { _ = rows.Close() }()

	players := make([]model.Player, 0)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sortPlayers(players)
	return players, nil
}

func sortPlayers(players []model.Player) {
	col := collate.New(language.French, collate.Loose)
	sort.SliceStable(players, func(i, j int) bool {
		if c := col.CompareString(players[i].LastName, players[j].LastName); c != 0 {
			return c < 0
		}
		return col.CompareString(players[i].FirstName, players[j].FirstName) < 0
	})
}

// GetPlayer returns one player of the career.
func (s *SQLStore) GetPlayer(ctx context.Context, careerID, id string) (model.Player, error) {
	return s.getPlayer(ctx, s.db, careerID, id)
}

func (s *SQLStore) getPlayer(ctx context.Context, q querier, careerID, id string) (model.Player, error) {
	p, err := scanPlayer(s.queryRow(ctx, q,
		`SELECT `+playerColumns+` FROM players WHERE id = ? AND career_id = ?`, id, careerID))
	if err != nil {
		return p, notFound(err, "player "+id)
	}
	return p, nil
}

// CreatePlayer adds a player to the squad.
func (s *SQLStore) CreatePlayer(ctx context.Context, careerID string, in model.CreatePlayerInput) (model.Player, error) {
	return s.insertPlayer(ctx, s.db, careerID, in)
}

func (s *SQLStore) insertPlayer(ctx context.Context, q querier, careerID string, in model.CreatePlayerInput) (model.Player, error) {
	now := s.timestamp()
	p := model.Player{
		ID:             uuid.NewString(),
		CareerID:       careerID,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Position:       in.Position,
		OVR:            in.OVR,
		Potential:      in.Potential,
		Age:            in.Age,
		Origin:         in.Origin,
		Salary:         in.Salary,
		Value:          in.Value,
		Status:         in.Status,
		PlayStyles:     in.PlayStyles,
		PlayStylesPlus: in.PlayStylesPlus,
		ContractExpiry: in.ContractExpiry,
		JerseyNumber:   in.JerseyNumber,
		Nationality:    in.Nationality,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.writePlayer(ctx, q, p, true); err != nil {
		return p, err
	}
	return p, nil
}

// UpdatePlayer applies a partial update to a player.
func (s *SQLStore) UpdatePlayer(ctx context.Context, careerID, id string, in model.UpdatePlayerInput) (model.Player, error) {
	var player model.Player
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		p, err := s.getPlayer(ctx, tx, careerID, id)
		if err != nil {
			return err
		}
		in.Apply(&p)
		p.UpdatedAt = s.timestamp()
		if err := s.writePlayer(ctx, tx, p, false); err != nil {
			return err
		}
		player = p
		return nil
	})
	return player, err
}

func (s *SQLStore) writePlayer(ctx context.Context, q querier, p model.Player, insert bool) error {
	values := []any{
		p.FirstName, p.LastName, p.Position, p.OVR, p.Potential, p.Age, string(p.Origin), p.Salary, p.Value,
		string(p.Status), p.PlayStyles, p.PlayStylesPlus, p.MatchesPlayed, p.MinutesPlayed, p.Goals, p.Assists,
		p.CleanSheets, p.ContractExpiry, p.JerseyNumber, p.Nationality, p.Notes, p.UpdatedAt,
	}
	if insert {
		_, err := s.exec(ctx, q, `
			INSERT INTO players (first_name, last_name, position, ovr, potential, age, origin, salary, value,
				status, play_styles, play_styles_plus, matches_played, minutes_played, goals, assists,
				clean_sheets, contract_expiry, jersey_number, nationality, notes, updated_at,
				id, career_id, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			append(values, p.ID, p.CareerID, p.CreatedAt)...)
		if err != nil {
			return fmt.Errorf("inserting player: %w", err)
		}
		return nil
	}

	res, err := s.exec(ctx, q, `
		UPDATE players SET first_name = ?, last_name = ?, position = ?, ovr = ?, potential = ?, age = ?,
			origin = ?, salary = ?, value = ?, status = ?, play_styles = ?, play_styles_plus = ?,
			matches_played = ?, minutes_played = ?, goals = ?, assists = ?, clean_sheets = ?,
			contract_expiry = ?, jersey_number = ?, nationality = ?, notes = ?, updated_at = ?
		WHERE id = ? AND career_id = ?`,
		append(values, p.ID, p.CareerID)...)
	if err != nil {
		return fmt.Errorf("updating player: %w", err)
	}
	return requireAffected(res, "player "+p.ID)
}

// DeletePlayer removes a player from the squad.
func (s *SQLStore) DeletePlayer(ctx context.Context, careerID, id string) error {
	res, err := s.exec(ctx, s.db, `DELETE FROM players WHERE id = ? AND career_id = ?`, id, careerID)
	if err != nil {
		return fmt.Errorf("deleting player: %w", err)
	}
	return requireAffected(res, "player "+id)
}
