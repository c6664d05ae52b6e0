package store

import (
	"context"
	"database/sql"
	"fmt"

	"fc-manager-backend/internal/model"
)

// schemaSQL is valid for both PostgreSQL and SQLite.
const schemaSQL = `
	CREATE TABLE IF NOT EXISTS careers (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		club_name TEXT NOT NULL,
		club_id TEXT,
		league_name TEXT NOT NULL,
		country TEXT NOT NULL DEFAULT 'Unknown',
		manager_name TEXT NOT NULL,
		project_type TEXT NOT NULL DEFAULT 'custom',
		current_season INTEGER NOT NULL DEFAULT 1,
		budget DOUBLE PRECISION NOT NULL DEFAULT 0,
		difficulty TEXT NOT NULL DEFAULT 'Normal',
		start_date TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		is_archived BOOLEAN NOT NULL DEFAULT FALSE,
		settings TEXT NOT NULL DEFAULT '{}',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_careers_user ON careers(user_id, created_at);

	CREATE TABLE IF NOT EXISTS user_settings (
		user_id TEXT PRIMARY KEY,
		active_career_id TEXT,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS players (
		id TEXT PRIMARY KEY,
		career_id TEXT NOT NULL REFERENCES careers(id) ON DELETE CASCADE,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		position TEXT NOT NULL,
		ovr INTEGER NOT NULL,
		potential INTEGER NOT NULL,
		age INTEGER NOT NULL,
		origin TEXT NOT NULL,
		salary DOUBLE PRECISION NOT NULL DEFAULT 0,
		value DOUBLE PRECISION NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		play_styles INTEGER NOT NULL DEFAULT 0,
		play_styles_plus INTEGER NOT NULL DEFAULT 0,
		matches_played INTEGER NOT NULL DEFAULT 0,
		minutes_played INTEGER NOT NULL DEFAULT 0,
		goals INTEGER NOT NULL DEFAULT 0,
		assists INTEGER NOT NULL DEFAULT 0,
		clean_sheets INTEGER NOT NULL DEFAULT 0,
		contract_expiry TEXT,
		jersey_number INTEGER,
		nationality TEXT,
		notes TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_players_career ON players(career_id);

	CREATE TABLE IF NOT EXISTS transfers (
		id TEXT PRIMARY KEY,
		career_id TEXT NOT NULL REFERENCES careers(id) ON DELETE CASCADE,
		player_id TEXT,
		player_name TEXT NOT NULL,
		type TEXT NOT NULL,
		amount DOUBLE PRECISION NOT NULL,
		season INTEGER NOT NULL,
		transfer_date TEXT,
		from_club TEXT,
		to_club TEXT,
		notes TEXT,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_transfers_career_season ON transfers(career_id, season);

	CREATE TABLE IF NOT EXISTS budget_entries (
		id TEXT PRIMARY KEY,
		career_id TEXT NOT NULL REFERENCES careers(id) ON DELETE CASCADE,
		season INTEGER NOT NULL,
		initial_budget DOUBLE PRECISION NOT NULL DEFAULT 0,
		transfer_sales DOUBLE PRECISION NOT NULL DEFAULT 0,
		transfer_purchases DOUBLE PRECISION NOT NULL DEFAULT 0,
		match_revenue DOUBLE PRECISION NOT NULL DEFAULT 0,
		wage_expenses DOUBLE PRECISION NOT NULL DEFAULT 0,
		other_income DOUBLE PRECISION NOT NULL DEFAULT 0,
		other_expenses DOUBLE PRECISION NOT NULL DEFAULT 0,
		final_balance DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_budget_entries_career_season ON budget_entries(career_id, season);

	CREATE TABLE IF NOT EXISTS journal_entries (
		id TEXT PRIMARY KEY,
		career_id TEXT NOT NULL REFERENCES careers(id) ON DELETE CASCADE,
		season INTEGER NOT NULL,
		entry_date TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		tags TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_journal_entries_career ON journal_entries(career_id, entry_date);
`

// EnsureSchema creates missing tables and indexes.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// DemoUserID owns the demo career when no user is given.
const DemoUserID = "demo"

// SeedDemo gives userID a sample career with a squad, transfers, budget and journal.
// It does nothing when the user already has a career, and reports whether it seeded.
func (s *SQLStore) SeedDemo(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		userID = DemoUserID
	}

	var cnt int
	if err := s.queryRow(ctx, s.db, `SELECT COUNT(*) FROM careers WHERE user_id = ?`, userID).Scan(&cnt); err != nil {
		return false, fmt.Errorf("checking careers count: %w", err)
	}
	if cnt > 0 {
		return false, nil
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		career, err := s.insertCareer(ctx, tx, userID, model.CreateCareerInput{
			ClubName:    "Olympique Lyonnais",
			LeagueName:  "Ligue 1",
			Country:     "France",
			ManagerName: "Demo Manager",
			ProjectType: model.ProjectAcademy,
			Budget:      45,
			Difficulty:  "Légende",
		})
		if err != nil {
			return fmt.Errorf("seeding demo career: %w", err)
		}
		if err := s.setActive(ctx, tx, userID, &career.ID); err != nil {
			return err
		}

		jersey := func(n int) *int { return &n }
		squad := []model.CreatePlayerInput{
			{FirstName: "Rayan", LastName: "Cherki", Position: "MOC", OVR: 79, Potential: 88, Age: 20, Origin: model.OriginAcademy, Salary: 0.04, Value: 32, Status: model.StatusStarter, PlayStyles: 7, PlayStylesPlus: 1, JerseyNumber: jersey(18)},
			{FirstName: "Alexandre", LastName: "Lacazette", Position: "BU", OVR: 82, Potential: 82, Age: 32, Origin: model.OriginInitial, Salary: 0.16, Value: 14, Status: model.StatusStarter, PlayStyles: 5, JerseyNumber: jersey(10)},
			{FirstName: "Anthony", LastName: "Lopes", Position: "GB", OVR: 80, Potential: 80, Age: 33, Origin: model.OriginInitial, Salary: 0.09, Value: 6, Status: model.StatusSubstitute, PlayStyles: 2, JerseyNumber: jersey(1)},
			{FirstName: "Mahamadou", LastName: "Diawara", Position: "MC", OVR: 64, Potential: 79, Age: 18, Origin: model.OriginAcademy, Salary: 0.01, Value: 4, Status: model.StatusReserve, PlayStyles: 1},
			{FirstName: "Ernest", LastName: "Nuamah", Position: "AG", OVR: 75, Potential: 83, Age: 20, Origin: model.OriginPurchased, Salary: 0.05, Value: 25, Status: model.StatusSubstitute, PlayStyles: 4, JerseyNumber: jersey(37)},
			{FirstName: "Jeffinho", LastName: "Júnior", Position: "AD", OVR: 72, Potential: 74, Age: 25, Origin: model.OriginPurchased, Salary: 0.04, Value: 9, Status: model.StatusForSale, PlayStyles: 3},
		}
		for _, p := range squad {
			if _, err := s.insertPlayer(ctx, tx, career.ID, p); err != nil {
				return fmt.Errorf("seeding demo players: %w", err)
			}
		}

		if _, err := s.insertBudgetEntry(ctx, tx, career.ID, model.CreateBudgetInput{
			Season: 1, InitialBudget: 45, MatchRevenue: 18.5, WageExpenses: 31.2, OtherIncome: 4, OtherExpenses: 2.5,
		}); err != nil {
			return fmt.Errorf("seeding demo budget: %w", err)
		}

		lyon, forest := "Olympique Lyonnais", "Nottingham Forest"
		transfers := []model.CreateTransferInput{
			{PlayerName: "Ernest Nuamah", Type: model.TransferPurchase, Amount: 25, Season: 1, FromClub: &forest, ToClub: &lyon},
			{PlayerName: "Castello Lukeba", Type: model.TransferSale, Amount: 30, Season: 1, FromClub: &lyon, ToClub: &forest},
		}
		for _, t := range transfers {
			if _, err := s.insertTransfer(ctx, tx, career.ID, t); err != nil {
				return fmt.Errorf("seeding demo transfers: %w", err)
			}
		}
		if err := s.syncSeasonTransfers(ctx, tx, career.ID, 1); err != nil {
			return err
		}

		if _, err := s.insertJournalEntry(ctx, tx, career.ID, model.CreateJournalInput{
			Season:    1,
			EntryDate: s.now().UTC().Format("2006-01-02"),
			Title:     "Prise de fonctions",
			Content:   "Objectif : faire éclore la prochaine génération de l'Académie.",
			Tags:      []string{"académie", "objectifs"},
		}); err != nil {
			return fmt.Errorf("seeding demo journal: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
