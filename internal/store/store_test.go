package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"fc-manager-backend/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// tickingClock advances one second per call so ordering by timestamp is deterministic.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()
	s, err := OpenSQLite(MemoryPath, WithClock(tickingClock()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}

func newTestCareer(t *testing.T, s *SQLStore, userID string) model.Career {
	t.Helper()
	c, err := s.CreateCareer(context.Background(), userID, model.CreateCareerInput{
		ClubName:    "AS Saint-Étienne",
		LeagueName:  "Ligue 2",
		ManagerName: "Tester",
	})
	require.NoError(t, err)
	return c
}

func TestDialectRebind(t *testing.T) {
	q := `SELECT a FROM t WHERE x = ? AND y = ?`
	assert.Equal(t, `SELECT a FROM t WHERE x = $1 AND y = $2`, dialectPostgres.rebind(q))
	assert.Equal(t, q, dialectSQLite.rebind(q))
}

func TestNormalizeDatabaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", DefaultDatabaseURL},
		{"postgresql://u:p@h:5432/db", "postgres://u:p@h:5432/db?sslmode=disable"},
		{"postgres://u:p@h/db?application_name=x", "postgres://u:p@h/db?application_name=x&sslmode=disable"},
		{"postgres://u:p@h/db?sslmode=require", "postgres://u:p@h/db?sslmode=require"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDatabaseURL(tt.in), tt.in)
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.EnsureSchema(context.Background()))
}

func TestCareers_CreateAppliesDefaults(t *testing.T) {
	s := newTestStore(t)
	c := newTestCareer(t, s, "u1")

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Unknown", c.Country)
	assert.Equal(t, model.ProjectCustom, c.ProjectType)
	assert.Equal(t, 1, c.CurrentSeason)
	assert.Equal(t, "Normal", c.Difficulty)
	assert.True(t, c.IsActive)
	assert.False(t, c.IsArchived)

	got, err := s.GetCareer(context.Background(), "u1", c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ClubName, got.ClubName)
	assert.Equal(t, map[string]any{}, got.Settings)
	assert.Nil(t, got.ClubID)
}

func TestCareers_ScopedToUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := newTestCareer(t, s, "u1")

	_, err := s.GetCareer(ctx, "u2", c.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	careers, err := s.ListCareers(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, careers)

	assert.ErrorIs(t, s.DeleteCareer(ctx, "u2", c.ID), ErrNotFound)
}

func TestCareers_ListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	first := newTestCareer(t, s, "u1")
	second := newTestCareer(t, s, "u1")

	careers, err := s.ListCareers(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, careers, 2)
	assert.Equal(t, second.ID, careers[0].ID)
	assert.Equal(t, first.ID, careers[1].ID)
}

func TestCareers_Update(t *testing.T) {
	s := newTestStore(t)
	c := newTestCareer(t, s, "u1")

	season := 3
	archived := true
	project := model.ProjectTrophies
	got, err := s.UpdateCareer(context.Background(), "u1", c.ID, model.UpdateCareerInput{
		CurrentSeason: &season,
		IsArchived:    &archived,
		ProjectType:   &project,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, got.CurrentSeason)
	assert.True(t, got.IsArchived)
	assert.Equal(t, model.ProjectTrophies, got.ProjectType)
	assert.Equal(t, c.ClubName, got.ClubName)
	assert.NotEqual(t, c.UpdatedAt, got.UpdatedAt)

	reloaded, err := s.GetCareer(context.Background(), "u1", c.ID)
	require.NoError(t, err)
	assert.Equal(t, got, reloaded)
}

func TestCareers_UpdateManagerBudgetDifficulty(t *testing.T) {
	s := newTestStore(t)
	c := newTestCareer(t, s, "u1")

	manager := "Nouveau Coach"
	budget := 85.5
	difficulty := "Légende"
	_, err := s.UpdateCareer(context.Background(), "u1", c.ID, model.UpdateCareerInput{
		ManagerName: &manager,
		Budget:      &budget,
		Difficulty:  &difficulty,
	})
	require.NoError(t, err)

	reloaded, err := s.GetCareer(context.Background(), "u1", c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nouveau Coach", reloaded.ManagerName)
	assert.InDelta(t, 85.5, reloaded.Budget, 1e-9)
	assert.Equal(t, "Légende", reloaded.Difficulty)
	assert.Equal(t, c.ClubName, reloaded.ClubName)
	assert.Equal(t, c.CurrentSeason, reloaded.CurrentSeason)
}

func TestActiveCareer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	active, err := s.ActiveCareer(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, active)

	first := newTestCareer(t, s, "u1")
	second := newTestCareer(t, s, "u1")

	active, err = s.ActiveCareer(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID, "creating a career selects it")

	active, err = s.SetActiveCareer(ctx, "u1", &first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, active.ID)

	other := newTestCareer(t, s, "u2")
	_, err = s.SetActiveCareer(ctx, "u1", &other.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.DeleteCareer(ctx, "u1", first.ID))
	active, err = s.ActiveCareer(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, active, "deleting the active career clears the selection")

	_, err = s.SetActiveCareer(ctx, "u1", nil)
	require.NoError(t, err)
}

func TestActiveCareer_StaleSelectionCleared(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	missing := "does-not-exist"
	require.NoError(t, s.setActive(ctx, s.db, "u1", &missing))

	active, err := s.ActiveCareer(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, active)

	var stored *string
	require.NoError(t, s.db.QueryRow(`SELECT active_career_id FROM user_settings WHERE user_id = ?`, "u1").Scan(&stored))
	assert.Nil(t, stored)
}

func samplePlayer(first, last string, status model.PlayerStatus, origin model.PlayerOrigin) model.CreatePlayerInput {
	return model.CreatePlayerInput{
		FirstName: first, LastName: last, Position: "MC",
		OVR: 70, Potential: 78, Age: 21,
		Origin: origin, Status: status,
		Salary: 0.02, Value: 5,
	}
}

func TestPlayers_CRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := newTestCareer(t, s, "u1")

	jersey := 8
	in := samplePlayer("Lucas", "Stassin", model.StatusStarter, model.OriginPurchased)
	in.JerseyNumber = &jersey
	p, err := s.CreatePlayer(ctx, c.ID, in)
	require.NoError(t, err)

	got, err := s.GetPlayer(ctx, c.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)
	require.NotNil(t, got.JerseyNumber)
	assert.Equal(t, 8, *got.JerseyNumber)
	assert.Nil(t, got.Nationality)

	goals := 12
	status := model.StatusForSale
	updated, err := s.UpdatePlayer(ctx, c.ID, p.ID, model.UpdatePlayerInput{Goals: &goals, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, 12, updated.Goals)
	assert.Equal(t, model.StatusForSale, updated.Status)
	assert.Equal(t, "Stassin", updated.LastName)

	_, err = s.GetPlayer(ctx, "other-career", p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.DeletePlayer(ctx, c.ID, p.ID))
	assert.ErrorIs(t, s.DeletePlayer(ctx, c.ID, p.ID), ErrNotFound)
	_, err = s.UpdatePlayer(ctx, c.ID, p.ID, model.UpdatePlayerInput{Goals: &goals})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlayers_ListSortedAndFiltered(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := newTestCareer(t, s, "u1")

	for _, in := range []model.CreatePlayerInput{
		samplePlayer("Zoé", "Zola", model.StatusReserve, model.OriginAcademy),
		samplePlayer("Émile", "Écuyer", model.StatusStarter, model.OriginAcademy),
		samplePlayer("Alain", "Durand", model.StatusStarter, model.OriginInitial),
		samplePlayer("Bruno", "Durand", model.StatusOnLoan, model.OriginPurchased),
	} {
		_, err := s.CreatePlayer(ctx, c.ID, in)
		require.NoError(t, err)
	}

	all, err := s.ListPlayers(ctx, c.ID, PlayerFilter{})
	require.NoError(t, err)
	var names []string
	for _, p := range all {
		names = append(names, p.FirstName+" "+p.LastName)
	}
	assert.Equal(t, []string{"Alain Durand", "Bruno Durand", "Émile Écuyer", "Zoé Zola"}, names)

	starters, err := s.ListPlayers(ctx, c.ID, PlayerFilter{Status: model.StatusStarter})
	require.NoError(t, err)
	assert.Len(t, starters, 2)

	academy, err := s.ListPlayers(ctx, c.ID, PlayerFilter{Origin: model.OriginAcademy, Position: "mc"})
	require.NoError(t, err)
	assert.Len(t, academy, 2)
}

func TestBudget_CreateNextSeasonAndConflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := newTestCareer(t, s, "u1")

	first, err := s.CreateBudgetEntry(ctx, c.ID, model.CreateBudgetInput{InitialBudget: 10, MatchRevenue: 2, WageExpenses: 4, OtherExpenses: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Season)
	assert.InDelta(t, 7.0, first.FinalBalance, 1e-9)

	second, err := s.CreateBudgetEntry(ctx, c.ID, model.CreateBudgetInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Season)

	_, err = s.CreateBudgetEntry(ctx, c.ID, model.CreateBudgetInput{Season: 1})
	assert.ErrorIs(t, err, ErrConflict)

	entries, err := s.ListBudgetEntries(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Season)
	assert.Equal(t, 2, entries[1].Season)
}

func TestBudget_ConcurrentCreateSameSeason(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := newTestCareer(t, s, "u1")

	const writers = 4
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.CreateBudgetEntry(ctx, c.ID, model.CreateBudgetInput{Season: 3, InitialBudget: 20})
		}()
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, ErrConflict)
	}
	assert.Equal(t, 1, created)

	entries, err := s.ListBudgetEntries(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"postgres unique", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true},
		{"postgres foreign key", &pgconn.PgError{Code: "23503"}, false},
		{"other", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, uniqueViolation(tt.err))
		})
	}
}

func TestBudget_UpdateRecomputesBalance(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := newTestCareer(t, s, "u1")

	entry, err := s.CreateBudgetEntry(ctx, c.ID, model.CreateBudgetInput{InitialBudget: 10})
	require.NoError(t, err)

	wages := 3.5
	updated, err := s.UpdateBudgetEntry(ctx, c.ID, entry.ID, model.UpdateBudgetInput{WageExpenses: &wages})
	require.NoError(t, err)
	assert.InDelta(t, 6.5, updated.FinalBalance, 1e-9)

	entries, err := s.ListBudgetEntries(ctx, c.ID)
	require.NoError(t, err)
	assert.InDelta(t, 6.5, entries[0].FinalBalance, 1e-9)

	_, err = s.UpdateBudgetEntry(ctx, "other", entry.ID, model.UpdateBudgetInput{WageExpenses: &wages})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransfers_SyncBudgetSeason(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := newTestCareer(t, s, "u1")

	early, err := s.CreateTransfer(ctx, c.ID, model.CreateTransferInput{PlayerName: "A", Type: model.TransferSale, Amount: 20, Season: 1})
	require.NoError(t, err)

	entry, err := s.CreateBudgetEntry(ctx, c.ID, model.CreateBudgetInput{Season: 1, InitialBudget: 10})
	require.NoError(t, err)
	assert.Equal(t, 20.0, entry.TransferSales, "existing transfers are picked up when a season opens")
	assert.InDelta(t, 30.0, entry.FinalBalance, 1e-9)

	_, err = s.CreateTransfer(ctx, c.ID, model.CreateTransferInput{PlayerName: "B", Type: model.TransferPurchase, Amount: 50, Season: 1})
	require.NoError(t, err)
	_, err = s.CreateTransfer(ctx, c.ID, model.CreateTransferInput{PlayerName: "C", Type: model.TransferPurchase, Amount: 5, Season: 2})
	require.NoError(t, err)

	entries, err := s.ListBudgetEntries(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 20.0, entries[0].TransferSales)
	assert.Equal(t, 50.0, entries[0].TransferPurchases)
	assert.InDelta(t, -20.0, entries[0].FinalBalance, 1e-9)

	require.NoError(t, s.DeleteTransfer(ctx, c.ID, early.ID))
	entries, err = s.ListBudgetEntries(ctx, c.ID)
	require.NoError(t, err)
	assert.Zero(t, entries[0].TransferSales)
	assert.InDelta(t, -40.0, entries[0].FinalBalance, 1e-9)

	assert.ErrorIs(t, s.DeleteTransfer(ctx, c.ID, early.ID), ErrNotFound)

	all, err := s.ListTransfers(ctx, c.ID, TransferFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 2, all[0].Season, "latest season first")

	purchases, err := s.ListTransfers(ctx, c.ID, TransferFilter{Type: model.TransferPurchase, Season: 1})
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, "B", purchases[0].PlayerName)
}

func TestJournal_CRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := newTestCareer(t, s, "u1")

	older, err := s.CreateJournalEntry(ctx, c.ID, model.CreateJournalInput{Season: 1, EntryDate: "2025-08-01", Title: "Début", Content: "Première journée"})
	require.NoError(t, err)
	assert.Equal(t, []string{}, older.Tags)
	newer, err := s.CreateJournalEntry(ctx, c.ID, model.CreateJournalInput{Season: 2, EntryDate: "2026-08-01", Title: "Saison 2", Content: "...", Tags: []string{"mercato"}})
	require.NoError(t, err)

	entries, err := s.ListJournalEntries(ctx, c.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, newer.ID, entries[0].ID)
	assert.Equal(t, []string{"mercato"}, entries[0].Tags)

	seasonOne, err := s.ListJournalEntries(ctx, c.ID, 1)
	require.NoError(t, err)
	require.Len(t, seasonOne, 1)

	title := "Début de saison"
	tags := []string{"objectifs"}
	updated, err := s.UpdateJournalEntry(ctx, c.ID, older.ID, model.UpdateJournalInput{Title: &title, Tags: &tags})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, "Première journée", updated.Content)
	assert.Equal(t, tags, updated.Tags)

	require.NoError(t, s.DeleteJournalEntry(ctx, c.ID, older.ID))
	assert.ErrorIs(t, s.DeleteJournalEntry(ctx, c.ID, older.ID), ErrNotFound)
}

func TestDeleteCareer_Cascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := newTestCareer(t, s, "u1")

	_, err := s.CreatePlayer(ctx, c.ID, samplePlayer("A", "B", model.StatusStarter, model.OriginAcademy))
	require.NoError(t, err)
	_, err = s.CreateBudgetEntry(ctx, c.ID, model.CreateBudgetInput{InitialBudget: 1})
	require.NoError(t, err)
	_, err = s.CreateTransfer(ctx, c.ID, model.CreateTransferInput{PlayerName: "X", Type: model.TransferSale, Amount: 1, Season: 1})
	require.NoError(t, err)

	require.NoError(t, s.DeleteCareer(ctx, "u1", c.ID))

	for _, table := range []string{"players", "transfers", "budget_entries", "journal_entries"} {
		var n int
		require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE career_id = ?`, c.ID).Scan(&n))
		assert.Zero(t, n, table)
	}
}

func TestSeedDemo_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seeded, err := s.SeedDemo(ctx, "")
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = s.SeedDemo(ctx, DemoUserID)
	require.NoError(t, err)
	assert.False(t, seeded)

	careers, err := s.ListCareers(ctx, DemoUserID)
	require.NoError(t, err)
	require.Len(t, careers, 1)

	active, err := s.ActiveCareer(ctx, DemoUserID)
	require.NoError(t, err)
	require.NotNil(t, active)

	players, err := s.ListPlayers(ctx, careers[0].ID, PlayerFilter{})
	require.NoError(t, err)
	assert.Len(t, players, 6)

	entries, err := s.ListBudgetEntries(ctx, careers[0].ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 30.0, entries[0].TransferSales)
	assert.Equal(t, 25.0, entries[0].TransferPurchases)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Config{Backend: "firestore"}, nil)
	assert.Error(t, err)
}
