// Package store persists careers and their records in a relational database.
// One backend is chosen at startup; PostgreSQL and SQLite share the same SQL.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fc-manager-backend/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// pgUniqueViolation is the SQLSTATE of a unique index violation.
const pgUniqueViolation = "23505"

var (
	// ErrNotFound is returned when a record does not exist or is outside the caller's scope.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write would break a uniqueness rule.
	ErrConflict = errors.New("conflict")
)

// Backend names accepted by Open.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Store is everything the HTTP layer needs from persistence.
type Store interface {
	Ping(ctx context.Context) error
	Close() error
	EnsureSchema(ctx context.Context) error
	SeedDemo(ctx context.Context, userID string) (bool, error)

	ListCareers(ctx context.Context, userID string) ([]model.Career, error)
	GetCareer(ctx context.Context, userID, id string) (model.Career, error)
	CreateCareer(ctx context.Context, userID string, in model.CreateCareerInput) (model.Career, error)
	UpdateCareer(ctx context.Context, userID, id string, in model.UpdateCareerInput) (model.Career, error)
	DeleteCareer(ctx context.Context, userID, id string) error
	ActiveCareer(ctx context.Context, userID string) (*model.Career, error)
	SetActiveCareer(ctx context.Context, userID string, careerID *string) (*model.Career, error)

	ListPlayers(ctx context.Context, careerID string, f PlayerFilter) ([]model.Player, error)
	GetPlayer(ctx context.Context, careerID, id string) (model.Player, error)
	CreatePlayer(ctx context.Context, careerID string, in model.CreatePlayerInput) (model.Player, error)
	UpdatePlayer(ctx context.Context, careerID, id string, in model.UpdatePlayerInput) (model.Player, error)
	DeletePlayer(ctx context.Context, careerID, id string) error

	ListTransfers(ctx context.Context, careerID string, f TransferFilter) ([]model.Transfer, error)
	CreateTransfer(ctx context.Context, careerID string, in model.CreateTransferInput) (model.Transfer, error)
	DeleteTransfer(ctx context.Context, careerID, id string) error

	ListBudgetEntries(ctx context.Context, careerID string) ([]model.BudgetEntry, error)
	CreateBudgetEntry(ctx context.Context, careerID string, in model.CreateBudgetInput) (model.BudgetEntry, error)
	UpdateBudgetEntry(ctx context.Context, careerID, id string, in model.UpdateBudgetInput) (model.BudgetEntry, error)

	ListJournalEntries(ctx context.Context, careerID string, season int) ([]model.JournalEntry, error)
	CreateJournalEntry(ctx context.Context, careerID string, in model.CreateJournalInput) (model.JournalEntry, error)
	UpdateJournalEntry(ctx context.Context, careerID, id string, in model.UpdateJournalInput) (model.JournalEntry, error)
	DeleteJournalEntry(ctx context.Context, careerID, id string) error
}

// Config selects and locates the backend.
type Config struct {
	Backend        string
	DatabaseURL    string
	SQLitePath     string
	ConnectRetries int
	RetryDelay     time.Duration
}

// Open connects to the configured backend.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (*SQLStore, error) {
	switch strings.ToLower(cfg.Backend) {
	case BackendPostgres, "":
		return OpenPostgres(ctx, cfg.DatabaseURL, cfg.ConnectRetries, cfg.RetryDelay, logger)
	case BackendSQLite:
		return OpenSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

type dialect int

const (
	dialectPostgres dialect = iota
	dialectSQLite
)

// rebind rewrites ? placeholders into the dialect's native form.
func (d dialect) rebind(query string) string {
	if d != dialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 16)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

// SQLStore implements Store on database/sql.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
	now     func() time.Time
}

// Option customises an SQLStore.
type Option func(*SQLStore)

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *SQLStore) { s.now = now }
}

func newSQLStore(db *sql.DB, d dialect, opts ...Option) *SQLStore {
	s := &SQLStore{db: db, dialect: d, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DB exposes the underlying pool.
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

// Ping checks the connection.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// timestampLayout has fixed width so stored timestamps sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

func (s *SQLStore) timestamp() string {
	return s.now().UTC().Format(timestampLayout)
}

func (s *SQLStore) exec(ctx context.Context, q querier, query string, args ...any) (sql.Result, error) {
	return q.ExecContext(ctx, s.dialect.rebind(query), args...)
}

func (s *SQLStore) query(ctx context.Context, q querier, query string, args ...any) (*sql.Rows, error) {
	return q.QueryContext(ctx, s.dialect.rebind(query), args...)
}

func (s *SQLStore) queryRow(ctx context.Context, q querier, query string, args ...any) *sql.Row {
	return q.QueryRowContext(ctx, s.dialect.rebind(query), args...)
}

// inTx runs fn in a transaction, committing when it returns nil.
func (s *SQLStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// requireAffected turns a zero-row write into ErrNotFound.
func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// uniqueViolation reports whether err was raised by a unique index on either backend.
func uniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
			return true
		}
		return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE")
	}
	return false
}
