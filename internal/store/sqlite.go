package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"daybook/internal/models"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/rs/zerolog"
)

const (
	keyBookings = "bookings"
	keyExpenses = "expenses"
)

// SQLiteStore keeps each collection as a JSON document in a two-row
// key-value table. The durable shape stays identical to the file backend,
// only the medium differs.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *zerolog.Logger
}

func NewSQLiteStore(path string, logger *zerolog.Logger) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	query := `CREATE TABLE IF NOT EXISTS collections (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL,
        updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
    )`
	if _, err := db.Exec(query); err != nil {
		return nil, fmt.Errorf("create collections table: %w", err)
	}

	logger.Info().Str("path", path).Msg("sqlite store initialized")
	return &SQLiteStore{db: db, path: path, logger: logger}, nil
}

// Path returns the database file location, used by the backup service.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) Load(ctx context.Context) (*Collections, error) {
	c := &Collections{}

	if err := s.loadKey(ctx, keyBookings, &c.Bookings); err != nil {
		return nil, err
	}
	if err := s.loadKey(ctx, keyExpenses, &c.Expenses); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *SQLiteStore) loadKey(ctx context.Context, key string, out any) error {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM collections WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		// Corrupt stored data counts as no prior state.
		s.logger.Warn().Err(err).Str("key", key).Msg("stored collection is not parseable, starting empty")
	}
	return nil
}

func (s *SQLiteStore) Save(ctx context.Context, c *Collections) error {
	bookings, err := json.Marshal(nonNilBookings(c.Bookings))
	if err != nil {
		return fmt.Errorf("encode bookings: %w", err)
	}
	expenses, err := json.Marshal(nonNilExpenses(c.Expenses))
	if err != nil {
		return fmt.Errorf("encode expenses: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO collections (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
              ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := tx.ExecContext(ctx, query, keyBookings, string(bookings)); err != nil {
		return fmt.Errorf("save bookings: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, keyExpenses, string(expenses)); err != nil {
		return fmt.Errorf("save expenses: %w", err)
	}

	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nonNilBookings(in []models.Booking) []models.Booking {
	if in == nil {
		return []models.Booking{}
	}
	return in
}

func nonNilExpenses(in []models.Expense) []models.Expense {
	if in == nil {
		return []models.Expense{}
	}
	return in
}
