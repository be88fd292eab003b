// Package store persists the booking and expense collections. The in-memory
// collections are the source of truth; a Store is a mirror that is always
// rewritten in full on every mutation. Missing or unreadable prior state is
// treated as "no prior state", never as a fatal error.
package store

import (
	"context"
	"fmt"

	"daybook/internal/config"
	"daybook/internal/models"

	"github.com/rs/zerolog"
)

// Collections holds everything the application persists. Slice order is
// preserved exactly as stored.
type Collections struct {
	Bookings []models.Booking `json:"bookings"`
	Expenses []models.Expense `json:"expenses"`
}

// Store loads and saves the full persisted representation.
type Store interface {
	Load(ctx context.Context) (*Collections, error)
	Save(ctx context.Context, c *Collections) error
	Close() error
}

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// New builds the configured store backend.
func New(cfg config.StorageConfig, logger *zerolog.Logger) (Store, error) {
	switch cfg.Backend {
	case BackendSQLite, "":
		return NewSQLiteStore(cfg.Path, logger)
	case BackendFile:
		return NewFileStore(cfg.Path, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
