package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// FileStore keeps each collection in its own JSON file under a directory.
// Writes go through a temp file and rename so a crash mid-save leaves the
// previous state intact.
type FileStore struct {
	dir    string
	logger *zerolog.Logger
}

func NewFileStore(dir string, logger *zerolog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	logger.Info().Str("dir", dir).Msg("file store initialized")
	return &FileStore{dir: dir, logger: logger}, nil
}

func (s *FileStore) Load(ctx context.Context) (*Collections, error) {
	c := &Collections{}
	s.loadFile(keyBookings, &c.Bookings)
	s.loadFile(keyExpenses, &c.Expenses)
	return c, nil
}

func (s *FileStore) loadFile(key string, out any) {
	path := filepath.Join(s.dir, key+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", path).Msg("cannot read stored collection, starting empty")
		}
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("stored collection is not parseable, starting empty")
	}
}

func (s *FileStore) Save(ctx context.Context, c *Collections) error {
	if err := s.saveFile(keyBookings, nonNilBookings(c.Bookings)); err != nil {
		return err
	}
	return s.saveFile(keyExpenses, nonNilExpenses(c.Expenses))
}

func (s *FileStore) saveFile(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	path := filepath.Join(s.dir, key+".json")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
