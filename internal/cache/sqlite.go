package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/dayquest/internal/migration"
	"github.com/julianstephens/dayquest/migrations"
)

var errNotInitialized = errors.New("cache not initialized, run 'dayquest init' first")

// SQLite stores cache entries in a single table of a local sqlite file.
type SQLite struct {
	path string
	db   *sql.DB
}

func NewSQLite(path string) *SQLite {
	return &SQLite{path: path}
}

// Init creates the database file if needed and applies migrations.
func (s *SQLite) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := s.open(); err != nil {
		return err
	}
	runner, err := s.runner()
	if err != nil {
		return err
	}
	if _, err := runner.Up(context.Background()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Load opens an existing cache and checks its schema version.
func (s *SQLite) Load() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return errNotInitialized
	}
	if err := s.open(); err != nil {
		return err
	}
	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.Check(context.Background())
}

func (s *SQLite) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// one writer; sqlite serialises anyway and this avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)
	s.db = db
	return nil
}

func (s *SQLite) runner() (*migration.Runner, error) {
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.New(s.db, sub, migration.DialectSQLite)
}

func (s *SQLite) Path() string { return s.path }

func (s *SQLite) Get(key string) (string, bool, error) {
	if s.db == nil {
		return "", false, errNotInitialized
	}
	var value string
	err := s.db.QueryRow("SELECT value FROM cache WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read cache entry %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLite) Set(key, value string) error {
	return s.SetAll(map[string]string{key: value})
}

func (s *SQLite) SetAll(entries map[string]string) error {
	if s.db == nil {
		return errNotInitialized
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin cache write: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for key, value := range entries {
		_, err := tx.Exec(`
INSERT INTO cache (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			key, value, now)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("write cache entry %q: %w", key, err)
		}
	}
	return tx.Commit()
}

func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
