// Package sqlite implements spec.md §6's ports against a local
// modernc.org/sqlite database: the one concrete persistence adapter this
// repo ships. Grounded on the teacher's internal/storage/sqlite/store.go
// lifecycle (Init creates+migrates, Load opens+validates), narrowed to the
// TemplateStore/InstanceStore/SettingsStore/ScheduleCache ports instead of
// the teacher's task/plan/habit/alert/OT surface.
package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/dayplan/internal/logger"
	"github.com/julianstephens/dayplan/internal/migration"
	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/migrations"
)

// Store is a sqlite-backed implementation of ports.TemplateStore,
// ports.InstanceStore, ports.SettingsStore, and ports.ScheduleCache.
type Store struct {
	path string
	db   *sql.DB
}

// NewStore returns a Store that reads/writes the database file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Init creates the config directory (if needed), opens the database, runs
// pending migrations, and seeds default settings on a fresh database.
func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if _, err := s.Get(); err != nil {
		defaults := models.Settings{
			DesiredSleepDurationHours: 8,
			DefaultWakeTime:           "06:30",
			DefaultSleepTime:          "23:00",
		}
		if _, err := s.Save(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

// Load opens an already-initialized database and validates its schema
// version without attempting to migrate it.
func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'dayplan init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.validateSchemaVersion()
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	runner := migration.NewRunner(s.db, subFS)
	_, err = runner.ApplyMigrations(func(msg string) { logger.Info(msg) })
	return err
}

func (s *Store) validateSchemaVersion() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	runner := migration.NewRunner(s.db, subFS)
	return runner.ValidateVersion()
}

// GetConfigPath returns the configured database file path.
func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying connection. Callers should call Load or Init
// first.
func (s *Store) GetDB() *sql.DB {
	return s.db
}
