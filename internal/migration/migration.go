// Package migration applies the embedded sqlite schema in
// migrations/sqlite/*.sql and keeps a database's schema_version in step
// with it. Grounded on the teacher's internal/migration package's generic
// embedded-SQL runner, adapted with a schema manifest derived from the
// templates/instances/settings/schedule_cache tables spec.md §3/§6 actually
// name, so a runner built against the wrong migrations directory (or one
// missing a table this module depends on) fails loudly instead of reporting
// a clean "up to date".
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/dayplan/internal/errtax"
)

// Migration is a single versioned schema change read from the migrations
// filesystem.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

var createTablePattern = regexp.MustCompile(`(?i)CREATE TABLE\s+(?:IF NOT EXISTS\s+)?["'` + "`" + `]?(\w+)`)

// TableNames returns the names of the tables this migration's SQL creates,
// in the order they appear.
func (m Migration) TableNames() []string {
	matches := createTablePattern.FindAllStringSubmatch(m.SQL, -1)
	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match[1])
	}
	return out
}

// Runner applies embedded SQL migrations against db and tracks the applied
// version in a schema_version table.
type Runner struct {
	db *sql.DB
	fs fs.FS
}

// NewRunner returns a Runner that reads migration files from migrationFS and
// applies them to db.
func NewRunner(db *sql.DB, migrationFS fs.FS) *Runner {
	return &Runner{
		db: db,
		fs: migrationFS,
	}
}

// EnsureSchemaVersionTable creates the schema_version bookkeeping table if
// it doesn't already exist.
func (r *Runner) EnsureSchemaVersionTable() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`)
	return err
}

// GetCurrentVersion returns the schema version recorded in the database, or
// 0 for a fresh database.
func (r *Runner) GetCurrentVersion() (int, error) {
	if err := r.EnsureSchemaVersionTable(); err != nil {
		return 0, fmt.Errorf("failed to ensure schema_version table: %w", err)
	}

	var version int
	err := r.db.QueryRow("SELECT version FROM schema_version").Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}
	return version, nil
}

// SetVersion overwrites the recorded schema version.
func (r *Runner) SetVersion(version int) error {
	if err := r.EnsureSchemaVersionTable(); err != nil {
		return fmt.Errorf("failed to ensure schema_version table: %w", err)
	}

	if _, err := r.db.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to clear version: %w", err)
	}

	if _, err := r.db.Exec("INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
		return fmt.Errorf("failed to set version: %w", err)
	}
	return nil
}

// ReadMigrationFiles reads and parses the NNN_name.sql migration files,
// sorted by version.
func (r *Runner) ReadMigrationFiles() ([]Migration, error) {
	files, err := fs.ReadDir(r.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var migrations []Migration
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		parts := strings.SplitN(file.Name(), "_", 2)
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid migration filename format: %s (expected NNN_name.sql)", file.Name())
		}

		version, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid version number in filename %s: %w", file.Name(), err)
		}
		if version < 1 {
			return nil, fmt.Errorf("invalid version number in filename %s: version must be at least 1", file.Name())
		}

		content, err := fs.ReadFile(r.fs, file.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", file.Name(), err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    strings.TrimSuffix(parts[1], ".sql"),
			SQL:     string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version == migrations[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", migrations[i].Version)
		}
	}

	return migrations, nil
}

// GetLatestVersion returns the highest migration version on disk, or 0 if
// there are none.
func (r *Runner) GetLatestVersion() (int, error) {
	migrations, err := r.ReadMigrationFiles()
	if err != nil {
		return 0, err
	}

	if len(migrations) == 0 {
		return 0, nil
	}

	return migrations[len(migrations)-1].Version, nil
}

// ExpectedTables returns every table name the on-disk migrations create,
// the schema manifest VerifySchema checks a database against. For this
// project that's templates, instances, settings, and schedule_cache, but
// the manifest is derived from the migration files rather than hardcoded so
// a new migration's tables are picked up automatically.
func (r *Runner) ExpectedTables() ([]string, error) {
	migrations, err := r.ReadMigrationFiles()
	if err != nil {
		return nil, err
	}

	var out []string
	for _, m := range migrations {
		out = append(out, m.TableNames()...)
	}
	return out, nil
}

// VerifySchema confirms every table ExpectedTables names actually exists in
// the database. ApplyMigrations calls this after applying pending
// migrations; Load's validateSchemaVersion calls it on an
// already-initialized database to catch a schema_version row left behind by
// a partially-applied or hand-edited database.
func (r *Runner) VerifySchema() error {
	expected, err := r.ExpectedTables()
	if err != nil {
		return err
	}

	rows, err := r.db.Query("SELECT name FROM sqlite_master WHERE type = 'table'")
	if err != nil {
		return errtax.Wrap(errtax.CodePersistFailed, "schema", err)
	}
	defer rows.Close()

	present := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return errtax.Wrap(errtax.CodePersistFailed, "schema", err)
		}
		present[name] = true
	}
	if err := rows.Err(); err != nil {
		return errtax.Wrap(errtax.CodePersistFailed, "schema", err)
	}

	for _, table := range expected {
		if !present[table] {
			return errtax.Newf(errtax.CodePersistFailed, "expected table %q is missing from the database", table).WithField(table)
		}
	}
	return nil
}

// ApplyMigrations applies every pending migration in a transaction each,
// advancing schema_version as it goes, then verifies the resulting schema
// against ExpectedTables. It returns the number of migrations applied.
func (r *Runner) ApplyMigrations(logFn func(string)) (int, error) {
	if logFn == nil {
		logFn = func(s string) {}
	}

	currentVersion, err := r.GetCurrentVersion()
	if err != nil {
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}

	migrations, err := r.ReadMigrationFiles()
	if err != nil {
		return 0, fmt.Errorf("failed to read migrations: %w", err)
	}

	if len(migrations) == 0 {
		logFn("No migration files found")
		return 0, nil
	}

	latestVersion := migrations[len(migrations)-1].Version

	if currentVersion > latestVersion {
		return 0, fmt.Errorf("database schema version (%d) is newer than supported version (%d) - please upgrade the application", currentVersion, latestVersion)
	}

	var pendingMigrations []Migration
	for _, m := range migrations {
		if m.Version > currentVersion {
			pendingMigrations = append(pendingMigrations, m)
		}
	}

	if len(pendingMigrations) == 0 {
		logFn(fmt.Sprintf("Database schema is up to date (version %d)", currentVersion))
		return 0, r.VerifySchema()
	}

	logFn(fmt.Sprintf("Current schema version: %d", currentVersion))
	logFn(fmt.Sprintf("Target schema version: %d", latestVersion))
	logFn(fmt.Sprintf("Applying %d migration(s)...", len(pendingMigrations)))

	startTime := time.Now()
	appliedCount := 0

	for _, m := range pendingMigrations {
		tables := m.TableNames()
		if len(tables) > 0 {
			logFn(fmt.Sprintf("  Applying migration %d: %s (tables: %s)", m.Version, m.Name, strings.Join(tables, ", ")))
		} else {
			logFn(fmt.Sprintf("  Applying migration %d: %s", m.Version, m.Name))
		}

		tx, err := r.db.Begin()
		if err != nil {
			return appliedCount, fmt.Errorf("failed to begin transaction for migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			_ = tx.Rollback()
			return appliedCount, fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
		}

		if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
			_ = tx.Rollback()
			return appliedCount, fmt.Errorf("failed to clear version in migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			_ = tx.Rollback()
			return appliedCount, fmt.Errorf("failed to set version in migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return appliedCount, fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}

		appliedCount++
		logFn(fmt.Sprintf("  applied migration %d", m.Version))
	}

	duration := time.Since(startTime)
	logFn(fmt.Sprintf("Applied %d migration(s) in %v", appliedCount, duration))

	if err := r.VerifySchema(); err != nil {
		return appliedCount, err
	}

	return appliedCount, nil
}

// ValidateVersion checks that a database's recorded schema version isn't
// ahead of what this binary's embedded migrations support, and that the
// tables those migrations promise are actually present.
func (r *Runner) ValidateVersion() error {
	currentVersion, err := r.GetCurrentVersion()
	if err != nil {
		return err
	}

	latestVersion, err := r.GetLatestVersion()
	if err != nil {
		return err
	}

	if currentVersion > latestVersion {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d) - please upgrade the application", currentVersion, latestVersion)
	}

	return r.VerifySchema()
}
