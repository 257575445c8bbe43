// Package migration applies the embedded NNN_name.sql schema files with goose.
// Each database keeps its applied versions in goose_db_version.
package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pressly/goose/v3"

	"github.com/julianstephens/dayquest/internal/logger"
)

// ErrSchemaTooNew means the database was migrated by a newer build.
var ErrSchemaTooNew = errors.New("database schema is newer than this build supports")

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

var gooseDialects = map[Dialect]goose.Dialect{
	DialectSQLite:   goose.DialectSQLite3,
	DialectPostgres: goose.DialectPostgres,
}

type Step struct {
	Version int
	Name    string
	SQL     string
}

type Runner struct {
	provider *goose.Provider
	steps    []Step
	log      *log.Logger
}

// New reads every step from files before touching the database, so a
// malformed or duplicated file is reported up front.
func New(db *sql.DB, files fs.FS, dialect Dialect) (*Runner, error) {
	gd, ok := gooseDialects[dialect]
	if !ok {
		return nil, fmt.Errorf("unsupported migration dialect %q", dialect)
	}
	steps, err := readSteps(files)
	if err != nil {
		return nil, err
	}
	provider, err := goose.NewProvider(gd, db, files)
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	return &Runner{
		provider: provider,
		steps:    steps,
		log:      logger.With("migration").With("dialect", string(dialect)),
	}, nil
}

func readSteps(files fs.FS) ([]Step, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}

	steps := make([]Step, 0, len(names))
	for _, name := range names {
		version, label, err := parseName(name)
		if err != nil {
			return nil, err
		}
		body, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		steps = append(steps, Step{Version: version, Name: label, SQL: string(body)})
	}

	slices.SortFunc(steps, func(a, b Step) int { return a.Version - b.Version })
	for i := 1; i < len(steps); i++ {
		if steps[i].Version == steps[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", steps[i].Version)
		}
	}
	return steps, nil
}

// parseName splits "007_add_index.sql" into 7 and "add_index".
func parseName(file string) (int, string, error) {
	prefix, rest, ok := strings.Cut(strings.TrimSuffix(file, ".sql"), "_")
	if !ok || rest == "" {
		return 0, "", fmt.Errorf("invalid migration filename %s (expected NNN_name.sql)", file)
	}
	version, err := strconv.Atoi(prefix)
	if err != nil || version < 1 {
		return 0, "", fmt.Errorf("invalid version in migration filename %s", file)
	}
	return version, rest, nil
}

// Steps returns the parsed migrations in version order.
func (r *Runner) Steps() []Step {
	return slices.Clone(r.steps)
}

// Latest is the highest version this build knows about.
func (r *Runner) Latest() int {
	if len(r.steps) == 0 {
		return 0
	}
	return r.steps[len(r.steps)-1].Version
}

// Current returns the applied schema version, 0 for a fresh database.
func (r *Runner) Current(ctx context.Context) (int, error) {
	v, err := r.provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return int(v), nil
}

// Check returns ErrSchemaTooNew when the database is ahead of this build.
func (r *Runner) Check(ctx context.Context) error {
	current, err := r.Current(ctx)
	if err != nil {
		return err
	}
	if current > r.Latest() {
		return fmt.Errorf("%w (database %d, supported %d)", ErrSchemaTooNew, current, r.Latest())
	}
	return nil
}

// Up applies every pending step, each in its own transaction, and returns
// the steps it applied. On failure the steps applied before it are returned
// with the error.
func (r *Runner) Up(ctx context.Context) ([]Step, error) {
	if err := r.Check(ctx); err != nil {
		return nil, err
	}

	results, err := r.provider.Up(ctx)
	if err != nil {
		var partial *goose.PartialError
		if errors.As(err, &partial) {
			return r.applied(partial.Applied), fmt.Errorf("migration failed: %w", err)
		}
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	applied := r.applied(results)
	if len(applied) == 0 {
		r.log.Debug("schema up to date", "version", r.Latest())
	}
	return applied, nil
}

func (r *Runner) applied(results []*goose.MigrationResult) []Step {
	var out []Step
	for _, res := range results {
		if res == nil || res.Source == nil || res.Error != nil {
			continue
		}
		i := slices.IndexFunc(r.steps, func(s Step) bool { return int64(s.Version) == res.Source.Version })
		if i < 0 {
			continue
		}
		out = append(out, r.steps[i])
		r.log.Info("migration applied", "version", res.Source.Version, "name", r.steps[i].Name, "took", res.Duration)
	}
	return out
}
