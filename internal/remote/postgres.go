package remote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	pq "github.com/lib/pq"

	"github.com/julianstephens/dayquest/internal/constants"
	"github.com/julianstephens/dayquest/internal/logger"
	"github.com/julianstephens/dayquest/internal/migration"
	"github.com/julianstephens/dayquest/internal/models"
	"github.com/julianstephens/dayquest/migrations"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

// Postgres is the Store backed by a PostgreSQL database. All tables live in
// the dayquest schema.
type Postgres struct {
	connStr string
	db      *sqlx.DB
}

// Option adjusts how NewPostgres treats its connection string.
type Option func(*options)

type options struct {
	allowPassword bool
}

// AllowEmbeddedCredentials accepts a password inside the connection string.
// Only use it for strings read from the OS keyring.
func AllowEmbeddedCredentials() Option {
	return func(o *options) { o.allowPassword = true }
}

// NewPostgres validates connStr and pins its search_path. Call Init before use.
func NewPostgres(connStr string, opts ...Option) (*Postgres, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if _, err := ValidateConnString(connStr); err != nil {
		if !o.allowPassword || !errors.Is(err, ErrEmbeddedCredentials) {
			return nil, err
		}
	}
	return &Postgres{connStr: withSearchPath(connStr)}, nil
}

func withSearchPath(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			logger.Warn("failed to parse postgres connection string", "error", err)
			return connStr
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
		}
		return u.String()
	}
	if hasParam(connStr, "search_path") {
		return connStr
	}
	return strings.TrimSpace(connStr) + " search_path=" + constants.AppName
}

// hasParam reports whether a DSN-style or URL-style connection string sets key.
func hasParam(connStr, key string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for k := range u.Query() {
			if strings.EqualFold(k, key) {
				return true
			}
		}
	}
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], key) {
			return true
		}
	}
	return false
}

// ValidateConnString checks that connStr is a PostgreSQL URI or DSN pq can
// parse and that it carries no password. Passwords belong in PGPASSFILE.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(connStr); err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return false, fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}
		if _, isSet := u.User.Password(); isSet {
			return false, ErrEmbeddedCredentials
		}
		if u.Host == "" && u.User == nil && (u.Path == "" || u.Path == "/") {
			return false, fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
		return true, nil
	}

	for _, pair := range strings.Fields(connStr) {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[0]), "password") {
			return false, ErrEmbeddedCredentials
		}
	}
	return true, nil
}

// Init connects, creates the schema and applies pending migrations.
func (s *Postgres) Init(ctx context.Context) error {
	db, err := sqlx.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasParam(s.connStr, "sslmode") {
			return fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+constants.AppName); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	s.db = db

	if err := s.migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Postgres) migrate(ctx context.Context) error {
	sub, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	runner, err := migration.New(s.db.DB, sub, migration.DialectPostgres)
	if err != nil {
		return err
	}
	applied, err := runner.Up(ctx)
	if len(applied) > 0 {
		logger.Info("remote schema migrated", "version", applied[len(applied)-1].Version)
	}
	return err
}

func (s *Postgres) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Postgres) FetchProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var row profileRow
	err := s.db.GetContext(ctx, &row, `
SELECT user_id, name, avatar, join_date, total_tasks_completed, days_used, current_level,
       total_xp, current_streak, longest_streak, total_rewards, record_days, last_active_day
FROM user_profiles WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	p := row.toModel()
	return &p, nil
}

func (s *Postgres) SaveProfile(ctx context.Context, userID string, p models.Profile) error {
	_, err := s.db.NamedExecContext(ctx, `
INSERT INTO user_profiles (user_id, name, avatar, join_date, total_tasks_completed, days_used,
    current_level, total_xp, current_streak, longest_streak, total_rewards, record_days, last_active_day)
VALUES (:user_id, :name, :avatar, :join_date, :total_tasks_completed, :days_used,
    :current_level, :total_xp, :current_streak, :longest_streak, :total_rewards, :record_days, :last_active_day)
ON CONFLICT (user_id) DO UPDATE SET
    name = EXCLUDED.name,
    avatar = EXCLUDED.avatar,
    total_tasks_completed = EXCLUDED.total_tasks_completed,
    days_used = EXCLUDED.days_used,
    current_level = EXCLUDED.current_level,
    total_xp = EXCLUDED.total_xp,
    current_streak = EXCLUDED.current_streak,
    longest_streak = EXCLUDED.longest_streak,
    total_rewards = EXCLUDED.total_rewards,
    record_days = EXCLUDED.record_days,
    last_active_day = EXCLUDED.last_active_day,
    updated_at = now()`, profileRowFrom(userID, p))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *Postgres) FetchAll(ctx context.Context, userID string, kind models.EntityKind) ([]models.Record, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := t.selectSQL()

	var out []models.Record
	switch kind {
	case models.KindTask:
		out, err = selectRecords(ctx, s.db, query, userID, taskRow.toModel)
	case models.KindExpense:
		out, err = selectRecords(ctx, s.db, query, userID, expenseRow.toModel)
	case models.KindAppointment:
		out, err = selectRecords(ctx, s.db, query, userID, appointmentRow.toModel)
	case models.KindReward:
		out, err = selectRecords(ctx, s.db, query, userID, rewardRow.toModel)
	case models.KindTrophy:
		out, err = selectRecords(ctx, s.db, query, userID, trophyRow.toModel)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", t.name, err)
	}
	return out, nil
}

func selectRecords[R any, T models.Record](ctx context.Context, db *sqlx.DB, query, userID string, conv func(R) T) ([]models.Record, error) {
	var rows []R
	if err := db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, err
	}
	out := make([]models.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, conv(r))
	}
	return out, nil
}

// Create inserts rec. Conflicts on (user_id, client_id), or on the catalog id
// for unlocks, are ignored.
func (s *Postgres) Create(ctx context.Context, userID string, rec models.Record) error {
	t, err := tableFor(rec.Kind())
	if err != nil {
		return err
	}
	row, err := rowFrom(userID, rec)
	if err != nil {
		return err
	}
	if _, err := s.db.NamedExecContext(ctx, t.insertSQL(), row); err != nil {
		return fmt.Errorf("insert into %s: %w", t.name, err)
	}
	return nil
}

func (s *Postgres) Update(ctx context.Context, userID string, rec models.Record) error {
	t, err := tableFor(rec.Kind())
	if err != nil {
		return err
	}
	row, err := rowFrom(userID, rec)
	if err != nil {
		return err
	}
	res, err := s.db.NamedExecContext(ctx, t.updateSQL(), row)
	if err != nil {
		return fmt.Errorf("update %s: %w", t.name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update %s %s: %w", t.name, rec.RecordID(), ErrNotFound)
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, userID string, kind models.EntityKind, id string) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+t.name+" WHERE client_id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", t.name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete %s %s: %w", t.name, id, ErrNotFound)
	}
	return nil
}
