// Package sqlite provides a SQLite-backed automaton store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"cellrules/internal/logging"
	"cellrules/internal/store"
	"cellrules/internal/store/sqlite/migrations"
)

// Store persists automata in the automata table.
type Store struct {
	sqlDB *sql.DB
	log   zerolog.Logger
	now   func() time.Time
}

var _ store.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store at path and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger := logging.Get("store.sqlite")
	logger.Debug().Str("path", path).Msg("Opened automaton store")
	return &Store{sqlDB: sqlDB, log: logger, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// LoadRules returns the serialized automaton stored under id and marks it used.
func (s *Store) LoadRules(ctx context.Context, id int64) (string, error) {
	var value string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT value FROM automata WHERE id = ?`, id).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load automaton %d: %w", id, err)
	}

	if _, err := s.sqlDB.ExecContext(ctx,
		`UPDATE automata SET last_use = ? WHERE id = ?`,
		toMillis(s.now()), id,
	); err != nil {
		// bookkeeping only; the rules were read
		s.log.Warn().Err(err).Int64("id", id).Msg("Failed to update last use")
	}
	return value, nil
}

// SaveRules inserts a new automaton and returns its id.
func (s *Store) SaveRules(ctx context.Context, name string, dim int, text string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("automaton name is required")
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO automata (name, is2d, value, last_use) VALUES (?, ?, ?, ?)`,
		name, dim == 2, text, toMillis(s.now()),
	)
	if err != nil {
		return 0, fmt.Errorf("insert automaton %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read automaton id: %w", err)
	}
	s.log.Info().Int64("id", id).Str("name", name).Msg("Saved automaton")
	return id, nil
}

// List returns every stored automaton, most recently used first.
func (s *Store) List(ctx context.Context) ([]store.Record, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, name, is2d, value, last_use FROM automata ORDER BY last_use DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list automata: %w", err)
	}
	defer rows.Close()

	var out []store.Record
	for rows.Next() {
		var (
			rec     store.Record
			lastUse int64
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Is2D, &rec.Value, &lastUse); err != nil {
			return nil, fmt.Errorf("scan automaton: %w", err)
		}
		rec.LastUse = fromMillis(lastUse)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate automata: %w", err)
	}
	return out, nil
}
