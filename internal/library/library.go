// Package library ties the rule engine to its stores: the keyed automaton
// store selected by configuration and single-line rule files.
package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"cellrules/internal/config"
	"cellrules/internal/logging"
	"cellrules/internal/store"
	"cellrules/internal/store/filestore"
	"cellrules/internal/store/redisstore"
	"cellrules/internal/store/sqlite"
	"cellrules/pkg/rules"
)

// Library loads and saves automata.
type Library struct {
	store store.Store
	log   zerolog.Logger
}

// New wraps an already opened store.
func New(s store.Store) *Library {
	return &Library{store: s, log: logging.Get("library")}
}

// Open opens the store selected by cfg.
func Open(ctx context.Context, cfg config.StoreConfig) (*Library, error) {
	var (
		s   store.Store
		err error
	)
	switch cfg.Driver {
	case config.DriverSQLite:
		s, err = sqlite.Open(ctx, cfg.SQLite.Path)
	case config.DriverRedis:
		var rs *redisstore.Store
		rs, err = redisstore.New(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Redis.Namespace)
		if err == nil {
			if err = rs.Ping(ctx); err != nil {
				_ = rs.Close()
				err = fmt.Errorf("redis unreachable at %s: %w", cfg.Redis.Addr, err)
			}
		}
		s = rs
	default:
		err = fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	return New(s), nil
}

// Close releases the underlying store.
func (l *Library) Close() error { return l.store.Close() }

// Get loads the automaton stored under id.
func (l *Library) Get(ctx context.Context, id int64) (*rules.Automaton, error) {
	done := logging.LogOperationStart(l.log, "get")
	defer done()
	a, err := rules.Load(ctx, l.store, id)
	if err != nil {
		return nil, err
	}
	l.log.Debug().Int64("id", id).Int("n", a.N()).Msg("Loaded automaton")
	return a, nil
}

// Put stores a under name and returns its new id.
func (l *Library) Put(ctx context.Context, name string, a *rules.Automaton) (int64, error) {
	return rules.Save(ctx, l.store, name, a)
}

// List returns the stored records.
func (l *Library) List(ctx context.Context) ([]store.Record, error) {
	return l.store.List(ctx)
}

// ErrNoRules reports that a rule file was missing or empty.
var ErrNoRules = errors.New("no rules in file")

// ImportFile reads an automaton from a one-line rule file. A missing or empty
// file is not an error: it yields (nil, nil) and no rules apply.
func ImportFile(path string) (*rules.Automaton, error) {
	text, ok, err := filestore.Read(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		log := logging.Get("library")
		log.Debug().Str("path", path).Msg("No rule file, nothing loaded")
		return nil, nil
	}
	a, err := rules.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return a, nil
}

// RequireFile is ImportFile for callers that cannot proceed without rules.
func RequireFile(path string) (*rules.Automaton, error) {
	a, err := ImportFile(path)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoRules, path)
	}
	return a, nil
}

// ExportFile writes a to path as one line.
func ExportFile(path string, a *rules.Automaton) error {
	text, err := a.MarshalText()
	if err != nil {
		return err
	}
	return filestore.Write(path, string(text))
}
