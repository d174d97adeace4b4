// Package redisstore provides a Redis-backed automaton store.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"cellrules/internal/logging"
	"cellrules/internal/store"
)

const (
	fieldName    = "name"
	fieldIs2D    = "is2d"
	fieldValue   = "value"
	fieldLastUse = "last_use"
)

// Store keeps each automaton in a hash and assigns ids with INCR.
// It is safe for concurrent use.
type Store struct {
	rdb       *redis.Client
	namespace string
	log       zerolog.Logger
	now       func() time.Time
}

var _ store.Store = (*Store)(nil)

// New creates a store for the given namespace.
// Returns an error if namespace is empty.
func New(opts *redis.Options, namespace string) (*Store, error) {
	if strings.TrimSpace(namespace) == "" {
		return nil, fmt.Errorf("namespace cannot be empty")
	}
	return &Store{
		rdb:       redis.NewClient(opts),
		namespace: namespace,
		log:       logging.Get("store.redis"),
		now:       time.Now,
	}, nil
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.rdb.Close()
}

// Ping verifies Redis connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// LoadRules returns the serialized automaton stored under id and marks it used.
func (s *Store) LoadRules(ctx context.Context, id int64) (string, error) {
	key := AutomatonKey(s.namespace, id)
	value, err := s.rdb.HGet(ctx, key, fieldValue).Result()
	if errors.Is(err, redis.Nil) {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read automaton from Redis: %w", err)
	}

	now := s.now().UTC().UnixMilli()
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fieldLastUse, now)
		pipe.ZAdd(ctx, ByUseKey(s.namespace), redis.Z{Score: float64(now), Member: id})
		return nil
	})
	if err != nil {
		s.log.Warn().Err(err).Int64("id", id).Msg("Failed to update last use")
	}
	return value, nil
}

// SaveRules stores text under a freshly assigned id.
func (s *Store) SaveRules(ctx context.Context, name string, dim int, text string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("automaton name is required")
	}
	id, err := s.rdb.Incr(ctx, NextIDKey(s.namespace)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate automaton id: %w", err)
	}

	now := s.now().UTC().UnixMilli()
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, AutomatonKey(s.namespace, id), map[string]any{
			fieldName:    name,
			fieldIs2D:    strconv.FormatBool(dim == 2),
			fieldValue:   text,
			fieldLastUse: now,
		})
		pipe.ZAdd(ctx, ByUseKey(s.namespace), redis.Z{Score: float64(now), Member: id})
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to write automaton to Redis: %w", err)
	}
	s.log.Info().Int64("id", id).Str("name", name).Msg("Saved automaton")
	return id, nil
}

// List returns every stored automaton, most recently used first.
func (s *Store) List(ctx context.Context) ([]store.Record, error) {
	ids, err := s.rdb.ZRevRange(ctx, ByUseKey(s.namespace), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list automata: %w", err)
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = s.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, raw := range ids {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid automaton id %q: %w", raw, err)
			}
			cmds[i] = pipe.HGetAll(ctx, AutomatonKey(s.namespace, id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read automata: %w", err)
	}

	out := make([]store.Record, 0, len(ids))
	for i, cmd := range cmds {
		hash := cmd.Val()
		if len(hash) == 0 {
			continue
		}
		rec, err := hashToRecord(ids[i], hash)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func hashToRecord(rawID string, hash map[string]string) (store.Record, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return store.Record{}, fmt.Errorf("invalid automaton id %q: %w", rawID, err)
	}
	is2D, err := strconv.ParseBool(hash[fieldIs2D])
	if err != nil {
		return store.Record{}, fmt.Errorf("automaton %d: invalid %s: %w", id, fieldIs2D, err)
	}
	lastUse, err := strconv.ParseInt(hash[fieldLastUse], 10, 64)
	if err != nil {
		return store.Record{}, fmt.Errorf("automaton %d: invalid %s: %w", id, fieldLastUse, err)
	}
	return store.Record{
		ID:      id,
		Name:    hash[fieldName],
		Is2D:    is2D,
		Value:   hash[fieldValue],
		LastUse: time.UnixMilli(lastUse).UTC(),
	}, nil
}
