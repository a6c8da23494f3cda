// Package store is the local record store: a durable key/value surface that
// holds JSON-encoded records. Records are validated on the way in and on the
// way out. A stored value that cannot be decoded or fails validation is
// treated as absent and removed (read-repair).
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/dmitrijs2005/ecovate/internal/common"
	"github.com/dmitrijs2005/ecovate/internal/dbx"
	"github.com/dmitrijs2005/ecovate/internal/logging"
	"github.com/dmitrijs2005/ecovate/internal/repositories/records"
)

// Record is a value that can check its own structure.
type Record interface {
	Validate() error
}

// Store reads and writes typed records through a records.Repository.
type Store struct {
	db      *sql.DB
	dialect dbx.Dialect
	repo    records.Repository
	logger  logging.Logger
}

// New returns a Store over db.
func New(db *sql.DB, dialect dbx.Dialect, logger logging.Logger) *Store {
	return &Store{
		db:      db,
		dialect: dialect,
		repo:    records.New(dialect, db),
		logger:  logger.With("component", "store"),
	}
}

// Load decodes the record stored under key into dst. It reports false when
// the key is absent or the stored value was corrupt; corrupt values are
// logged and deleted.
func (s *Store) Load(ctx context.Context, key string, dst Record) (bool, error) {
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}

	if err := decode(raw, dst); err != nil {
		s.logger.Warn(ctx, "dropping corrupt record", "key", key, "error", err)
		if delErr := s.repo.Delete(ctx, key); delErr != nil {
			s.logger.Error(ctx, "failed to drop corrupt record", "key", key, "error", delErr)
		}
		return false, nil
	}
	return true, nil
}

func decode(raw []byte, dst Record) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", common.ErrCorruptRecord, err)
	}
	if err := dst.Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrCorruptRecord, err)
	}
	return nil
}

// Save validates v and writes it under key, replacing any previous value.
func (s *Store) Save(ctx context.Context, key string, v Record) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid record[%s]: %w", key, err)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode record[%s]: %w", key, err)
	}
	return s.repo.Set(ctx, key, raw)
}

// Remove deletes key. Removing an absent key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

// Dump returns the raw stored bytes of every record.
func (s *Store) Dump(ctx context.Context) (map[string][]byte, error) {
	return s.repo.List(ctx)
}

// Keys returns every stored key in lexical order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(all)), nil
}

// PutRaw stores already-encoded bytes under key. It is used when restoring
// backups; values are validated lazily by the next Load.
func (s *Store) PutRaw(ctx context.Context, key string, raw []byte) error {
	if !json.Valid(raw) {
		return fmt.Errorf("%w: record[%s] is not JSON", common.ErrCorruptRecord, key)
	}
	return s.repo.Set(ctx, key, raw)
}

// WithTx runs fn against a Store bound to a single transaction. When the
// Store is already transactional fn runs directly.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx *Store) error) error {
	if s.db == nil {
		return fn(ctx, s)
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, &Store{
			dialect: s.dialect,
			repo:    records.New(s.dialect, tx),
			logger:  s.logger,
		})
	})
}
