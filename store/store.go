package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/phuslu/log"
	"github.com/timshannon/badgerhold/v4"
)

// schemaVersion is the store's monotonically increasing schema version.
// Version history:
//
//	1: portfolioHistory + intradayEntries
//	2: intradayEntries replaced by portfolioIntradayData
const schemaVersion = 2

// schemaMeta is the single in-store record tracking the applied version.
type schemaMeta struct {
	ID      string `badgerhold:"key"`
	Version int
}

const schemaMetaKey = "schema"

// Sentinel errors, re-exported so callers don't import badgerhold.
var (
	ErrNotFound  = badgerhold.ErrNotFound
	ErrKeyExists = badgerhold.ErrKeyExists
)

// Store is the persistent portfolio history database.
type Store struct {
	db  *badgerhold.Store
	log *log.Logger
}

// Open opens (creating if needed) the database at path and applies any
// pending schema migrations. Opening a store written by a newer schema
// version fails rather than risking silent data damage.
func Open(path string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = &log.DefaultLogger
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = path
	options.ValueDir = path
	options.Logger = nil // Disable the default badger logger.

	db, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open portfolio history database: %w", err)
	}

	s := &Store{db: db, log: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug().Str("path", path).Int("schemaVersion", schemaVersion).Msg("portfolio history store ready")
	return s, nil
}

// migrate brings the store up to schemaVersion, one idempotent step at a
// time. Each step tolerates a partial prior run: destroying rows that are
// already gone is a no-op, and the version record is only advanced after
// its step completed.
func (s *Store) migrate() error {
	meta := schemaMeta{ID: schemaMetaKey}
	switch err := s.db.Get(schemaMetaKey, &meta); err {
	case nil:
	case badgerhold.ErrNotFound:
		// Fresh store. Tables in badgerhold are implicit per row type, so
		// there is nothing to create; just stamp the current version.
		meta.Version = schemaVersion
		if err := s.db.Upsert(schemaMetaKey, &meta); err != nil {
			return fmt.Errorf("failed to stamp schema version: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if meta.Version > schemaVersion {
		return fmt.Errorf("store schema version %d is newer than supported version %d", meta.Version, schemaVersion)
	}

	for v := meta.Version; v < schemaVersion; v++ {
		next := v + 1
		if err := s.migrateTo(next); err != nil {
			return fmt.Errorf("migration to schema version %d failed: %w", next, err)
		}
		meta.Version = next
		if err := s.db.Upsert(schemaMetaKey, &meta); err != nil {
			return fmt.Errorf("failed to record schema version %d: %w", next, err)
		}
		s.log.Info().Int("schemaVersion", next).Msg("portfolio history store migrated")
	}
	return nil
}

func (s *Store) migrateTo(version int) error {
	switch version {
	case 2:
		// The intradayEntries table was replaced by portfolioIntradayData.
		// Destroy leftover legacy rows; unrelated tables are untouched.
		return s.db.DeleteMatching(&intradayEntry{}, nil)
	default:
		return fmt.Errorf("no migration step defined for version %d", version)
	}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
