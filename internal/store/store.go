// Package store persists size analyses into a file-backed relational database.
//
// SQLite (modernc.org/sqlite) is the default backend; destinations ending in
// .duckdb, or an explicit duckdb driver, use DuckDB instead. Every table write
// runs in its own transaction.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/idelchi/hsrsize/internal/logging"
)

// DefaultDestination is the database file written when none is configured.
const DefaultDestination = "hsr_size_analyzer.db"

// Options configures how the store is opened.
type Options struct {
	// Driver is sqlite or duckdb. Empty detects it from the destination.
	Driver string

	// PingTimeout bounds the initial connectivity check.
	PingTimeout time.Duration
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		PingTimeout: 5 * time.Second,
	}
}

// Store is an open destination database.
type Store struct {
	db          *sql.DB
	destination string
	dialect     dialect
	log         *slog.Logger

	mu     sync.Mutex
	closed bool
}

// Open opens, or creates, the database at destination.
func Open(destination string, opts Options, log *slog.Logger) (*Store, error) {
	d, err := lookupDialect(opts.Driver, destination)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(d.driver, destination)
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", destination, err)
	}

	// A single connection keeps file-backed databases to one writer.
	db.SetMaxOpenConns(1)

	if opts.PingTimeout <= 0 {
		opts.PingTimeout = DefaultOptions().PingTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.PingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()

		return nil, fmt.Errorf("ping database %q: %w", destination, err)
	}

	log = logging.Component(log, "store").With("destination", destination, "driver", d.driver)
	log.Debug("store opened")

	return &Store{
		db:          db,
		destination: destination,
		dialect:     d,
		log:         log,
	}, nil
}

// Destination returns the path the store was opened with.
func (s *Store) Destination() string {
	return s.destination
}

// Driver returns the name of the driver in use.
func (s *Store) Driver() string {
	return s.dialect.driver
}

// Close closes the store. Closing twice is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true

	return s.db.Close()
}

// TransactionContext executes fn within a database transaction.
//
// If fn returns an error, the transaction is rolled back.
// If fn returns nil, the transaction is committed.
func (s *Store) TransactionContext(ctx context.Context, fn func(*sql.Tx) error) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()

	if closed {
		return ErrClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
