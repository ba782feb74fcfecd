package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/idelchi/hsrsize/internal/dirstat"
	"github.com/idelchi/hsrsize/internal/logging"
)

// Names of the tables written by SaveAnalysis.
const (
	TableAnalysis = "HsrSizeAnalysis"
	TableSizeDist = "HsrSizeDist"
	TableDirDist  = "HsrDirDist"
)

// SaveAnalysis replaces the inventory and both distribution tables.
//
// All three writes are attempted even when an earlier one fails. Failures
// are logged with the destination and table and returned joined, each
// wrapped in ErrPersistence.
func (s *Store) SaveAnalysis(ctx context.Context, inventory, extensions, directories dirstat.Table) error {
	writes := []struct {
		name  string
		table dirstat.Table
	}{
		{TableAnalysis, inventory},
		{TableSizeDist, extensions},
		{TableDirDist, directories},
	}

	var errs []error

	for _, w := range writes {
		if err := s.WriteTable(ctx, w.table, w.name, Replace); err != nil {
			s.log.Error("writing table failed", "table", w.name, "error", err)
			errs = append(errs, fmt.Errorf("%w: table %s in %s: %w", ErrPersistence, w.name, s.destination, err))

			continue
		}

		s.log.Info("table replaced", "table", w.name, "rows", w.table.Len())
	}

	return errors.Join(errs...)
}

// Persist opens destination, saves the analysis and closes the store on every path.
func Persist(
	ctx context.Context,
	destination string,
	opts Options,
	log *slog.Logger,
	inventory, extensions, directories dirstat.Table,
) (err error) {
	s, err := Open(destination, opts, log)
	if err != nil {
		logging.Component(log, "store").Error("opening store failed", "destination", destination, "error", err)

		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	defer func() {
		if cerr := s.Close(); cerr != nil {
			s.log.Error("closing store failed", "error", cerr)
			err = errors.Join(err, fmt.Errorf("%w: closing %s: %w", ErrPersistence, destination, cerr))
		}
	}()

	return s.SaveAnalysis(ctx, inventory, extensions, directories)
}
