package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/idelchi/hsrsize/internal/dirstat"
)

// IndexColumn is the leading row-position column of every written table.
// It carries no meaning beyond the row's position.
const IndexColumn = "index"

// IfExists selects what WriteTable does when the table is already present.
type IfExists int

const (
	// Replace drops the existing table and recreates it.
	Replace IfExists = iota
	// Append adds rows to the existing table, creating it if missing.
	Append
	// Fail returns ErrTableExists.
	Fail
)

// String returns the mode name.
func (m IfExists) String() string {
	switch m {
	case Replace:
		return "replace"
	case Append:
		return "append"
	case Fail:
		return "fail"
	default:
		return fmt.Sprintf("IfExists(%d)", int(m))
	}
}

// WriteTable writes t into the table called name in a single transaction.
func (s *Store) WriteTable(ctx context.Context, t dirstat.Table, name string, mode IfExists) error {
	cols := t.Columns()

	return s.TransactionContext(ctx, func(tx *sql.Tx) error {
		exists, err := s.tableExists(ctx, tx, name)
		if err != nil {
			return err
		}

		offset := 0

		switch mode {
		case Replace:
			if exists {
				if _, err := tx.ExecContext(ctx, "DROP TABLE "+quote(name)); err != nil {
					return fmt.Errorf("drop table %s: %w", name, err)
				}
			}

			if err := s.createTable(ctx, tx, name, cols); err != nil {
				return err
			}
		case Append:
			if exists {
				err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quote(name)).Scan(&offset)
				if err != nil {
					return fmt.Errorf("count rows of %s: %w", name, err)
				}
			} else if err := s.createTable(ctx, tx, name, cols); err != nil {
				return err
			}
		case Fail:
			if exists {
				return fmt.Errorf("%w: %s", ErrTableExists, name)
			}

			if err := s.createTable(ctx, tx, name, cols); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported mode %s", mode)
		}

		if err := insertRows(ctx, tx, t, name, cols, offset); err != nil {
			return err
		}

		s.log.Debug("table written", "table", name, "rows", t.Len(), "mode", mode.String())

		return nil
	})
}

// tableExists reports whether name is a table in the database.
func (s *Store) tableExists(ctx context.Context, tx *sql.Tx, name string) (bool, error) {
	var n int

	if err := tx.QueryRowContext(ctx, s.dialect.tableExists, name).Scan(&n); err != nil {
		return false, fmt.Errorf("look up table %s: %w", name, err)
	}

	return n > 0, nil
}

// createTable creates name with the index column followed by cols.
func (s *Store) createTable(ctx context.Context, tx *sql.Tx, name string, cols []dirstat.Column) error {
	defs := make([]string, 0, len(cols)+1)
	defs = append(defs, quote(IndexColumn)+" "+s.dialect.indexType)

	for _, c := range cols {
		defs = append(defs, quote(c.Name)+" "+s.dialect.typeOf(c.Type))
	}

	stmt := fmt.Sprintf("CREATE TABLE %s (%s)", quote(name), strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create table %s: %w", name, err)
	}

	index := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
		quote("ix_"+name+"_"+IndexColumn), quote(name), quote(IndexColumn))
	if _, err := tx.ExecContext(ctx, index); err != nil {
		return fmt.Errorf("create index on %s: %w", name, err)
	}

	return nil
}

// insertRows inserts every row of t, numbering them from offset.
func insertRows(ctx context.Context, tx *sql.Tx, t dirstat.Table, name string, cols []dirstat.Column, offset int) error {
	if t.Len() == 0 {
		return nil
	}

	names := make([]string, 0, len(cols)+1)
	names = append(names, quote(IndexColumn))

	for _, c := range cols {
		names = append(names, quote(c.Name))
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(name), strings.Join(names, ", "), placeholders)

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare insert into %s: %w", name, err)
	}
	defer stmt.Close()

	args := make([]any, 0, len(names))

	for i := range t.Len() {
		args = append(args[:0], int64(offset+i))
		args = append(args, t.Row(i)...)

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row %d into %s: %w", i, name, err)
		}
	}

	return nil
}
