package store

import (
	"context"
	"fmt"

	"github.com/idelchi/hsrsize/internal/dirstat"
)

// Tables lists the tables in the database in name order.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.listTables)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}

		names = append(names, name)
	}

	return names, rows.Err()
}

// ColumnTypes returns the declared columns of table in order.
func (s *Store) ColumnTypes(ctx context.Context, table string) ([]dirstat.Column, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.columnTypes, table)
	if err != nil {
		return nil, fmt.Errorf("describe %s: %w", table, err)
	}
	defer rows.Close()

	var cols []dirstat.Column

	for rows.Next() {
		var c dirstat.Column
		if err := rows.Scan(&c.Name, &c.Type); err != nil {
			return nil, fmt.Errorf("scan column of %s: %w", table, err)
		}

		cols = append(cols, c)
	}

	return cols, rows.Err()
}

// ReadInventory reads the inventory table back in row order.
func (s *Store) ReadInventory(ctx context.Context) ([]dirstat.FileRecord, error) {
	query := fmt.Sprintf("SELECT %s, %s, %s, %s FROM %s ORDER BY %s",
		quote(dirstat.ColumnExtension), quote(dirstat.ColumnSize),
		quote(dirstat.ColumnDirectory), quote(dirstat.ColumnFullPath),
		quote(TableAnalysis), quote(IndexColumn))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", TableAnalysis, err)
	}
	defer rows.Close()

	records := make([]dirstat.FileRecord, 0)

	for rows.Next() {
		var (
			r    dirstat.FileRecord
			size float64
		)

		if err := rows.Scan(&r.Extension, &size, &r.Directory, &r.FullPath); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", TableAnalysis, err)
		}

		r.Size = int64(size)
		records = append(records, r)
	}

	return records, rows.Err()
}

// ReadDistribution reads a distribution table written by SaveAnalysis.
// Byte and file counts are not persisted and read back as zero.
func (s *Store) ReadDistribution(ctx context.Context, table string, by dirstat.GroupColumn) (*dirstat.Distribution, error) {
	query := fmt.Sprintf("SELECT %s, %s FROM %s ORDER BY %s",
		quote(string(by)), quote(dirstat.ColumnProportion), quote(table), quote(IndexColumn))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	defer rows.Close()

	dist := &dirstat.Distribution{By: by, Rows: make([]dirstat.AggregateRow, 0)}

	for rows.Next() {
		var r dirstat.AggregateRow
		if err := rows.Scan(&r.Key, &r.Proportion); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", table, err)
		}

		dist.Rows = append(dist.Rows, r)
	}

	return dist, rows.Err()
}
