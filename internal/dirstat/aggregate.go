package dirstat

import (
	"fmt"
	"sort"
)

// GroupColumn names the inventory column a distribution is grouped by.
type GroupColumn string

const (
	// ByExtension groups by the Extension column.
	ByExtension GroupColumn = ColumnExtension
	// ByDirectory groups by the Directory column.
	ByDirectory GroupColumn = ColumnDirectory
)

// AggregateRow is one group of a distribution.
type AggregateRow struct {
	// Key is the extension or directory label.
	Key string `json:"key"`
	// Proportion is the group's share of the total size, in percent.
	Proportion float64 `json:"proportion"`
	// Bytes is the cumulative size of the group.
	Bytes int64 `json:"bytes"`
	// Files is the number of files in the group.
	Files int64 `json:"files"`
}

// Distribution is the percentage-of-total-size breakdown over one column.
type Distribution struct {
	By   GroupColumn    `json:"by"`
	Rows []AggregateRow `json:"rows"`
}

// Aggregate computes each group's share of the inventory's total size.
//
// Rows are emitted in first-occurrence order. An empty inventory yields an
// empty distribution. A non-empty inventory whose sizes sum to zero also
// yields an empty distribution, together with ErrDivisionByZero.
func Aggregate(t *Inventory, by GroupColumn) (*Distribution, error) {
	if by != ByExtension && by != ByDirectory {
		return nil, fmt.Errorf("unknown group column %q", by)
	}

	dist := &Distribution{By: by, Rows: make([]AggregateRow, 0)}

	if t == nil || t.Len() == 0 {
		return dist, nil
	}

	total := t.TotalSize()
	if total == 0 {
		return dist, fmt.Errorf("%w: %d files grouped by %s", ErrDivisionByZero, t.Len(), by)
	}

	index := make(map[string]int)

	for _, r := range t.Records {
		key := by.value(r)

		i, ok := index[key]
		if !ok {
			i = len(dist.Rows)
			index[key] = i
			dist.Rows = append(dist.Rows, AggregateRow{Key: key})
		}

		dist.Rows[i].Bytes += r.Size
		dist.Rows[i].Files++
	}

	for i := range dist.Rows {
		dist.Rows[i].Proportion = 100 * float64(dist.Rows[i].Bytes) / float64(total)
	}

	return dist, nil
}

// Columns returns the group column and Proportion.
func (d *Distribution) Columns() []Column {
	return []Column{
		{Name: string(d.By), Type: "text"},
		{Name: ColumnProportion, Type: "real"},
	}
}

// Len returns the number of groups.
func (d *Distribution) Len() int {
	return len(d.Rows)
}

// Row returns the key and proportion of group i.
func (d *Distribution) Row(i int) []any {
	return []any{d.Rows[i].Key, d.Rows[i].Proportion}
}

// Lookup returns the row for key.
func (d *Distribution) Lookup(key string) (AggregateRow, bool) {
	for _, r := range d.Rows {
		if r.Key == key {
			return r, true
		}
	}

	return AggregateRow{}, false
}

// Sum returns the sum of all proportions.
func (d *Distribution) Sum() float64 {
	var sum float64

	for _, r := range d.Rows {
		sum += r.Proportion
	}

	return sum
}

// Largest returns up to n rows ordered by size, largest first.
func (d *Distribution) Largest(n int) []AggregateRow {
	rows := make([]AggregateRow, len(d.Rows))
	copy(rows, d.Rows)

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Bytes > rows[j].Bytes
	})

	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}

	return rows
}
