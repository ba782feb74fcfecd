package dirstat

// Column names of the inventory table.
const (
	ColumnExtension  = "Extension"
	ColumnSize       = "Size"
	ColumnDirectory  = "Directory"
	ColumnFullPath   = "Full Path"
	ColumnProportion = "Proportion"
)

// Column describes a named, typed table column.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Table is the read-only view the store writes from.
type Table interface {
	// Columns returns the columns in storage order.
	Columns() []Column
	// Len returns the number of rows.
	Len() int
	// Row returns row i with values in column order.
	Row(i int) []any
}

// Inventory is the per-file table of a scan.
// Its column set and order never change.
type Inventory struct {
	Records []FileRecord `json:"records"`
}

// inventoryColumns carries the explicit type schema of the inventory table.
//
//nolint:gochecknoglobals // Fixed schema
var inventoryColumns = []Column{
	{Name: ColumnExtension, Type: "text"},
	{Name: ColumnSize, Type: "real"},
	{Name: ColumnDirectory, Type: "text"},
	{Name: ColumnFullPath, Type: "text"},
}

// BuildTable assembles records into an Inventory without sorting, filtering or
// deduplicating. An empty input still yields the four columns.
func BuildTable(records []FileRecord) *Inventory {
	rows := make([]FileRecord, len(records))
	copy(rows, records)

	return &Inventory{Records: rows}
}

// Columns returns Extension, Size, Directory and Full Path, in that order.
func (t *Inventory) Columns() []Column {
	cols := make([]Column, len(inventoryColumns))
	copy(cols, inventoryColumns)

	return cols
}

// Len returns the number of files.
func (t *Inventory) Len() int {
	return len(t.Records)
}

// Row returns the values of row i in column order.
func (t *Inventory) Row(i int) []any {
	r := t.Records[i]

	return []any{r.Extension, float64(r.Size), r.Directory, r.FullPath}
}

// TotalSize returns the sum of all file sizes.
func (t *Inventory) TotalSize() int64 {
	var total int64

	for _, r := range t.Records {
		total += r.Size
	}

	return total
}

// value returns the grouping key of record r for column by.
func (by GroupColumn) value(r FileRecord) string {
	if by == ByDirectory {
		return r.Directory
	}

	return r.Extension
}
