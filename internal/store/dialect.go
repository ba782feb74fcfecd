package store

import (
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb" // registers the "duckdb" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver
)

// Driver names accepted in Options.Driver.
const (
	DriverSQLite = "sqlite"
	DriverDuckDB = "duckdb"
)

// dialect captures the few statements that differ between drivers.
type dialect struct {
	driver      string
	indexType   string
	tableExists string
	listTables  string
	columnTypes string
	typeOf      func(string) string
}

//nolint:gochecknoglobals // Static driver table
var dialects = map[string]dialect{
	DriverSQLite: {
		driver:      DriverSQLite,
		indexType:   "INTEGER",
		tableExists: `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`,
		listTables:  `SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`,
		columnTypes: `SELECT name, type FROM pragma_table_info(?) ORDER BY cid`,
		typeOf:      func(t string) string { return t },
	},
	DriverDuckDB: {
		driver:      DriverDuckDB,
		indexType:   "BIGINT",
		tableExists: `SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ?`,
		listTables:  `SELECT table_name FROM information_schema.tables ORDER BY table_name`,
		columnTypes: `SELECT column_name, data_type FROM information_schema.columns
			WHERE table_name = ? ORDER BY ordinal_position`,
		typeOf: duckdbType,
	},
}

// duckdbType maps the generic column types onto DuckDB types.
// DuckDB's REAL is single precision, so real becomes DOUBLE.
func duckdbType(t string) string {
	switch strings.ToLower(t) {
	case "real":
		return "DOUBLE"
	case "text":
		return "VARCHAR"
	default:
		return strings.ToUpper(t)
	}
}

// DetectDriver picks duckdb for .duckdb destinations and sqlite otherwise.
func DetectDriver(destination string) string {
	if strings.EqualFold(filepath.Ext(destination), ".duckdb") {
		return DriverDuckDB
	}

	return DriverSQLite
}

// lookupDialect resolves a driver name, detecting it from the destination when empty.
func lookupDialect(driver, destination string) (dialect, error) {
	if driver == "" {
		driver = DetectDriver(destination)
	}

	d, ok := dialects[strings.ToLower(driver)]
	if !ok {
		return dialect{}, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	return d, nil
}

// quote quotes an SQL identifier.
func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
