package store

// Dialect abstracts database-specific SQL generation so the same store
// logic runs against SQLite and PostgreSQL.
type Dialect interface {
	// DriverName returns the database/sql driver name.
	DriverName() string

	// DSN returns the data source name for opening a connection.
	// For SQLite this is the file path; for PostgreSQL a connection string.
	DSN(pathOrConnStr string) string

	// Placeholder returns the parameter placeholder for the given 1-based
	// index. SQLite: "?" (ignoring index), PostgreSQL: "$1", "$2", etc.
	Placeholder(index int) string

	// CreateTableSQL returns idempotent DDL for a family table with the
	// given TEXT columns.
	CreateTableSQL(table string, columns []string) string

	// InsertSQL returns the parameterized INSERT statement for a family
	// table.
	InsertSQL(table string, columns []string) string
}
