package store

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/zeekwatch/ja4extract/internal/model"
	"github.com/zeekwatch/ja4extract/internal/query"
)

// SQLStore implements Store on top of database/sql. All backend
// differences live in the Dialect.
type SQLStore struct {
	path    string
	conn    *sql.DB
	dialect Dialect
}

// open connects, verifies the connection, and creates any missing family
// tables.
func open(d Dialect, pathOrConnStr string) (*SQLStore, error) {
	conn, err := sql.Open(d.DriverName(), d.DSN(pathOrConnStr))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLStore{path: pathOrConnStr, conn: conn, dialect: d}

	for _, t := range tables {
		if _, err := conn.Exec(d.CreateTableSQL(t.name, t.columns)); err != nil {
			conn.Close()
			return nil, fmt.Errorf("creating table %s: %w", t.name, err)
		}
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Path returns the file path or connection string the store was opened with.
func (s *SQLStore) Path() string {
	return s.path
}

// insertRows inserts a batch of rows for a family inside one transaction,
// using a prepared statement. The onProgress callback fires every 10,000
// rows if non-nil.
func (s *SQLStore) insertRows(family string, rows [][]string, onProgress func(count int)) (int, error) {
	t, ok := tables[family]
	if !ok {
		return 0, fmt.Errorf("unknown record family: %s", family)
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(s.dialect.InsertSQL(t.name, t.columns))
	if err != nil {
		return 0, fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, row := range rows {
		args := make([]interface{}, len(row))
		for i, v := range row {
			args[i] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			return inserted, fmt.Errorf("inserting row %d: %w", inserted+1, err)
		}
		inserted++
		if onProgress != nil && inserted%10000 == 0 {
			onProgress(inserted)
		}
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("committing transaction: %w", err)
	}
	return inserted, nil
}

// InsertHTTP inserts a batch of HTTP records.
func (s *SQLStore) InsertHTTP(records []*model.HTTPRecord, onProgress func(count int)) (int, error) {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = r.Row()
	}
	return s.insertRows(FamilyHTTP, rows, onProgress)
}

// InsertTLS inserts a batch of TLS records.
func (s *SQLStore) InsertTLS(records []*model.TLSRecord, onProgress func(count int)) (int, error) {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = r.Row()
	}
	return s.insertRows(FamilyTLS, rows, onProgress)
}

// InsertTCP inserts a batch of TCP records.
func (s *SQLStore) InsertTCP(records []*model.TCPRecord, onProgress func(count int)) (int, error) {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = r.Row()
	}
	return s.insertRows(FamilyTCP, rows, onProgress)
}

// InsertX509 inserts a batch of X.509 records, flattened to X509Fields order.
func (s *SQLStore) InsertX509(records []*model.X509Record, onProgress func(count int)) (int, error) {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = r.Row()
	}
	return s.insertRows(FamilyX509, rows, onProgress)
}

// CountRecords returns the number of stored records for a family.
func (s *SQLStore) CountRecords(family string) (int64, error) {
	t, ok := tables[family]
	if !ok {
		return 0, fmt.Errorf("unknown record family: %s", family)
	}

	var count int64
	err := s.conn.QueryRow("SELECT COUNT(*) FROM " + t.name).Scan(&count)
	return count, err
}

// DistinctFingerprints returns distinct values and frequencies for a
// fingerprint column, excluding empty values.
func (s *SQLStore) DistinctFingerprints(family, column string) (map[string]int64, error) {
	t, ok := tables[family]
	if !ok {
		return nil, fmt.Errorf("unknown record family: %s", family)
	}

	// Validate the column against the family's known columns to keep
	// interpolated identifiers safe.
	if !validColumn(t.columns, column) {
		return nil, fmt.Errorf("unknown column %s for family %s", column, family)
	}

	query := fmt.Sprintf(
		"SELECT %q, COUNT(*) FROM %s WHERE %q <> '' GROUP BY %q",
		column, t.name, column, column)

	rows, err := s.conn.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]int64)
	for rows.Next() {
		var value string
		var count int64
		if err := rows.Scan(&value, &count); err != nil {
			return nil, err
		}
		result[value] = count
	}
	return result, rows.Err()
}

// Select runs a built query and returns matching rows in the builder's
// column order. Every value scans as text.
func (s *SQLStore) Select(q *query.Builder) ([][]string, error) {
	sqlStr, args := q.Build(s.dialect.Placeholder)

	rows, err := s.conn.Query(sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	width := len(q.Columns())
	var result [][]string
	for rows.Next() {
		values := make([]string, width)
		dest := make([]interface{}, width)
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		result = append(result, values)
	}
	return result, rows.Err()
}

// SelectCount runs the count form of a built query.
func (s *SQLStore) SelectCount(q *query.Builder) (int64, error) {
	sqlStr, args := q.BuildCount(s.dialect.Placeholder)

	var count int64
	err := s.conn.QueryRow(sqlStr, args...).Scan(&count)
	return count, err
}

func validColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}
