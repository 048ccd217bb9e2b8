// Package store persists extracted fingerprint records into a relational
// database, as an optional sink alongside the CSV/JSON artifacts.
package store

import (
	"fmt"

	"github.com/zeekwatch/ja4extract/internal/model"
	"github.com/zeekwatch/ja4extract/internal/query"
)

// Record families and their table names.
const (
	FamilyHTTP = "http"
	FamilyTLS  = "ssl"
	FamilyTCP  = "tcp"
	FamilyX509 = "x509"
)

// tables maps each family to its table name and column order. Every column
// is TEXT: values stay exactly as they came out of the log.
var tables = map[string]struct {
	name    string
	columns []string
}{
	FamilyHTTP: {"ja4_http", model.HTTPFields},
	FamilyTLS:  {"ja4_ssl", model.TLSFields},
	FamilyTCP:  {"ja4_tcp", model.TCPFields},
	FamilyX509: {"ja4_x509", model.X509Fields},
}

// Table returns the table name and column order for a family, for callers
// building queries against the store.
func Table(family string) (string, []string, error) {
	t, ok := tables[family]
	if !ok {
		return "", nil, fmt.Errorf("unknown record family: %s", family)
	}
	return t.name, t.columns, nil
}

// Store defines the database operations the extractor needs. The command
// layer depends on this interface, not on a concrete backend.
type Store interface {
	InsertHTTP(records []*model.HTTPRecord, onProgress func(count int)) (int, error)
	InsertTLS(records []*model.TLSRecord, onProgress func(count int)) (int, error)
	InsertTCP(records []*model.TCPRecord, onProgress func(count int)) (int, error)
	InsertX509(records []*model.X509Record, onProgress func(count int)) (int, error)

	// CountRecords returns the number of stored records for a family.
	CountRecords(family string) (int64, error)

	// DistinctFingerprints returns the distinct values of a fingerprint
	// column for a family along with how often each occurs.
	DistinctFingerprints(family, column string) (map[string]int64, error)

	// Select runs a built query and returns the matching rows in the
	// builder's column order.
	Select(q *query.Builder) ([][]string, error)

	// SelectCount runs the count form of a built query.
	SelectCount(q *query.Builder) (int64, error)

	// Lifecycle
	Close() error
	Path() string
}
