package store

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/zeekwatch/ja4extract/internal/model"
	"github.com/zeekwatch/ja4extract/internal/query"
)

func openSQLite(t *testing.T) Store {
	t.Helper()
	s, err := Open("sqlite", filepath.Join(t.TempDir(), "ja4.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func httpRecord(uid, ja4h string) *model.HTTPRecord {
	return &model.HTTPRecord{
		UID:        uid,
		SrcIP:      "192.168.1.10",
		SrcPort:    "52100",
		DstIP:      "93.184.216.34",
		DstPort:    "80",
		Method:     "GET",
		Host:       "example.com",
		URI:        "/",
		UserAgent:  "curl/8.0",
		StatusCode: "200",
		JA4H:       ja4h,
	}
}

func TestOpenUnsupportedDriver(t *testing.T) {
	if _, err := Open("mysql", "dsn"); err == nil {
		t.Error("expected error for unsupported driver")
	}
}

func TestInsertAndCountHTTP(t *testing.T) {
	s := openSQLite(t)

	records := []*model.HTTPRecord{
		httpRecord("Ck1a2b", "ge11nn100000_9ed1ff1f7b03_000000000000_000000000000"),
		httpRecord("Ck3c4d", "ge11nn050000_55b375c5d22e_000000000000_000000000000"),
	}

	n, err := s.InsertHTTP(records, nil)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("inserted = %d, want 2", n)
	}

	count, err := s.CountRecords(FamilyHTTP)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestInsertAllFamilies(t *testing.T) {
	s := openSQLite(t)

	if _, err := s.InsertTLS([]*model.TLSRecord{{UID: "Ck1", JA4: "t13d1516h2_8daaf6152771_b0da82dd1658"}}, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := s.InsertTCP([]*model.TCPRecord{{UID: "Ck2", JA4T: "64240_2-1-3-1-1-4_1460_8"}}, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := s.InsertX509([]*model.X509Record{{UID: "Ck3", LogType: "x509_log"}}, nil); err != nil {
		t.Fatal(err)
	}

	for _, family := range []string{FamilyTLS, FamilyTCP, FamilyX509} {
		count, err := s.CountRecords(family)
		if err != nil {
			t.Fatal(err)
		}
		if count != 1 {
			t.Errorf("count(%s) = %d, want 1", family, count)
		}
	}
}

func TestDistinctFingerprints(t *testing.T) {
	s := openSQLite(t)

	ja4hA := "ge11nn100000_9ed1ff1f7b03_000000000000_000000000000"
	ja4hB := "ge11nn050000_55b375c5d22e_000000000000_000000000000"
	records := []*model.HTTPRecord{
		httpRecord("Ck1", ja4hA),
		httpRecord("Ck2", ja4hA),
		httpRecord("Ck3", ja4hB),
		httpRecord("Ck4", ""),
	}
	if _, err := s.InsertHTTP(records, nil); err != nil {
		t.Fatal(err)
	}

	got, err := s.DistinctFingerprints(FamilyHTTP, "ja4h")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("distinct = %d values, want 2 (empty excluded): %v", len(got), got)
	}
	if got[ja4hA] != 2 || got[ja4hB] != 1 {
		t.Errorf("frequencies = %v", got)
	}
}

func TestDistinctFingerprintsRejectsUnknownColumn(t *testing.T) {
	s := openSQLite(t)
	if _, err := s.DistinctFingerprints(FamilyHTTP, "uid; DROP TABLE ja4_http"); err == nil {
		t.Error("expected error for unknown column")
	}
}

func TestUnknownFamily(t *testing.T) {
	s := openSQLite(t)
	if _, err := s.CountRecords("dns"); err == nil {
		t.Error("expected error for unknown family")
	}
}

func TestSelectWithPredicate(t *testing.T) {
	s := openSQLite(t)

	records := []*model.HTTPRecord{
		httpRecord("Ck1", "ge11nn100000_9ed1ff1f7b03_000000000000_000000000000"),
		httpRecord("Ck2", "ge11nn050000_55b375c5d22e_000000000000_000000000000"),
		httpRecord("Ck3", "ge11nn100000_9ed1ff1f7b03_000000000000_000000000000"),
	}
	if _, err := s.InsertHTTP(records, nil); err != nil {
		t.Fatal(err)
	}

	table, columns, err := Table(FamilyHTTP)
	if err != nil {
		t.Fatal(err)
	}
	b := query.NewBuilder(table, columns, 0)
	if err := b.AddPredicate(query.Simple("ja4h", query.Equal, "ge11nn100000_9ed1ff1f7b03_000000000000_000000000000")); err != nil {
		t.Fatal(err)
	}

	rows, err := s.Select(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("select returned %d rows, want 2", len(rows))
	}
	if len(rows[0]) != len(model.HTTPFields) {
		t.Errorf("row width = %d, want %d", len(rows[0]), len(model.HTTPFields))
	}

	count, err := s.SelectCount(b)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestTableUnknownFamily(t *testing.T) {
	if _, _, err := Table("dns"); err == nil {
		t.Error("expected error for unknown family")
	}
}

func TestSQLiteDialectSQL(t *testing.T) {
	d := &SQLiteDialect{}

	if d.Placeholder(3) != "?" {
		t.Errorf("placeholder = %q, want ?", d.Placeholder(3))
	}

	ddl := d.CreateTableSQL("ja4_tcp", []string{"uid", "ja4t"})
	if !strings.Contains(ddl, "CREATE TABLE IF NOT EXISTS ja4_tcp") {
		t.Errorf("ddl = %q", ddl)
	}
	if !strings.Contains(ddl, `"uid" TEXT, "ja4t" TEXT`) {
		t.Errorf("ddl columns = %q", ddl)
	}

	ins := d.InsertSQL("ja4_tcp", []string{"uid", "ja4t"})
	want := `INSERT INTO ja4_tcp ("uid", "ja4t") VALUES (?, ?)`
	if ins != want {
		t.Errorf("insert = %q, want %q", ins, want)
	}
}

func TestPostgresDialectSQL(t *testing.T) {
	d := &PostgresDialect{}

	if d.Placeholder(3) != "$3" {
		t.Errorf("placeholder = %q, want $3", d.Placeholder(3))
	}

	ins := d.InsertSQL("ja4_ssl", []string{"uid", "ja4", "ja4s"})
	want := `INSERT INTO ja4_ssl ("uid", "ja4", "ja4s") VALUES ($1, $2, $3)`
	if ins != want {
		t.Errorf("insert = %q, want %q", ins, want)
	}
}
