package query

import (
	"fmt"
	"strings"
	"testing"
)

var sslColumns = []string{
	"uid", "src_ip", "src_port", "dst_ip", "dst_port",
	"version", "cipher", "server_name", "ja4", "ja4s",
}

func qmark(int) string { return "?" }

func dollar(i int) string { return fmt.Sprintf("$%d", i) }

func TestSimpleRejectsUnknownOperator(t *testing.T) {
	if p := Simple("uid", Operator("~"), "x"); p != nil {
		t.Error("expected nil predicate for unknown operator")
	}
}

func TestBuildNoPredicates(t *testing.T) {
	b := NewBuilder("ja4_ssl", sslColumns, 0)
	sql, args := b.Build(qmark)

	want := `SELECT "uid", "src_ip", "src_port", "dst_ip", "dst_port", "version", "cipher", "server_name", "ja4", "ja4s" FROM ja4_ssl`
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestBuildEqualityPredicate(t *testing.T) {
	b := NewBuilder("ja4_ssl", sslColumns, 0)
	if err := b.AddPredicate(Simple("server_name", Equal, "example.com")); err != nil {
		t.Fatal(err)
	}

	sql, args := b.Build(qmark)
	if want := ` WHERE ("server_name" = ?)`; !contains(sql, want) {
		t.Errorf("sql = %q, want it to contain %q", sql, want)
	}
	if len(args) != 1 || args[0] != "example.com" {
		t.Errorf("args = %v", args)
	}
}

func TestBuildLikeWrapsValue(t *testing.T) {
	b := NewBuilder("ja4_ssl", sslColumns, 0)
	if err := b.AddPredicate(Simple("server_name", Like, "example")); err != nil {
		t.Fatal(err)
	}

	_, args := b.Build(qmark)
	if len(args) != 1 || args[0] != "%example%" {
		t.Errorf("args = %v, want [%%example%%]", args)
	}
}

func TestBuildCombinesWithAnd(t *testing.T) {
	b := NewBuilder("ja4_ssl", sslColumns, 0)
	b.AddPredicate(Simple("version", Equal, "TLSv13"))
	b.AddPredicate(Simple("ja4", NotEqual, ""))

	sql, args := b.Build(qmark)
	want := `(("version" = ?) AND ("ja4" != ?))`
	if !contains(sql, want) {
		t.Errorf("sql = %q, want it to contain %q", sql, want)
	}
	if len(args) != 2 || args[0] != "TLSv13" {
		t.Errorf("args = %v", args)
	}
}

func TestBuildOrLogic(t *testing.T) {
	b := NewBuilder("ja4_ssl", sslColumns, 0)
	b.SetLogic(OR)
	b.AddPredicate(Simple("ja4", NotEqual, ""))
	b.AddPredicate(Simple("ja4s", NotEqual, ""))

	sql, _ := b.Build(qmark)
	if !contains(sql, " OR ") {
		t.Errorf("sql = %q, expected OR", sql)
	}
}

func TestBuildPostgresPlaceholders(t *testing.T) {
	b := NewBuilder("ja4_ssl", sslColumns, 0)
	b.AddPredicate(Simple("version", Equal, "TLSv13"))
	b.AddPredicate(Simple("cipher", Like, "AES"))

	sql, _ := b.Build(dollar)
	if !contains(sql, "$1") || !contains(sql, "$2") {
		t.Errorf("sql = %q, want numbered placeholders", sql)
	}
}

func TestAddPredicateRejectsUnknownColumn(t *testing.T) {
	b := NewBuilder("ja4_ssl", sslColumns, 0)
	if err := b.AddPredicate(Simple("host", Equal, "x")); err == nil {
		t.Error("expected error for a column the table does not have")
	}
}

func TestCombineSkipsNils(t *testing.T) {
	p := Simple("uid", Equal, "Ck1")
	got := Combine([]*Predicate{nil, p, nil}, AND)
	if got != p {
		t.Error("single non-nil predicate should come back unchanged")
	}
	if Combine(nil, AND) != nil {
		t.Error("empty slice should combine to nil")
	}
}

func TestOrderByValidation(t *testing.T) {
	b := NewBuilder("ja4_ssl", sslColumns, 0)
	if err := b.OrderBy("nope"); err == nil {
		t.Error("expected error for invalid order column")
	}
	if err := b.OrderBy("ja4"); err != nil {
		t.Fatal(err)
	}

	sql, _ := b.Build(qmark)
	if !contains(sql, ` ORDER BY "ja4"`) {
		t.Errorf("sql = %q", sql)
	}
}

func TestPagination(t *testing.T) {
	b := NewBuilder("ja4_ssl", sslColumns, 25)
	b.SetPage(3)

	sql, _ := b.Build(qmark)
	if !contains(sql, " LIMIT 25 OFFSET 50") {
		t.Errorf("sql = %q, want LIMIT 25 OFFSET 50", sql)
	}
}

func TestBuildCount(t *testing.T) {
	b := NewBuilder("ja4_http", []string{"uid", "ja4h"}, 0)
	b.AddPredicate(Simple("ja4h", NotEqual, ""))

	sql, args := b.BuildCount(qmark)
	if !contains(sql, "SELECT COUNT(*) FROM ja4_http WHERE ") {
		t.Errorf("sql = %q", sql)
	}
	if len(args) != 1 {
		t.Errorf("args = %v", args)
	}
}

func contains(s, sub string) bool {
	return strings.Contains(s, sub)
}
