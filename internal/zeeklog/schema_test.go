package zeeklog

import "testing"

func TestSchemaIndex(t *testing.T) {
	s := NewSchema([]string{"ts", "uid", "id.orig_h"})

	i, ok := s.Index("uid")
	if !ok || i != 1 {
		t.Errorf("Index(uid) = %d, %v, want 1, true", i, ok)
	}
	if _, ok := s.Index("nope"); ok {
		t.Error("Index(nope) should not resolve")
	}
}

func TestSchemaDuplicateNameFirstWins(t *testing.T) {
	s := NewSchema([]string{"a", "b", "a"})
	i, _ := s.Index("a")
	if i != 0 {
		t.Errorf("Index(a) = %d, want 0", i)
	}
}

func TestSchemaFromHeader(t *testing.T) {
	s := SchemaFromHeader("#fields\tts\tuid\tja4x")
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
	if i, ok := s.Index("ja4x"); !ok || i != 2 {
		t.Errorf("Index(ja4x) = %d, %v, want 2, true", i, ok)
	}
	if _, ok := s.Index("#fields"); ok {
		t.Error("directive token should not become a column")
	}
}

func TestSchemaValue(t *testing.T) {
	s := NewSchema([]string{"ts", "uid"})
	row := []string{"1700000000.1", "C1x"}

	if got := s.Value(row, "uid"); got != "C1x" {
		t.Errorf("Value(uid) = %q, want C1x", got)
	}
	if got := s.Value(row[:1], "uid"); got != "" {
		t.Errorf("Value on short row = %q, want empty", got)
	}
	if got := s.Value(row, "missing"); got != "" {
		t.Errorf("Value(missing) = %q, want empty", got)
	}
}

func TestSchemaWidth(t *testing.T) {
	s := NewSchema([]string{"ts", "uid", "ja4", "ja4s"})

	if got := s.Width([]string{"uid", "ja4s"}); got != 4 {
		t.Errorf("Width = %d, want 4", got)
	}
	if got := s.Width([]string{"uid"}); got != 2 {
		t.Errorf("Width = %d, want 2", got)
	}
	// Names the schema does not declare are ignored.
	if got := s.Width([]string{"uid", "not_there"}); got != 2 {
		t.Errorf("Width with unknown name = %d, want 2", got)
	}
	if got := s.Width(nil); got != 0 {
		t.Errorf("Width(nil) = %d, want 0", got)
	}
}
