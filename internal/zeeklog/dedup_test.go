package zeeklog

import "testing"

func TestDeduperDropsExactDuplicates(t *testing.T) {
	d := NewDeduper()

	a := []string{"C1", "10.0.0.1", "80"}
	b := []string{"C2", "10.0.0.2", "443"}

	if d.Seen(a) {
		t.Error("first occurrence of a should not be a duplicate")
	}
	if d.Seen(b) {
		t.Error("first occurrence of b should not be a duplicate")
	}
	if !d.Seen(a) {
		t.Error("second occurrence of a should be a duplicate")
	}
	if d.Removed() != 1 {
		t.Errorf("Removed = %d, want 1", d.Removed())
	}
}

func TestDeduperFullRecordEquality(t *testing.T) {
	d := NewDeduper()

	// Same uid, different payload: not duplicates.
	if d.Seen([]string{"C1", "GET"}) {
		t.Error("unexpected duplicate")
	}
	if d.Seen([]string{"C1", "POST"}) {
		t.Error("records differing in any field are not duplicates")
	}
}

func TestDeduperFieldBoundaries(t *testing.T) {
	d := NewDeduper()

	// ["ab", "c"] and ["a", "bc"] must hash differently.
	if d.Seen([]string{"ab", "c"}) {
		t.Error("unexpected duplicate")
	}
	if d.Seen([]string{"a", "bc"}) {
		t.Error("rows with shifted field boundaries must not collide")
	}
}

func TestDeduperPreservesFirstSeenOrder(t *testing.T) {
	d := NewDeduper()

	input := [][]string{
		{"A"}, {"B"}, {"A"}, {"C"},
	}

	var out []string
	for _, row := range input {
		if !d.Seen(row) {
			out = append(out, row[0])
		}
	}

	want := []string{"A", "B", "C"}
	if len(out) != len(want) {
		t.Fatalf("survivors = %v, want %v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("survivor[%d] = %q, want %q", i, out[i], want[i])
		}
	}
}

func TestDeduperIdempotent(t *testing.T) {
	input := [][]string{{"A"}, {"B"}, {"A"}, {"C"}}

	first := dedupRows(input)
	second := dedupRows(first)

	if len(first) != len(second) {
		t.Fatalf("second pass changed batch size: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i][0] != second[i][0] {
			t.Errorf("row %d changed across passes: %q vs %q", i, first[i][0], second[i][0])
		}
	}
}

func dedupRows(rows [][]string) [][]string {
	d := NewDeduper()
	var out [][]string
	for _, row := range rows {
		if !d.Seen(row) {
			out = append(out, row)
		}
	}
	return out
}
