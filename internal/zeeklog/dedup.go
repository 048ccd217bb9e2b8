package zeeklog

import "github.com/cespare/xxhash/v2"

// Deduper drops records that exactly duplicate an earlier one in the same
// batch, preserving first-seen order. Instead of retaining every prior
// record it keeps a content hash of the canonical field order, so memory
// stays proportional to the number of distinct records, not their size.
type Deduper struct {
	seen    map[uint64]struct{}
	removed int
}

// NewDeduper returns an empty Deduper.
func NewDeduper() *Deduper {
	return &Deduper{seen: make(map[uint64]struct{})}
}

// Seen reports whether an identical row was already observed, recording it
// if not. Rows are compared over every field in order; values cannot
// contain tabs (the line was split on them), so the tab-joined form is a
// canonical encoding.
func (d *Deduper) Seen(row []string) bool {
	h := xxhash.New()
	for _, v := range row {
		h.WriteString(v)
		h.Write([]byte{'\t'})
	}
	sum := h.Sum64()

	if _, dup := d.seen[sum]; dup {
		d.removed++
		return true
	}
	d.seen[sum] = struct{}{}
	return false
}

// Removed returns how many duplicate rows have been dropped so far.
func (d *Deduper) Removed() int {
	return d.removed
}
