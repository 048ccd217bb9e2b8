package zeeklog

// Policy declares a record family's retention behavior: which fingerprint
// fields justify keeping a record, and whether exact duplicates are
// removed. Keeping this declarative puts the per-family differences in one
// place instead of spreading them across four parsers.
type Policy struct {
	// Fingerprints lists the field names that make a record worth
	// keeping; a record survives if at least one of them is non-empty
	// after normalization. An empty list keeps every record.
	Fingerprints []string

	// Dedup enables exact-duplicate removal over the whole record.
	Dedup bool
}

// Keep reports whether a row passes the family's fingerprint filter.
func (p Policy) Keep(r *Reader, s *Schema, row []string) bool {
	if len(p.Fingerprints) == 0 {
		return true
	}
	for _, name := range p.Fingerprints {
		if r.Normalize(s.Value(row, name)) != "" {
			return true
		}
	}
	return false
}
