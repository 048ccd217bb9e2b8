package zeeklog

import "strings"

// Schema maps semantic field names to zero-based column positions in a
// tab-separated log line. For http.log, ssl.log and conn.log a compiled-in
// column order is used unless the file carries its own #fields directive;
// x509.log is always self-describing.
type Schema struct {
	columns []string
	index   map[string]int
}

// NewSchema builds a schema from an ordered column-name list.
// If a name repeats, the first occurrence wins.
func NewSchema(columns []string) *Schema {
	s := &Schema{
		columns: columns,
		index:   make(map[string]int, len(columns)),
	}
	for i, name := range columns {
		if _, ok := s.index[name]; !ok {
			s.index[name] = i
		}
	}
	return s
}

// SchemaFromHeader builds a schema from a #fields directive line.
// The leading "#fields" token is dropped; the remaining tab-separated
// tokens become the column order.
func SchemaFromHeader(line string) *Schema {
	tokens := strings.Split(line, "\t")
	if len(tokens) > 0 && strings.HasPrefix(tokens[0], "#") {
		tokens = tokens[1:]
	}
	return NewSchema(tokens)
}

// Index returns the column position of a field name.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Value returns the row value for a field name, or empty string when the
// name is unknown or the row is too short to reach its column.
func (s *Schema) Value(row []string, name string) string {
	i, ok := s.index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// Width returns the minimum row length needed to populate the given field
// names: the highest mapped index plus one. Names absent from the schema
// are ignored, so a header that omits a field does not make every line
// look short.
func (s *Schema) Width(required []string) int {
	width := 0
	for _, name := range required {
		if i, ok := s.index[name]; ok && i+1 > width {
			width = i + 1
		}
	}
	return width
}

// Len returns the number of columns in the schema.
func (s *Schema) Len() int {
	return len(s.columns)
}
