package zeeklog

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Default sentinel markers from the Zeek ASCII writer. A file's preamble
// can override them with #empty_field / #unset_field directives.
const (
	DefaultEmptyMark = "(empty)"
	DefaultUnsetMark = "-"
)

// Reader walks a Zeek tab-separated log file line by line, skipping blank
// lines and the #-prefixed metadata preamble. Directives seen in the
// preamble (#fields, #empty_field, #unset_field) are captured as it goes,
// so by the time the first data line comes back from Next the file's own
// schema and sentinel markers are in effect.
type Reader struct {
	f         *os.File
	scanner   *bufio.Scanner
	schema    *Schema
	emptyMark string
	unsetMark string
	lineNum   int
	err       error
}

// Open opens a Zeek log file for reading. A missing file surfaces as an
// error satisfying errors.Is(err, fs.ErrNotExist).
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	scanner := bufio.NewScanner(f)
	// Long URIs and certificate subjects can push lines well past the
	// default scanner limit.
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	return &Reader{
		f:         f,
		scanner:   scanner,
		emptyMark: DefaultEmptyMark,
		unsetMark: DefaultUnsetMark,
	}, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.f.Close()
}

// Next returns the next data line split on tabs, along with its 1-based
// line number in the file. ok is false at end of input or on a read error;
// check Err after the loop.
func (r *Reader) Next() (row []string, lineNum int, ok bool) {
	for r.scanner.Scan() {
		r.lineNum++
		line := strings.TrimSpace(r.scanner.Text())

		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			r.directive(line)
			continue
		}

		return strings.Split(line, "\t"), r.lineNum, true
	}

	if err := r.scanner.Err(); err != nil {
		r.err = fmt.Errorf("reading log file: %w", err)
	}
	return nil, 0, false
}

// directive records a preamble directive. Unrecognized directives (such as
// #separator, #path, #open, #types) are skipped like any comment line.
func (r *Reader) directive(line string) {
	switch {
	case strings.HasPrefix(line, "#fields\t"):
		r.schema = SchemaFromHeader(line)
	case strings.HasPrefix(line, "#empty_field\t"):
		r.emptyMark = strings.TrimPrefix(line, "#empty_field\t")
	case strings.HasPrefix(line, "#unset_field\t"):
		r.unsetMark = strings.TrimPrefix(line, "#unset_field\t")
	}
}

// Err returns the first read error encountered, if any.
func (r *Reader) Err() error {
	return r.err
}

// Schema returns the schema declared by the file's #fields directive, or
// nil when none has been seen yet.
func (r *Reader) Schema() *Schema {
	return r.schema
}

// LinesRead returns how many physical lines have been consumed so far,
// preamble and blanks included.
func (r *Reader) LinesRead() int {
	return r.lineNum
}

// Normalize collapses the file's sentinel markers for "present but empty"
// and "unset" into the canonical empty string. Everything else passes
// through untouched.
func (r *Reader) Normalize(v string) string {
	if v == "" || v == r.unsetMark || v == r.emptyMark {
		return ""
	}
	return v
}
