// Package query builds parameterized SELECT statements over the
// fingerprint tables, for ad hoc inspection of a populated store.
package query

import (
	"fmt"
	"strings"
)

// Logic determines how multiple predicates are combined.
type Logic int

const (
	AND Logic = iota
	OR
)

// Operator represents a SQL comparison operator.
type Operator string

const (
	Equal          Operator = "="
	NotEqual       Operator = "!="
	Like           Operator = "LIKE"
	NotLike        Operator = "NOT LIKE"
	GreaterOrEqual Operator = ">="
	LessOrEqual    Operator = "<="
)

// validOperators is the set of allowed operators for validation.
var validOperators = map[Operator]bool{
	Equal: true, NotEqual: true, Like: true, NotLike: true,
	GreaterOrEqual: true, LessOrEqual: true,
}

// Predicate represents a single filter condition or a composite of
// conditions. Values are always parameterized; column names are validated
// against the table's columns when the predicate is added to a Builder.
type Predicate struct {
	kind  predicateKind
	field string
	op    Operator
	value string
	left  *Predicate
	right *Predicate
	logic Logic
}

type predicateKind int

const (
	predNone predicateKind = iota
	predSimple
	predComposite
)

// Simple creates a predicate that compares a column to a value.
// Returns nil if the operator is unrecognized.
func Simple(field string, op Operator, value string) *Predicate {
	if !validOperators[op] {
		return nil
	}
	return &Predicate{
		kind:  predSimple,
		field: field,
		op:    op,
		value: value,
	}
}

// Combine joins multiple predicates with the given logic (AND or OR).
// Returns nil for an empty slice, the single predicate for one. Nil
// predicates in the slice are skipped.
func Combine(preds []*Predicate, logic Logic) *Predicate {
	filtered := make([]*Predicate, 0, len(preds))
	for _, p := range preds {
		if p != nil {
			filtered = append(filtered, p)
		}
	}

	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}

	result := &Predicate{
		kind:  predComposite,
		left:  filtered[0],
		right: filtered[1],
		logic: logic,
	}
	for i := 2; i < len(filtered); i++ {
		result = &Predicate{
			kind:  predComposite,
			left:  result,
			right: filtered[i],
			logic: logic,
		}
	}
	return result
}

// fields returns the column names referenced by the predicate tree.
func (p *Predicate) fields() []string {
	if p == nil {
		return nil
	}
	switch p.kind {
	case predSimple:
		return []string{p.field}
	case predComposite:
		seen := make(map[string]bool)
		var result []string
		for _, f := range append(p.left.fields(), p.right.fields()...) {
			if !seen[f] {
				seen[f] = true
				result = append(result, f)
			}
		}
		return result
	default:
		return nil
	}
}

// whereClause renders the predicate tree as a SQL fragment. Placeholders
// come from ph, called with a running 1-based parameter index kept in next.
func (p *Predicate) whereClause(ph func(int) string, next *int) (string, []interface{}) {
	if p == nil {
		return "", nil
	}

	switch p.kind {
	case predSimple:
		*next++
		mark := ph(*next)
		value := p.value
		if p.op == Like || p.op == NotLike {
			value = "%" + value + "%"
		}
		return fmt.Sprintf("(%q %s %s)", p.field, p.op, mark), []interface{}{value}

	case predComposite:
		leftSQL, leftArgs := p.left.whereClause(ph, next)
		rightSQL, rightArgs := p.right.whereClause(ph, next)

		if leftSQL == "" {
			return rightSQL, rightArgs
		}
		if rightSQL == "" {
			return leftSQL, leftArgs
		}

		logicStr := "AND"
		if p.logic == OR {
			logicStr = "OR"
		}
		sql := fmt.Sprintf("(%s %s %s)", leftSQL, logicStr, rightSQL)
		return sql, append(leftArgs, rightArgs...)

	default:
		return "", nil
	}
}

// Builder assembles a SELECT over one fingerprint table from predicates,
// ordering, and pagination.
type Builder struct {
	table      string
	columns    []string
	predicates []*Predicate
	logic      Logic
	orderBy    string
	pageSize   int
	page       int
}

// NewBuilder creates a Builder for a table with the given column order.
// Pass pageSize 0 for no pagination.
func NewBuilder(table string, columns []string, pageSize int) *Builder {
	return &Builder{
		table:    table,
		columns:  columns,
		logic:    AND,
		pageSize: pageSize,
		page:     1,
	}
}

// Columns returns the column order of the SELECT list.
func (b *Builder) Columns() []string {
	return b.columns
}

// SetLogic sets how top-level predicates are combined (AND or OR).
func (b *Builder) SetLogic(logic Logic) {
	b.logic = logic
}

// AddPredicate appends a predicate. It fails when the predicate references
// a column the table does not have.
func (b *Builder) AddPredicate(p *Predicate) error {
	if p == nil {
		return fmt.Errorf("nil predicate")
	}
	for _, f := range p.fields() {
		if !b.validColumn(f) {
			return fmt.Errorf("unknown column %s for table %s", f, b.table)
		}
	}
	b.predicates = append(b.predicates, p)
	return nil
}

// ClearPredicates removes all predicates.
func (b *Builder) ClearPredicates() {
	b.predicates = nil
}

// OrderBy sets the column to sort results by. Pass an empty string to
// clear ordering.
func (b *Builder) OrderBy(field string) error {
	if field == "" {
		b.orderBy = ""
		return nil
	}
	if !b.validColumn(field) {
		return fmt.Errorf("invalid order by column: %s", field)
	}
	b.orderBy = field
	return nil
}

// SetPage sets the current page number (1-based).
func (b *Builder) SetPage(page int) {
	if page >= 1 {
		b.page = page
	}
}

// Build generates the SELECT statement and its parameter values. ph maps a
// 1-based parameter index to the backend's placeholder syntax.
func (b *Builder) Build(ph func(int) string) (string, []interface{}) {
	quoted := make([]string, len(b.columns))
	for i, c := range b.columns {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	sql := "SELECT " + strings.Join(quoted, ", ") + " FROM " + b.table

	whereSQL, args := b.where(ph)
	if whereSQL != "" {
		sql += " WHERE " + whereSQL
	}

	if b.orderBy != "" {
		sql += fmt.Sprintf(" ORDER BY %q", b.orderBy)
	}

	if b.pageSize > 0 {
		offset := b.pageSize * (b.page - 1)
		sql += fmt.Sprintf(" LIMIT %d OFFSET %d", b.pageSize, offset)
	}

	return sql, args
}

// BuildCount generates a COUNT query using the same predicates.
func (b *Builder) BuildCount(ph func(int) string) (string, []interface{}) {
	sql := "SELECT COUNT(*) FROM " + b.table

	whereSQL, args := b.where(ph)
	if whereSQL != "" {
		sql += " WHERE " + whereSQL
	}
	return sql, args
}

func (b *Builder) where(ph func(int) string) (string, []interface{}) {
	if len(b.predicates) == 0 {
		return "", nil
	}
	combined := Combine(b.predicates, b.logic)
	next := 0
	return combined.whereClause(ph, &next)
}

func (b *Builder) validColumn(name string) bool {
	for _, c := range b.columns {
		if c == name {
			return true
		}
	}
	return false
}
