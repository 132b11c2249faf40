package query

import (
	"fmt"
	"reflect"
	"strings"
)

// SortField names a logical field for an ORDER BY clause. The field is
// resolved to a column through the builder's ProjectionMap. Descending
// selects DESC ordering; the zero value sorts ascending.
type SortField struct {
	Field      string
	Descending bool
}

// ParseSortFields splits a comma-separated sort expression into SortFields.
// A leading "-" marks a field as descending, e.g. "fundName,-createdAt".
// Empty input yields nil.
func ParseSortFields(s string) []SortField {
	if s == "" {
		return nil
	}

	var fields []SortField
	for _, raw := range strings.Split(s, ",") {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		desc := strings.HasPrefix(name, "-")
		if desc {
			name = name[1:]
		}
		fields = append(fields, SortField{Field: name, Descending: desc})
	}

	return fields
}

type predicate struct {
	clause string
	args   []any
}

// Builder assembles SELECT statements over a ProjectionMap. Conditions
// accumulate through the Where methods and are joined with AND; parameter
// placeholders are numbered in the order conditions were added.
type Builder struct {
	projection *ProjectionMap
	predicates []predicate
	sort       []SortField
	fallback   []SortField
	nextParam  int
}

// NewBuilder creates a Builder for projection. The optional defaultSort
// applies when no explicit ordering is set via OrderByFields.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection: projection,
		fallback:   defaultSort,
		nextParam:  1,
	}
}

// OrderByFields replaces the default sort with an explicit ordering.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	b.sort = fields
	return b
}

// WhereEquals adds "column = value". Nil values are ignored.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	b.add(fmt.Sprintf("%s = %s", b.projection.Column(field), b.param()), value)
	return b
}

// WhereContains adds a case-insensitive substring match. Nil or empty
// values are ignored.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	b.add(fmt.Sprintf("%s ILIKE %s", b.projection.Column(field), b.param()), "%"+*value+"%")
	return b
}

// WhereIn adds "column IN (...)". Empty value slices are ignored.
func (b *Builder) WhereIn(field string, values []any) *Builder {
	if len(values) == 0 {
		return b
	}

	marks := make([]string, len(values))
	for i := range values {
		marks[i] = b.param()
	}
	b.add(fmt.Sprintf("%s IN (%s)", b.projection.Column(field), strings.Join(marks, ", ")), values...)
	return b
}

// WhereNullable adds "column = value", or "column IS NULL" when value is nil.
func (b *Builder) WhereNullable(field string, value any) *Builder {
	col := b.projection.Column(field)
	if isNil(value) {
		b.add(col + " IS NULL")
	} else {
		b.add(fmt.Sprintf("%s = %s", col, b.param()), value)
	}
	return b
}

// WhereSearch adds an OR group matching the search term against each of
// the given fields with ILIKE. Nil or empty terms are ignored.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" || len(fields) == 0 {
		return b
	}

	pattern := "%" + *search + "%"
	clauses := make([]string, len(fields))
	args := make([]any, len(fields))
	for i, field := range fields {
		clauses[i] = fmt.Sprintf("%s ILIKE %s", b.projection.Column(field), b.param())
		args[i] = pattern
	}
	b.add("("+strings.Join(clauses, " OR ")+")", args...)
	return b
}

// Build renders the full SELECT with accumulated conditions and ordering.
func (b *Builder) Build() (string, []any) {
	where, args := b.where()
	return fmt.Sprintf("SELECT %s FROM %s%s%s",
		b.projection.Columns(), b.projection.From(), where, b.orderBy()), args
}

// BuildCount renders a COUNT(*) over the accumulated conditions.
func (b *Builder) BuildCount() (string, []any) {
	where, args := b.where()
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", b.projection.From(), where), args
}

// BuildPage renders a LIMIT/OFFSET page of the ordered result set.
// Pages are 1-based.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	where, args := b.where()
	return fmt.Sprintf("SELECT %s FROM %s%s%s LIMIT %d OFFSET %d",
		b.projection.Columns(), b.projection.From(), where, b.orderBy(),
		pageSize, (page-1)*pageSize), args
}

// BuildSingle renders a lookup of one record by its ID field. Accumulated
// conditions are NOT applied; use BuildSingleOrNull for scoped lookups.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		b.projection.Columns(), b.projection.From(), b.projection.Column(idField))
	return sql, []any{id}
}

// BuildSingleOrNull renders a LIMIT 1 query over the accumulated conditions.
func (b *Builder) BuildSingleOrNull() (string, []any) {
	where, args := b.where()
	return fmt.Sprintf("SELECT %s FROM %s%s LIMIT 1",
		b.projection.Columns(), b.projection.From(), where), args
}

func (b *Builder) add(clause string, args ...any) {
	b.predicates = append(b.predicates, predicate{clause: clause, args: args})
}

func (b *Builder) param() string {
	p := fmt.Sprintf("$%d", b.nextParam)
	b.nextParam++
	return p
}

func (b *Builder) where() (string, []any) {
	if len(b.predicates) == 0 {
		return "", nil
	}

	clauses := make([]string, len(b.predicates))
	var args []any
	for i, p := range b.predicates {
		clauses[i] = p.clause
		args = append(args, p.args...)
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (b *Builder) orderBy() string {
	fields := b.sort
	if len(fields) == 0 {
		fields = b.fallback
	}
	if len(fields) == 0 {
		return ""
	}

	parts := make([]string, len(fields))
	for i, f := range fields {
		dir := "ASC"
		if f.Descending {
			dir = "DESC"
		}
		parts[i] = b.projection.Column(f.Field) + " " + dir
	}

	return " ORDER BY " + strings.Join(parts, ", ")
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}

	return false
}
