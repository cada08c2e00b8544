package db

import (
	"fmt"
	"strings"
)

// Op is a comparison operator supported by the filter compiler.
type Op int

const (
	OpEq Op = iota
	OpIContains
	OpGTE
	OpLTE
)

// Filter binds one caller-supplied value against one or more columns.
// Columns are always fixed strings declared by a repository, never caller
// input; the value is always bound as a positional parameter.
type Filter struct {
	Columns []string
	Op      Op
	Value   any
}

func Eq(column string, value any) Filter {
	return Filter{Columns: []string{column}, Op: OpEq, Value: value}
}

// IContains matches case-insensitively anywhere in the column (ILIKE %term%).
// With several columns the same parameter is compared against each (OR).
func IContains(term string, columns ...string) Filter {
	return Filter{Columns: columns, Op: OpIContains, Value: "%" + term + "%"}
}

func GTE(column string, value any) Filter {
	return Filter{Columns: []string{column}, Op: OpGTE, Value: value}
}

func LTE(column string, value any) Filter {
	return Filter{Columns: []string{column}, Op: OpLTE, Value: value}
}

func (f Filter) clause(n int) string {
	switch f.Op {
	case OpIContains:
		if len(f.Columns) == 1 {
			return fmt.Sprintf("%s ILIKE $%d", f.Columns[0], n)
		}
		parts := make([]string, len(f.Columns))
		for i, c := range f.Columns {
			parts[i] = fmt.Sprintf("%s ILIKE $%d", c, n)
		}
		return "(" + strings.Join(parts, " OR ") + ")"
	case OpGTE:
		return fmt.Sprintf("%s >= $%d", f.Columns[0], n)
	case OpLTE:
		return fmt.Sprintf("%s <= $%d", f.Columns[0], n)
	default:
		return fmt.Sprintf("%s = $%d", f.Columns[0], n)
	}
}

// Predicate is a compiled WHERE fragment: a fixed base condition plus an
// ordered list of optional filters. One Predicate is rendered for the page
// query, the count query and every aggregate query of the same request, so
// the bound values stay positionally identical across all of them.
type Predicate struct {
	base    string
	filters []Filter
}

// NewPredicate starts a predicate from a fixed base condition written by the
// repository itself (e.g. "o.estado = 'pendiente'"). An empty base means no
// restriction.
func NewPredicate(base string) *Predicate {
	if strings.TrimSpace(base) == "" {
		base = "1=1"
	}
	return &Predicate{base: base}
}

func (p *Predicate) Add(filters ...Filter) *Predicate {
	p.filters = append(p.filters, filters...)
	return p
}

// AddEq appends an equality filter only when the value is non-empty, so an
// absent query parameter contributes neither text nor a bound value.
func (p *Predicate) AddEq(column, value string) *Predicate {
	if strings.TrimSpace(value) != "" {
		p.filters = append(p.filters, Eq(column, value))
	}
	return p
}

// AddSearch appends a case-insensitive contains filter when term is non-empty.
func (p *Predicate) AddSearch(term string, columns ...string) *Predicate {
	if strings.TrimSpace(term) != "" {
		p.filters = append(p.filters, IContains(term, columns...))
	}
	return p
}

// Where renders the predicate as a full WHERE clause whose placeholders start
// at $startAt. Args() returns the matching values in the same order.
func (p *Predicate) Where(startAt int) string {
	var b strings.Builder
	b.WriteString("WHERE ")
	b.WriteString(p.base)
	n := startAt
	for _, f := range p.filters {
		b.WriteString(" AND ")
		b.WriteString(f.clause(n))
		n++
	}
	return b.String()
}

// Args returns the bound values in placeholder order.
func (p *Predicate) Args() []any {
	args := make([]any, 0, len(p.filters))
	for _, f := range p.filters {
		args = append(args, f.Value)
	}
	return args
}

// NumParams reports how many placeholders the predicate consumes, so callers
// can append further parameters (LIMIT/OFFSET) without collisions.
func (p *Predicate) NumParams() int {
	return len(p.filters)
}
