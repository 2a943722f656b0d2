// Package filter builds reusable search filters from criteria.
//
// A Filter narrows a query by one criterion:
//
//	score := filter.NewNum(sqlexpr.Col("posts", "score"), transform.Integer)
//	q, err := score.Apply(sqlexpr.From("posts"), criteria.Plain{Value: "5"}, false)
//
// Negation always wraps the whole compiled predicate, so a negated array or
// range means "none of these" rather than a per-branch negation.
//
// Filters hold no mutable state and may be shared between goroutines. A nil
// criterion is a programming error and panics.
package filter

import (
	"time"

	"github.com/nonibytes/searchcrit/searchcrit/criteria"
	"github.com/nonibytes/searchcrit/searchcrit/sqlexpr"
	"github.com/nonibytes/searchcrit/searchcrit/transform"
)

// Filter narrows q by criterion c, negated when asked
type Filter interface {
	Apply(q *sqlexpr.Select, c criteria.Criterion, negated bool) (*sqlexpr.Select, error)
}

// Func adapts a function to the Filter interface
type Func func(q *sqlexpr.Select, c criteria.Criterion, negated bool) (*sqlexpr.Select, error)

func (f Func) Apply(q *sqlexpr.Select, c criteria.Criterion, negated bool) (*sqlexpr.Select, error) {
	return f(q, c, negated)
}

// Factory builds a filter over a column
type Factory func(col sqlexpr.Column) Filter

func apply(q *sqlexpr.Select, expr sqlexpr.Expr, negated bool) *sqlexpr.Select {
	if negated {
		expr = sqlexpr.Not{Inner: expr}
	}
	return q.Filter(expr)
}

func mustCriterion(c criteria.Criterion) {
	if c == nil {
		panic("filter: nil criterion")
	}
}

// NumFilter matches a numeric column by equality, membership or range
type NumFilter struct {
	Column      sqlexpr.Column
	Transformer transform.Transformer
}

// NewNum returns a numeric filter; a nil transformer means transform.Integer
func NewNum(col sqlexpr.Column, tr transform.Transformer) *NumFilter {
	if tr == nil {
		tr = transform.Integer
	}
	return &NumFilter{Column: col, Transformer: tr}
}

func (f *NumFilter) Apply(q *sqlexpr.Select, c criteria.Criterion, negated bool) (*sqlexpr.Select, error) {
	mustCriterion(c)
	expr, err := ApplyNum(f.Column, c, f.Transformer)
	if err != nil {
		return nil, err
	}
	return apply(q, expr, negated), nil
}

// StrFilter matches a text column with case-insensitive patterns
type StrFilter struct {
	Column      sqlexpr.Column
	Transformer transform.PatternTransformer
}

// NewStr returns a string filter; a nil transformer means transform.Wildcard
func NewStr(col sqlexpr.Column, tr transform.PatternTransformer) *StrFilter {
	if tr == nil {
		tr = transform.Wildcard
	}
	return &StrFilter{Column: col, Transformer: tr}
}

func (f *StrFilter) Apply(q *sqlexpr.Select, c criteria.Criterion, negated bool) (*sqlexpr.Select, error) {
	mustCriterion(c)
	expr, err := ApplyStr(f.Column, c, f.Transformer)
	if err != nil {
		return nil, err
	}
	return apply(q, expr, negated), nil
}

// DateFilter matches a timestamp column against date tokens
type DateFilter struct {
	Column sqlexpr.Column
	Now    func() time.Time
}

// NewDate returns a date filter; a nil now means time.Now
func NewDate(col sqlexpr.Column, now func() time.Time) *DateFilter {
	if now == nil {
		now = time.Now
	}
	return &DateFilter{Column: col, Now: now}
}

func (f *DateFilter) Apply(q *sqlexpr.Select, c criteria.Criterion, negated bool) (*sqlexpr.Select, error) {
	mustCriterion(c)
	expr, err := ApplyDate(f.Column, c, f.Now())
	if err != nil {
		return nil, err
	}
	return apply(q, expr, negated), nil
}

func NumFactory(tr transform.Transformer) Factory {
	return func(col sqlexpr.Column) Filter { return NewNum(col, tr) }
}

func StrFactory(tr transform.PatternTransformer) Factory {
	return func(col sqlexpr.Column) Filter { return NewStr(col, tr) }
}

func DateFactory(now func() time.Time) Factory {
	return func(col sqlexpr.Column) Filter { return NewDate(col, now) }
}
