// Package sqlexpr models boolean predicates and SELECT queries and renders
// them to SQL. Values are always bound through a sqlbuilder.Builder; only
// validated identifiers appear in the SQL text.
package sqlexpr

import (
	"fmt"
	"strings"

	"github.com/nonibytes/searchcrit/searchcrit/storage/sqlbuilder"
)

// Expr is a boolean SQL expression
type Expr interface {
	// SQL renders the expression, allocating placeholders from b in order
	SQL(b *sqlbuilder.Builder) string
}

// CmpOp is a comparison operator
type CmpOp int

const (
	CmpEq CmpOp = iota
	CmpGt
	CmpGte
	CmpLt
	CmpLte
)

func (op CmpOp) String() string {
	switch op {
	case CmpEq:
		return "="
	case CmpGt:
		return ">"
	case CmpGte:
		return ">="
	case CmpLt:
		return "<"
	case CmpLte:
		return "<="
	default:
		return "?"
	}
}

// Compare compares a column with a bound value
type Compare struct {
	Col   Column
	Op    CmpOp
	Value any
}

func (e Compare) SQL(b *sqlbuilder.Builder) string {
	return fmt.Sprintf("%s %s %s", e.Col.SQL(), e.Op, b.Arg(e.Value))
}

func Eq(col Column, v any) Expr  { return Compare{Col: col, Op: CmpEq, Value: v} }
func Gte(col Column, v any) Expr { return Compare{Col: col, Op: CmpGte, Value: v} }
func Lte(col Column, v any) Expr { return Compare{Col: col, Op: CmpLte, Value: v} }
func Lt(col Column, v any) Expr  { return Compare{Col: col, Op: CmpLt, Value: v} }
func Gt(col Column, v any) Expr  { return Compare{Col: col, Op: CmpGt, Value: v} }

// ColumnsEqual compares two columns, used for join conditions
type ColumnsEqual struct {
	Left, Right Column
}

func (e ColumnsEqual) SQL(*sqlbuilder.Builder) string {
	return e.Left.SQL() + " = " + e.Right.SQL()
}

// In is set membership against bound values. An empty set is always false.
type In struct {
	Col    Column
	Values []any
}

func (e In) SQL(b *sqlbuilder.Builder) string {
	if len(e.Values) == 0 {
		return b.Dialect.False()
	}
	phs := make([]string, len(e.Values))
	for i, v := range e.Values {
		phs[i] = b.Arg(v)
	}
	return fmt.Sprintf("%s IN (%s)", e.Col.SQL(), strings.Join(phs, ", "))
}

// Between is an inclusive range
type Between struct {
	Col    Column
	Lo, Hi any
}

func (e Between) SQL(b *sqlbuilder.Builder) string {
	return fmt.Sprintf("%s BETWEEN %s AND %s", e.Col.SQL(), b.Arg(e.Lo), b.Arg(e.Hi))
}

// Like is a case-insensitive pattern match. Pattern must already be escaped
// for ESCAPE '\'.
type Like struct {
	Col     Column
	Pattern string
}

func (e Like) SQL(b *sqlbuilder.Builder) string {
	return fmt.Sprintf(`%s %s %s ESCAPE '\'`, e.Col.SQL(), b.Dialect.ILike(), b.Arg(e.Pattern))
}

// InSelect is membership in the rows of a single-column subquery
type InSelect struct {
	Col    Column
	Select *Select
}

func (e InSelect) SQL(b *sqlbuilder.Builder) string {
	return fmt.Sprintf("%s IN (%s)", e.Col.SQL(), e.Select.SQL(b))
}

type IsNotNull struct {
	Col Column
}

func (e IsNotNull) SQL(*sqlbuilder.Builder) string {
	return e.Col.SQL() + " IS NOT NULL"
}

// Not negates its whole inner expression
type Not struct {
	Inner Expr
}

func (e Not) SQL(b *sqlbuilder.Builder) string {
	return fmt.Sprintf("NOT (%s)", e.Inner.SQL(b))
}

// And is a conjunction; empty is true
type And []Expr

func (e And) SQL(b *sqlbuilder.Builder) string {
	return join(b, e, " AND ", b.Dialect.True())
}

// Or is a disjunction; empty is false
type Or []Expr

func (e Or) SQL(b *sqlbuilder.Builder) string {
	return join(b, e, " OR ", b.Dialect.False())
}

func join(b *sqlbuilder.Builder, terms []Expr, sep, empty string) string {
	switch len(terms) {
	case 0:
		return empty
	case 1:
		return terms[0].SQL(b)
	}
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = "(" + t.SQL(b) + ")"
	}
	return strings.Join(parts, sep)
}

// Bool is a boolean literal
type Bool bool

func (e Bool) SQL(b *sqlbuilder.Builder) string {
	if e {
		return b.Dialect.True()
	}
	return b.Dialect.False()
}

const (
	True  = Bool(true)
	False = Bool(false)
)
