package sqlexpr

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nonibytes/searchcrit/searchcrit/storage/sqlbuilder"
)

type JoinKind string

const (
	InnerJoin JoinKind = "JOIN"
	LeftJoin  JoinKind = "LEFT JOIN"
)

// Join adds a table to the FROM clause
type Join struct {
	Kind  JoinKind
	Table string
	On    Expr
}

// Preload is an eager LEFT JOIN that also projects columns of the joined
// table, so the rows it loads come back with the main query.
type Preload struct {
	Join    Join
	Columns []Column
}

type order struct {
	col  Column
	desc bool
}

// Select is a SELECT query over one table. Methods never mutate the receiver:
// each returns a modified copy, so a query can be shared between callers.
type Select struct {
	table    string
	columns  []Column
	distinct bool
	joins    []Join
	preloads []Preload
	where    []Expr
	orderBy  []order
}

// From starts a query over table
func From(table string) *Select {
	if !ValidIdent(table) {
		panic(fmt.Sprintf("sqlexpr: invalid table name %q", table))
	}
	return &Select{table: table}
}

func (s *Select) clone() *Select {
	c := *s
	c.columns = slices.Clone(s.columns)
	c.joins = slices.Clone(s.joins)
	c.preloads = slices.Clone(s.preloads)
	c.where = slices.Clone(s.where)
	c.orderBy = slices.Clone(s.orderBy)
	return &c
}

// Table returns the table the query selects from
func (s *Select) Table() string { return s.table }

// Columns replaces the projection. No columns means every column of the
// main table.
func (s *Select) Columns(cols ...Column) *Select {
	c := s.clone()
	c.columns = slices.Clone(cols)
	return c
}

func (s *Select) Distinct() *Select {
	c := s.clone()
	c.distinct = true
	return c
}

func (s *Select) Join(kind JoinKind, table string, on Expr) *Select {
	if !ValidIdent(table) {
		panic(fmt.Sprintf("sqlexpr: invalid table name %q", table))
	}
	c := s.clone()
	c.joins = append(c.joins, Join{Kind: kind, Table: table, On: on})
	return c
}

// Preload eagerly joins table and projects cols alongside the main columns
func (s *Select) Preload(table string, on Expr, cols ...Column) *Select {
	if !ValidIdent(table) {
		panic(fmt.Sprintf("sqlexpr: invalid table name %q", table))
	}
	c := s.clone()
	c.preloads = append(c.preloads, Preload{
		Join:    Join{Kind: LeftJoin, Table: table, On: on},
		Columns: slices.Clone(cols),
	})
	return c
}

// Preloads returns the registered eager joins
func (s *Select) Preloads() []Preload { return slices.Clone(s.preloads) }

// WithoutPreloads drops every eager join
func (s *Select) WithoutPreloads() *Select {
	c := s.clone()
	c.preloads = nil
	return c
}

// Filter returns a copy of the query with expr added as a conjunct
func (s *Select) Filter(expr Expr) *Select {
	c := s.clone()
	c.where = append(c.where, expr)
	return c
}

// Where returns the conjuncts added so far
func (s *Select) Where() []Expr { return slices.Clone(s.where) }

func (s *Select) OrderBy(col Column, desc bool) *Select {
	c := s.clone()
	c.orderBy = append(c.orderBy, order{col: col, desc: desc})
	return c
}

// Build renders the query for dialect d
func (s *Select) Build(d sqlbuilder.Dialect) (string, []any) {
	b := sqlbuilder.New(d)
	sql := s.SQL(b)
	return sql, b.Args()
}

// SQL renders the query into b, sharing its placeholder sequence. This is
// how a Select is embedded as a subquery.
func (s *Select) SQL(b *sqlbuilder.Builder) string {
	var sb strings.Builder

	sb.WriteString("SELECT ")
	if s.distinct {
		sb.WriteString("DISTINCT ")
	}
	var cols []string
	if len(s.columns) == 0 {
		cols = append(cols, quoteIdent(s.table)+".*")
	}
	for _, c := range s.columns {
		cols = append(cols, c.SQL())
	}
	for _, p := range s.preloads {
		for _, c := range p.Columns {
			cols = append(cols, fmt.Sprintf("%s AS %s", c.SQL(), quoteIdent(c.Table+"_"+c.Name)))
		}
	}
	sb.WriteString(strings.Join(cols, ", "))

	sb.WriteString(" FROM ")
	sb.WriteString(quoteIdent(s.table))

	joins := slices.Clone(s.joins)
	for _, p := range s.preloads {
		joins = append(joins, p.Join)
	}
	for _, j := range joins {
		fmt.Fprintf(&sb, " %s %s ON %s", j.Kind, quoteIdent(j.Table), j.On.SQL(b))
	}

	if len(s.where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(And(s.where).SQL(b))
	}

	if len(s.orderBy) > 0 {
		parts := make([]string, len(s.orderBy))
		for i, o := range s.orderBy {
			dir := "ASC"
			if o.desc {
				dir = "DESC"
			}
			parts[i] = o.col.SQL() + " " + dir
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(parts, ", "))
	}

	return sb.String()
}
