package sqlbuilder

import (
	"fmt"
	"strconv"
	"strings"

	scerrors "github.com/nonibytes/searchcrit/searchcrit/errors"
)

type PlaceholderStyle int

const (
	PlaceholderQuestion PlaceholderStyle = iota
	PlaceholderDollar
)

// Dialect captures the SQL differences between supported backends
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

func (d Dialect) String() string {
	switch d {
	case DialectPostgres:
		return "postgres"
	default:
		return "sqlite"
	}
}

// ParseDialect accepts a backend name; "pg" is short for postgres
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(s) {
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres", "postgresql", "pg":
		return DialectPostgres, nil
	}
	return DialectSQLite, scerrors.New(scerrors.ErrConfig, fmt.Sprintf("unknown dialect %q", s))
}

func (d Dialect) PlaceholderStyle() PlaceholderStyle {
	if d == DialectPostgres {
		return PlaceholderDollar
	}
	return PlaceholderQuestion
}

// ILike returns the case-insensitive LIKE operator. SQLite's LIKE already
// folds ASCII case.
func (d Dialect) ILike() string {
	if d == DialectPostgres {
		return "ILIKE"
	}
	return "LIKE"
}

// False and True return boolean literals valid in a WHERE clause
func (d Dialect) False() string {
	if d == DialectPostgres {
		return "FALSE"
	}
	return "0"
}

func (d Dialect) True() string {
	if d == DialectPostgres {
		return "TRUE"
	}
	return "1"
}

type Builder struct {
	Dialect Dialect
	Style   PlaceholderStyle
	args    []any
}

func New(d Dialect) *Builder {
	return &Builder{Dialect: d, Style: d.PlaceholderStyle(), args: make([]any, 0)}
}

// Arg records v and returns its placeholder
func (b *Builder) Arg(v any) string {
	b.args = append(b.args, v)
	switch b.Style {
	case PlaceholderDollar:
		return "$" + strconv.Itoa(len(b.args))
	default:
		return "?"
	}
}

func (b *Builder) Args() []any { return b.args }
func (b *Builder) Len() int    { return len(b.args) }
