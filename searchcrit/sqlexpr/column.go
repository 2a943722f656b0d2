package sqlexpr

import (
	"fmt"
	"regexp"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdent reports whether s can be used as a table or column name
func ValidIdent(s string) bool {
	return identRe.MatchString(s)
}

func quoteIdent(ident string) string {
	// ident is validated to contain no quotes; safe to wrap
	return `"` + ident + `"`
}

// Column is a qualified column reference. Only identifiers that pass
// ValidIdent are ever interpolated into SQL.
type Column struct {
	Table string
	Name  string
}

// Col returns a column reference and panics on invalid identifiers: column
// references come from code, never from user input.
func Col(table, name string) Column {
	if !ValidIdent(table) || !ValidIdent(name) {
		panic(fmt.Sprintf("sqlexpr: invalid column reference %q.%q", table, name))
	}
	return Column{Table: table, Name: name}
}

func (c Column) SQL() string {
	return quoteIdent(c.Table) + "." + quoteIdent(c.Name)
}

func (c Column) String() string {
	return c.Table + "." + c.Name
}
