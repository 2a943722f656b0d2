package registry

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	scerrors "github.com/nonibytes/searchcrit/searchcrit/errors"
	"github.com/nonibytes/searchcrit/searchcrit/filter"
	"github.com/nonibytes/searchcrit/searchcrit/sqlexpr"
	"github.com/nonibytes/searchcrit/searchcrit/storage/sqlbuilder"
)

var (
	itemID    = sqlexpr.Col("items", "id")
	itemName  = sqlexpr.Col("items", "name")
	itemPrice = sqlexpr.Col("items", "price")
)

func itemConfig() Config {
	name := filter.NewStr(itemName, nil)
	return Config{
		ID:        itemID,
		Base:      func() *sqlexpr.Select { return sqlexpr.From("items").Columns(itemID) },
		Named:     map[string]filter.Filter{"Name": name, "price": filter.NewNum(itemPrice, nil)},
		Anonymous: name,
	}
}

func newRegistry(t *testing.T) (*Registry, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	r := New(zerolog.New(&buf).Level(zerolog.DebugLevel))
	r.Register("item", itemConfig())
	return r, &buf
}

func compiled(t *testing.T, r *Registry, text string) string {
	t.Helper()
	q, err := r.Compile("item", text)
	assert.NilError(t, err)
	sql, _ := q.Build(sqlbuilder.DialectPostgres)
	return strings.TrimPrefix(sql, `SELECT "items"."id" FROM "items"`)
}

func TestCompileAppliesEveryToken(t *testing.T) {
	r, _ := newRegistry(t)

	assert.Equal(t, compiled(t, r, ""), "")
	assert.Equal(t, compiled(t, r, "price:5"), ` WHERE "items"."price" = $1`)
	assert.Equal(t, compiled(t, r, "NAME:a* -price:..3"),
		` WHERE ("items"."name" ILIKE $1 ESCAPE '\') AND (NOT ("items"."price" <= $2))`)
	assert.Equal(t, compiled(t, r, "lamp"), ` WHERE "items"."name" ILIKE $1 ESCAPE '\'`)
}

func TestCompileUnknownName(t *testing.T) {
	r, _ := newRegistry(t)

	_, err := r.Compile("item", "colour:red")
	assert.Assert(t, scerrors.IsKind(err, scerrors.ErrUnknownField))
	assert.ErrorContains(t, err, `"colour"`)
	assert.ErrorContains(t, err, "accepted: name, price")
}

func TestCompileAnonymousWithoutFilter(t *testing.T) {
	r, _ := newRegistry(t)
	cfg := itemConfig()
	cfg.Anonymous = nil
	r.Register("strict", cfg)

	_, err := r.Compile("strict", "lamp")
	assert.Assert(t, scerrors.IsKind(err, scerrors.ErrUnknownField))
}

func TestCompileUnknownEntity(t *testing.T) {
	r, _ := newRegistry(t)

	_, err := r.Compile("order", "x")
	assert.Assert(t, scerrors.IsKind(err, scerrors.ErrConfig))
}

func TestCompilePropagatesFilterErrors(t *testing.T) {
	r, buf := newRegistry(t)

	_, err := r.Compile("item", "price:cheap")
	assert.Assert(t, scerrors.IsKind(err, scerrors.ErrCriterionType))
	assert.Assert(t, is.Contains(buf.String(), "token rejected"))

	_, err = r.Compile("item", "price:")
	assert.Assert(t, scerrors.IsKind(err, scerrors.ErrQueryParse))
}

func TestCompileLogsAtDebug(t *testing.T) {
	r, buf := newRegistry(t)

	_, err := r.Compile("item", "a b")
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(buf.String(), `"tokens":2`))
	assert.Assert(t, is.Contains(buf.String(), `"component":"registry"`))
}

func TestNamesAndEntitiesAreSorted(t *testing.T) {
	r, _ := newRegistry(t)
	r.Register("another", itemConfig())

	assert.DeepEqual(t, r.Entities(), []string{"another", "item"})
	names, err := r.Names("item")
	assert.NilError(t, err)
	assert.DeepEqual(t, names, []string{"name", "price"})
}

func TestRegisterRequiresBaseAndID(t *testing.T) {
	r, _ := newRegistry(t)

	assert.Assert(t, is.Panics(func() { r.Register("x", Config{ID: itemID}) }))
	assert.Assert(t, is.Panics(func() {
		r.Register("x", Config{Base: func() *sqlexpr.Select { return sqlexpr.From("items") }})
	}))
}
