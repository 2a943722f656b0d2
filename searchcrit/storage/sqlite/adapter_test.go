package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
	_ "modernc.org/sqlite"

	scerrors "github.com/nonibytes/searchcrit/searchcrit/errors"
	"github.com/nonibytes/searchcrit/searchcrit/storage"
	"github.com/nonibytes/searchcrit/searchcrit/storage/sqlbuilder"
)

func TestDSN(t *testing.T) {
	assert.Equal(t, New("a.db").DSN(), "a.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	assert.Equal(t, NewWithDriver("a.db?mode=ro", DriverMattn).DSN(), "a.db?mode=ro&_busy_timeout=5000&_foreign_keys=on")
}

func TestConnect(t *testing.T) {
	a := New(filepath.Join(t.TempDir(), "x.db"))
	assert.Equal(t, a.Backend(), storage.BackendSQLite)
	assert.Equal(t, a.Dialect(), sqlbuilder.DialectSQLite)

	ctx := context.Background()
	db, err := a.Connect(ctx)
	assert.NilError(t, err)
	defer db.Close()

	var fk int
	assert.NilError(t, db.GetContext(ctx, &fk, "PRAGMA foreign_keys"))
	assert.Equal(t, fk, 1)
	assert.NilError(t, a.Optimize(ctx, db))
}

func TestConnectEmptyPath(t *testing.T) {
	_, err := New("").Connect(context.Background())
	assert.Assert(t, scerrors.IsKind(err, scerrors.ErrConfig))
}
