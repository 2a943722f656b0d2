package config

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/fs"

	scerrors "github.com/nonibytes/searchcrit/searchcrit/errors"
	"github.com/nonibytes/searchcrit/searchcrit/storage"
	"github.com/nonibytes/searchcrit/searchcrit/storage/postgres"
	"github.com/nonibytes/searchcrit/searchcrit/storage/sqlite"
)

func lookupMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(lookupMap(nil))
	assert.NilError(t, err)
	assert.DeepEqual(t, cfg, Default())
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(lookupMap(map[string]string{
		EnvBackend:   "Postgres",
		EnvPGDSN:     "postgres://localhost/db",
		EnvPGSchema:  "  catalog ",
		EnvLogLevel:  "debug",
		EnvLogFormat: "json",
	}))
	assert.NilError(t, err)
	assert.Equal(t, cfg.Backend, storage.BackendPostgres)
	assert.Equal(t, cfg.PGSchema, "catalog")
	assert.Equal(t, cfg.LogFormat, "json")

	pg, ok := cfg.Adapter().(*postgres.Adapter)
	assert.Assert(t, ok)
	assert.Equal(t, pg.DSN, "postgres://localhost/db")
}

func TestFromEnvValidation(t *testing.T) {
	cases := []map[string]string{
		{EnvBackend: "mysql"},
		{EnvBackend: "postgres"},
		{EnvSQLiteDriver: "sqlite4"},
		{EnvLogFormat: "xml"},
	}
	for _, env := range cases {
		_, err := FromEnv(lookupMap(env))
		assert.Assert(t, scerrors.IsKind(err, scerrors.ErrConfig), "%v", env)
	}
}

func TestSQLiteAdapterUsesDriver(t *testing.T) {
	cfg, err := FromEnv(lookupMap(map[string]string{EnvSQLiteDriver: "sqlite3", EnvSQLitePath: "x.db"}))
	assert.NilError(t, err)

	a, ok := cfg.Adapter().(*sqlite.Adapter)
	assert.Assert(t, ok)
	assert.Equal(t, a.DriverName, sqlite.DriverMattn)
	assert.Equal(t, a.Path, "x.db")
}

func TestLoadReadsDotenv(t *testing.T) {
	unset(t, EnvSQLitePath)
	dir := fs.NewDir(t, "config", fs.WithFile(".env", EnvSQLitePath+"=from-file.db\n"))

	cfg, err := Load(dir.Join(".env"))
	assert.NilError(t, err)
	assert.Equal(t, cfg.SQLitePath, "from-file.db")
}

func TestLoadEnvironmentWins(t *testing.T) {
	t.Setenv(EnvSQLitePath, "from-env.db")
	dir := fs.NewDir(t, "config", fs.WithFile(".env", EnvSQLitePath+"=from-file.db\n"))

	cfg, err := Load(dir.Join(".env"))
	assert.NilError(t, err)
	assert.Equal(t, cfg.SQLitePath, "from-env.db")
}

func TestLoadMissingFileIsIgnored(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NilError(t, err)
	assert.Equal(t, cfg.Backend, storage.BackendSQLite)
}

// unset removes key for the duration of the test
func unset(t *testing.T, key string) {
	t.Helper()
	prev, had := os.LookupEnv(key)
	assert.NilError(t, os.Unsetenv(key))
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, prev)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}
