// Package config loads CLI settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	scerrors "github.com/nonibytes/searchcrit/searchcrit/errors"
	"github.com/nonibytes/searchcrit/searchcrit/storage"
	"github.com/nonibytes/searchcrit/searchcrit/storage/postgres"
	"github.com/nonibytes/searchcrit/searchcrit/storage/sqlite"
)

const (
	EnvBackend      = "SEARCHCRIT_BACKEND"
	EnvSQLitePath   = "SEARCHCRIT_SQLITE_PATH"
	EnvSQLiteDriver = "SEARCHCRIT_SQLITE_DRIVER"
	EnvPGDSN        = "SEARCHCRIT_PG_DSN"
	EnvPGSchema     = "SEARCHCRIT_PG_SCHEMA"
	EnvLogLevel     = "SEARCHCRIT_LOG_LEVEL"
	EnvLogFormat    = "SEARCHCRIT_LOG_FORMAT"
)

type Config struct {
	Backend      storage.Backend
	SQLitePath   string
	SQLiteDriver string
	PGDSN        string
	PGSchema     string
	LogLevel     string
	LogFormat    string // console or json
}

func Default() Config {
	return Config{
		Backend:      storage.BackendSQLite,
		SQLitePath:   "searchcrit.db",
		SQLiteDriver: sqlite.DriverModernc,
		PGSchema:     "searchcrit",
		LogLevel:     "info",
		LogFormat:    "console",
	}
}

// Load reads envFile when it exists, then the process environment. Variables
// already set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, scerrors.Wrap(scerrors.ErrConfig, "load "+envFile, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a config from lookup over the defaults
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	backend := string(cfg.Backend)
	set(EnvBackend, &backend)
	cfg.Backend = storage.Backend(strings.ToLower(backend))
	set(EnvSQLitePath, &cfg.SQLitePath)
	set(EnvSQLiteDriver, &cfg.SQLiteDriver)
	set(EnvPGDSN, &cfg.PGDSN)
	set(EnvPGSchema, &cfg.PGSchema)
	set(EnvLogLevel, &cfg.LogLevel)
	set(EnvLogFormat, &cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case storage.BackendSQLite:
		if c.SQLiteDriver != sqlite.DriverModernc && c.SQLiteDriver != sqlite.DriverMattn {
			return scerrors.New(scerrors.ErrConfig, fmt.Sprintf("unknown sqlite driver %q (use %s or %s)",
				c.SQLiteDriver, sqlite.DriverModernc, sqlite.DriverMattn))
		}
	case storage.BackendPostgres:
		if c.PGDSN == "" {
			return scerrors.New(scerrors.ErrConfig, EnvPGDSN+" is required for the postgres backend")
		}
	default:
		return scerrors.New(scerrors.ErrConfig, fmt.Sprintf("unknown backend %q", c.Backend))
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return scerrors.New(scerrors.ErrConfig, fmt.Sprintf("unknown log format %q", c.LogFormat))
	}
	return nil
}

// Adapter returns the storage adapter for the configured backend
func (c Config) Adapter() storage.Adapter {
	if c.Backend == storage.BackendPostgres {
		return postgres.New(c.PGDSN, c.PGSchema)
	}
	return sqlite.NewWithDriver(c.SQLitePath, c.SQLiteDriver)
}
