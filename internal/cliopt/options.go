package cliopt

import (
	"flag"

	"github.com/nonibytes/searchcrit/internal/config"
	"github.com/nonibytes/searchcrit/searchcrit/storage"
)

// GlobalOptions are parsed once at the CLI root and passed to subcommands.
// Empty values leave the environment configuration untouched.
type GlobalOptions struct {
	EnvFile      string
	Backend      string
	SQLitePath   string
	SQLiteDriver string
	PostgresDSN  string
	PGSchema     string
	LogLevel     string
	LogFormat    string
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{EnvFile: ".env"}
}

func BindGlobalFlags(fs *flag.FlagSet, g *GlobalOptions) {
	fs.StringVar(&g.EnvFile, "env-file", g.EnvFile, "dotenv file read before the environment")
	fs.StringVar(&g.Backend, "backend", g.Backend, "backend: sqlite|postgres")
	fs.StringVar(&g.SQLitePath, "sqlite-path", g.SQLitePath, "sqlite database file")
	fs.StringVar(&g.SQLiteDriver, "sqlite-driver", g.SQLiteDriver, "sqlite driver: sqlite (pure Go) or sqlite3 (cgo)")
	fs.StringVar(&g.PostgresDSN, "pg-dsn", g.PostgresDSN, "postgres DSN")
	fs.StringVar(&g.PGSchema, "pg-schema", g.PGSchema, "postgres schema")
	fs.StringVar(&g.LogLevel, "log-level", g.LogLevel, "log level: debug|info|warn|error")
	fs.StringVar(&g.LogFormat, "log-format", g.LogFormat, "log format: console|json")
}

// Apply overrides cfg with every option given on the command line
func (g GlobalOptions) Apply(cfg config.Config) (config.Config, error) {
	override := func(v string, dst *string) {
		if v != "" {
			*dst = v
		}
	}
	if g.Backend != "" {
		cfg.Backend = storage.Backend(g.Backend)
	}
	override(g.SQLitePath, &cfg.SQLitePath)
	override(g.SQLiteDriver, &cfg.SQLiteDriver)
	override(g.PostgresDSN, &cfg.PGDSN)
	override(g.PGSchema, &cfg.PGSchema)
	override(g.LogLevel, &cfg.LogLevel)
	override(g.LogFormat, &cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
