package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	scerrors "github.com/nonibytes/searchcrit/searchcrit/errors"
	"github.com/nonibytes/searchcrit/searchcrit/sqlexpr"
	"github.com/nonibytes/searchcrit/searchcrit/storage"
	"github.com/nonibytes/searchcrit/searchcrit/storage/sqlbuilder"
)

type Adapter struct {
	DSN    string
	Schema string // used as dedicated schema via search_path
}

func New(dsn, schema string) *Adapter {
	return &Adapter{DSN: dsn, Schema: schema}
}

func (a *Adapter) Backend() storage.Backend { return storage.BackendPostgres }

func (a *Adapter) Dialect() sqlbuilder.Dialect { return sqlbuilder.DialectPostgres }

func (a *Adapter) Name() string { return "postgres:" + a.Schema }

func (a *Adapter) Close() error { return nil }

func quoteIdent(ident string) string {
	return `"` + ident + `"`
}

func (a *Adapter) validSchema() error {
	if !sqlexpr.ValidIdent(a.Schema) {
		return scerrors.New(scerrors.ErrConfig, fmt.Sprintf("invalid postgres schema name %q", a.Schema))
	}
	return nil
}

func (a *Adapter) ensureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+quoteIdent(a.Schema))
	return err
}

func (a *Adapter) Connect(ctx context.Context) (*sqlx.DB, error) {
	if err := a.validSchema(); err != nil {
		return nil, err
	}

	// Connect without search_path to make sure the schema exists
	cfg0, err := pgx.ParseConfig(a.DSN)
	if err != nil {
		return nil, scerrors.Wrap(scerrors.ErrConfig, "parse postgres dsn", err)
	}
	db0 := stdlib.OpenDB(*cfg0)
	if err := db0.PingContext(ctx); err != nil {
		_ = db0.Close()
		return nil, scerrors.Wrap(scerrors.ErrIO, "ping postgres", err)
	}
	if err := a.ensureSchema(ctx, db0); err != nil {
		_ = db0.Close()
		return nil, scerrors.Wrap(scerrors.ErrSQL, "create schema", err)
	}
	_ = db0.Close()

	cfg, err := pgx.ParseConfig(a.DSN)
	if err != nil {
		return nil, scerrors.Wrap(scerrors.ErrConfig, "parse postgres dsn", err)
	}
	if cfg.RuntimeParams == nil {
		cfg.RuntimeParams = make(map[string]string)
	}
	// public stays as a fallback for built-ins
	cfg.RuntimeParams["search_path"] = fmt.Sprintf("%s,public", quoteIdent(a.Schema))

	db := stdlib.OpenDB(*cfg)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, scerrors.Wrap(scerrors.ErrIO, "ping postgres", err)
	}
	return sqlx.NewDb(db, "pgx"), nil
}

func (a *Adapter) Optimize(ctx context.Context, db *sqlx.DB) error {
	_, _ = db.ExecContext(ctx, "ANALYZE")
	return nil
}
