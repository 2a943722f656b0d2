package storage

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/nonibytes/searchcrit/searchcrit/storage/sqlbuilder"
)

type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// Adapter abstracts database-specific connection handling
type Adapter interface {
	Backend() Backend
	Dialect() sqlbuilder.Dialect
	// Name identifies the database for logs, e.g. a file path or schema
	Name() string

	Connect(ctx context.Context) (*sqlx.DB, error)
	Close() error

	// Optimize refreshes planner statistics; best effort
	Optimize(ctx context.Context, db *sqlx.DB) error
}
