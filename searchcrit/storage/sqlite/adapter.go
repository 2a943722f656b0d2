package sqlite

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	scerrors "github.com/nonibytes/searchcrit/searchcrit/errors"
	"github.com/nonibytes/searchcrit/searchcrit/storage"
	"github.com/nonibytes/searchcrit/searchcrit/storage/sqlbuilder"
)

const (
	// DriverModernc is the pure Go driver registered by modernc.org/sqlite
	DriverModernc = "sqlite"
	// DriverMattn is the cgo driver registered by github.com/mattn/go-sqlite3
	DriverMattn = "sqlite3"
)

type Adapter struct {
	Path       string
	DriverName string
}

func New(path string) *Adapter {
	return &Adapter{Path: path, DriverName: DriverModernc}
}

func NewWithDriver(path, driver string) *Adapter {
	return &Adapter{Path: path, DriverName: driver}
}

func (a *Adapter) Backend() storage.Backend {
	return storage.BackendSQLite
}

func (a *Adapter) Dialect() sqlbuilder.Dialect {
	return sqlbuilder.DialectSQLite
}

func (a *Adapter) Name() string {
	return a.Path
}

// DSN appends busy timeout and foreign key settings in the syntax of the
// configured driver
func (a *Adapter) DSN() string {
	var params string
	switch a.DriverName {
	case DriverMattn:
		params = "_busy_timeout=5000&_foreign_keys=on"
	default:
		params = "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}
	if strings.Contains(a.Path, "?") {
		return a.Path + "&" + params
	}
	return a.Path + "?" + params
}

func (a *Adapter) Connect(ctx context.Context) (*sqlx.DB, error) {
	if a.Path == "" {
		return nil, scerrors.New(scerrors.ErrConfig, "sqlite path is empty")
	}
	db, err := sqlx.Open(a.DriverName, a.DSN())
	if err != nil {
		return nil, scerrors.Wrap(scerrors.ErrIO, "open sqlite database", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, scerrors.Wrap(scerrors.ErrIO, "ping sqlite database", err)
	}
	_, _ = db.ExecContext(ctx, "PRAGMA journal_mode=WAL;")
	_, _ = db.ExecContext(ctx, "PRAGMA synchronous=NORMAL;")
	return db, nil
}

func (a *Adapter) Close() error {
	return nil
}

func (a *Adapter) Optimize(ctx context.Context, db *sqlx.DB) error {
	_, _ = db.ExecContext(ctx, "PRAGMA optimize;")
	_, _ = db.ExecContext(ctx, "ANALYZE;")
	return nil
}
