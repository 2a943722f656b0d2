package ops

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	scerrors "github.com/nonibytes/searchcrit/searchcrit/errors"
	"github.com/nonibytes/searchcrit/searchcrit/sqlexpr"
	"github.com/nonibytes/searchcrit/searchcrit/storage/sqlbuilder"
)

// Explained is a rendered query with its bound arguments
type Explained struct {
	SQL  string
	Args []any
}

// Explain renders the id query that IDs would run
func Explain(d sqlbuilder.Dialect, q *sqlexpr.Select, id sqlexpr.Column) Explained {
	sql, args := idQuery(q, id).Build(d)
	return Explained{SQL: sql, Args: args}
}

func idQuery(q *sqlexpr.Select, id sqlexpr.Column) *sqlexpr.Select {
	return q.WithoutPreloads().Columns(id).Distinct()
}

// IDs returns the ids of every row matching q, ordered by id
func IDs(ctx context.Context, db *sqlx.DB, d sqlbuilder.Dialect, q *sqlexpr.Select, id sqlexpr.Column) ([]int64, error) {
	sql, args := idQuery(q, id).OrderBy(id, false).Build(d)

	ids := []int64{}
	if err := db.SelectContext(ctx, &ids, sql, args...); err != nil {
		return nil, scerrors.Wrap(scerrors.ErrSQL, "search", err)
	}
	return ids, nil
}

// Count returns the number of distinct ids matching q
func Count(ctx context.Context, db *sqlx.DB, d sqlbuilder.Dialect, q *sqlexpr.Select, id sqlexpr.Column) (int64, error) {
	inner, args := idQuery(q, id).Build(d)
	sql := fmt.Sprintf("SELECT COUNT(*) FROM (%s) q", inner)

	var n int64
	if err := db.GetContext(ctx, &n, sql, args...); err != nil {
		return 0, scerrors.Wrap(scerrors.ErrSQL, "count", err)
	}
	return n, nil
}
