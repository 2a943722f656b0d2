package ops

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	scerrors "github.com/nonibytes/searchcrit/searchcrit/errors"
	"github.com/nonibytes/searchcrit/searchcrit/sqlexpr"
	"github.com/nonibytes/searchcrit/searchcrit/storage/sqlbuilder"
)

// StatsResult summarizes a numeric column over the rows of a query.
// Min, Max and Avg are nil when no row has a value.
type StatsResult struct {
	Column string
	Count  int64
	Min    *float64
	Max    *float64
	Avg    *float64
}

type statsRow struct {
	Count int64           `db:"n"`
	Min   sql.NullFloat64 `db:"min_value"`
	Max   sql.NullFloat64 `db:"max_value"`
	Avg   sql.NullFloat64 `db:"avg_value"`
}

// Stats computes count, min, max and average of col over the rows matching
// q. col must belong to the query's table.
func Stats(ctx context.Context, db *sqlx.DB, d sqlbuilder.Dialect, q *sqlexpr.Select, col sqlexpr.Column) (*StatsResult, error) {
	if col.Table != q.Table() {
		return nil, scerrors.New(scerrors.ErrConfig, fmt.Sprintf("column %s is not on table %s", col, q.Table()))
	}
	inner, args := q.WithoutPreloads().Columns(col).Build(d)
	v := `q."` + col.Name + `"`
	query := fmt.Sprintf(`SELECT COUNT(%[1]s) AS n,
	CAST(MIN(%[1]s) AS DOUBLE PRECISION) AS min_value,
	CAST(MAX(%[1]s) AS DOUBLE PRECISION) AS max_value,
	CAST(AVG(%[1]s) AS DOUBLE PRECISION) AS avg_value
FROM (%[2]s) q`, v, inner)

	var row statsRow
	if err := db.GetContext(ctx, &row, query, args...); err != nil {
		return nil, scerrors.Wrap(scerrors.ErrSQL, "stats", err)
	}

	result := &StatsResult{Column: col.String(), Count: row.Count}
	if row.Min.Valid {
		result.Min = &row.Min.Float64
	}
	if row.Max.Valid {
		result.Max = &row.Max.Float64
	}
	if row.Avg.Valid {
		result.Avg = &row.Avg.Float64
	}
	return result, nil
}
