package filter

import (
	"fmt"
	"time"

	"github.com/nonibytes/searchcrit/searchcrit/criteria"
	scerrors "github.com/nonibytes/searchcrit/searchcrit/errors"
	"github.com/nonibytes/searchcrit/searchcrit/sqlexpr"
	"github.com/nonibytes/searchcrit/searchcrit/timerange"
	"github.com/nonibytes/searchcrit/searchcrit/transform"
)

// ApplyNum compiles a criterion against a numeric column.
// Value format errors are reported as criterion type errors.
func ApplyNum(col sqlexpr.Column, c criteria.Criterion, tr transform.Transformer) (sqlexpr.Expr, error) {
	expr, err := applyNum(col, c, tr)
	if err != nil {
		if scerrors.IsKind(err, scerrors.ErrValueFormat) {
			return nil, scerrors.CriterionTypeError(fmt.Sprintf("criterion value %q must be numeric", c.String()), err)
		}
		return nil, err
	}
	return expr, nil
}

func applyNum(col sqlexpr.Column, c criteria.Criterion, tr transform.Transformer) (sqlexpr.Expr, error) {
	switch c := c.(type) {
	case criteria.Plain:
		v, err := tr(c.Value)
		if err != nil {
			return nil, err
		}
		return sqlexpr.Eq(col, v), nil

	case criteria.Array:
		values := make([]any, 0, len(c.Values))
		for _, raw := range c.Values {
			v, err := tr(raw)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return sqlexpr.In{Col: col, Values: values}, nil

	case criteria.Ranged:
		switch {
		case c.Min != nil && c.Max != nil:
			lo, err := tr(*c.Min)
			if err != nil {
				return nil, err
			}
			hi, err := tr(*c.Max)
			if err != nil {
				return nil, err
			}
			return sqlexpr.Between{Col: col, Lo: lo, Hi: hi}, nil
		case c.Min != nil:
			lo, err := tr(*c.Min)
			if err != nil {
				return nil, err
			}
			return sqlexpr.Gte(col, lo), nil
		case c.Max != nil:
			hi, err := tr(*c.Max)
			if err != nil {
				return nil, err
			}
			return sqlexpr.Lte(col, hi), nil
		default:
			panic("filter: ranged criterion without bounds")
		}

	default:
		panic(fmt.Sprintf("filter: unknown criterion type %T", c))
	}
}

// ApplyStr compiles a criterion into case-insensitive pattern matches.
// Ranged criteria are rejected: string columns expose no ordering.
func ApplyStr(col sqlexpr.Column, c criteria.Criterion, tr transform.PatternTransformer) (sqlexpr.Expr, error) {
	switch c := c.(type) {
	case criteria.Plain:
		pattern, err := tr(c.Value)
		if err != nil {
			return nil, err
		}
		return sqlexpr.Like{Col: col, Pattern: pattern}, nil

	case criteria.Array:
		or := sqlexpr.Or{}
		for _, raw := range c.Values {
			pattern, err := tr(raw)
			if err != nil {
				return nil, err
			}
			or = append(or, sqlexpr.Like{Col: col, Pattern: pattern})
		}
		return or, nil

	case criteria.Ranged:
		return nil, scerrors.CriterionTypeError("ranged criteria are invalid in this context; did you forget to escape the dots?", nil)

	default:
		panic(fmt.Sprintf("filter: unknown criterion type %T", c))
	}
}

// ApplyDate compiles a criterion against a timestamp column. Each token
// covers the interval implied by its precision; intervals are half-open.
func ApplyDate(col sqlexpr.Column, c criteria.Criterion, now time.Time) (sqlexpr.Expr, error) {
	switch c := c.(type) {
	case criteria.Plain:
		lo, hi, err := parseRange(c.Value, now)
		if err != nil {
			return nil, err
		}
		return within(col, lo, hi), nil

	case criteria.Array:
		or := sqlexpr.Or{}
		for _, raw := range c.Values {
			lo, hi, err := parseRange(raw, now)
			if err != nil {
				return nil, err
			}
			or = append(or, within(col, lo, hi))
		}
		return or, nil

	case criteria.Ranged:
		switch {
		case c.Min != nil && c.Max != nil:
			lo, _, err := parseRange(*c.Min, now)
			if err != nil {
				return nil, err
			}
			_, hi, err := parseRange(*c.Max, now)
			if err != nil {
				return nil, err
			}
			return within(col, lo, hi), nil
		case c.Min != nil:
			lo, _, err := parseRange(*c.Min, now)
			if err != nil {
				return nil, err
			}
			return sqlexpr.Gte(col, lo), nil
		case c.Max != nil:
			_, hi, err := parseRange(*c.Max, now)
			if err != nil {
				return nil, err
			}
			return sqlexpr.Lt(col, hi), nil
		default:
			panic("filter: ranged criterion without bounds")
		}

	default:
		panic(fmt.Sprintf("filter: unknown criterion type %T", c))
	}
}

// parseRange resolves raw in the calendar of now and returns the bounds in
// UTC. sqlite compares bound timestamps as text against UTC values.
func parseRange(raw string, now time.Time) (time.Time, time.Time, error) {
	token, err := transform.Unescape(raw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	lo, hi, err := timerange.Parse(token, now)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return lo.UTC(), hi.UTC(), nil
}

func within(col sqlexpr.Column, lo, hi time.Time) sqlexpr.Expr {
	return sqlexpr.And{sqlexpr.Gte(col, lo), sqlexpr.Lt(col, hi)}
}
