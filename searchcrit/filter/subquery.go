package filter

import (
	"github.com/nonibytes/searchcrit/searchcrit/criteria"
	"github.com/nonibytes/searchcrit/searchcrit/sqlexpr"
)

// Decorator adjusts the subquery before the inner filter runs, e.g. to add
// joins or extra conditions
type Decorator func(q *sqlexpr.Select) *sqlexpr.Select

// SubqueryFilter filters primary rows by a criterion on a related table.
// The criterion selects related ids; primary rows match when their id is
// among them.
type SubqueryFilter struct {
	PrimaryID sqlexpr.Column
	RelatedID sqlexpr.Column
	Decorate  Decorator
	inner     Filter
}

// NewSubquery builds the inner filter over target with factory. RelatedID's
// table is the FROM of the subquery.
func NewSubquery(primaryID, relatedID, target sqlexpr.Column, factory Factory, decorate Decorator) *SubqueryFilter {
	return &SubqueryFilter{
		PrimaryID: primaryID,
		RelatedID: relatedID,
		Decorate:  decorate,
		inner:     factory(target),
	}
}

func (f *SubqueryFilter) Apply(q *sqlexpr.Select, c criteria.Criterion, negated bool) (*sqlexpr.Select, error) {
	mustCriterion(c)

	sub := sqlexpr.From(f.RelatedID.Table).Columns(f.RelatedID)
	if f.Decorate != nil {
		sub = f.Decorate(sub)
	}
	// NULL ids would turn NOT IN into unknown for every primary row
	sub = sub.WithoutPreloads().Filter(sqlexpr.IsNotNull{Col: f.RelatedID})

	sub, err := f.inner.Apply(sub, c, false)
	if err != nil {
		return nil, err
	}
	return apply(q, sqlexpr.InSelect{Col: f.PrimaryID, Select: sub}, negated), nil
}
