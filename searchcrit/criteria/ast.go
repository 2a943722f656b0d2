package criteria

import "strings"

// Criterion is a parsed search term before any type-specific interpretation.
// Payloads are raw user text: still escaped.
type Criterion interface {
	isCriterion()
	String() string
}

// Plain is a single value
type Plain struct {
	Value string
}

func (Plain) isCriterion() {}

func (c Plain) String() string { return c.Value }

// Array is a list of alternatives, matched with OR
type Array struct {
	Values []string
}

func (Array) isCriterion() {}

func (c Array) String() string { return strings.Join(c.Values, ",") }

// Ranged is an inclusive range; a nil bound is open.
// At least one of Min and Max is set.
type Ranged struct {
	Min *string
	Max *string
}

func (Ranged) isCriterion() {}

func (c Ranged) String() string {
	var lo, hi string
	if c.Min != nil {
		lo = *c.Min
	}
	if c.Max != nil {
		hi = *c.Max
	}
	return lo + ".." + hi
}

// NewRanged builds a Ranged criterion from possibly empty bounds.
// It returns false when both bounds are empty.
func NewRanged(min, max string) (Ranged, bool) {
	var r Ranged
	if min != "" {
		r.Min = &min
	}
	if max != "" {
		r.Max = &max
	}
	return r, r.Min != nil || r.Max != nil
}

// MustRanged is NewRanged for literals known to carry a bound.
func MustRanged(min, max string) Ranged {
	r, ok := NewRanged(min, max)
	if !ok {
		panic("criteria: ranged criterion without bounds")
	}
	return r
}
