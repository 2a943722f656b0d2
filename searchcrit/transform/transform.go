// Package transform converts escaped user values into typed comparison
// values and LIKE patterns.
//
// Every transformer unescapes its input first, so escape errors surface
// before any conversion is attempted. Conversion failures are reported as
// errors of kind value_format carrying the offending text.
package transform

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	scerrors "github.com/nonibytes/searchcrit/searchcrit/errors"
)

// Transformer converts a raw value into a typed value bound as a query argument
type Transformer func(value string) (any, error)

// PatternTransformer converts a raw value into a LIKE pattern
type PatternTransformer func(value string) (string, error)

// Wildcard turns a raw value into a LIKE pattern where a bare "*" matches any
// sequence and everything else, including "%" and "_", matches literally.
func Wildcard(value string) (string, error) {
	segs, err := Segments(value, true)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, s := range segs {
		switch s.Kind {
		case SegmentWildcard:
			sb.WriteByte('%')
		default:
			sb.WriteString(EscapeLike(s.Text))
		}
	}
	return sb.String(), nil
}

// Integer parses a base-10 integer into an int64
func Integer(value string) (any, error) {
	s, err := Unescape(value)
	if err != nil {
		return nil, err
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, scerrors.ValueFormatError(value, err)
	}
	return n, nil
}

// Float parses a float64. A value containing "/" or ":" is read as a ratio
// split at the first of them, so "16:9" and "3/4" are accepted. An escaped
// "\:" does not split.
func Float(value string) (any, error) {
	if i := ratioSeparator(value); i >= 0 {
		num, err := parseFloat(value[:i])
		if err != nil {
			return nil, valueError(value, err)
		}
		den, err := parseFloat(value[i+1:])
		if err != nil {
			return nil, valueError(value, err)
		}
		if den == 0 {
			return nil, scerrors.ValueFormatError(value, fmt.Errorf("division by zero"))
		}
		ratio := num / den
		if math.IsInf(ratio, 0) {
			return nil, scerrors.ValueFormatError(value, fmt.Errorf("ratio overflows"))
		}
		return ratio, nil
	}
	f, err := parseFloat(value)
	if err != nil {
		return nil, valueError(value, err)
	}
	return f, nil
}

func ratioSeparator(value string) int {
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '\\':
			i++
		case '/', ':':
			return i
		}
	}
	return -1
}

// valueError passes escape errors through untouched
func valueError(value string, err error) error {
	if scerrors.IsKind(err, scerrors.ErrEscape) {
		return err
	}
	return scerrors.ValueFormatError(value, err)
}

func parseFloat(raw string) (float64, error) {
	s, err := Unescape(raw)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return f, nil
}

// Enum returns a transformer resolving case-insensitive names to the symbols
// in available. Unknown names fail with the sorted list of accepted names.
// Names that only differ by case panic.
func Enum(available map[string]any) Transformer {
	lookup := make(map[string]any, len(available))
	for name, sym := range available {
		key := strings.ToLower(name)
		if _, dup := lookup[key]; dup {
			panic(fmt.Sprintf("transform: enum names collide on %q", key))
		}
		lookup[key] = sym
	}
	accepted := slices.Sorted(maps.Keys(lookup))

	return func(value string) (any, error) {
		s, err := Unescape(value)
		if err != nil {
			return nil, err
		}
		sym, ok := lookup[strings.ToLower(s)]
		if !ok {
			return nil, scerrors.EnumValueError(value, slices.Clone(accepted))
		}
		return sym, nil
	}
}

// EnumPattern is Enum for string-valued symbols matched with LIKE. The
// resolved symbol is matched literally.
func EnumPattern(available map[string]string) PatternTransformer {
	syms := make(map[string]any, len(available))
	for name, sym := range available {
		syms[name] = sym
	}
	resolve := Enum(syms)

	return func(value string) (string, error) {
		sym, err := resolve(value)
		if err != nil {
			return "", err
		}
		return EscapeLike(sym.(string)), nil
	}
}
