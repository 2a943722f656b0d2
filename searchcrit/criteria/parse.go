package criteria

import (
	"strings"

	scerrors "github.com/nonibytes/searchcrit/searchcrit/errors"
)

// Parse turns the value part of a search token into a criterion.
//
// An unescaped comma makes an Array; otherwise an unescaped ".." makes a
// Ranged criterion; anything else is Plain. Escapes are kept in the payloads.
func Parse(value string) (Criterion, error) {
	if parts := SplitUnescaped(value, ",", -1); len(parts) > 1 {
		for _, p := range parts {
			if strings.TrimSpace(p) == "" {
				return nil, scerrors.QueryParseError("empty compound value")
			}
		}
		return Array{Values: parts}, nil
	}

	if parts := SplitUnescaped(value, "..", 2); len(parts) == 2 {
		r, ok := NewRanged(parts[0], parts[1])
		if !ok {
			return nil, scerrors.QueryParseError("empty ranged value")
		}
		return r, nil
	}

	return Plain{Value: value}, nil
}

// SplitUnescaped splits s around occurrences of sep that are not preceded by
// an escaping backslash. n follows strings.SplitN semantics.
func SplitUnescaped(s, sep string, n int) []string {
	if n == 0 {
		return nil
	}
	var parts []string
	start := 0
	for i := 0; i < len(s); {
		if s[i] == '\\' {
			i += 2
			continue
		}
		if (n < 0 || len(parts) < n-1) && strings.HasPrefix(s[i:], sep) {
			parts = append(parts, s[start:i])
			i += len(sep)
			start = i
			continue
		}
		i++
	}
	return append(parts, s[start:])
}
