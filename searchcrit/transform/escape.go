package transform

import (
	"strings"

	scerrors "github.com/nonibytes/searchcrit/searchcrit/errors"
)

// Escapable lists the characters a backslash may precede.
const Escapable = `*\:-.,`

// SegmentKind tells literal text apart from a user wildcard
type SegmentKind int

const (
	SegmentLiteral SegmentKind = iota
	SegmentWildcard
)

// Segment is a run of unescaped text or a single wildcard
type Segment struct {
	Kind SegmentKind
	Text string // empty for wildcards
}

// Segments unescapes text into a stream of literal runs and, when wildcards
// is set, wildcard markers for every bare "*". An escaped "\*" is always a
// literal star, so no in-band sentinel can be forged by the user.
func Segments(text string, wildcards bool) ([]Segment, error) {
	var (
		out []Segment
		lit strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			out = append(out, Segment{Kind: SegmentLiteral, Text: lit.String()})
			lit.Reset()
		}
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '\\':
			if i+1 >= len(runes) {
				return nil, scerrors.EscapeError("unterminated escape sequence (did you forget to escape the ending backslash?)")
			}
			i++
			if !strings.ContainsRune(Escapable, runes[i]) {
				return nil, scerrors.EscapeError("unterminated escape sequence (did you forget to escape the backslash?)")
			}
			lit.WriteRune(runes[i])
		case ch == '*' && wildcards:
			flush()
			out = append(out, Segment{Kind: SegmentWildcard})
		default:
			lit.WriteRune(ch)
		}
	}
	flush()
	return out, nil
}

// Unescape removes user escapes from text. Stars are kept as literal text.
func Unescape(text string) (string, error) {
	segs, err := Segments(text, false)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, s := range segs {
		sb.WriteString(s.Text)
	}
	return sb.String(), nil
}

// EscapeLike escapes s for use inside a LIKE pattern with ESCAPE '\'
func EscapeLike(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '%', '_', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
