package transform

import (
	"errors"
	"fmt"
	"testing"

	scerrors "github.com/nonibytes/searchcrit/searchcrit/errors"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestUnescapePlainTextIsIdentity(t *testing.T) {
	for _, s := range []string{"", "cat", "hello world", "100%", "snake_case", "ünïcödé"} {
		got, err := Unescape(s)
		assert.NilError(t, err)
		assert.Equal(t, got, s)
	}
}

func TestUnescapeReservedCharacters(t *testing.T) {
	got, err := Unescape(`\*\\\:\-\.\,`)
	assert.NilError(t, err)
	assert.Equal(t, got, `*\:-.,`)
}

func TestUnescapeKeepsBareStar(t *testing.T) {
	got, err := Unescape("a*b")
	assert.NilError(t, err)
	assert.Equal(t, got, "a*b")
}

func TestUnescapeErrors(t *testing.T) {
	for _, s := range []string{`abc\`, `\a`, `a\ b`, `\%`} {
		_, err := Unescape(s)
		assert.Assert(t, scerrors.IsKind(err, scerrors.ErrEscape), "Unescape(%q): got %v", s, err)
	}
}

func TestSegmentsMarksWildcards(t *testing.T) {
	segs, err := Segments(`a*\*b*`, true)
	assert.NilError(t, err)
	assert.DeepEqual(t, segs, []Segment{
		{Kind: SegmentLiteral, Text: "a"},
		{Kind: SegmentWildcard},
		{Kind: SegmentLiteral, Text: "*b"},
		{Kind: SegmentWildcard},
	})
}

func TestWildcard(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"cat", "cat"},
		{"cat*", "cat%"},
		{"*cat*", "%cat%"},
		{`\*`, "*"},
		{"100%", `100\%`},
		{"snake_case", `snake\_case`},
		{`back\\slash`, `back\\slash`},
		{"(--wildcard--)", "(--wildcard--)"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Wildcard(tt.in)
			assert.NilError(t, err)
			assert.Equal(t, got, tt.want)
		})
	}
}

func TestWildcardPropagatesEscapeError(t *testing.T) {
	_, err := Wildcard(`cat\`)
	assert.Assert(t, scerrors.IsKind(err, scerrors.ErrEscape))
}

func TestInteger(t *testing.T) {
	v, err := Integer("42")
	assert.NilError(t, err)
	assert.Equal(t, v, int64(42))

	v, err = Integer(`\-5`)
	assert.NilError(t, err)
	assert.Equal(t, v, int64(-5))

	_, err = Integer("abc")
	assert.Assert(t, scerrors.IsKind(err, scerrors.ErrValueFormat))

	_, err = Integer("1.5")
	assert.Assert(t, scerrors.IsKind(err, scerrors.ErrValueFormat))
}

func TestFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"3/4", 0.75},
		{"3:4", 0.75},
		{"3", 3.0},
		{"1.5", 1.5},
		{`\-2/4`, -0.5},
		{"16:9", 16.0 / 9.0},
	}
	for _, tt := range tests {
		v, err := Float(tt.in)
		assert.NilError(t, err, "Float(%q)", tt.in)
		assert.Equal(t, v, tt.want, "Float(%q)", tt.in)
	}
}

func TestFloatErrors(t *testing.T) {
	for _, in := range []string{"1/0", "x", "1/y", "3:", "nan", "inf", "1e300/1e-300", "-1e300:1e-300"} {
		_, err := Float(in)
		assert.Assert(t, scerrors.IsKind(err, scerrors.ErrValueFormat), "Float(%q): got %v", in, err)
	}

	_, err := Float(`1\q`)
	assert.Assert(t, scerrors.IsKind(err, scerrors.ErrEscape))
}

func TestEnum(t *testing.T) {
	tr := Enum(map[string]any{"a": 1, "b": 2})

	v, err := tr("A")
	assert.NilError(t, err)
	assert.Equal(t, v, 1)

	v, err = tr("b")
	assert.NilError(t, err)
	assert.Equal(t, v, 2)
}

func TestEnumUnknownListsAcceptedNames(t *testing.T) {
	_, err := Enum(map[string]any{"a": 1})("z")
	assert.Assert(t, scerrors.IsKind(err, scerrors.ErrValueFormat))

	var e *scerrors.Error
	assert.Assert(t, errors.As(err, &e))
	assert.DeepEqual(t, e.Accepted, []string{"a"})
	assert.Assert(t, is.Contains(err.Error(), "accepted: a"))
}

func TestEnumAcceptedNamesAreSorted(t *testing.T) {
	_, err := Enum(map[string]any{"Sketchy": 2, "safe": 1, "unsafe": 3})("nope")
	e := err.(*scerrors.Error)
	assert.DeepEqual(t, e.Accepted, []string{"safe", "sketchy", "unsafe"})
}

func TestEnumPanicsOnCaseCollision(t *testing.T) {
	defer func() {
		r := recover()
		assert.Assert(t, r != nil)
		assert.Assert(t, is.Contains(fmt.Sprint(r), `"safe"`))
	}()
	Enum(map[string]any{"safe": 1, "SAFE": 2})
}

func TestEnumPattern(t *testing.T) {
	tr := EnumPattern(map[string]string{"safe": "safe", "nsfw": "un_safe"})

	got, err := tr("NSFW")
	assert.NilError(t, err)
	assert.Equal(t, got, `un\_safe`)

	_, err = tr("bogus")
	assert.Assert(t, scerrors.IsKind(err, scerrors.ErrValueFormat))
}
