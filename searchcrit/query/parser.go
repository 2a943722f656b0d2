package query

import (
	"fmt"
	"strings"

	"github.com/nonibytes/searchcrit/searchcrit/criteria"
	scerrors "github.com/nonibytes/searchcrit/searchcrit/errors"
)

// Token is one parsed search term. Name is empty for anonymous terms.
type Token struct {
	Name      string
	Criterion criteria.Criterion
	Negated   bool
}

func (t Token) String() string {
	var sb strings.Builder
	if t.Negated {
		sb.WriteByte('-')
	}
	if t.Name != "" {
		sb.WriteString(t.Name)
		sb.WriteByte(':')
	}
	sb.WriteString(t.Criterion.String())
	return sb.String()
}

// Parse parses a search query into tokens.
//
//	cat -dog score:5.. creation-date:2020..2021 tag:a,b
//
// A leading "-" negates a term, an unescaped ":" separates a name from its
// value. Names are case-insensitive and returned in lower case.
func Parse(input string) ([]Token, error) {
	terms := Lex(input)
	tokens := make([]Token, 0, len(terms))
	for _, term := range terms {
		tok, err := parseTerm(term)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func parseTerm(term Term) (Token, error) {
	text := term.Text
	var tok Token

	if strings.HasPrefix(text, "-") {
		tok.Negated = true
		text = text[1:]
	}
	if text == "" {
		return Token{}, scerrors.QueryParseError(fmt.Sprintf("empty term at position %d", term.Pos))
	}

	value := text
	if parts := criteria.SplitUnescaped(text, ":", 2); len(parts) == 2 {
		if parts[0] == "" {
			return Token{}, scerrors.QueryParseError(fmt.Sprintf("missing name before ':' at position %d", term.Pos))
		}
		tok.Name = strings.ToLower(parts[0])
		value = parts[1]
		if value == "" {
			return Token{}, scerrors.QueryParseError(fmt.Sprintf("empty value for %q", tok.Name))
		}
	}

	c, err := criteria.Parse(value)
	if err != nil {
		return Token{}, err
	}
	tok.Criterion = c
	return tok, nil
}
