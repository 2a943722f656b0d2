package query

import "unicode"

// Term is one whitespace-delimited chunk of a search query
type Term struct {
	Text string
	Pos  int // rune offset of the first character
}

// Lexer splits a query string into terms
type Lexer struct {
	input []rune
	pos   int
}

// NewLexer creates a new lexer for the input string
func NewLexer(input string) *Lexer {
	return &Lexer{
		input: []rune(input),
		pos:   0,
	}
}

// Lex splits the entire input into terms
func Lex(input string) []Term {
	lexer := NewLexer(input)
	var terms []Term
	for {
		term, ok := lexer.Next()
		if !ok {
			break
		}
		terms = append(terms, term)
	}
	return terms
}

// Next returns the next term, or false at end of input.
// A backslash keeps the following character inside the current term so that
// escape validation happens later, where the value is interpreted.
func (l *Lexer) Next() (Term, bool) {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Term{}, false
	}

	start := l.pos
	for l.pos < len(l.input) && !unicode.IsSpace(l.input[l.pos]) {
		if l.input[l.pos] == '\\' && l.pos+1 < len(l.input) && !unicode.IsSpace(l.input[l.pos+1]) {
			l.pos++
		}
		l.pos++
	}
	return Term{Text: string(l.input[start:l.pos]), Pos: start}, true
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(l.input[l.pos]) {
		l.pos++
	}
}
