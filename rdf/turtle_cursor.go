package rdf

import (
	"fmt"
	"strings"
)

// turtleCursor parses a single isolated Turtle term out of a string
// fragment (a TriG graph-name token, or a lexeme the token scanner
// classified as a numeric/prefixed-name candidate). It reuses the
// token-based term grammar in turtle_parser.go rather than duplicating
// it at the character level.
type turtleCursor struct {
	input                      string
	pos                        int
	prefixes                   map[string]string
	base                       string
	allowQuotedTripleStatement bool
}

func (c *turtleCursor) skipWS() {
	for c.pos < len(c.input) {
		switch c.input[c.pos] {
		case ' ', '\t', '\r', '\n':
			c.pos++
		default:
			return
		}
	}
}

func (c *turtleCursor) errorf(format string, args ...interface{}) error {
	return WrapParseError("turtle", c.input, -1, fmt.Errorf(format, args...))
}

// parseTerm consumes one term starting at c.pos and advances c.pos
// past it (best-effort for the trailing position, which callers use
// only to check for unexpected leftover content).
func (c *turtleCursor) parseTerm(allowLiteral bool) (Term, error) {
	c.skipWS()
	if c.pos >= len(c.input) {
		return nil, c.errorf("expected term, got end of input")
	}
	tokens, err := tokenizeTurtleLine(c.input[c.pos:])
	if err != nil {
		return nil, c.errorf("%v", err)
	}
	if len(tokens) == 0 {
		return nil, c.errorf("expected term")
	}
	stream := &turtleTokenStream{tokens: tokens}
	p := &turtleParser{
		prefixes:                   c.prefixes,
		baseIRI:                    c.base,
		allowQuotedTripleStatement: c.allowQuotedTripleStatement,
	}
	term, err := p.parseTermTokens(stream, allowLiteral)
	if err != nil {
		return nil, err
	}
	if stream.pos >= len(tokens) {
		c.pos = len(c.input)
		return term, nil
	}
	tail := tokens[stream.pos].Lexeme
	if idx := strings.Index(c.input[c.pos:], tail); idx >= 0 {
		c.pos += idx
	} else {
		c.pos = len(c.input)
	}
	return term, nil
}
