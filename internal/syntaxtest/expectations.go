package syntaxtest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedExpectation reports an expectation line that violates the
// `Kind: (start-end): message` grammar. The error is fatal for the whole
// block: a fixture with one unreadable line is an unreadable fixture.
var ErrMalformedExpectation = errors.New("malformed expectation")

// cursor is a forward-only position over a single expectation line. Every
// sub-parser advances it explicitly; nothing rewinds.
type cursor struct {
	line string
	pos  int
}

func (c *cursor) eol() bool {
	return c.pos >= len(c.line)
}

func (c *cursor) peek() byte {
	return c.line[c.pos]
}

func (c *cursor) rest() string {
	return c.line[c.pos:]
}

func (c *cursor) skipRun(ch byte) {
	for !c.eol() && c.line[c.pos] == ch {
		c.pos++
	}
}

func (c *cursor) skipWhitespace() {
	for !c.eol() && (c.line[c.pos] == ' ' || c.line[c.pos] == '\t') {
		c.pos++
	}
}

// takeUntil consumes up to, but not including, the first occurrence of ch.
func (c *cursor) takeUntil(ch byte) string {
	start := c.pos
	for !c.eol() && c.line[c.pos] != ch {
		c.pos++
	}
	return c.line[start:c.pos]
}

// expect consumes ch or fails the whole expectation block.
func (c *cursor) expect(ch byte) error {
	if c.eol() || c.line[c.pos] != ch {
		return fmt.Errorf("%w: expected %q at column %d", ErrMalformedExpectation, string(ch), c.pos+1)
	}
	c.pos++
	return nil
}

// unsigned parses a base-10 integer, at least one digit.
func (c *cursor) unsigned() (int, error) {
	if c.eol() || !isDigit(c.line[c.pos]) {
		return 0, fmt.Errorf("%w: source location expected at column %d", ErrMalformedExpectation, c.pos+1)
	}
	n := 0
	for !c.eol() && isDigit(c.line[c.pos]) {
		n = n*10 + int(c.line[c.pos]-'0')
		c.pos++
	}
	return n, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// ParseExpectations decodes a raw expectation block, one candidate record per
// line. Blank lines and bare comment leaders yield nothing. Any grammar
// violation aborts with ErrMalformedExpectation wrapped in the line number.
func ParseExpectations(text string) ([]Diagnostic, error) {
	var expectations []Diagnostic
	if text == "" {
		return expectations, nil
	}
	for i, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		d, ok, err := ParseExpectationLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if ok {
			expectations = append(expectations, d)
		}
	}
	return expectations, nil
}

// ParseExpectationLine decodes one line of the expectation mini-language:
//
//	// Kind: (start-end): message
//
// The comment-leader slashes and the location clause are optional; an absent
// clause leaves both bounds at -1. The second return value is false for lines
// that carry no record at all.
func ParseExpectationLine(line string) (Diagnostic, bool, error) {
	c := cursor{line: strings.TrimSuffix(line, "\r")}

	c.skipRun('/')
	c.skipWhitespace()
	if c.eol() {
		return Diagnostic{}, false, nil
	}

	kind := c.takeUntil(':')
	if !c.eol() {
		c.pos++ // the colon
	}
	c.skipWhitespace()

	start, end := -1, -1
	if !c.eol() && c.peek() == '(' {
		c.pos++
		var err error
		if start, err = c.unsigned(); err != nil {
			return Diagnostic{}, false, err
		}
		if err = c.expect('-'); err != nil {
			return Diagnostic{}, false, err
		}
		if end, err = c.unsigned(); err != nil {
			return Diagnostic{}, false, err
		}
		if err = c.expect(')'); err != nil {
			return Diagnostic{}, false, err
		}
		if err = c.expect(':'); err != nil {
			return Diagnostic{}, false, err
		}
	}
	c.skipWhitespace()

	return Diagnostic{
		Kind:          kind,
		Message:       c.rest(),
		LocationStart: start,
		LocationEnd:   end,
	}, true, nil
}
