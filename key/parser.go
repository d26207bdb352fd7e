package key

import (
	"fmt"
	"strings"
)

const (
	KeySeparator = ',' // between key expressions of a definition
	ArgSeparator = ':' // between a function name and its arguments
	NestOpen     = '['
	NestClose    = ']'
)

// mismatch is a grammar failure at an offset of the input.
type mismatch struct {
	offset   int
	expected string
}

func (m *mismatch) Error() string {
	return fmt.Sprintf("expected %s at offset %d", m.expected, m.offset)
}

// parser is a cursor over the input. Rules restore pos themselves when they
// need to backtrack; furthest keeps the deepest failure for diagnostics.
type parser struct {
	src      string
	pos      int
	furthest *mismatch
}

func newParser(src string) *parser {
	return &parser{src: src}
}

func (p *parser) fail(expected string) error {
	return p.failAt(p.pos, expected)
}

func (p *parser) failAt(offset int, expected string) error {
	m := &mismatch{offset: offset, expected: expected}
	if p.furthest == nil || offset >= p.furthest.offset {
		p.furthest = m
	}
	return m
}

func isAlnum(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

func isWord(c byte) bool {
	return isAlnum(c) || c == '_'
}

// scan returns the longest token at pos matching accept without consuming it.
func (p *parser) scan(accept func(byte) bool) string {
	end := p.pos
	for end < len(p.src) && accept(p.src[end]) {
		end++
	}
	return p.src[p.pos:end]
}

func (p *parser) take(accept func(byte) bool, expected string) (string, error) {
	tok := p.scan(accept)
	if tok == "" {
		return "", p.fail(expected)
	}
	p.pos += len(tok)
	return tok, nil
}

func (p *parser) peekByte(c byte) bool {
	return p.pos < len(p.src) && p.src[p.pos] == c
}

func (p *parser) char(c byte) error {
	if !p.peekByte(c) {
		return p.fail(fmt.Sprintf("%q", c))
	}
	p.pos++
	return nil
}

func (p *parser) literal(s string) error {
	if !strings.HasPrefix(p.src[p.pos:], s) {
		return p.fail(fmt.Sprintf("%q", s))
	}
	p.pos += len(s)
	return nil
}

// optional runs rule and rewinds the cursor if it fails.
func (p *parser) optional(rule func() error) bool {
	mark := p.pos
	if err := rule(); err != nil {
		p.pos = mark
		return false
	}
	return true
}

// definition parses expressions separated by KeySeparator. A separator not
// followed by a valid expression is left unconsumed.
func (p *parser) definition() (Definition, error) {
	first, err := p.expression()
	if err != nil {
		return Definition{}, err
	}
	keys := []Expression{first}
	for {
		var next Expression
		ok := p.optional(func() error {
			if err := p.char(KeySeparator); err != nil {
				return err
			}
			var err error
			next, err = p.expression()
			return err
		})
		if !ok {
			break
		}
		keys = append(keys, next)
	}
	return Definition{Keys: keys}, nil
}

// expression tries a function call first and falls back to a key name.
func (p *parser) expression() (Expression, error) {
	mark := p.pos
	if fn, err := p.function(); err == nil {
		return fn, nil
	}
	p.pos = mark
	return p.keyName()
}

func (p *parser) keyName() (Name, error) {
	tok, err := p.take(isWord, "key name")
	if err != nil {
		return Name{}, err
	}
	return Resolve(tok), nil
}

// peekFunctionName reports the function name at pos when the input holds
// an alphanumeric token immediately followed by ArgSeparator. Nothing is
// consumed.
func (p *parser) peekFunctionName() (string, bool) {
	name := p.scan(isAlnum)
	end := p.pos + len(name)
	if name == "" || end >= len(p.src) || p.src[end] != ArgSeparator {
		return "", false
	}
	return name, true
}

// function dispatches on the peeked name. Dedicated parsers consume the
// name and separator themselves.
func (p *parser) function() (Function, error) {
	name, ok := p.peekFunctionName()
	if !ok {
		return nil, p.fail("function name followed by ':'")
	}
	return lookupFunction(name)(p)
}

// argument parses a function argument: a key name or a bracketed function.
func (p *parser) argument() (Expression, error) {
	if !p.peekByte(NestOpen) {
		return p.keyName()
	}
	p.pos++
	fn, err := p.function()
	if err != nil {
		return nil, err
	}
	if err := p.char(NestClose); err != nil {
		return nil, err
	}
	return fn, nil
}

// functionHead consumes name followed by ArgSeparator.
func (p *parser) functionHead(name string) error {
	if err := p.literal(name); err != nil {
		return err
	}
	return p.char(ArgSeparator)
}
