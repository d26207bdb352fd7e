package key

import (
	"fmt"
)

var (
	// ErrSyntax is the base error for definitions the grammar rejects.
	ErrSyntax = fmt.Errorf("syntax error")
	// ErrTrailing is the base error for definitions whose valid prefix is
	// followed by unparsed text.
	ErrTrailing = fmt.Errorf("unparsed trailing input")
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// ErrorKindSyntax: a grammar rule failed; nothing was produced.
	ErrorKindSyntax ErrorKind = iota
	// ErrorKindTrailing: a valid prefix parsed but input remains.
	ErrorKindTrailing
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindSyntax:
		return "syntax"
	case ErrorKindTrailing:
		return "trailing"
	default:
		return "unknown"
	}
}

// ParseError describes a rejected definition.
type ParseError struct {
	Kind ErrorKind
	// Offset is the byte offset of the mismatch, or where Remaining starts.
	Offset int
	// Remaining is the unconsumed suffix of a trailing error. It is empty
	// for syntax errors.
	Remaining string
	// Expected describes what the grammar wanted at Offset.
	Expected string
	// Near is the input at Offset for syntax errors.
	Near string
	// Cause is the furthest grammar mismatch behind a trailing error, if
	// any.
	Cause error
}

func (e *ParseError) Error() string {
	if e.Kind == ErrorKindTrailing {
		msg := fmt.Sprintf("%s at offset %d: %q", ErrTrailing.Error(), e.Offset, e.Remaining)
		if e.Cause != nil {
			msg += ": " + e.Cause.Error()
		}
		return msg
	}
	return fmt.Sprintf("%s at offset %d: expected %s, found %s", ErrSyntax.Error(), e.Offset, e.Expected, describeNear(e.Near))
}

func (e *ParseError) Unwrap() []error {
	if e.Kind == ErrorKindTrailing {
		return []error{ErrTrailing}
	}
	return []error{ErrSyntax}
}

func describeNear(near string) string {
	if near == "" {
		return "end of input"
	}
	return fmt.Sprintf("%q", near)
}

func syntaxError(src string, m *mismatch) *ParseError {
	if m == nil {
		m = &mismatch{expected: "key expression"}
	}
	return &ParseError{
		Kind:     ErrorKindSyntax,
		Offset:   m.offset,
		Expected: m.expected,
		Near:     src[m.offset:],
	}
}

// ParsePrefix parses the longest valid definition at the start of text. It
// returns the definition together with the unconsumed suffix, or a syntax
// *ParseError when no expression could be parsed.
func ParsePrefix(text string) (Definition, string, error) {
	def, rest, _, err := parsePrefix(text)
	return def, rest, err
}

func parsePrefix(text string) (Definition, string, *parser, error) {
	p := newParser(text)
	def, err := p.definition()
	if err != nil {
		return Definition{}, "", p, syntaxError(text, p.furthest)
	}
	return def, text[p.pos:], p, nil
}

// ParseDefinition parses text as a complete definition. Input left over
// after the valid prefix is reported as a trailing *ParseError.
func ParseDefinition(text string) (Definition, error) {
	def, rest, p, err := parsePrefix(text)
	if err != nil {
		return Definition{}, err
	}
	if rest != "" {
		return Definition{}, trailingError(text, p)
	}
	return def, nil
}

// ParseExpression parses text as exactly one key expression.
func ParseExpression(text string) (Expression, error) {
	p := newParser(text)
	e, err := p.expression()
	if err != nil {
		return nil, syntaxError(text, p.furthest)
	}
	if p.pos < len(text) {
		return nil, trailingError(text, p)
	}
	return e, nil
}

func trailingError(src string, p *parser) *ParseError {
	perr := &ParseError{
		Kind:      ErrorKindTrailing,
		Offset:    p.pos,
		Remaining: src[p.pos:],
	}
	if p.furthest != nil && p.furthest.offset >= p.pos {
		perr.Cause = syntaxError(src, p.furthest)
	}
	return perr
}

// Parser parses complete key definitions.
type Parser interface {
	Parse(text string) (Definition, error)
}

// ParserFunc adapts a function to Parser.
type ParserFunc func(text string) (Definition, error)

// Parse calls f(text).
func (f ParserFunc) Parse(text string) (Definition, error) {
	return f(text)
}

// DefaultParser parses with ParseDefinition.
var DefaultParser Parser = ParserFunc(ParseDefinition)
