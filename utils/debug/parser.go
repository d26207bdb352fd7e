package debug

import (
	"fmt"
	"runtime/debug"

	"github.com/netsampler/flowkey/key"
)

// PanicParserWrapper wraps a parser to recover panics during Parse.
type PanicParserWrapper struct {
	wrapped key.Parser
}

// Parse calls the wrapped parser and converts panics into errors.
func (p *PanicParserWrapper) Parse(text string) (def key.Definition, err error) {
	defer func() {
		if pErr := recover(); pErr != nil {
			def = key.Definition{}
			err = &PanicErrorMessage{Msg: text, Inner: fmt.Sprint(pErr), Stacktrace: debug.Stack()}
		}
	}()

	def, err = p.wrapped.Parse(text)
	return def, err
}

// WrapPanicParser wraps a parser to recover panics as errors.
func WrapPanicParser(wrapped key.Parser) key.Parser {
	return &PanicParserWrapper{
		wrapped: wrapped,
	}
}
