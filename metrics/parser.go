package metrics

import (
	"errors"

	"github.com/netsampler/flowkey/key"
	"github.com/netsampler/flowkey/utils/debug"
)

const (
	ResultOK       = "ok"
	ResultSyntax   = "syntax"
	ResultTrailing = "trailing"
	ResultPanic    = "panic"
	ResultError    = "error"
)

// PromParser records the outcome and duration of every parse.
type PromParser struct {
	wrapped key.Parser
}

// Result classifies a parse error into a metric label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, debug.ErrPanic):
		return ResultPanic
	case errors.Is(err, key.ErrTrailing):
		return ResultTrailing
	case errors.Is(err, key.ErrSyntax):
		return ResultSyntax
	default:
		return ResultError
	}
}

// ExpressionKind labels an expression for KeyExpressions.
func ExpressionKind(e key.Expression) string {
	switch v := e.(type) {
	case key.Name:
		if v.Known() {
			return "name"
		}
		return "unknown_name"
	case key.UnknownFunction:
		return "unknown_function"
	case key.Function:
		return v.FunctionName()
	}
	return "invalid"
}

func (p *PromParser) Parse(text string) (key.Definition, error) {
	tm := TimeMeasureNow()
	def, err := p.wrapped.Parse(text)
	result := Result(err)

	ParseCount.With(map[string]string{"result": result}).Inc()
	tm.ObserveMicroseconds(ParseTime.With(map[string]string{"result": result}))

	for _, e := range def.Keys {
		key.Walk(e, func(e key.Expression) bool {
			KeyExpressions.With(map[string]string{"kind": ExpressionKind(e)}).Inc()
			return true
		})
	}
	return def, err
}

// WrapPromParser instruments a parser.
func WrapPromParser(wrapped key.Parser) key.Parser {
	return &PromParser{
		wrapped: wrapped,
	}
}
