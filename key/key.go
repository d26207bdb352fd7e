// Package key models sFlow-RT flow key definitions and parses their
// textual notation.
//
// A definition such as
//
//	ipsource,group:ipdestination:local:remote,country:ipsource
//
// is an ordered list of key expressions. Each expression is either a key
// name (a packet or flow attribute) or a key function applied to other
// expressions. See https://sflow-rt.com/define_flow.php for the notation.
package key

import (
	"strings"
)

const (
	// FunctionGroup is the name of the group key function.
	FunctionGroup = "group"
	// FunctionCountry is the name of the country key function.
	FunctionCountry = "country"
)

// Expression is one column of a flow key: a Name or a Function.
// Implementations are Name, GroupFunction, CountryFunction and
// UnknownFunction.
type Expression interface {
	// String renders the expression in definition notation.
	String() string
	expression()
}

// Function is a key function applied to its arguments.
type Function interface {
	Expression
	// FunctionName is the name the function is invoked with.
	FunctionName() string
	function()
}

// GroupFunction buckets the value of Key into the named groups.
type GroupFunction struct {
	Key    Expression
	Groups []string
}

func (GroupFunction) expression() {}
func (GroupFunction) function()   {}

// FunctionName returns "group".
func (GroupFunction) FunctionName() string { return FunctionGroup }

func (f GroupFunction) String() string {
	var b strings.Builder
	b.WriteString(FunctionGroup)
	b.WriteByte(ArgSeparator)
	b.WriteString(argumentString(f.Key))
	for _, g := range f.Groups {
		b.WriteByte(ArgSeparator)
		b.WriteString(g)
	}
	return b.String()
}

// CountryFunction maps an address to its country. Arg is kept verbatim and
// is not resolved as a key name.
type CountryFunction struct {
	Arg string
}

func (CountryFunction) expression() {}
func (CountryFunction) function()   {}

// FunctionName returns "country".
func (CountryFunction) FunctionName() string { return FunctionCountry }

func (f CountryFunction) String() string {
	return FunctionCountry + string(ArgSeparator) + f.Arg
}

// UnknownFunction is a call to a function the parser has no dedicated
// grammar for. Its arguments are parsed as key expressions.
type UnknownFunction struct {
	Name string
	Args []Expression
}

func (UnknownFunction) expression() {}
func (UnknownFunction) function()   {}

// FunctionName returns the name the function was invoked with.
func (f UnknownFunction) FunctionName() string { return f.Name }

func (f UnknownFunction) String() string {
	var b strings.Builder
	b.WriteString(f.Name)
	for _, arg := range f.Args {
		b.WriteByte(ArgSeparator)
		b.WriteString(argumentString(arg))
	}
	return b.String()
}

// Definition is the ordered list of key expressions forming a flow key.
// Order is significant: it defines the column order of the composite key.
type Definition struct {
	Keys []Expression
}

func (d Definition) String() string {
	parts := make([]string, len(d.Keys))
	for i, k := range d.Keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, string(KeySeparator))
}

// argumentString brackets nested functions so that the rendered text parses
// back into the same tree.
func argumentString(e Expression) string {
	if _, ok := e.(Function); ok {
		return string(NestOpen) + e.String() + string(NestClose)
	}
	return e.String()
}

// Walk visits e and its arguments depth-first. Children of an expression
// are skipped when fn returns false for it.
func Walk(e Expression, fn func(Expression) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch f := e.(type) {
	case GroupFunction:
		Walk(f.Key, fn)
	case UnknownFunction:
		for _, arg := range f.Args {
			Walk(arg, fn)
		}
	}
}
