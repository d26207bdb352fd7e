package key

import (
	"sort"
)

// functionParser parses a whole function call, name included, at the
// cursor.
type functionParser func(p *parser) (Function, error)

// functionParsers maps known function names to their grammar. It is filled
// once in init and only read afterwards.
var functionParsers map[string]functionParser

func init() {
	functionParsers = map[string]functionParser{
		FunctionGroup:   parseGroupFunction,
		FunctionCountry: parseCountryFunction,
	}
}

func lookupFunction(name string) functionParser {
	if parse, ok := functionParsers[name]; ok {
		return parse
	}
	return parseUnknownFunction
}

// KnownFunctions returns the names of the functions with a dedicated
// grammar, sorted.
func KnownFunctions() []string {
	names := make([]string, 0, len(functionParsers))
	for name := range functionParsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// group:<argument>(:<group name>)+
func parseGroupFunction(p *parser) (Function, error) {
	if err := p.functionHead(FunctionGroup); err != nil {
		return nil, err
	}
	k, err := p.argument()
	if err != nil {
		return nil, err
	}
	var groups []string
	for {
		var g string
		ok := p.optional(func() error {
			if err := p.char(ArgSeparator); err != nil {
				return err
			}
			var err error
			g, err = p.take(isWord, "group name")
			return err
		})
		if !ok {
			break
		}
		groups = append(groups, g)
	}
	if len(groups) == 0 {
		return nil, p.fail("group name after ':'")
	}
	return GroupFunction{Key: k, Groups: groups}, nil
}

// country:<token>
func parseCountryFunction(p *parser) (Function, error) {
	if err := p.functionHead(FunctionCountry); err != nil {
		return nil, err
	}
	arg, err := p.take(isAlnum, "country argument")
	if err != nil {
		return nil, err
	}
	return CountryFunction{Arg: arg}, nil
}

// <name>:<argument>(:<argument>)*
func parseUnknownFunction(p *parser) (Function, error) {
	name, err := p.take(isAlnum, "function name")
	if err != nil {
		return nil, err
	}
	if err := p.char(ArgSeparator); err != nil {
		return nil, err
	}
	first, err := p.argument()
	if err != nil {
		return nil, err
	}
	args := []Expression{first}
	for {
		var arg Expression
		ok := p.optional(func() error {
			if err := p.char(ArgSeparator); err != nil {
				return err
			}
			var err error
			arg, err = p.argument()
			return err
		})
		if !ok {
			break
		}
		args = append(args, arg)
	}
	return UnknownFunction{Name: name, Args: args}, nil
}
