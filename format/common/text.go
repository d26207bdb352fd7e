package common

import (
	"fmt"
	"sort"
	"strings"

	"github.com/netsampler/flowkey/key"
)

// Describe renders an expression as a compact tree, e.g.
// group(name(ipdestination); lan, wan).
func Describe(e key.Expression) string {
	switch v := e.(type) {
	case key.Name:
		if v.Known() {
			return fmt.Sprintf("name(%s)", v)
		}
		return fmt.Sprintf("unknown(%s)", v.Raw)
	case key.GroupFunction:
		return fmt.Sprintf("group(%s; %s)", Describe(v.Key), strings.Join(v.Groups, ", "))
	case key.CountryFunction:
		return fmt.Sprintf("country(%q)", v.Arg)
	case key.UnknownFunction:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = Describe(a)
		}
		return fmt.Sprintf("func %s(%s)", v.Name, strings.Join(args, ", "))
	}
	return "invalid"
}

// DescribeDefinition renders every expression of d with Describe.
func DescribeDefinition(d key.Definition) string {
	parts := make([]string, len(d.Keys))
	for i, k := range d.Keys {
		parts[i] = Describe(k)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// FormatDocumentCustom renders the top-level fields of doc as
// <quotes>field<quotes><sign>value pairs joined by sep. Fields are taken
// from selector when it is not empty, otherwise sorted by name.
func FormatDocumentCustom(doc map[string]interface{}, selector []string, quotes, sep, sign string) string {
	fields := selector
	if len(fields) == 0 {
		fields = make([]string, 0, len(doc))
		for f := range doc {
			fields = append(fields, f)
		}
		sort.Strings(fields)
	}

	fstr := make([]string, 0, len(fields))
	for _, f := range fields {
		value, ok := doc[f]
		if !ok {
			continue
		}
		fstr = append(fstr, fmt.Sprintf("%s%s%s%s%s", quotes, f, quotes, sign, renderValue(value)))
	}
	return strings.Join(fstr, sep)
}

// FormatDocumentText renders doc as space separated field=value pairs.
func FormatDocumentText(doc map[string]interface{}, selector []string) string {
	return FormatDocumentCustom(doc, selector, "", " ", "=")
}

func renderValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case []interface{}:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = renderValue(e)
		}
		return "[" + strings.Join(parts, ",") + "]"
	case map[string]interface{}:
		return "{" + FormatDocumentCustom(v, nil, "", ",", ":") + "}"
	default:
		return fmt.Sprintf("%v", v)
	}
}
