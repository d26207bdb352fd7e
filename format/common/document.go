// Package common converts parsed key definitions into generic documents
// shared by the format drivers.
package common

import (
	"github.com/netsampler/flowkey/key"
)

// Documenter is implemented by values that render themselves as a
// document.
type Documenter interface {
	Document() map[string]interface{}
}

// Keyer is implemented by values carrying a transport key.
type Keyer interface {
	Key() []byte
}

// Document returns the transport key and the document for data. ok is false
// when data has no document form.
func Document(data interface{}) (k []byte, doc map[string]interface{}, ok bool) {
	if dataIf, isKeyer := data.(Keyer); isKeyer {
		k = dataIf.Key()
	}
	switch v := data.(type) {
	case Documenter:
		return k, v.Document(), true
	case key.Definition:
		return []byte(v.String()), DefinitionDocument(v), true
	case *key.Definition:
		if v == nil {
			return nil, nil, false
		}
		return []byte(v.String()), DefinitionDocument(*v), true
	case key.Expression:
		return []byte(v.String()), ExpressionDocument(v), true
	}
	return k, nil, false
}

// DefinitionDocument renders a definition with its canonical text and one
// document per key expression.
func DefinitionDocument(d key.Definition) map[string]interface{} {
	keys := make([]interface{}, len(d.Keys))
	for i, k := range d.Keys {
		keys[i] = ExpressionDocument(k)
	}
	return map[string]interface{}{
		"definition": d.String(),
		"keys":       keys,
	}
}

// ExpressionDocument renders one key expression. Nested values only use
// strings, booleans, []interface{} and map[string]interface{}.
func ExpressionDocument(e key.Expression) map[string]interface{} {
	switch v := e.(type) {
	case key.Name:
		return map[string]interface{}{
			"type":  "name",
			"name":  v.String(),
			"known": v.Known(),
		}
	case key.GroupFunction:
		groups := make([]interface{}, len(v.Groups))
		for i, g := range v.Groups {
			groups[i] = g
		}
		return map[string]interface{}{
			"type":     "function",
			"function": v.FunctionName(),
			"known":    true,
			"key":      ExpressionDocument(v.Key),
			"groups":   groups,
		}
	case key.CountryFunction:
		return map[string]interface{}{
			"type":     "function",
			"function": v.FunctionName(),
			"known":    true,
			"arg":      v.Arg,
		}
	case key.UnknownFunction:
		args := make([]interface{}, len(v.Args))
		for i, a := range v.Args {
			args[i] = ExpressionDocument(a)
		}
		return map[string]interface{}{
			"type":     "function",
			"function": v.FunctionName(),
			"known":    false,
			"args":     args,
		}
	}
	return map[string]interface{}{
		"type": "invalid",
	}
}
