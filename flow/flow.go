// Package flow holds named flow definitions: a key definition together with
// the value to account and an optional filter, as configured in sFlow-RT.
package flow

import (
	"fmt"

	"github.com/netsampler/flowkey/format/common"
	"github.com/netsampler/flowkey/key"
)

// DefaultValue is the value accounted when a flow does not set one.
const DefaultValue = "frames"

var (
	ErrFlow          = fmt.Errorf("flow error")
	ErrDuplicateFlow = fmt.Errorf("duplicate flow name")
	ErrMissingName   = fmt.Errorf("missing flow name")
	ErrMissingKeys   = fmt.Errorf("missing keys")
)

// FlowError reports which flow of a definitions file failed.
type FlowError struct {
	Index int
	Name  string
	Err   error
}

func (e *FlowError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("flow #%d: %s", e.Index, e.Err.Error())
	}
	return fmt.Sprintf("flow %q: %s", e.Name, e.Err.Error())
}

func (e *FlowError) Unwrap() []error {
	return []error{ErrFlow, e.Err}
}

// Flow is a compiled flow definition. Keys keeps the source text and Filter
// is carried verbatim.
type Flow struct {
	Name       string
	Keys       string
	Definition key.Definition
	Value      string
	Filter     string
}

// Compile parses keys with p and returns the flow.
func Compile(p key.Parser, name, keys, value, filter string) (*Flow, error) {
	if name == "" {
		return nil, ErrMissingName
	}
	if keys == "" {
		return nil, ErrMissingKeys
	}
	def, err := p.Parse(keys)
	if err != nil {
		return nil, err
	}
	if value == "" {
		value = DefaultValue
	}
	return &Flow{
		Name:       name,
		Keys:       keys,
		Definition: def,
		Value:      value,
		Filter:     filter,
	}, nil
}

// Key is the transport key of a flow.
func (f *Flow) Key() []byte {
	return []byte(f.Name)
}

func (f *Flow) Document() map[string]interface{} {
	doc := map[string]interface{}{
		"name":       f.Name,
		"keys":       f.Keys,
		"value":      f.Value,
		"definition": common.DefinitionDocument(f.Definition),
	}
	if f.Filter != "" {
		doc["filter"] = f.Filter
	}
	return doc
}
