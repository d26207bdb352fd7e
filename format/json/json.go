// Package json implements the JSON output format.
package json

import (
	"encoding/json"
	"flag"

	"github.com/netsampler/flowkey/format"
	"github.com/netsampler/flowkey/format/common"
)

// JsonDriver renders documents as JSON objects.
type JsonDriver struct {
	indent bool
}

// Prepare registers the driver flags.
func (d *JsonDriver) Prepare() error {
	flag.BoolVar(&d.indent, "format.json.indent", false, "Indent JSON output")
	return nil
}

func (d *JsonDriver) Init() error {
	return nil
}

// Format marshals the document of data.
func (d *JsonDriver) Format(data interface{}) ([]byte, []byte, error) {
	key, doc, ok := common.Document(data)
	if !ok {
		return key, nil, format.ErrNoSerializer
	}
	if d.indent {
		output, err := json.MarshalIndent(doc, "", "  ")
		return key, output, err
	}
	output, err := json.Marshal(doc)
	return key, output, err
}

func init() {
	d := &JsonDriver{}
	format.RegisterFormatDriver("json", d)
}
