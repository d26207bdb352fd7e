// Package text implements the field=value output format.
package text

import (
	"flag"
	"strings"

	"github.com/netsampler/flowkey/format"
	"github.com/netsampler/flowkey/format/common"
)

// TextDriver renders the top-level document fields as field=value pairs.
type TextDriver struct {
	fieldsVar string
	fields    []string
}

// Prepare registers the field selector flag.
func (d *TextDriver) Prepare() error {
	flag.StringVar(&d.fieldsVar, "format.text.fields", "", "Fields to render, separated by commas (empty for all)")
	return nil
}

// Init reads the field selector.
func (d *TextDriver) Init() error {
	d.fields = nil
	for _, f := range strings.Split(d.fieldsVar, ",") {
		if f = strings.TrimSpace(f); f != "" {
			d.fields = append(d.fields, f)
		}
	}
	return nil
}

// Format renders the document of data on one line.
func (d *TextDriver) Format(data interface{}) ([]byte, []byte, error) {
	key, doc, ok := common.Document(data)
	if !ok {
		return key, nil, format.ErrNoSerializer
	}
	return key, []byte(common.FormatDocumentText(doc, d.fields)), nil
}

func init() {
	d := &TextDriver{}
	format.RegisterFormatDriver("text", d)
}
