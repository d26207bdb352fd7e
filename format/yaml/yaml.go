// Package yaml implements the YAML output format.
package yaml

import (
	"github.com/netsampler/flowkey/format"
	"github.com/netsampler/flowkey/format/common"

	"gopkg.in/yaml.v3"
)

// YamlDriver renders documents as YAML mappings.
type YamlDriver struct{}

func (d *YamlDriver) Prepare() error {
	return nil
}

func (d *YamlDriver) Init() error {
	return nil
}

// Format marshals the document of data.
func (d *YamlDriver) Format(data interface{}) ([]byte, []byte, error) {
	key, doc, ok := common.Document(data)
	if !ok {
		return key, nil, format.ErrNoSerializer
	}
	output, err := yaml.Marshal(doc)
	return key, output, err
}

func init() {
	d := &YamlDriver{}
	format.RegisterFormatDriver("yaml", d)
}
