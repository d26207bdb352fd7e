package flow

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/netsampler/flowkey/key"

	"gopkg.in/yaml.v3"
)

type definitionsFile struct {
	Flows []flowConfig `yaml:"flows"`
}

type flowConfig struct {
	Name   string `yaml:"name"`
	Keys   string `yaml:"keys"`
	Value  string `yaml:"value"`
	Filter string `yaml:"filter"`
}

// Decode reads a definitions document and compiles every flow with p.
func Decode(r io.Reader, p key.Parser) (*Set, error) {
	var file definitionsFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	s, _ := NewSet()
	for i, fc := range file.Flows {
		f, err := Compile(p, fc.Name, fc.Keys, fc.Value, fc.Filter)
		if err == nil {
			err = s.add(f)
		}
		if err != nil {
			return nil, &FlowError{Index: i, Name: fc.Name, Err: err}
		}
	}
	return s, nil
}

// LoadFile decodes the definitions file at path.
func LoadFile(path string, p key.Parser) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Decode(f, p)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return s, nil
}
