package flow

import (
	"fmt"
)

// Set is an ordered collection of flows with unique names.
type Set struct {
	flows  []*Flow
	byName map[string]*Flow
}

// NewSet builds a set, rejecting duplicate names.
func NewSet(flows ...*Flow) (*Set, error) {
	s := &Set{
		byName: make(map[string]*Flow, len(flows)),
	}
	for _, f := range flows {
		if err := s.add(f); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Set) add(f *Flow) error {
	if _, ok := s.byName[f.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateFlow, f.Name)
	}
	s.byName[f.Name] = f
	s.flows = append(s.flows, f)
	return nil
}

// Get returns the flow called name.
func (s *Set) Get(name string) (*Flow, bool) {
	if s == nil {
		return nil, false
	}
	f, ok := s.byName[name]
	return f, ok
}

// Flows returns the flows in file order.
func (s *Set) Flows() []*Flow {
	if s == nil {
		return nil
	}
	return append([]*Flow(nil), s.flows...)
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.flows)
}

func (s *Set) Document() map[string]interface{} {
	flows := make([]interface{}, 0, s.Len())
	for _, f := range s.Flows() {
		flows = append(flows, f.Document())
	}
	return map[string]interface{}{
		"flows": flows,
	}
}
