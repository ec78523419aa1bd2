package configbean

import (
	"sort"
)

// Param is one raw configuration parameter. Key is a dotted path whose
// segments are matched against property names case-insensitively, ignoring
// '_' and '-'. Value may be a nested map[string]any, which is spread over the
// properties of a struct-typed property.
type Param struct {
	Key   string
	Value any
}

// Source supplies configuration parameters, like a servlet's init-params.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string
	// Params returns the parameters in the order they should be applied.
	Params() ([]Param, error)
}

type mapSource struct {
	name   string
	values map[string]any
}

// MapSource returns a Source serving values in key order.
func MapSource(name string, values map[string]any) Source {
	return &mapSource{name: name, values: values}
}

func (s *mapSource) Name() string { return s.name }

func (s *mapSource) Params() ([]Param, error) {
	return sortedParams(s.values), nil
}

func sortedParams(values map[string]any) []Param {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	params := make([]Param, len(keys))
	for i, k := range keys {
		params[i] = Param{Key: k, Value: values[k]}
	}
	return params
}
