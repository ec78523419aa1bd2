package configbean

import (
	"github.com/spf13/pflag"
)

// FlagSource exposes the flags explicitly set on the command line. Flags
// left at their default are not parameters, so they never override values
// from files or the environment.
type FlagSource struct {
	Flags *pflag.FlagSet
	// Skip lists flags that are not bean properties, such as --config.
	Skip []string
	// Paths maps a flag name to the property path it sets. Other flags
	// use their name as the key.
	Paths map[string]string
}

// Name returns "flags".
func (s *FlagSource) Name() string { return "flags" }

// Params returns the changed flags in lexicographical order of flag name.
func (s *FlagSource) Params() ([]Param, error) {
	skip := make(map[string]bool, len(s.Skip))
	for _, name := range s.Skip {
		skip[name] = true
	}

	var params []Param
	s.Flags.Visit(func(f *pflag.Flag) {
		if skip[f.Name] {
			return
		}
		var value any = f.Value.String()
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			value = sv.GetSlice()
		}
		key := f.Name
		if p, ok := s.Paths[f.Name]; ok {
			key = p
		}
		params = append(params, Param{Key: key, Value: value})
	})
	return params, nil
}
