package configbean

import (
	"os"
	"sort"
	"strings"

	"github.com/bft-labs/beanwire/pkg/beans"
)

// EnvSource reads environment variables starting with Prefix + "_".
// A double underscore nests: with Prefix "APP", APP_HTTP__TIMEOUT=5s binds
// to http.timeout and APP_POLL_INTERVAL=1s to pollInterval.
type EnvSource struct {
	Prefix string
	// Environ defaults to os.Environ.
	Environ func() []string
}

// Name returns a description of the variables read.
func (s *EnvSource) Name() string { return "env " + s.Prefix + "_*" }

// Params returns the matching variables sorted by name.
func (s *EnvSource) Params() ([]Param, error) {
	environ := s.Environ
	if environ == nil {
		environ = os.Environ
	}

	prefix := s.Prefix + "_"
	var params []Param
	for _, kv := range environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, prefix) || len(name) == len(prefix) {
			continue
		}
		key := strings.ReplaceAll(name[len(prefix):], "__", beans.NestedPropertySeparator)
		params = append(params, Param{Key: key, Value: value})
	}
	sort.Slice(params, func(i, j int) bool { return params[i].Key < params[j].Key })
	return params, nil
}
