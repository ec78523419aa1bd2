package cliconfig

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bft-labs/beanwire/pkg/configbean"
	"github.com/bft-labs/beanwire/pkg/log"
)

// DefaultEnvPrefix is the prefix of environment variables read by the CLI.
const DefaultEnvPrefix = "BEANWIRE"

// AppName names the bean and the default config directory.
const AppName = "beanwire"

// LoadOptions selects where settings are read from. Sources apply in the
// order file < environment < --set < changed flags.
type LoadOptions struct {
	// ConfigPath is the TOML file to read. When empty the default path is
	// used, and only if it exists.
	ConfigPath string
	EnvPrefix  string
	// Environ defaults to os.Environ.
	Environ func() []string
	// Sets holds path=value overrides.
	Sets []string
	// Flags, when set, contributes its changed flags except those in Skip.
	// Flags named in FlagPaths set the property they map to.
	Flags *pflag.FlagSet
	Skip  []string

	IgnoreUnknown bool
	Logger        log.Logger
}

// NewBinder builds the binder for Config from opts.
func NewBinder(opts LoadOptions) (*configbean.Binder, error) {
	var sources []configbean.Source

	switch {
	case opts.ConfigPath != "":
		sources = append(sources, &configbean.FileSource{Path: opts.ConfigPath})
	default:
		if p := configbean.DefaultConfigPath(AppName); p != "" {
			sources = append(sources, &configbean.FileSource{Path: p, Optional: true})
		}
	}

	prefix := opts.EnvPrefix
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	sources = append(sources, &configbean.EnvSource{Prefix: prefix, Environ: opts.Environ})

	if len(opts.Sets) > 0 {
		values, err := ParseSets(opts.Sets)
		if err != nil {
			return nil, err
		}
		sources = append(sources, configbean.MapSource("--set", values))
	}

	if opts.Flags != nil {
		sources = append(sources, &configbean.FlagSource{Flags: opts.Flags, Skip: opts.Skip, Paths: FlagPaths})
	}

	bopts := []configbean.Option{
		configbean.WithSources(sources...),
		configbean.WithRequired("nodeHome"),
		configbean.WithLogger(opts.Logger),
	}
	if opts.IgnoreUnknown {
		bopts = append(bopts, configbean.IgnoreUnknown())
	}
	return configbean.New(AppName, bopts...), nil
}

// Load binds a Config starting from DefaultConfig.
func Load(opts LoadOptions) (Config, error) {
	cfg := DefaultConfig()
	b, err := NewBinder(opts)
	if err != nil {
		return cfg, err
	}
	if err := b.Bind(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ParseSets parses path=value pairs. A repeated path keeps its last value.
func ParseSets(sets []string) (map[string]any, error) {
	values := make(map[string]any, len(sets))
	for _, kv := range sets {
		path, value, ok := strings.Cut(kv, "=")
		path = strings.TrimSpace(path)
		if !ok || path == "" {
			return nil, fmt.Errorf("invalid --set %q: want path=value", kv)
		}
		values[path] = value
	}
	return values, nil
}
