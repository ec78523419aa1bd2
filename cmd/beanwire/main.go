package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bft-labs/beanwire/internal/cliconfig"
	"github.com/bft-labs/beanwire/pkg/beans"
	"github.com/bft-labs/beanwire/pkg/log"
)

const helpDescription = `
Inspect and bind the settings bean from files, environment and flags.

Highlights:
  - Settings are addressed by dotted property paths (interval.poll, gating.iface).
  - Layers apply as file < BEANWIRE_* environment < --set < flags such as --poll.
  - Setting flags only count when given; their defaults never override a file.
  - Every property error is reported at once instead of stopping at the first.
`

var exampleUsage = strings.TrimSpace(`
  beanwire describe
  beanwire bind --config $HOME/.beanwire/config.toml --set interval.poll=1s
  beanwire get service.url gating.cpuThreshold --node-home /data/node
  beanwire watch --config ./config.toml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// rootFlags are shared by every command that binds settings.
type rootFlags struct {
	configPath    string
	envPrefix     string
	sets          []string
	ignoreUnknown bool
	verbose       bool
}

// cliFlags are the flags that steer the CLI rather than set a property.
var cliFlags = []string{"config", "env-prefix", "set", "ignore-unknown", "verbose", "help"}

func (f *rootFlags) loadOptions(fs *pflag.FlagSet, logger log.Logger) cliconfig.LoadOptions {
	return cliconfig.LoadOptions{
		ConfigPath:    f.configPath,
		EnvPrefix:     f.envPrefix,
		Sets:          f.sets,
		Flags:         fs,
		Skip:          cliFlags,
		IgnoreUnknown: f.ignoreUnknown,
		Logger:        logger,
	}
}

func newRootCmd(zl zerolog.Logger) *cobra.Command {
	var flags rootFlags

	logger := func() log.Logger {
		level := zerolog.WarnLevel
		if flags.verbose {
			level = zerolog.DebugLevel
		}
		return log.NewZerologAdapterWithLogger(zl.Level(level))
	}

	root := &cobra.Command{
		Use:           cliconfig.AppName,
		Short:         "Inspect and bind the settings bean",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to config file (default: $HOME/.beanwire/config.toml)")
	pf.StringVar(&flags.envPrefix, "env-prefix", cliconfig.DefaultEnvPrefix, "prefix of environment variables to read")
	pf.StringArrayVar(&flags.sets, "set", nil, "set a property, as path=value (repeatable)")
	pf.BoolVar(&flags.ignoreUnknown, "ignore-unknown", false, "skip parameters that match no property")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log binding details")
	cliconfig.RegisterFlags(pf)

	root.AddCommand(
		newDescribeCmd(),
		newBindCmd(&flags, logger),
		newGetCmd(&flags, logger),
		newWatchCmd(&flags, logger),
	)
	return root
}

func main() {
	zl := cliconfig.Logger()

	root := newRootCmd(zl)
	if err := root.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints every property failure on its own line.
func reportError(w io.Writer, err error) {
	var agg *beans.AggregateError
	if errors.As(err, &agg) {
		fmt.Fprintf(w, "Error: %d properties could not be set\n", agg.Len())
		for _, pe := range agg.Errors {
			fmt.Fprintf(w, "  %s\n", pe.Error())
		}
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
