package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"reflect"
	"syscall"
	"text/tabwriter"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/bft-labs/beanwire/internal/cliconfig"
	"github.com/bft-labs/beanwire/pkg/beans"
	"github.com/bft-labs/beanwire/pkg/configbean"
	"github.com/bft-labs/beanwire/pkg/log"
)

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "List the property paths of the settings bean",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PATH\tTYPE\tACCESS")
			for _, p := range describe(reflect.TypeFor[cliconfig.Config]()) {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.path, p.typ, p.access)
			}
			return tw.Flush()
		},
	}
}

func newBindCmd(flags *rootFlags, logger func() log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "bind",
		Short: "Bind the settings and print them as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cliconfig.Load(flags.loadOptions(cmd.Flags(), logger()))
			if err != nil {
				return err
			}
			return writeTOML(cmd.OutOrStdout(), &cfg)
		},
	}
}

func newGetCmd(flags *rootFlags, logger func() log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "get <path>...",
		Short: "Bind the settings and print selected properties",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cliconfig.Load(flags.loadOptions(cmd.Flags(), logger()))
			if err != nil {
				return err
			}
			w, err := beans.New(&cfg)
			if err != nil {
				return err
			}

			var errs []error
			for _, path := range args {
				v, err := w.GetPropertyValue(path)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", path, v)
			}
			return errors.Join(errs...)
		},
	}
}

func newWatchCmd(flags *rootFlags, logger func() log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the settings again whenever the config file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.loadOptions(cmd.Flags(), logger())
			if opts.ConfigPath == "" {
				opts.ConfigPath = configbean.DefaultConfigPath(cliconfig.AppName)
			}
			if opts.ConfigPath == "" {
				return fmt.Errorf("watch: --config is required")
			}

			binder, err := cliconfig.NewBinder(opts)
			if err != nil {
				return err
			}
			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			show := func(cfg *cliconfig.Config, err error) {
				if err != nil {
					reportError(errOut, err)
					return
				}
				if err := writeTOML(out, cfg); err != nil {
					reportError(errOut, err)
				}
				fmt.Fprintln(out, "---")
			}

			newConfig := func() *cliconfig.Config {
				cfg := cliconfig.DefaultConfig()
				return &cfg
			}
			first := newConfig()
			show(first, binder.Bind(first))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return configbean.NewWatcher(binder, opts.ConfigPath, newConfig, show).Run(ctx)
		},
	}
}

func writeTOML(w io.Writer, cfg *cliconfig.Config) error {
	snap, err := configbean.Snapshot(cfg)
	if err != nil {
		return err
	}
	b, err := toml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	_, err = w.Write(b)
	return err
}

type propertyLine struct {
	path   string
	typ    reflect.Type
	access string
}

// describe lists the properties of t depth-first, descending into struct
// and struct pointer properties. Types already on the current branch are
// not expanded again.
func describe(t reflect.Type) []propertyLine {
	var lines []propertyLine
	var walk func(t reflect.Type, prefix string, seen map[reflect.Type]bool)
	walk = func(t reflect.Type, prefix string, seen map[reflect.Type]bool) {
		seen[t] = true
		defer delete(seen, t)

		for _, pd := range beans.Introspect(t) {
			path := pd.Name
			if prefix != "" {
				path = prefix + beans.NestedPropertySeparator + pd.Name
			}
			lines = append(lines, propertyLine{path: path, typ: pd.Type, access: access(pd)})

			nested := pd.Type
			if nested.Kind() == reflect.Pointer {
				nested = nested.Elem()
			}
			if nested.Kind() == reflect.Struct && pd.Readable && !seen[nested] && len(beans.Introspect(nested)) > 0 {
				walk(nested, path, seen)
			}
		}
	}
	walk(t, "", map[reflect.Type]bool{})
	return lines
}

func access(pd beans.PropertyDescriptor) string {
	switch {
	case pd.Readable && pd.Writable:
		return "rw"
	case pd.Readable:
		return "r"
	case pd.Writable:
		return "w"
	}
	return "-"
}
