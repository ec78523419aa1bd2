// Package configbean binds configuration parameters onto a bean.
//
// A Binder gathers parameters from an ordered list of sources (TOML files,
// environment variables, command-line flags, plain maps), maps their keys to
// property paths of the target struct, and applies them through a
// beans.BeanWrapper:
//
//	b := configbean.New("agent",
//	    configbean.WithSources(
//	        &configbean.FileSource{Path: path, Optional: true},
//	        &configbean.EnvSource{Prefix: "AGENT"},
//	        &configbean.FlagSource{Flags: cmd.Flags(), Skip: []string{"config"}},
//	    ),
//	    configbean.WithRequired("nodeHome"),
//	)
//	if err := b.Bind(&cfg); err != nil {
//	    return err
//	}
//
// Later sources override earlier ones, so the usual precedence is
// file < environment < flags. Keys match property names case-insensitively
// and ignore '_' and '-': node_home, NODE-HOME and nodeHome all bind to
// nodeHome.
//
// After the properties are set the bean is checked with the validate struct
// tags (github.com/go-playground/validator/v10), and finally InitBean is
// called on beans implementing Initializer.
//
// A Watcher rebinds a fresh bean whenever its configuration file changes.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package configbean
