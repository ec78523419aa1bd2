package configbean

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileSource reads parameters from a TOML file. Tables become nested maps,
// so [http] timeout = "5s" binds to the property path http.timeout.
type FileSource struct {
	Path string
	// Optional makes a missing file yield no parameters instead of an error.
	Optional bool
}

// Name returns the file path.
func (s *FileSource) Name() string { return s.Path }

// Params reads and parses the file. It is re-read on every call.
func (s *FileSource) Params() ([]Param, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if s.Optional && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var values map[string]any
	if err := toml.Unmarshal(b, &values); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	return sortedParams(values), nil
}

// DefaultConfigPath returns ~/.<app>/config.toml, or "" when the home
// directory cannot be determined.
func DefaultConfigPath(app string) string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, "."+app, "config.toml")
	}
	return ""
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
