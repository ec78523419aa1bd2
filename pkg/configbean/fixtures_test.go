package configbean

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var errInitRefused = errors.New("init refused")

type httpBean struct {
	ReadTimeout  time.Duration
	MaxBodyBytes int
}

type tlsBean struct {
	CertFile string
	KeyFile  string
}

type serverBean struct {
	Host   string `validate:"required"`
	Port   int    `validate:"min=1,max=65535"`
	Debug  bool
	Tags   []string
	HTTP   httpBean
	TLS    *tlsBean
	Labels map[string]string

	inited bool
}

func (s *serverBean) InitBean() error {
	if s.Host == "fail" {
		return errInitRefused
	}
	s.inited = true
	return nil
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func fixedEnv(vars ...string) func() []string {
	return func() []string { return vars }
}
