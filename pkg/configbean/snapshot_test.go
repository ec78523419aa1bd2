package configbean

import (
	"testing"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/beanwire/pkg/beans"
)

func TestSnapshot(t *testing.T) {
	s := &serverBean{
		Host: "h",
		Port: 1,
		HTTP: httpBean{ReadTimeout: 5 * time.Second},
		TLS:  &tlsBean{CertFile: "c.pem"},
	}

	got, err := Snapshot(s)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"host":  "h",
		"port":  1,
		"debug": false,
		"http": map[string]any{
			"readTimeout":  "5s",
			"maxBodyBytes": 0,
		},
		"tls": map[string]any{
			"certFile": "c.pem",
			"keyFile":  "",
		},
	}, got)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	in := &serverBean{
		Host:   "h",
		Port:   8080,
		Debug:  true,
		Tags:   []string{"a", "b"},
		HTTP:   httpBean{ReadTimeout: 1500 * time.Millisecond, MaxBodyBytes: 10},
		TLS:    &tlsBean{CertFile: "c.pem", KeyFile: "k.pem"},
		Labels: map[string]string{"env": "prod"},
	}
	snap, err := Snapshot(in)
	require.NoError(t, err)

	data, err := toml.Marshal(snap)
	require.NoError(t, err)
	path := writeConfig(t, t.TempDir(), string(data))

	var out serverBean
	require.NoError(t, New("server", WithSources(&FileSource{Path: path})).Bind(&out))

	in.inited = true
	assert.Equal(t, *in, out)
}

func TestSnapshot_InvalidTarget(t *testing.T) {
	_, err := Snapshot(serverBean{})
	assert.ErrorIs(t, err, beans.ErrInvalidTarget)
}
