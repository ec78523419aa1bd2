package configbean

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/beanwire/pkg/beans"
)

type caseBean struct {
	URLPath string
	Raw     string `bean:"urlpath"`
}

func TestMatchProperty(t *testing.T) {
	typ := reflect.TypeOf(serverBean{})

	tests := []struct {
		seg  string
		want string
	}{
		{"host", "host"},
		{"HOST", "host"},
		{"read_timeout", ""},
		{"http", "http"},
		{"max-body-bytes", ""},
		{"Labels", "labels"},
		{"nope", ""},
	}
	for _, tt := range tests {
		t.Run(tt.seg, func(t *testing.T) {
			pd, ok := matchProperty(typ, tt.seg)
			if tt.want == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, pd.Name)
		})
	}

	pd, ok := matchProperty(reflect.TypeOf(httpBean{}), "max-body-bytes")
	require.True(t, ok)
	assert.Equal(t, "maxBodyBytes", pd.Name)
}

func TestParamSet_LaterValueReplacesInPlace(t *testing.T) {
	s := newParamSet()
	s.put("host", "a", "file")
	s.put("port", 1, "file")
	s.put("host", "b", "env")

	assert.True(t, s.has("host"))
	assert.False(t, s.has("debug"))
	assert.Equal(t, []beans.PropertyValue{
		{Name: "host", Value: "b"},
		{Name: "port", Value: 1},
	}, s.propertyValues().Values())
	assert.Equal(t, []string{"env", "file"}, s.origin)
}

func TestExpander(t *testing.T) {
	target := &serverBean{}
	w, err := beans.New(target)
	require.NoError(t, err)

	out := newParamSet()
	e := &expander{w: w, out: out, source: "test"}
	typ := reflect.TypeOf(target)

	e.expand(typ, "", "HTTP.Read_Timeout", "1s")
	e.expand(typ, "", "http.bogus.deeper", 1)
	e.expand(typ, "", "http", map[string]any{"max_body_bytes": 10, "extra": true})
	e.expand(typ, "", "tls", map[string]any{"cert_file": "c.pem"})
	e.expand(typ, "", "labels", map[string]any{"env": "prod"})

	var names []string
	for _, pv := range out.values {
		names = append(names, pv.Name)
	}
	assert.Equal(t, []string{
		"http.readTimeout",
		"http.maxBodyBytes",
		"tls",
		"labels",
	}, names)

	var unknown []string
	for _, u := range out.unknown {
		unknown = append(unknown, u.path)
	}
	assert.Equal(t, []string{"http.bogus.deeper", "http.extra"}, unknown)
}

func TestExpander_UnknownFirstSegment(t *testing.T) {
	target := &serverBean{}
	w, err := beans.New(target)
	require.NoError(t, err)

	out := newParamSet()
	e := &expander{w: w, out: out, source: "env"}
	typ := reflect.TypeOf(target)

	e.expand(typ, "", "METRICS.PORT", "9")
	e.expand(typ, "", "metrics", map[string]any{"port": 9})
	e.expand(typ, "", "port.number", 1)
	e.expand(typ, "", "METRICS.PORT", "10")

	assert.Empty(t, out.values)
	require.Len(t, out.unknown, 3)
	assert.Equal(t, unknownParam{path: "METRICS.PORT", value: "10", source: "env"}, out.unknown[0])
	assert.Equal(t, "metrics", out.unknown[1].path)
	assert.Equal(t, "port.number", out.unknown[2].path)
}

func TestExpander_ExactMatchWins(t *testing.T) {
	w, err := beans.New(&caseBean{})
	require.NoError(t, err)

	out := newParamSet()
	e := &expander{w: w, out: out, source: "test"}
	e.expand(reflect.TypeOf(caseBean{}), "", "urlpath", "x")
	e.expand(reflect.TypeOf(caseBean{}), "", "urlPath", "y")

	require.Len(t, out.values, 2)
	assert.Equal(t, "urlpath", out.values[0].Name)
	assert.Equal(t, "urlPath", out.values[1].Name)
}
