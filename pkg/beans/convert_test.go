package beans

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldName(t *testing.T) {
	for _, s := range []string{"poll_interval", "POLL-INTERVAL", "pollInterval", "PollInterval"} {
		assert.Equal(t, "pollinterval", FoldName(s), s)
	}
}

func TestSetPropertyValue_MapKeysFolded(t *testing.T) {
	e, w := newEmployeeWrapper(t)

	require.NoError(t, w.SetPropertyValue("work", map[string]any{"STREET": "Elm", "city": "Paris"}))
	require.NotNil(t, e.Work)
	assert.Equal(t, Address{Street: "Elm", City: "Paris"}, *e.Work)

	err := w.SetPropertyValue("work", map[string]any{"street": "Elm", "planet": "Mars"})
	requireKind(t, err, ErrConversionFailed)
}

type gauges struct {
	Small int8
	Count uint
	Port  int
	Ratio float32
	On    bool
	Wait  time.Duration
}

func TestSetPropertyValue_NumericRange(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		value any
		ok    bool
	}{
		{name: "int8 fits", path: "small", value: 127, ok: true},
		{name: "int8 overflow", path: "small", value: 300},
		{name: "int8 underflow", path: "small", value: int64(-129)},
		{name: "int8 from string overflow", path: "small", value: "300"},
		{name: "uint from int", path: "count", value: 5, ok: true},
		{name: "uint from negative int", path: "count", value: -5},
		{name: "uint from negative float", path: "count", value: -1.0},
		{name: "int from whole float", path: "port", value: 8080.0, ok: true},
		{name: "int from fractional float", path: "port", value: 2.7},
		{name: "int from huge uint", path: "port", value: uint64(math.MaxUint64)},
		{name: "float32 from float64", path: "ratio", value: 0.5, ok: true},
		{name: "float32 overflow", path: "ratio", value: math.MaxFloat64},
		{name: "int from empty string", path: "port", value: ""},
		{name: "bool from empty string", path: "on", value: ""},
		{name: "duration from empty string", path: "wait", value: ""},
		{name: "duration from int", path: "wait", value: int64(time.Second), ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &gauges{Small: 1, Count: 1, Port: 1, Ratio: 1}
			w, err := New(g)
			require.NoError(t, err)

			before := *g
			err = w.SetPropertyValue(tt.path, tt.value)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			requireKind(t, err, ErrConversionFailed)
			assert.Equal(t, before, *g, "a rejected value leaves the property untouched")
		})
	}
}
