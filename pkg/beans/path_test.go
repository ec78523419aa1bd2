package beans

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		segments []string
		wantErr  bool
	}{
		{name: "single segment", path: "name", segments: []string{"name"}},
		{name: "nested", path: "boss.home.city", segments: []string{"boss", "home", "city"}},
		{name: "case is kept", path: "WALDir.x", segments: []string{"WALDir", "x"}},
		{name: "empty", path: "", wantErr: true},
		{name: "empty middle segment", path: "a..b", wantErr: true},
		{name: "leading separator", path: ".a", wantErr: true},
		{name: "trailing separator", path: "a.", wantErr: true},
		{name: "whitespace", path: "a. b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePath(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidPath))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.segments, p.Segments())
			assert.Equal(t, len(tt.segments), p.Len())
			assert.Equal(t, tt.path, p.String())
			assert.Equal(t, tt.segments[len(tt.segments)-1], p.Last())
		})
	}
}

func TestPropertyPath_Parent(t *testing.T) {
	p, err := ParsePath("a.b.c")
	require.NoError(t, err)

	parent, ok := p.Parent()
	require.True(t, ok)
	assert.Equal(t, "a.b", parent.String())
	assert.Equal(t, []string{"a", "b"}, parent.Segments())

	single, err := ParsePath("a")
	require.NoError(t, err)
	_, ok = single.Parent()
	assert.False(t, ok)
}

func TestPropertyPath_SegmentsIsCopy(t *testing.T) {
	p, err := ParsePath("a.b")
	require.NoError(t, err)

	segs := p.Segments()
	segs[0] = "z"
	assert.Equal(t, "a", p.Segments()[0])
}
