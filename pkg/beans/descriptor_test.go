package beans

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecapitalize(t *testing.T) {
	tests := map[string]string{
		"Name":        "name",
		"NodeHome":    "nodeHome",
		"WALDir":      "walDir",
		"URL":         "url",
		"ID":          "id",
		"HTTPTimeout": "httpTimeout",
		"HTTP2Port":   "http2Port",
		"already":     "already",
		"X":           "x",
	}
	for in, want := range tests {
		assert.Equal(t, want, decapitalize(in), in)
	}
}

func descriptorNames(pds []PropertyDescriptor) []string {
	names := make([]string, len(pds))
	for i, pd := range pds {
		names[i] = pd.Name
	}
	return names
}

func descriptorByName(t *testing.T, pds []PropertyDescriptor, name string) PropertyDescriptor {
	t.Helper()
	for _, pd := range pds {
		if pd.Name == name {
			return pd
		}
	}
	t.Fatalf("no descriptor %q", name)
	return PropertyDescriptor{}
}

func TestIntrospect_Employee(t *testing.T) {
	pds := Introspect(reflect.TypeFor[Employee]())

	assert.Equal(t, []string{
		"age", "badge", "boss", "flaky", "home", "id", "initials", "name",
		"nickname", "office", "panicky", "pay", "tags", "timeout", "work",
	}, descriptorNames(pds))

	tests := []struct {
		name     string
		typ      reflect.Type
		readable bool
		writable bool
		field    string
	}{
		{name: "age", typ: reflect.TypeFor[int](), readable: true, writable: true, field: "Age"},
		{name: "pay", typ: reflect.TypeFor[float64](), readable: true, writable: true, field: "Salary"},
		{name: "id", typ: reflect.TypeFor[string](), readable: true, writable: false, field: "ID"},
		{name: "timeout", typ: reflect.TypeFor[time.Duration](), readable: true, writable: true, field: "Timeout"},
		{name: "nickname", typ: reflect.TypeFor[string](), readable: true, writable: true},
		{name: "initials", typ: reflect.TypeFor[string](), readable: true, writable: false},
		{name: "badge", typ: reflect.TypeFor[int](), readable: false, writable: true},
		{name: "office", typ: reflect.TypeFor[Address](), readable: true, writable: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pd := descriptorByName(t, pds, tt.name)
			assert.Equal(t, tt.typ, pd.Type)
			assert.Equal(t, tt.readable, pd.Readable)
			assert.Equal(t, tt.writable, pd.Writable)
			assert.Equal(t, tt.field, pd.Field)
		})
	}
}

func TestIntrospect_PromotedFields(t *testing.T) {
	assert.Equal(t, []string{"created", "title"}, descriptorNames(Introspect(reflect.TypeFor[Document]())))
	assert.Equal(t, []string{"created", "note"}, descriptorNames(Introspect(reflect.TypeFor[*Annotated]())))
}

func TestIntrospect_NonStruct(t *testing.T) {
	assert.Nil(t, Introspect(reflect.TypeFor[int]()))
	assert.Nil(t, Introspect(nil))
}

func TestIntrospect_Cached(t *testing.T) {
	typ := reflect.TypeFor[Address]()

	var wg sync.WaitGroup
	results := make([]*typeDescriptors, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = introspect(typ)
		}(i)
	}
	wg.Wait()

	for _, td := range results[1:] {
		assert.Same(t, results[0], td)
	}
}

func TestIntrospect_DescriptorsAreCopies(t *testing.T) {
	pds := Introspect(reflect.TypeFor[Address]())
	require.NotEmpty(t, pds)
	pds[0].Writable = false

	again := Introspect(reflect.TypeFor[Address]())
	assert.True(t, again[0].Writable)
}
