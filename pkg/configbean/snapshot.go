package configbean

import (
	"reflect"
	"time"

	"github.com/bft-labs/beanwire/pkg/beans"
)

// Snapshot returns the readable properties of target as nested maps keyed by
// property name, in a shape that go-toml can encode and a FileSource can read
// back. Durations are rendered as strings; nil values are left out.
func Snapshot(target any) (map[string]any, error) {
	w, err := beans.New(target)
	if err != nil {
		return nil, err
	}
	return snapshot(w, "")
}

func snapshot(w *beans.BeanWrapper, prefix string) (map[string]any, error) {
	var pds []beans.PropertyDescriptor
	if prefix == "" {
		all, err := w.PropertyDescriptors()
		if err != nil {
			return nil, err
		}
		pds = all
	} else {
		pd, err := w.PropertyDescriptor(prefix)
		if err != nil {
			return nil, err
		}
		pds = beans.Introspect(pd.Type)
	}

	out := make(map[string]any, len(pds))
	for _, pd := range pds {
		if !pd.Readable {
			continue
		}
		path := joinPath(prefix, pd.Name)
		v, err := w.GetPropertyValue(path)
		if err != nil {
			return nil, err
		}
		rv := reflect.ValueOf(v)
		if !rv.IsValid() || isNil(rv) {
			continue
		}

		switch {
		case isStruct(pd.Type) && !isTextual(pd.Type):
			nested, err := snapshot(w, path)
			if err != nil {
				return nil, err
			}
			out[pd.Name] = nested
		case pd.Type == reflect.TypeFor[time.Duration]():
			out[pd.Name] = v.(time.Duration).String()
		default:
			out[pd.Name] = v
		}
	}
	return out, nil
}

func isNil(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func isStruct(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

// isTextual reports whether t encodes itself as text, like time.Time.
func isTextual(t reflect.Type) bool {
	return t.Implements(reflect.TypeFor[interface{ MarshalText() ([]byte, error) }]()) ||
		reflect.PointerTo(t).Implements(reflect.TypeFor[interface{ MarshalText() ([]byte, error) }]())
}
