package configbean

import (
	"reflect"
	"sort"
	"strings"

	"github.com/bft-labs/beanwire/pkg/beans"
)

// matchProperty finds the property of typ named seg, preferring an exact
// match over a folded one.
func matchProperty(typ reflect.Type, seg string) (beans.PropertyDescriptor, bool) {
	pds := beans.Introspect(typ)
	for _, pd := range pds {
		if pd.Name == seg {
			return pd, true
		}
	}
	folded := beans.FoldName(seg)
	for _, pd := range pds {
		if beans.FoldName(pd.Name) == folded {
			return pd, true
		}
	}
	return beans.PropertyDescriptor{}, false
}

// paramSet is an ordered set of property values keyed by canonical path. A
// later value for a path replaces the earlier one in place. Keys that match
// no property are kept apart in unknown.
type paramSet struct {
	index  map[string]int
	values []beans.PropertyValue
	origin []string

	unknownIndex map[string]int
	unknown      []unknownParam
}

// unknownParam is a parameter key with a segment that matches no property.
type unknownParam struct {
	path   string
	value  any
	source string
}

func newParamSet() *paramSet {
	return &paramSet{index: map[string]int{}, unknownIndex: map[string]int{}}
}

func (s *paramSet) putUnknown(path string, value any, source string) {
	u := unknownParam{path: path, value: value, source: source}
	if i, ok := s.unknownIndex[path]; ok {
		s.unknown[i] = u
		return
	}
	s.unknownIndex[path] = len(s.unknown)
	s.unknown = append(s.unknown, u)
}

func (s *paramSet) put(path string, value any, source string) {
	if i, ok := s.index[path]; ok {
		s.values[i].Value = value
		s.origin[i] = source
		return
	}
	s.index[path] = len(s.values)
	s.values = append(s.values, beans.PropertyValue{Name: path, Value: value})
	s.origin = append(s.origin, source)
}

func (s *paramSet) has(path string) bool {
	_, ok := s.index[path]
	return ok
}

func (s *paramSet) propertyValues() *beans.PropertyValues {
	return beans.NewPropertyValues(s.values...)
}

// expander rewrites raw parameter keys into property paths of the wrapped
// bean. A key is unknown as soon as one of its segments matches nothing; the
// unmatched remainder is kept verbatim for reporting.
type expander struct {
	w      *beans.BeanWrapper
	out    *paramSet
	source string
}

func (e *expander) expand(typ reflect.Type, prefix, key string, value any) {
	segs := strings.Split(key, beans.NestedPropertySeparator)
	path := prefix
	t := typ

	for i, seg := range segs {
		pd, ok := matchProperty(t, seg)
		if !ok {
			e.out.putUnknown(joinPath(path, strings.Join(segs[i:], beans.NestedPropertySeparator)), value, e.source)
			return
		}
		path = joinPath(path, pd.Name)
		if i < len(segs)-1 {
			t = pd.Type
			continue
		}

		if table, isTable := value.(map[string]any); isTable && e.descend(pd, path) {
			keys := make([]string, 0, len(table))
			for k := range table {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				e.expand(pd.Type, path, k, table[k])
			}
			return
		}
		e.out.put(path, value, e.source)
	}
}

// descend reports whether a table should be spread over the properties of
// pd rather than assigned to pd as a whole. A nil struct pointer gets the
// whole table, which the default conversion turns into a new struct.
func (e *expander) descend(pd beans.PropertyDescriptor, path string) bool {
	t := pd.Type
	if t.Kind() != reflect.Pointer {
		return t.Kind() == reflect.Struct
	}
	if t.Elem().Kind() != reflect.Struct {
		return false
	}
	cur, err := e.w.GetPropertyValue(path)
	if err != nil {
		return false
	}
	rv := reflect.ValueOf(cur)
	return rv.IsValid() && !rv.IsNil()
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + beans.NestedPropertySeparator + name
}
