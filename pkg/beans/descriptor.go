package beans

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// TagName is the struct tag read during introspection.
//
//	Host string `bean:"hostname"`        // property "hostname"
//	Salt string `bean:"-"`               // not a property
//	ID   string `bean:"id,readonly"`     // readable, not writable
const TagName = "bean"

// PropertyDescriptor describes one property of a bean type.
type PropertyDescriptor struct {
	Name     string
	Type     reflect.Type
	Readable bool
	Writable bool
	// Field is the Go field backing the property, empty when both accessors
	// are methods.
	Field string

	index     []int
	getter    *accessor
	setter    *accessor
	viaMethod bool
}

// accessor is a getter or setter method found on the pointer type.
type accessor struct {
	name      string
	method    int
	returnErr bool
}

var errorType = reflect.TypeFor[error]()

// typeDescriptors is the introspection result for one struct type. It is
// never modified once stored in the cache.
type typeDescriptors struct {
	ordered []*PropertyDescriptor
	byName  map[string]*PropertyDescriptor
}

// introspected caches *typeDescriptors by struct type. Two goroutines may build
// the same entry; LoadOrStore keeps whichever lands first.
var introspected sync.Map

func introspect(t reflect.Type) *typeDescriptors {
	if td, ok := introspected.Load(t); ok {
		return td.(*typeDescriptors)
	}
	td, _ := introspected.LoadOrStore(t, buildDescriptors(t))
	return td.(*typeDescriptors)
}

// Introspect returns the property descriptors of a struct type (or pointer to
// struct), sorted by name. It returns nil for other kinds.
func Introspect(t reflect.Type) []PropertyDescriptor {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	td := introspect(t)
	out := make([]PropertyDescriptor, len(td.ordered))
	for i, pd := range td.ordered {
		out[i] = *pd
	}
	return out
}

func buildDescriptors(t reflect.Type) *typeDescriptors {
	props := map[string]*PropertyDescriptor{}

	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() {
			continue
		}
		if f.Anonymous && indirectType(f.Type).Kind() == reflect.Struct {
			// Promoted fields of embedded structs show up on their own.
			continue
		}
		name, readonly, skip := parseTag(f)
		if skip {
			continue
		}
		if _, dup := props[name]; dup {
			continue
		}
		props[name] = &PropertyDescriptor{
			Name:     name,
			Type:     f.Type,
			Readable: true,
			Writable: !readonly,
			Field:    f.Name,
			index:    f.Index,
		}
	}

	addMethodAccessors(reflect.PointerTo(t), props)

	td := &typeDescriptors{byName: props}
	for _, pd := range props {
		td.ordered = append(td.ordered, pd)
	}
	sort.Slice(td.ordered, func(i, j int) bool { return td.ordered[i].Name < td.ordered[j].Name })
	return td
}

func parseTag(f reflect.StructField) (name string, readonly, skip bool) {
	tag, ok := f.Tag.Lookup(TagName)
	if !ok {
		return decapitalize(f.Name), false, false
	}
	if tag == "-" {
		return "", false, true
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = decapitalize(f.Name)
	}
	for _, opt := range parts[1:] {
		if opt == "readonly" {
			readonly = true
		}
	}
	return name, readonly, false
}

// addMethodAccessors finds GetX/IsX/X getters and SetX setters on pt.
func addMethodAccessors(pt reflect.Type, props map[string]*PropertyDescriptor) {
	type candidate struct {
		typ reflect.Type
		acc *accessor
	}
	getters := map[string]candidate{}
	plain := map[string]candidate{}
	setters := map[string]candidate{}

	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)
		mt := m.Type // receiver is In(0)

		switch {
		case strings.HasPrefix(m.Name, "Set") && len(m.Name) > 3:
			if mt.NumIn() != 2 || mt.IsVariadic() {
				continue
			}
			if mt.NumOut() > 1 || (mt.NumOut() == 1 && mt.Out(0) != errorType) {
				continue
			}
			setters[decapitalize(m.Name[3:])] = candidate{
				typ: mt.In(1),
				acc: &accessor{name: m.Name, method: i, returnErr: mt.NumOut() == 1},
			}

		case mt.NumIn() == 1 && (mt.NumOut() == 1 || (mt.NumOut() == 2 && mt.Out(1) == errorType)):
			acc := &accessor{name: m.Name, method: i, returnErr: mt.NumOut() == 2}
			c := candidate{typ: mt.Out(0), acc: acc}
			switch {
			case strings.HasPrefix(m.Name, "Get") && len(m.Name) > 3:
				getters[decapitalize(m.Name[3:])] = c
			case strings.HasPrefix(m.Name, "Is") && len(m.Name) > 2 && c.typ.Kind() == reflect.Bool:
				getters[decapitalize(m.Name[2:])] = c
			default:
				plain[decapitalize(m.Name)] = c
			}
		}
	}

	// A plain X() only counts as a getter when SetX exists, so String() and
	// friends do not turn into properties.
	for name, c := range plain {
		if _, ok := getters[name]; ok {
			continue
		}
		if s, ok := setters[name]; ok && s.typ == c.typ {
			getters[name] = c
		}
	}

	names := map[string]struct{}{}
	for name := range getters {
		names[name] = struct{}{}
	}
	for name := range setters {
		names[name] = struct{}{}
	}

	for name := range names {
		g, hasGetter := getters[name]
		s, hasSetter := setters[name]
		if hasGetter && hasSetter && g.typ != s.typ {
			// Conflicting accessor types; keep the getter only.
			hasSetter = false
		}
		typ := g.typ
		if !hasGetter {
			typ = s.typ
		}

		pd, ok := props[name]
		if ok && pd.Type != typ {
			continue
		}
		if !ok {
			pd = &PropertyDescriptor{Name: name, Type: typ}
			props[name] = pd
		}
		if hasGetter {
			pd.getter = g.acc
			pd.Readable = true
		}
		if hasSetter {
			pd.setter = s.acc
			pd.Writable = true
		}
		pd.viaMethod = pd.getter != nil
	}
}

// read returns the property value of the bean behind ptr.
func (pd *PropertyDescriptor) read(ptr reflect.Value) (v reflect.Value, err error) {
	defer recoverAccess(&err, pd.Name)

	if pd.getter != nil {
		out := ptr.Method(pd.getter.method).Call(nil)
		if pd.getter.returnErr && !out[1].IsNil() {
			return reflect.Value{}, fmt.Errorf("%s: %w", pd.getter.name, out[1].Interface().(error))
		}
		return out[0], nil
	}
	return ptr.Elem().FieldByIndexErr(pd.index)
}

// write stores v, which must be assignable to pd.Type.
func (pd *PropertyDescriptor) write(ptr reflect.Value, v reflect.Value) (err error) {
	defer recoverAccess(&err, pd.Name)

	if pd.setter != nil {
		out := ptr.Method(pd.setter.method).Call([]reflect.Value{v})
		if pd.setter.returnErr && !out[0].IsNil() {
			return fmt.Errorf("%s: %w", pd.setter.name, out[0].Interface().(error))
		}
		return nil
	}
	f, err := ptr.Elem().FieldByIndexErr(pd.index)
	if err != nil {
		return err
	}
	f.Set(v)
	return nil
}

func recoverAccess(err *error, name string) {
	if r := recover(); r != nil {
		if e, ok := r.(error); ok {
			*err = fmt.Errorf("%s panicked: %w", name, e)
			return
		}
		*err = fmt.Errorf("%s panicked: %v", name, r)
	}
}

// decapitalize lower-cases the leading upper-case run of a Go identifier,
// keeping the last capital when it starts the next word:
// NodeHome -> nodeHome, WALDir -> walDir, URL -> url.
func decapitalize(s string) string {
	r := []rune(s)
	n := 0
	for n < len(r) && unicode.IsUpper(r[n]) {
		n++
	}
	switch {
	case n == 0:
		return s
	case n > 1 && n < len(r) && unicode.IsLower(r[n]):
		n--
	}
	for i := 0; i < n; i++ {
		r[i] = unicode.ToLower(r[i])
	}
	return string(r)
}

func indirectType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
