package beans

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// NestedPropertySeparator separates the segments of a nested property path:
// the path "http.timeout" reads the timeout property of the http property.
const NestedPropertySeparator = "."

// PropertyPath is a parsed, immutable property path with at least one segment.
type PropertyPath struct {
	raw      string
	segments []string
}

// ParsePath splits a dotted property path into its segments.
// Supports: "name", "nested.name", "a.b.c".
func ParsePath(path string) (PropertyPath, error) {
	if path == "" {
		return PropertyPath{}, newPropertyError(ErrInvalidPath, path, errors.New("empty path"))
	}

	segments := strings.Split(path, NestedPropertySeparator)
	for _, seg := range segments {
		if seg == "" {
			return PropertyPath{}, newPropertyError(ErrInvalidPath, path, errors.New("empty segment"))
		}
		if strings.IndexFunc(seg, unicode.IsSpace) >= 0 {
			return PropertyPath{}, newPropertyError(ErrInvalidPath, path,
				fmt.Errorf("whitespace in segment %q", seg))
		}
	}

	return PropertyPath{raw: path, segments: segments}, nil
}

// String returns the path as it was parsed.
func (p PropertyPath) String() string { return p.raw }

// Len returns the number of segments.
func (p PropertyPath) Len() int { return len(p.segments) }

// Segments returns a copy of the path segments.
func (p PropertyPath) Segments() []string {
	return append([]string(nil), p.segments...)
}

// Last returns the final segment, the name of the property the path points at.
func (p PropertyPath) Last() string {
	return p.segments[len(p.segments)-1]
}

// Parent returns the path without its last segment. ok is false for
// single-segment paths.
func (p PropertyPath) Parent() (parent PropertyPath, ok bool) {
	if len(p.segments) < 2 {
		return PropertyPath{}, false
	}
	segs := p.segments[:len(p.segments)-1]
	return PropertyPath{raw: strings.Join(segs, NestedPropertySeparator), segments: segs}, true
}

// beanRef is a pointer to a struct reached while walking a path. detached is
// set when the struct is a copy returned by a getter method, so writes into it
// would be lost.
type beanRef struct {
	ptr      reflect.Value
	detached bool
}

func (b beanRef) typ() reflect.Type { return b.ptr.Type().Elem() }

// errNotBean is the cause reported when a path walks into a non-struct value.
var errNotBean = errors.New("value is not a struct")

// resolve walks every segment of path but the last, starting at root, and
// returns the bean holding the final property together with its name.
func resolve(root beanRef, path PropertyPath) (beanRef, string, error) {
	cur := root
	for i, seg := range path.segments[:len(path.segments)-1] {
		prefix := strings.Join(path.segments[:i+1], NestedPropertySeparator)

		pd := introspect(cur.typ()).byName[seg]
		if pd == nil {
			return beanRef{}, "", newPropertyError(ErrInvalidPath, path.raw,
				fmt.Errorf("no property %q on %s", prefix, cur.typ()))
		}
		if !pd.Readable {
			return beanRef{}, "", newPropertyError(ErrInvalidPath, path.raw,
				fmt.Errorf("property %q is not readable", prefix))
		}

		v, err := pd.read(cur.ptr)
		if err != nil {
			return beanRef{}, "", newPropertyError(ErrAccessFailure, path.raw, err)
		}

		next, err := asBean(v, pd.viaMethod || cur.detached)
		if err != nil {
			return beanRef{}, "", newPropertyError(ErrInvalidPath, path.raw,
				fmt.Errorf("property %q: %w", prefix, err))
		}
		cur = next
	}
	return cur, path.Last(), nil
}

// asBean turns a property value into something the resolver can keep walking.
func asBean(v reflect.Value, detached bool) (beanRef, error) {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return beanRef{}, errors.New("value is nil")
		}
		if v.Kind() == reflect.Pointer && v.Elem().Kind() == reflect.Struct {
			// A pointer shares the pointee no matter how it was obtained.
			return beanRef{ptr: v}, nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return beanRef{}, errNotBean
	}
	if v.CanAddr() {
		return beanRef{ptr: v.Addr(), detached: detached}, nil
	}
	cp := reflect.New(v.Type())
	cp.Elem().Set(v)
	return beanRef{ptr: cp, detached: true}, nil
}
