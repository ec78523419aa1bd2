package beans

import (
	"fmt"
	"reflect"
)

// Editor converts a raw value, typically a string from configuration, into
// the declared type of a property.
type Editor interface {
	Convert(value any) (any, error)
}

// EditorFunc adapts an ordinary function to the Editor interface.
type EditorFunc func(value any) (any, error)

// Convert calls f(value).
func (f EditorFunc) Convert(value any) (any, error) {
	return f(value)
}

type editorKey struct {
	typ  reflect.Type
	path string
}

// EditorRegistry maps (property type, property path) pairs to editors.
// An empty path registers an editor for every property of that type.
// It is not safe for concurrent use.
type EditorRegistry struct {
	editors map[editorKey]Editor
}

// NewEditorRegistry creates an empty registry.
func NewEditorRegistry() *EditorRegistry {
	return &EditorRegistry{editors: make(map[editorKey]Editor)}
}

// Register associates editor with the given type and path, replacing any
// editor previously registered under the same pair. It panics if typ or
// editor is nil.
func (r *EditorRegistry) Register(typ reflect.Type, path string, editor Editor) {
	if typ == nil {
		panic("beans: editor type cannot be nil")
	}
	if editor == nil {
		panic(fmt.Sprintf("beans: nil editor for %s", typ))
	}
	r.editors[editorKey{typ: typ, path: path}] = editor
}

// Find returns the editor for (typ, path), falling back to the type-wide
// editor for typ. It returns nil when neither is registered.
func (r *EditorRegistry) Find(typ reflect.Type, path string) Editor {
	if path != "" {
		if e, ok := r.editors[editorKey{typ: typ, path: path}]; ok {
			return e
		}
	}
	return r.editors[editorKey{typ: typ}]
}

// Len returns the number of registrations.
func (r *EditorRegistry) Len() int {
	return len(r.editors)
}

// Clone returns a registry holding the same registrations.
func (r *EditorRegistry) Clone() *EditorRegistry {
	c := NewEditorRegistry()
	for k, e := range r.editors {
		c.editors[k] = e
	}
	return c
}

// RegisterEditor registers a typed conversion function for properties of
// type T at path, or for all properties of type T when path is empty.
func RegisterEditor[T any](r *EditorRegistry, path string, convert func(value any) (T, error)) {
	r.Register(reflect.TypeFor[T](), path, EditorFunc(func(value any) (any, error) {
		return convert(value)
	}))
}
