package beans

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/bft-labs/beanwire/pkg/log"
)

// Option configures a BeanWrapper.
type Option func(*BeanWrapper)

// WithEditors makes the wrapper use reg for custom editors. Registrations
// made through the wrapper afterwards land in reg as well.
func WithEditors(reg *EditorRegistry) Option {
	return func(w *BeanWrapper) {
		if reg != nil {
			w.editors = reg
		}
	}
}

// WithLogger sets a logger for debug output about bulk updates.
// If not provided, a no-op logger is used.
func WithLogger(logger log.Logger) Option {
	return func(w *BeanWrapper) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithoutDefaultConversion disables the built-in conversion of values that
// are not assignable to the property type, leaving only custom editors.
func WithoutDefaultConversion() Option {
	return func(w *BeanWrapper) {
		w.autoConvert = false
	}
}

// BeanWrapper gets and sets properties of a wrapped struct by path.
//
// A wrapper can be reused: swap the target with SetWrappedInstance and keep
// the editors. It is not safe for concurrent use.
type BeanWrapper struct {
	target      beanRef
	editors     *EditorRegistry
	logger      log.Logger
	autoConvert bool
}

// NewEmpty creates a wrapper without a target. Every property operation fails
// with ErrInvalidTarget until SetWrappedInstance is called.
func NewEmpty(opts ...Option) *BeanWrapper {
	w := &BeanWrapper{
		editors:     NewEditorRegistry(),
		logger:      log.NewNoopLogger(),
		autoConvert: true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// New creates a wrapper around target, which must be a non-nil pointer to a
// struct.
func New(target any, opts ...Option) (*BeanWrapper, error) {
	w := NewEmpty(opts...)
	if err := w.SetWrappedInstance(target); err != nil {
		return nil, err
	}
	return w, nil
}

// SetWrappedInstance replaces the wrapped object. The new target may be of a
// different type than the previous one.
func (w *BeanWrapper) SetWrappedInstance(target any) error {
	if target == nil {
		return fmt.Errorf("%w: target is nil", ErrInvalidTarget)
	}
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.Type().Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %s is not a pointer to a struct", ErrInvalidTarget, v.Type())
	}
	if v.IsNil() {
		return fmt.Errorf("%w: nil %s", ErrInvalidTarget, v.Type())
	}
	w.target = beanRef{ptr: v}
	return nil
}

// WrappedInstance returns the wrapped target, or nil when none is set.
func (w *BeanWrapper) WrappedInstance() any {
	if !w.target.ptr.IsValid() {
		return nil
	}
	return w.target.ptr.Interface()
}

// WrappedType returns the struct type of the wrapped target, or nil.
func (w *BeanWrapper) WrappedType() reflect.Type {
	if !w.target.ptr.IsValid() {
		return nil
	}
	return w.target.typ()
}

// RegisterCustomEditor registers editor for every property of type typ.
func (w *BeanWrapper) RegisterCustomEditor(typ reflect.Type, editor Editor) {
	w.editors.Register(typ, "", editor)
}

// RegisterCustomEditorForPath registers editor for the property at path only.
// path is the full nested path, as passed to SetPropertyValue.
func (w *BeanWrapper) RegisterCustomEditorForPath(typ reflect.Type, path string, editor Editor) {
	w.editors.Register(typ, path, editor)
}

// FindCustomEditor returns the editor used for a property of type typ at
// path, or nil.
func (w *BeanWrapper) FindCustomEditor(typ reflect.Type, path string) Editor {
	return w.editors.Find(typ, path)
}

// Editors returns the registry backing this wrapper.
func (w *BeanWrapper) Editors() *EditorRegistry {
	return w.editors
}

func (w *BeanWrapper) root() (beanRef, error) {
	if !w.target.ptr.IsValid() {
		return beanRef{}, fmt.Errorf("%w: no target set", ErrInvalidTarget)
	}
	return w.target, nil
}

// lookup resolves path down to the descriptor of its final property.
func (w *BeanWrapper) lookup(path string) (beanRef, *PropertyDescriptor, error) {
	root, err := w.root()
	if err != nil {
		return beanRef{}, nil, err
	}
	p, err := ParsePath(path)
	if err != nil {
		return beanRef{}, nil, err
	}
	holder, name, err := resolve(root, p)
	if err != nil {
		return beanRef{}, nil, err
	}
	pd := introspect(holder.typ()).byName[name]
	if pd == nil {
		return beanRef{}, nil, newPropertyError(ErrNoSuchProperty, path,
			fmt.Errorf("%s has no property %q", holder.typ(), name))
	}
	return holder, pd, nil
}

// GetPropertyValue returns the value of the property at path.
func (w *BeanWrapper) GetPropertyValue(path string) (any, error) {
	holder, pd, err := w.lookup(path)
	if err != nil {
		return nil, err
	}
	if !pd.Readable {
		return nil, newPropertyError(ErrNotReadable, path, nil)
	}
	v, err := pd.read(holder.ptr)
	if err != nil {
		return nil, newPropertyError(ErrAccessFailure, path, err)
	}
	return v.Interface(), nil
}

// SetPropertyValue sets the property at path to value, converting it to the
// property type first when needed.
func (w *BeanWrapper) SetPropertyValue(path string, value any) error {
	return w.SetProperty(PropertyValue{Name: path, Value: value})
}

// SetProperty applies a single update. It is the preferred way to update an
// individual property.
func (w *BeanWrapper) SetProperty(pv PropertyValue) error {
	holder, pd, err := w.lookup(pv.Name)
	if err != nil {
		return withValue(err, pv.Value)
	}
	if !pd.Writable {
		return &PropertyError{Path: pv.Name, Kind: ErrNotWritable, Value: pv.Value}
	}
	if holder.detached {
		return &PropertyError{Path: pv.Name, Kind: ErrNotWritable, Value: pv.Value,
			Cause: errors.New("parent value is a copy returned by a getter")}
	}

	v, err := w.convertValue(pv.Name, pd.Type, pv.Value)
	if err != nil {
		return &PropertyError{Path: pv.Name, Kind: ErrConversionFailed, Value: pv.Value, Cause: err}
	}
	if err := pd.write(holder.ptr, v); err != nil {
		return &PropertyError{Path: pv.Name, Kind: ErrAccessFailure, Value: pv.Value, Cause: err}
	}
	return nil
}

func withValue(err error, value any) error {
	var pe *PropertyError
	if errors.As(err, &pe) && pe.Value == nil {
		pe.Value = value
	}
	return err
}

// SetPropertyValues applies every update in pvs, in order. Failures do not
// stop the update: they are collected and returned together as an
// *AggregateError once every property has been attempted. Properties that
// were set stay set.
func (w *BeanWrapper) SetPropertyValues(pvs *PropertyValues, opts ...BulkOption) error {
	if _, err := w.root(); err != nil {
		return err
	}
	return newBulkUpdate(w, opts).run(pvs.Values())
}

// SetPropertyValuesMap is SetPropertyValues for a map of raw values, applied
// in key order.
func (w *BeanWrapper) SetPropertyValuesMap(values map[string]any, opts ...BulkOption) error {
	return w.SetPropertyValues(PropertyValuesFromMap(values), opts...)
}

// PropertyDescriptors returns the descriptors of the wrapped type.
func (w *BeanWrapper) PropertyDescriptors() ([]PropertyDescriptor, error) {
	root, err := w.root()
	if err != nil {
		return nil, err
	}
	return Introspect(root.typ()), nil
}

// PropertyDescriptor returns the descriptor of the property at path.
func (w *BeanWrapper) PropertyDescriptor(path string) (PropertyDescriptor, error) {
	_, pd, err := w.lookup(path)
	if err != nil {
		return PropertyDescriptor{}, err
	}
	return *pd, nil
}

// IsReadableProperty reports whether the property at path exists and can be
// read. It returns false rather than an error for unknown properties.
func (w *BeanWrapper) IsReadableProperty(path string) bool {
	_, pd, err := w.lookup(path)
	return err == nil && pd.Readable
}

// IsWritableProperty reports whether the property at path exists and can be
// written. It returns false rather than an error for unknown properties.
func (w *BeanWrapper) IsWritableProperty(path string) bool {
	holder, pd, err := w.lookup(path)
	return err == nil && pd.Writable && !holder.detached
}
