package beans

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every failure returned by this package matches exactly one of
// these with errors.Is.
var (
	ErrInvalidTarget    = errors.New("invalid target")
	ErrInvalidPath      = errors.New("invalid property path")
	ErrNoSuchProperty   = errors.New("no such property")
	ErrNotReadable      = errors.New("property not readable")
	ErrNotWritable      = errors.New("property not writable")
	ErrConversionFailed = errors.New("conversion failed")
	ErrAccessFailure    = errors.New("property access failed")
)

// PropertyError describes a failure on a single property path.
type PropertyError struct {
	// Path is the full property path the operation was called with.
	Path string
	// Kind is one of the Err* sentinels above.
	Kind error
	// Value is the value being written, nil for reads.
	Value any
	// Cause is the underlying error, if any.
	Cause error
}

func newPropertyError(kind error, path string, cause error) *PropertyError {
	return &PropertyError{Path: path, Kind: kind, Cause: cause}
}

func (e *PropertyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v %q: %v", e.Kind, e.Path, e.Cause)
	}
	return fmt.Sprintf("%v %q", e.Kind, e.Path)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *PropertyError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// AggregateError collects the property failures of one bulk update, in the
// order they were encountered.
type AggregateError struct {
	Errors []*PropertyError
}

func (e *AggregateError) Error() string {
	var b strings.Builder
	if len(e.Errors) == 1 {
		b.WriteString("1 property error: ")
	} else {
		fmt.Fprintf(&b, "%d property errors: ", len(e.Errors))
	}
	for i, pe := range e.Errors {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(pe.Error())
	}
	return b.String()
}

// Unwrap returns the individual property errors.
func (e *AggregateError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, pe := range e.Errors {
		errs[i] = pe
	}
	return errs
}

// Len returns the number of recorded failures.
func (e *AggregateError) Len() int {
	return len(e.Errors)
}

// ForPath returns the failures recorded for the given property path.
func (e *AggregateError) ForPath(path string) []*PropertyError {
	var out []*PropertyError
	for _, pe := range e.Errors {
		if pe.Path == path {
			out = append(out, pe)
		}
	}
	return out
}
