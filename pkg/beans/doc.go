// Package beans reads and writes struct properties by name.
//
// A BeanWrapper wraps a pointer to a struct and exposes its exported fields
// and accessor methods as named properties. Nested properties are addressed
// with dotted paths:
//
//	w, err := beans.New(&cfg)
//	if err != nil {
//	    return err
//	}
//	if err := w.SetPropertyValue("http.timeout", "30s"); err != nil {
//	    return err
//	}
//	v, err := w.GetPropertyValue("http.timeout") // 30 * time.Second
//
// # Properties
//
// Every exported field is a property named after the field with its leading
// capitals lower-cased (NodeHome -> nodeHome, WALDir -> walDir). The bean
// struct tag renames (`bean:"host"`), hides (`bean:"-"`) or write-protects
// (`bean:"id,readonly"`) a field. Methods on the pointer type add accessors:
// GetX / IsX read x, SetX writes x, and a plain X counts as a getter when a
// matching SetX exists. Getters may return (T, error); setters may return an
// error.
//
// # Conversion
//
// Values already assignable to the property type are stored as they are.
// Otherwise the wrapper looks for an Editor registered for the property's
// type and full path, then for its type alone, and finally falls back to a
// weakly typed decode ("8080" -> int, "5s" -> time.Duration, "a,b" ->
// []string, map -> struct). The decode never loses information: numbers
// that overflow the property type, negative numbers for unsigned types,
// fractional floats for integer types and empty strings for numbers or bools
// fail with ErrConversionFailed.
//
// # Bulk updates
//
// SetPropertyValues keeps going after a property fails and returns every
// failure at the end in a single *AggregateError. Properties set before a
// failure are not rolled back.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package beans
