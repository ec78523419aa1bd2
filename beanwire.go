// Package beanwire binds configuration onto plain Go structs by property path.
//
// Example usage:
//
//	var cfg Settings
//	w, err := beanwire.Wrap(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = w.SetPropertyValues(beanwire.NewPropertyValues().
//	    Add("http.timeout", "30s").
//	    Add("workers", "8"))
//	var agg *beanwire.AggregateError
//	if errors.As(err, &agg) {
//	    for _, pe := range agg.Errors {
//	        log.Printf("%s: %v", pe.Path, pe.Cause)
//	    }
//	}
//
// The packages under pkg/ hold the full API: pkg/beans for property access
// and pkg/configbean for binding files, environment and flags.
package beanwire

import (
	"github.com/bft-labs/beanwire/pkg/beans"
	"github.com/bft-labs/beanwire/pkg/configbean"
)

// BeanWrapper gets and sets properties of a wrapped struct by path.
type BeanWrapper = beans.BeanWrapper

// PropertyValue is a single requested update.
type PropertyValue = beans.PropertyValue

// PropertyValues is an ordered list of updates.
type PropertyValues = beans.PropertyValues

// PropertyError describes the failure of one property.
type PropertyError = beans.PropertyError

// AggregateError collects every failure of a bulk update.
type AggregateError = beans.AggregateError

// Binder maps configuration parameters onto bean properties.
type Binder = configbean.Binder

// Wrap creates a BeanWrapper around target, a non-nil pointer to a struct.
func Wrap(target any, opts ...beans.Option) (*BeanWrapper, error) {
	return beans.New(target, opts...)
}

// NewPropertyValues creates an ordered list of updates.
func NewPropertyValues(pvs ...PropertyValue) *PropertyValues {
	return beans.NewPropertyValues(pvs...)
}

// Bind binds the parameters of sources onto target, later sources winning.
func Bind(name string, target any, sources ...configbean.Source) error {
	return configbean.New(name, configbean.WithSources(sources...)).Bind(target)
}
