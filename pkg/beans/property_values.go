package beans

import "sort"

// PropertyValue is one requested update: a property path and the raw value
// to store there.
type PropertyValue struct {
	Name  string
	Value any
}

// PropertyValues is an ordered list of updates. The same name may appear more
// than once; a bulk update applies the entries in order, so the last one wins.
type PropertyValues struct {
	values []PropertyValue
}

// NewPropertyValues creates a list holding pvs in order.
func NewPropertyValues(pvs ...PropertyValue) *PropertyValues {
	return &PropertyValues{values: append([]PropertyValue(nil), pvs...)}
}

// PropertyValuesFromMap creates a list from m. Go maps are unordered, so the
// entries are sorted by name to keep bulk updates deterministic.
func PropertyValuesFromMap(m map[string]any) *PropertyValues {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	pvs := &PropertyValues{values: make([]PropertyValue, 0, len(m))}
	for _, name := range names {
		pvs.values = append(pvs.values, PropertyValue{Name: name, Value: m[name]})
	}
	return pvs
}

// Add appends an update and returns the list for chaining.
func (p *PropertyValues) Add(name string, value any) *PropertyValues {
	p.values = append(p.values, PropertyValue{Name: name, Value: value})
	return p
}

// Get returns the last update recorded for name.
func (p *PropertyValues) Get(name string) (PropertyValue, bool) {
	for i := len(p.values) - 1; i >= 0; i-- {
		if p.values[i].Name == name {
			return p.values[i], true
		}
	}
	return PropertyValue{}, false
}

// Contains reports whether name has at least one update.
func (p *PropertyValues) Contains(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Len returns the number of updates, duplicates included.
func (p *PropertyValues) Len() int {
	if p == nil {
		return 0
	}
	return len(p.values)
}

// Values returns a copy of the updates in order.
func (p *PropertyValues) Values() []PropertyValue {
	if p == nil {
		return nil
	}
	return append([]PropertyValue(nil), p.values...)
}
