package beans

import (
	"errors"

	"github.com/bft-labs/beanwire/pkg/log"
)

// disposition says what a bulk update does with a failed property.
type disposition int

const (
	// collect records the failure and moves on to the next property.
	collect disposition = iota
	// skip drops the failure and moves on.
	skip
	// abort stops the update and returns the failure on its own.
	abort
)

// bulkPolicy maps error kinds to dispositions. Kinds missing from the table
// are collected.
type bulkPolicy map[error]disposition

var defaultBulkPolicy = bulkPolicy{
	ErrInvalidTarget:    abort,
	ErrInvalidPath:      collect,
	ErrNoSuchProperty:   collect,
	ErrNotReadable:      collect,
	ErrNotWritable:      collect,
	ErrConversionFailed: collect,
	ErrAccessFailure:    collect,
}

func (p bulkPolicy) classify(err error) disposition {
	var pe *PropertyError
	if errors.As(err, &pe) {
		if d, ok := p[pe.Kind]; ok {
			return d
		}
		return collect
	}
	if errors.Is(err, ErrInvalidTarget) {
		return p[ErrInvalidTarget]
	}
	return collect
}

// BulkOption adjusts a bulk update.
type BulkOption func(bulkPolicy)

// IgnoreUnknown treats updates of properties the bean does not have as
// no-ops instead of failures. Other failures are still reported.
func IgnoreUnknown() BulkOption {
	return func(p bulkPolicy) {
		p[ErrNoSuchProperty] = skip
	}
}

// bulkUpdate applies a list of updates to one wrapper. It never stops on a
// collected failure and never rolls back applied properties.
type bulkUpdate struct {
	w        *BeanWrapper
	policy   bulkPolicy
	failures []*PropertyError
	applied  int
	skipped  int
}

func newBulkUpdate(w *BeanWrapper, opts []BulkOption) *bulkUpdate {
	policy := make(bulkPolicy, len(defaultBulkPolicy))
	for k, v := range defaultBulkPolicy {
		policy[k] = v
	}
	for _, opt := range opts {
		opt(policy)
	}
	return &bulkUpdate{w: w, policy: policy}
}

func (b *bulkUpdate) run(pvs []PropertyValue) error {
	for _, pv := range pvs {
		err := b.w.SetProperty(pv)
		if err == nil {
			b.applied++
			continue
		}

		switch b.policy.classify(err) {
		case abort:
			return err
		case skip:
			b.skipped++
			b.w.logger.Debug("skipped unknown property", log.String("path", pv.Name))
		default:
			b.failures = append(b.failures, asPropertyError(err, pv))
		}
	}

	b.w.logger.Debug("bulk update finished",
		log.Int("applied", b.applied),
		log.Int("skipped", b.skipped),
		log.Int("failed", len(b.failures)))

	if len(b.failures) == 0 {
		return nil
	}
	for _, pe := range b.failures {
		b.w.logger.Debug("property update failed", log.String("path", pe.Path), log.Err(pe))
	}
	return &AggregateError{Errors: b.failures}
}

func asPropertyError(err error, pv PropertyValue) *PropertyError {
	var pe *PropertyError
	if !errors.As(err, &pe) {
		pe = newPropertyError(ErrAccessFailure, pv.Name, err)
	}
	if pe.Value == nil {
		pe.Value = pv.Value
	}
	return pe
}
