package configbean

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bft-labs/beanwire/pkg/beans"
	"github.com/bft-labs/beanwire/pkg/log"
)

var (
	// ErrMissingRequired matches a *MissingPropertiesError.
	ErrMissingRequired = errors.New("missing required properties")
	// ErrValidation wraps validator failures after binding.
	ErrValidation = errors.New("validation failed")
)

// MissingPropertiesError lists required properties no source supplied.
type MissingPropertiesError struct {
	Bean  string
	Names []string
}

func (e *MissingPropertiesError) Error() string {
	return fmt.Sprintf("bean %q: %v: %s", e.Bean, ErrMissingRequired, strings.Join(e.Names, ", "))
}

// Is matches ErrMissingRequired.
func (e *MissingPropertiesError) Is(target error) bool {
	return target == ErrMissingRequired
}

// Initializer is implemented by beans that need to finish their own setup
// once every property has been bound and validated.
type Initializer interface {
	InitBean() error
}

// Option configures a Binder.
type Option func(*Binder)

// WithSources appends parameter sources. Later sources override earlier
// ones for the same property.
func WithSources(sources ...Source) Option {
	return func(b *Binder) {
		b.sources = append(b.sources, sources...)
	}
}

// WithRequired marks property paths that some source must supply.
func WithRequired(paths ...string) Option {
	return func(b *Binder) {
		b.required = append(b.required, paths...)
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(b *Binder) {
		b.logger = logger
	}
}

// WithEditors starts the binder with a copy of the editors in reg, so one
// registry can seed several binders. Registering on reg afterwards does not
// affect the binder; use Editors for that.
func WithEditors(reg *beans.EditorRegistry) Option {
	return func(b *Binder) {
		if reg == nil {
			b.editors = nil
			return
		}
		b.editors = reg.Clone()
	}
}

// WithValidator replaces the default validator. Passing nil disables
// validation.
func WithValidator(v *validator.Validate) Option {
	return func(b *Binder) {
		b.validate = v
	}
}

// IgnoreUnknown makes parameters without a matching property no-ops instead
// of errors.
func IgnoreUnknown() Option {
	return func(b *Binder) {
		b.ignoreUnknown = true
	}
}

// Binder maps configuration parameters onto bean properties.
type Binder struct {
	name          string
	sources       []Source
	required      []string
	logger        log.Logger
	editors       *beans.EditorRegistry
	validate      *validator.Validate
	ignoreUnknown bool
}

// New creates a Binder. name identifies the bean in logs and errors.
func New(name string, opts ...Option) *Binder {
	b := &Binder{
		name:     name,
		logger:   log.NewNoopLogger(),
		editors:  beans.NewEditorRegistry(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = log.NewNoopLogger()
	}
	if b.editors == nil {
		b.editors = beans.NewEditorRegistry()
	}
	return b
}

// Name returns the bean name.
func (b *Binder) Name() string { return b.name }

// Editors returns the registry used for custom editors.
func (b *Binder) Editors() *beans.EditorRegistry { return b.editors }

// Bind collects parameters from every source, checks required properties,
// sets the properties on target (a pointer to a struct), validates it and
// finally calls InitBean if target implements Initializer.
//
// Property failures are returned together as a *beans.AggregateError.
func (b *Binder) Bind(target any) error {
	b.logger.Info("initializing bean", log.String("bean", b.name))

	w, err := beans.New(target, beans.WithEditors(b.editors), beans.WithLogger(b.logger))
	if err != nil {
		return fmt.Errorf("bind %s: %w", b.name, err)
	}

	params, err := b.collect(w)
	if err != nil {
		b.logger.Error("failed to read bean parameters", log.String("bean", b.name), log.Err(err))
		return err
	}

	var opts []beans.BulkOption
	if b.ignoreUnknown {
		opts = append(opts, beans.IgnoreUnknown())
	}
	err = w.SetPropertyValues(params.propertyValues(), opts...)
	if err := b.reportUnknown(params, err); err != nil {
		b.logger.Error("failed to set bean properties", log.String("bean", b.name), log.Err(err))
		return fmt.Errorf("bind %s: %w", b.name, err)
	}

	if b.validate != nil {
		if err := b.validate.Struct(target); err != nil {
			b.logger.Error("bean validation failed", log.String("bean", b.name), log.Err(err))
			return fmt.Errorf("bind %s: %w: %w", b.name, ErrValidation, err)
		}
	}

	if init, ok := target.(Initializer); ok {
		if err := init.InitBean(); err != nil {
			b.logger.Error("bean initialization failed", log.String("bean", b.name), log.Err(err))
			return fmt.Errorf("init %s: %w", b.name, err)
		}
	}

	b.logger.Info("bean configured successfully",
		log.String("bean", b.name),
		log.Int("properties", len(params.values)))
	return nil
}

// reportUnknown merges parameters without a matching property into the
// result of the bulk update: they are skipped under IgnoreUnknown and
// otherwise reported as beans.ErrNoSuchProperty next to the other failures.
func (b *Binder) reportUnknown(set *paramSet, err error) error {
	if len(set.unknown) == 0 {
		return err
	}
	if b.ignoreUnknown {
		for _, u := range set.unknown {
			b.logger.Debug("skipped unknown parameter",
				log.String("bean", b.name),
				log.String("path", u.path),
				log.String("source", u.source))
		}
		return err
	}

	var agg *beans.AggregateError
	if err != nil && !errors.As(err, &agg) {
		return err
	}
	if agg == nil {
		agg = &beans.AggregateError{}
	}
	for _, u := range set.unknown {
		agg.Errors = append(agg.Errors, &beans.PropertyError{
			Path:  u.path,
			Kind:  beans.ErrNoSuchProperty,
			Value: u.value,
			Cause: fmt.Errorf("no property of %s matches the parameter from %s", b.name, u.source),
		})
	}
	return agg
}

// collect merges the parameters of all sources into property paths of the
// wrapped bean and enforces required properties.
func (b *Binder) collect(w *beans.BeanWrapper) (*paramSet, error) {
	set := newParamSet()
	typ := reflect.PointerTo(w.WrappedType())

	for _, src := range b.sources {
		params, err := src.Params()
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", src.Name(), err)
		}
		e := &expander{w: w, out: set, source: src.Name()}
		for _, p := range params {
			e.expand(typ, "", p.Key, p.Value)
		}
		b.logger.Debug("read bean parameters",
			log.String("bean", b.name),
			log.String("source", src.Name()),
			log.Int("count", len(params)))
	}

	var missing []string
	for _, path := range b.required {
		if !set.has(path) {
			missing = append(missing, path)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingPropertiesError{Bean: b.name, Names: missing}
	}
	return set, nil
}

// Origins reports, for every property path the sources would set on
// target, the name of the source whose value wins.
func (b *Binder) Origins(target any) (map[string]string, error) {
	w, err := beans.New(target)
	if err != nil {
		return nil, err
	}
	set, err := b.collect(w)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(set.values))
	for i, pv := range set.values {
		out[pv.Name] = set.origin[i]
	}
	return out, nil
}
