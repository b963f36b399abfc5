// Package godiopts builds named, immutable options instances through an
// ordered configure / post-configure / validate pipeline and wires the
// result into a dig-based container.
package godiopts

import "reflect"

// Factory resolves one fully configured options instance per requested
// name. Descriptor slices are set once at construction and only read
// afterwards, so concurrent Resolve calls need no coordination.
type Factory[T any] struct {
	creators    []Creator[T]
	configurers []Configurer[T]
	posts       []PostConfigurer[T]
	mutators    []MutableConfigurer[T]
	postMut     []MutablePostConfigurer[T]
	validators  []Validator[T]
}

type FactoryOption[T any] func(*Factory[T])

// WithCreators registers initial-instance creators.
func WithCreators[T any](creators ...Creator[T]) FactoryOption[T] {
	return func(f *Factory[T]) { f.creators = append(f.creators, creators...) }
}

// WithConfigurers registers phase-1 configure steps.
func WithConfigurers[T any](configurers ...Configurer[T]) FactoryOption[T] {
	return func(f *Factory[T]) { f.configurers = append(f.configurers, configurers...) }
}

// WithPostConfigurers registers phase-2 post-configure steps.
func WithPostConfigurers[T any](posts ...PostConfigurer[T]) FactoryOption[T] {
	return func(f *Factory[T]) { f.posts = append(f.posts, posts...) }
}

// WithMutableConfigurers registers the host's in-place configure steps,
// run in phase 3 after every immutable configure step.
func WithMutableConfigurers[T any](mutators ...MutableConfigurer[T]) FactoryOption[T] {
	return func(f *Factory[T]) { f.mutators = append(f.mutators, mutators...) }
}

// WithMutablePostConfigurers registers the host's in-place post-configure
// steps, run in phase 4 after everything else.
func WithMutablePostConfigurers[T any](posts ...MutablePostConfigurer[T]) FactoryOption[T] {
	return func(f *Factory[T]) { f.postMut = append(f.postMut, posts...) }
}

// WithValidators registers phase-5 validators.
func WithValidators[T any](validators ...Validator[T]) FactoryOption[T] {
	return func(f *Factory[T]) { f.validators = append(f.validators, validators...) }
}

func NewFactory[T any](opts ...FactoryOption[T]) *Factory[T] {
	f := &Factory[T]{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Resolve produces the configured instance for the requested name. Phases
// run in a fixed order regardless of registration interleaving: configure,
// post-configure, mutable configure, mutable post-configure, validate.
// Errors from steps abort the remaining phases unchanged.
func (f *Factory[T]) Resolve(name string) (T, error) {
	var zero T

	current, err := createInstance(name, f.creators)
	if err != nil {
		return zero, err
	}

	// Phase 1: left fold over configure steps. Steps without the
	// name-aware refinement apply to the default-named instance only.
	for _, c := range f.configurers {
		if named, ok := c.(NamedConfigurer[T]); ok {
			current, err = named.ConfigureNamed(name, current)
		} else if name == DefaultName {
			current, err = c.Configure(current)
		}
		if err != nil {
			return zero, err
		}
	}

	// Phase 2: post-configure steps are always name-aware; scoping is
	// internal to each descriptor.
	for _, p := range f.posts {
		current, err = p.PostConfigure(name, current)
		if err != nil {
			return zero, err
		}
	}

	// Phase 3: the host's in-place configure steps, default-only rule as
	// in phase 1.
	for _, m := range f.mutators {
		if named, ok := m.(NamedMutableConfigurer[T]); ok {
			err = named.ApplyNamed(name, &current)
		} else if name == DefaultName {
			err = m.Apply(&current)
		}
		if err != nil {
			return zero, err
		}
	}

	// Phase 4: the host's in-place post-configure steps.
	for _, p := range f.postMut {
		if err = p.PostApply(name, &current); err != nil {
			return zero, err
		}
	}

	if len(f.validators) == 0 {
		return current, nil
	}

	// Phase 5: run every validator, aggregate every failure.
	var failures []string
	for _, v := range f.validators {
		result := v.Validate(name, current)
		if result.Failed() {
			failures = append(failures, result.failures...)
		}
	}
	if len(failures) > 0 {
		return zero, &ValidationError{
			Type:     reflect.TypeOf((*T)(nil)).Elem(),
			Name:     name,
			Failures: failures,
		}
	}

	return current, nil
}
