package godiopts

import (
	"errors"
	"reflect"
)

type registrationKind int

const (
	registrationCreator registrationKind = iota
	registrationConfigure
	registrationPostConfigure
	registrationMutate
	registrationPostMutate
	registrationValidate
	registrationStartCheck
)

// Registration records one pipeline descriptor for one options type, ready
// to be installed into a Container. Registrations are produced by the
// generic helpers below and carry their construction error, if any, until
// Register surfaces it.
type Registration struct {
	typ     reflect.Type
	kind    registrationKind
	name    *string
	fn      any
	install func(c *Container) (undo func(), err error)
	err     error
}

// Type returns the options type the registration targets.
func (r Registration) Type() reflect.Type { return r.typ }

func (r Registration) Error() error { return r.err }

type registrationConfig struct {
	name string
}

type RegistrationOption func(*registrationConfig)

// WithName scopes a creator to a specific instance name instead of
// DefaultName.
func WithName(name string) RegistrationOption {
	return func(cfg *registrationConfig) { cfg.name = name }
}

func newRegistration[T any](kind registrationKind, name *string, fn any, add func(b *bucket[T]) func()) Registration {
	return Registration{
		typ:  reflect.TypeOf((*T)(nil)).Elem(),
		kind: kind,
		name: name,
		fn:   fn,
		install: func(c *Container) (func(), error) {
			return add(containerBucket[T](c)), nil
		},
	}
}

func errRegistration[T any](kind registrationKind, err error) Registration {
	return Registration{typ: reflect.TypeOf((*T)(nil)).Elem(), kind: kind, err: err}
}

// Provide registers a creator for the default-named instance; scope it with
// WithName. The first creator registered for a (type, name) pair wins.
func Provide[T any](create func() (T, error), opts ...RegistrationOption) Registration {
	if create == nil {
		return errRegistration[T](registrationCreator, errors.New("creator function is required"))
	}
	cfg := registrationConfig{name: DefaultName}
	for _, opt := range opts {
		opt(&cfg)
	}
	name := cfg.name
	return newRegistration(registrationCreator, &name, create, func(b *bucket[T]) func() {
		b.creators = append(b.creators, NewNamedCreator(name, create))
		return func() { b.creators = b.creators[:len(b.creators)-1] }
	})
}

// ProvideValue registers a creator returning a fixed initial instance.
func ProvideValue[T any](value T, opts ...RegistrationOption) Registration {
	return Provide(func() (T, error) { return value, nil }, opts...)
}

// Configure registers a transformation applied only to the default-named
// instance.
func Configure[T any](fn func(value T) T) Registration {
	if fn == nil {
		return errRegistration[T](registrationConfigure, errors.New("configure function is required"))
	}
	return ConfigureWith[T](ConfigurerFunc[T](func(value T) (T, error) { return fn(value), nil }))
}

// ConfigureNamed registers a transformation applied only when the requested
// name matches exactly.
func ConfigureNamed[T any](name string, fn func(value T) T) Registration {
	if fn == nil {
		return errRegistration[T](registrationConfigure, errors.New("configure function is required"))
	}
	return ConfigureWith[T](NewConfigureStage(name, func(value T) (T, error) { return fn(value), nil }))
}

// ConfigureAll registers a transformation applied to every requested name.
func ConfigureAll[T any](fn func(name string, value T) T) Registration {
	if fn == nil {
		return errRegistration[T](registrationConfigure, errors.New("configure function is required"))
	}
	return ConfigureWith[T](NewConfigureStageForAll(func(name string, value T) (T, error) {
		return fn(name, value), nil
	}))
}

// ConfigureWith registers a custom Configurer implementation, including
// error-returning and name-aware ones.
func ConfigureWith[T any](c Configurer[T]) Registration {
	if c == nil {
		return errRegistration[T](registrationConfigure, errors.New("configurer is required"))
	}
	return newRegistration[T](registrationConfigure, nil, c, func(b *bucket[T]) func() {
		b.configurers = append(b.configurers, c)
		return func() { b.configurers = b.configurers[:len(b.configurers)-1] }
	})
}

// PostConfigure registers a post-configure transformation for the
// default-named instance.
func PostConfigure[T any](fn func(value T) T) Registration {
	return PostConfigureNamed(DefaultName, fn)
}

// PostConfigureNamed registers a post-configure transformation for one
// exact name.
func PostConfigureNamed[T any](name string, fn func(value T) T) Registration {
	if fn == nil {
		return errRegistration[T](registrationPostConfigure, errors.New("post-configure function is required"))
	}
	return PostConfigureWith[T](NewPostConfigureStage(name, func(value T) (T, error) { return fn(value), nil }))
}

// PostConfigureAll registers a post-configure transformation for every name.
func PostConfigureAll[T any](fn func(name string, value T) T) Registration {
	if fn == nil {
		return errRegistration[T](registrationPostConfigure, errors.New("post-configure function is required"))
	}
	return PostConfigureWith[T](NewPostConfigureStageForAll(func(name string, value T) (T, error) {
		return fn(name, value), nil
	}))
}

// PostConfigureWith registers a custom PostConfigurer implementation.
func PostConfigureWith[T any](p PostConfigurer[T]) Registration {
	if p == nil {
		return errRegistration[T](registrationPostConfigure, errors.New("post-configurer is required"))
	}
	return newRegistration[T](registrationPostConfigure, nil, p, func(b *bucket[T]) func() {
		b.posts = append(b.posts, p)
		return func() { b.posts = b.posts[:len(b.posts)-1] }
	})
}

// Mutate registers the host's in-place configure step for the default-named
// instance.
func Mutate[T any](fn func(target *T)) Registration {
	if fn == nil {
		return errRegistration[T](registrationMutate, errors.New("mutate function is required"))
	}
	return MutateWith[T](MutatorFunc[T](func(target *T) error { fn(target); return nil }))
}

// MutateNamed registers an in-place configure step for one exact name.
func MutateNamed[T any](name string, fn func(target *T)) Registration {
	if fn == nil {
		return errRegistration[T](registrationMutate, errors.New("mutate function is required"))
	}
	return MutateWith[T](NewMutateStage(name, func(target *T) error { fn(target); return nil }))
}

// MutateAll registers an in-place configure step for every name.
func MutateAll[T any](fn func(name string, target *T)) Registration {
	if fn == nil {
		return errRegistration[T](registrationMutate, errors.New("mutate function is required"))
	}
	return MutateWith[T](NewMutateStageForAll(func(name string, target *T) error {
		fn(name, target)
		return nil
	}))
}

// MutateWith registers a custom MutableConfigurer implementation.
func MutateWith[T any](m MutableConfigurer[T]) Registration {
	if m == nil {
		return errRegistration[T](registrationMutate, errors.New("mutable configurer is required"))
	}
	return newRegistration[T](registrationMutate, nil, m, func(b *bucket[T]) func() {
		b.mutators = append(b.mutators, m)
		return func() { b.mutators = b.mutators[:len(b.mutators)-1] }
	})
}

// PostMutate registers the host's in-place post-configure step for the
// default-named instance.
func PostMutate[T any](fn func(target *T)) Registration {
	return PostMutateNamed(DefaultName, fn)
}

// PostMutateNamed registers an in-place post-configure step for one name.
func PostMutateNamed[T any](name string, fn func(target *T)) Registration {
	if fn == nil {
		return errRegistration[T](registrationPostMutate, errors.New("post-mutate function is required"))
	}
	return PostMutateWith[T](NewPostMutateStage(name, func(target *T) error { fn(target); return nil }))
}

// PostMutateAll registers an in-place post-configure step for every name.
func PostMutateAll[T any](fn func(name string, target *T)) Registration {
	if fn == nil {
		return errRegistration[T](registrationPostMutate, errors.New("post-mutate function is required"))
	}
	return PostMutateWith[T](NewPostMutateStageForAll(func(name string, target *T) error {
		fn(name, target)
		return nil
	}))
}

// PostMutateWith registers a custom MutablePostConfigurer implementation.
func PostMutateWith[T any](p MutablePostConfigurer[T]) Registration {
	if p == nil {
		return errRegistration[T](registrationPostMutate, errors.New("mutable post-configurer is required"))
	}
	return newRegistration[T](registrationPostMutate, nil, p, func(b *bucket[T]) func() {
		b.postMut = append(b.postMut, p)
		return func() { b.postMut = b.postMut[:len(b.postMut)-1] }
	})
}

// Validate registers a validator for the default-named instance. fn returns
// failure messages, or nothing when the instance is valid.
func Validate[T any](fn func(value T) []string) Registration {
	return ValidateNamed(DefaultName, fn)
}

// ValidateNamed registers a validator for one exact name.
func ValidateNamed[T any](name string, fn func(value T) []string) Registration {
	if fn == nil {
		return errRegistration[T](registrationValidate, errors.New("validate function is required"))
	}
	return ValidateWith[T](NewValidateStage(name, fn))
}

// ValidateAll registers a validator covering every requested name.
func ValidateAll[T any](fn func(value T) []string) Registration {
	if fn == nil {
		return errRegistration[T](registrationValidate, errors.New("validate function is required"))
	}
	return ValidateWith[T](NewValidateStageForAll(fn))
}

// ValidateWith registers a custom Validator implementation.
func ValidateWith[T any](v Validator[T]) Registration {
	if v == nil {
		return errRegistration[T](registrationValidate, errors.New("validator is required"))
	}
	return newRegistration[T](registrationValidate, nil, v, func(b *bucket[T]) func() {
		b.validators = append(b.validators, v)
		return func() { b.validators = b.validators[:len(b.validators)-1] }
	})
}

// ValidateOnStart makes Container.Start resolve the given names eagerly so
// misconfiguration surfaces at startup instead of first use. Without
// arguments the default name is checked.
func ValidateOnStart[T any](names ...string) Registration {
	if len(names) == 0 {
		names = []string{DefaultName}
	}
	checked := append([]string(nil), names...)
	return newRegistration[T](registrationStartCheck, nil, checked, func(b *bucket[T]) func() {
		b.startNames = append(b.startNames, checked...)
		return func() { b.startNames = b.startNames[:len(b.startNames)-len(checked)] }
	})
}
