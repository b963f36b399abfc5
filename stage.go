package godiopts

// Configurer transforms an options instance during the first pipeline phase.
// Implementations that are not name-aware run only for the default-named
// instance; see NamedConfigurer for the refinement.
type Configurer[T any] interface {
	Configure(value T) (T, error)
}

// NamedConfigurer is the name-aware refinement of Configurer. The factory
// detects it with a single type assertion and passes the requested name
// through; scoping to a specific name is the implementation's concern.
type NamedConfigurer[T any] interface {
	Configurer[T]
	ConfigureNamed(name string, value T) (T, error)
}

// PostConfigurer transforms an options instance during the second phase,
// after every configure step. Post-configure steps are always name-aware.
type PostConfigurer[T any] interface {
	PostConfigure(name string, value T) (T, error)
}

// MutableConfigurer is the host's in-place configure contract, run in the
// third phase under the same default-only rule as Configurer.
type MutableConfigurer[T any] interface {
	Apply(target *T) error
}

// NamedMutableConfigurer is the name-aware refinement of MutableConfigurer.
type NamedMutableConfigurer[T any] interface {
	MutableConfigurer[T]
	ApplyNamed(name string, target *T) error
}

// MutablePostConfigurer is the host's in-place post-configure contract,
// always last among the transformation phases.
type MutablePostConfigurer[T any] interface {
	PostApply(name string, target *T) error
}

// ConfigureStage is a name-scoped configure descriptor. A nil name applies
// to every requested name; a set name applies only on exact match.
type ConfigureStage[T any] struct {
	name *string
	fn   func(name string, value T) (T, error)
}

// NewConfigureStage scopes fn to one exact name.
func NewConfigureStage[T any](name string, fn func(value T) (T, error)) ConfigureStage[T] {
	return ConfigureStage[T]{
		name: &name,
		fn:   func(_ string, value T) (T, error) { return fn(value) },
	}
}

// NewConfigureStageForAll applies fn to every requested name.
func NewConfigureStageForAll[T any](fn func(name string, value T) (T, error)) ConfigureStage[T] {
	return ConfigureStage[T]{fn: fn}
}

func (s ConfigureStage[T]) Configure(value T) (T, error) {
	return s.ConfigureNamed(DefaultName, value)
}

func (s ConfigureStage[T]) ConfigureNamed(name string, value T) (T, error) {
	if s.name != nil && *s.name != name {
		return value, nil
	}
	return s.fn(name, value)
}

// PostConfigureStage is the name-scoped post-configure descriptor, with the
// same nil-name "apply to all" rule as ConfigureStage.
type PostConfigureStage[T any] struct {
	name *string
	fn   func(name string, value T) (T, error)
}

// NewPostConfigureStage scopes fn to one exact name.
func NewPostConfigureStage[T any](name string, fn func(value T) (T, error)) PostConfigureStage[T] {
	return PostConfigureStage[T]{
		name: &name,
		fn:   func(_ string, value T) (T, error) { return fn(value) },
	}
}

// NewPostConfigureStageForAll applies fn to every requested name.
func NewPostConfigureStageForAll[T any](fn func(name string, value T) (T, error)) PostConfigureStage[T] {
	return PostConfigureStage[T]{fn: fn}
}

func (s PostConfigureStage[T]) PostConfigure(name string, value T) (T, error) {
	if s.name != nil && *s.name != name {
		return value, nil
	}
	return s.fn(name, value)
}

// ConfigurerFunc adapts a function into a Configurer without the
// name-aware refinement, so it runs only for the default-named instance.
type ConfigurerFunc[T any] func(value T) (T, error)

func (f ConfigurerFunc[T]) Configure(value T) (T, error) { return f(value) }

// MutateStage is the name-scoped in-place configure descriptor.
type MutateStage[T any] struct {
	name *string
	fn   func(name string, target *T) error
}

// NewMutateStage scopes fn to one exact name.
func NewMutateStage[T any](name string, fn func(target *T) error) MutateStage[T] {
	return MutateStage[T]{
		name: &name,
		fn:   func(_ string, target *T) error { return fn(target) },
	}
}

// NewMutateStageForAll applies fn to every requested name.
func NewMutateStageForAll[T any](fn func(name string, target *T) error) MutateStage[T] {
	return MutateStage[T]{fn: fn}
}

func (s MutateStage[T]) Apply(target *T) error {
	return s.ApplyNamed(DefaultName, target)
}

func (s MutateStage[T]) ApplyNamed(name string, target *T) error {
	if s.name != nil && *s.name != name {
		return nil
	}
	return s.fn(name, target)
}

// PostMutateStage is the name-scoped in-place post-configure descriptor.
type PostMutateStage[T any] struct {
	name *string
	fn   func(name string, target *T) error
}

// NewPostMutateStage scopes fn to one exact name.
func NewPostMutateStage[T any](name string, fn func(target *T) error) PostMutateStage[T] {
	return PostMutateStage[T]{
		name: &name,
		fn:   func(_ string, target *T) error { return fn(target) },
	}
}

// NewPostMutateStageForAll applies fn to every requested name.
func NewPostMutateStageForAll[T any](fn func(name string, target *T) error) PostMutateStage[T] {
	return PostMutateStage[T]{fn: fn}
}

func (s PostMutateStage[T]) PostApply(name string, target *T) error {
	if s.name != nil && *s.name != name {
		return nil
	}
	return s.fn(name, target)
}

// MutatorFunc adapts a function into a MutableConfigurer without the
// name-aware refinement.
type MutatorFunc[T any] func(target *T) error

func (f MutatorFunc[T]) Apply(target *T) error { return f(target) }
