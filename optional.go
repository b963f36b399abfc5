package godiopts

import "go.uber.org/dig"

// OptionalOptions resolves the accessor for an options type that may not
// have been registered, for consumers with a built-in fallback.
type OptionalOptions[T any] struct {
	dig.In
	Accessor *Options[T] `optional:"true"`
}

// Get returns the instance for name when the accessor is registered. The
// second return reports availability; resolution errors surface as usual.
func (o OptionalOptions[T]) Get(name string) (T, bool, error) {
	if o.Accessor == nil {
		var zero T
		return zero, false, nil
	}
	value, err := o.Accessor.Get(name)
	return value, true, err
}
