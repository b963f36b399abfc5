package godiopts

import "reflect"

// DefaultName identifies the unnamed options instance. It is an ordinary
// string constant compared with ==, never a nil special case.
const DefaultName = ""

// Defaulted is the opt-in construction path for options types without a
// registered creator. A type implementing it supplies its own fully
// defaulted instance; types that do not implement it fall back to the
// reflected zero value.
type Defaulted[T any] interface {
	Defaults() T
}

// Creator produces the initial instance of an options type. A creator with
// no name matches no requested name at all; resolution only ever uses exact
// name equality.
type Creator[T any] struct {
	name   *string
	create func() (T, error)
}

// NewCreator returns an unnamed creator. It is never selected by Resolve
// and exists for hosts that look descriptors up by other means.
func NewCreator[T any](create func() (T, error)) Creator[T] {
	return Creator[T]{create: create}
}

// NewNamedCreator returns a creator selected when the requested name equals
// name exactly. Use DefaultName for the unnamed instance.
func NewNamedCreator[T any](name string, create func() (T, error)) Creator[T] {
	return Creator[T]{name: &name, create: create}
}

// Name reports the creator's name and whether one is set.
func (c Creator[T]) Name() (string, bool) {
	if c.name == nil {
		return "", false
	}
	return *c.name, true
}

// createInstance resolves the initial instance for a requested name: the
// first creator registered under exactly that name wins; on a miss the
// instance is synthesized from the type. The synthesis is recomputed on
// every miss, named creators are the expected hot path.
func createInstance[T any](name string, creators []Creator[T]) (T, error) {
	for _, c := range creators {
		if c.name != nil && *c.name == name {
			return c.create()
		}
	}
	return synthesize[T]()
}

// synthesize materializes an instance without a creator: the Defaulted
// construction path when the type opts in, otherwise the zero value
// (pointer types get a fresh allocation). Interface, func and chan types
// have no materializable default and fail with ConstructionError.
func synthesize[T any]() (T, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	switch t.Kind() {
	case reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		var zero T
		return zero, &ConstructionError{Type: t}
	case reflect.Pointer:
		fresh, ok := reflect.New(t.Elem()).Interface().(T)
		if !ok {
			var zero T
			return zero, &ConstructionError{Type: t}
		}
		if d, ok := any(fresh).(Defaulted[T]); ok {
			return d.Defaults(), nil
		}
		return fresh, nil
	default:
		var zero T
		if d, ok := any(zero).(Defaulted[T]); ok {
			return d.Defaults(), nil
		}
		return zero, nil
	}
}
