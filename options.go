package godiopts

import "sync"

// Options is the accessor layer over a Factory: it memoizes resolved
// instances per name so repeated reads do not re-run the pipeline. The
// factory itself stays pure; caching lives only here.
type Options[T any] struct {
	factory *Factory[T]

	mu    sync.RWMutex
	cache map[string]T
}

func NewOptions[T any](factory *Factory[T]) *Options[T] {
	return &Options[T]{
		factory: factory,
		cache:   map[string]T{},
	}
}

// Value returns the default-named instance.
func (o *Options[T]) Value() (T, error) {
	return o.Get(DefaultName)
}

// Get returns the instance for name, resolving it at most once. Resolution
// errors are not cached; a later call retries the pipeline.
func (o *Options[T]) Get(name string) (T, error) {
	o.mu.RLock()
	cached, ok := o.cache[name]
	o.mu.RUnlock()
	if ok {
		return cached, nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if cached, ok := o.cache[name]; ok {
		return cached, nil
	}

	value, err := o.factory.Resolve(name)
	if err != nil {
		var zero T
		return zero, err
	}
	o.cache[name] = value
	return value, nil
}
