package godiopts

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/dig"
)

type containerConfig struct {
	registrations []Registration
	modules       []Module
	lifecycle     bool
}

// Container is the registration facade: it keeps option descriptors in
// registration order per options type (dig groups do not preserve order)
// and rebuilds a dig graph exposing a *Factory[T] and an *Options[T]
// accessor for every registered type.
type Container struct {
	dig           *dig.Container
	registrations []Registration
	order         []reflect.Type
	buckets       map[reflect.Type]bucketSlot
	lifecycle     *Lifecycle
	started       bool
}

func New(opts ...Option) (*Container, error) {
	cfg := containerConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	regs := append([]Registration(nil), cfg.registrations...)
	for _, module := range cfg.modules {
		if module.Name == "" {
			return nil, errors.New("module name is required")
		}
		regs = append(regs, module.Registrations...)
	}

	c := &Container{
		buckets: map[reflect.Type]bucketSlot{},
	}
	if cfg.lifecycle {
		c.lifecycle = NewLifecycle()
	}

	if err := c.Register(regs...); err != nil {
		return nil, err
	}

	return c, nil
}

// Register installs descriptors and rebuilds the dig graph. A failed call
// leaves the container exactly as it was.
func (c *Container) Register(regs ...Registration) error {
	if c.started {
		return errors.New("cannot register after container has been started")
	}

	for _, reg := range regs {
		if err := reg.Error(); err != nil {
			return fmt.Errorf("registration for %s: %w", reg.typ, err)
		}
	}

	undos := make([]func(), 0, len(regs))
	rollback := func() {
		for i := len(undos) - 1; i >= 0; i-- {
			undos[i]()
		}
	}

	for _, reg := range regs {
		undo, err := reg.install(c)
		if err != nil {
			rollback()
			return err
		}
		undos = append(undos, undo)
	}

	built, err := c.build(false)
	if err != nil {
		rollback()
		return err
	}

	c.dig = built
	c.registrations = append(c.registrations, regs...)
	return nil
}

// Invoke resolves fn's parameters from the dig graph and freezes further
// registration.
func (c *Container) Invoke(fn any) error {
	c.started = true
	return c.dig.Invoke(fn)
}

// Validate dry-runs the dig graph: every registered options type must
// expose a resolvable factory and accessor. Creators and stages are not
// executed; use ValidateOnStart for eager pipeline checks.
func (c *Container) Validate() error {
	built, err := c.build(true)
	if err != nil {
		return err
	}
	for _, t := range c.order {
		if err := c.buckets[t].check(built); err != nil {
			return fmt.Errorf("options %s: %w", t, err)
		}
	}
	return nil
}

// Start runs every ValidateOnStart check in registration order, then the
// lifecycle start hooks. Registration is frozen afterwards.
func (c *Container) Start(ctx context.Context) error {
	c.started = true
	for _, t := range c.order {
		if err := c.buckets[t].startCheck(); err != nil {
			return err
		}
	}
	if c.lifecycle == nil {
		return nil
	}
	return c.lifecycle.Start(ctx)
}

// Stop runs the lifecycle stop hooks in reverse order.
func (c *Container) Stop(ctx context.Context) error {
	if c.lifecycle == nil {
		return nil
	}
	return c.lifecycle.Stop(ctx)
}

// Lifecycle returns the container lifecycle, or nil when WithLifecycle was
// not set.
func (c *Container) Lifecycle() *Lifecycle {
	return c.lifecycle
}

// Registrations returns the installed registrations in order.
func (c *Container) Registrations() []Registration {
	return append([]Registration(nil), c.registrations...)
}

func (c *Container) build(dry bool) (*dig.Container, error) {
	opts := []dig.Option{dig.RecoverFromPanics()}
	if dry {
		opts = append(opts, dig.DryRun(true))
	}
	built := dig.New(opts...)
	for _, t := range c.order {
		if err := c.buckets[t].provide(built); err != nil {
			return nil, fmt.Errorf("provide options %s: %w", t, err)
		}
	}
	return built, nil
}

// bucketSlot is the type-erased view of a bucket[T] the container iterates
// over when rebuilding the graph.
type bucketSlot interface {
	provide(dc *dig.Container) error
	check(dc *dig.Container) error
	startCheck() error
}

// bucket accumulates descriptors for one options type in registration
// order and assembles the Factory the dig graph hands out.
type bucket[T any] struct {
	creators    []Creator[T]
	configurers []Configurer[T]
	posts       []PostConfigurer[T]
	mutators    []MutableConfigurer[T]
	postMut     []MutablePostConfigurer[T]
	validators  []Validator[T]
	startNames  []string
}

func containerBucket[T any](c *Container) *bucket[T] {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if slot, ok := c.buckets[key]; ok {
		return slot.(*bucket[T])
	}
	b := &bucket[T]{}
	c.buckets[key] = b
	c.order = append(c.order, key)
	return b
}

func (b *bucket[T]) factory() *Factory[T] {
	return NewFactory(
		WithCreators(b.creators...),
		WithConfigurers(b.configurers...),
		WithPostConfigurers(b.posts...),
		WithMutableConfigurers(b.mutators...),
		WithMutablePostConfigurers(b.postMut...),
		WithValidators(b.validators...),
	)
}

func (b *bucket[T]) provide(dc *dig.Container) error {
	if err := dc.Provide(func() *Factory[T] { return b.factory() }); err != nil {
		return err
	}
	return dc.Provide(func(f *Factory[T]) *Options[T] { return NewOptions(f) })
}

func (b *bucket[T]) check(dc *dig.Container) error {
	return dc.Invoke(func(*Factory[T], *Options[T]) {})
}

func (b *bucket[T]) startCheck() error {
	if len(b.startNames) == 0 {
		return nil
	}
	f := b.factory()
	for _, name := range b.startNames {
		if _, err := f.Resolve(name); err != nil {
			return err
		}
	}
	return nil
}

// Resolve builds the options instance for name straight from the
// container, outside the dig graph. Registration stays open.
func Resolve[T any](c *Container, name string) (T, error) {
	key := reflect.TypeOf((*T)(nil)).Elem()
	slot, ok := c.buckets[key]
	if !ok {
		var zero T
		return zero, fmt.Errorf("godiopts: no registrations for options %s", key)
	}
	return slot.(*bucket[T]).factory().Resolve(name)
}
