package godiopts

type Option func(c *containerConfig)

// WithRegistrations adds option descriptors to the container.
func WithRegistrations(regs ...Registration) Option {
	return func(c *containerConfig) {
		c.registrations = append(c.registrations, regs...)
	}
}

// WithModules adds named registration bundles to the container.
func WithModules(modules ...Module) Option {
	return func(c *containerConfig) {
		c.modules = append(c.modules, modules...)
	}
}

// WithLifecycle attaches a Lifecycle so Start runs ValidateOnStart checks
// and application hooks.
func WithLifecycle() Option {
	return func(c *containerConfig) {
		c.lifecycle = true
	}
}
