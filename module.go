package godiopts

// Module bundles the registrations one feature contributes, so composition
// roots can assemble option pipelines per subsystem.
type Module struct {
	Name          string
	Registrations []Registration
}

func NewModule(name string, registrations ...Registration) Module {
	return Module{Name: name, Registrations: registrations}
}
