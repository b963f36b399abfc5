package godiopts

import (
	"fmt"
	"reflect"
	"strings"
)

// ConstructionError reports that no creator matched the requested name and
// the options type offers no usable construction path.
type ConstructionError struct {
	Type reflect.Type
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("godiopts: cannot construct options of type %s: no creator matched and no construction path exists", e.Type)
}

// ValidationError reports every failure produced by the registered validators
// for one resolved options instance. Failures keeps validator registration
// order and is never empty.
type ValidationError struct {
	Type     reflect.Type
	Name     string
	Failures []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("godiopts: validation of %s %s failed: %s",
		e.Type, nameLabel(e.Name), strings.Join(e.Failures, "; "))
}

func nameLabel(name string) string {
	if name == DefaultName {
		return "(default)"
	}
	return fmt.Sprintf("%q", name)
}
