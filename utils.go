package godiopts

import (
	"reflect"
	"runtime"
)

// funcLocation resolves a function value to its symbol name and source
// position, for diagnostics only.
func funcLocation(fn any) (name, file string, line int) {
	val := reflect.ValueOf(fn)
	if val.Kind() != reflect.Func {
		return "", "", 0
	}
	pc := val.Pointer()
	if pc == 0 {
		return "", "", 0
	}
	f := runtime.FuncForPC(pc)
	if f == nil {
		return "", "", 0
	}
	file, line = f.FileLine(pc)
	return f.Name(), file, line
}
