package helper

import (
	"runtime"
	"strings"
)

// GetFuncName returns the short name of the calling function,
// e.g. "(*UserService).Register".
func GetFuncName() string {
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return "unknown"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}
	return ShortFuncName(fn.Name())
}

// ShortFuncName strips the import path and package from a fully qualified
// function name.
func ShortFuncName(name string) string {
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		name = name[idx+1:]
	}
	if idx := strings.Index(name, "."); idx != -1 {
		name = name[idx+1:]
	}
	return name
}
