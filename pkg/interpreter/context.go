package interpreter

import "anyts/interpreter-go/pkg/runtime"

// Builtin is a natively implemented callable exposed under a (possibly
// dotted) name such as console.log or Math.sqrt.
type Builtin func(args []runtime.Value) runtime.Value

// FunctionDef is a user-defined function: parameter names, parallel type
// tags (number, string, boolean or any), and the body kept verbatim as
// un-parsed source lines, re-interpreted on every call. Immutable once
// registered.
type FunctionDef struct {
	Params     []string
	ParamTypes []string
	BodyLines  []string
}

// Context is the full interpreter state: one variable environment, the
// builtin registry, and the user-function registry. One Context exists per
// program run; each function invocation works on a full copy.
type Context struct {
	Env       *runtime.Environment
	Builtins  map[string]Builtin
	Functions map[string]*FunctionDef
}

// Clone copies the context for a function call. The environment is deep
// copied, so writes inside the callee never reach the caller; registries are
// copied into fresh maps sharing the immutable definitions.
func (c *Context) Clone() *Context {
	builtins := make(map[string]Builtin, len(c.Builtins))
	for name, fn := range c.Builtins {
		builtins[name] = fn
	}
	functions := make(map[string]*FunctionDef, len(c.Functions))
	for name, def := range c.Functions {
		functions[name] = def
	}
	return &Context{
		Env:       c.Env.Clone(),
		Builtins:  builtins,
		Functions: functions,
	}
}
