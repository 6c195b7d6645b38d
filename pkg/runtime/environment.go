package runtime

// Environment maps variable names to values. There is no scope chain: a
// function call receives a full copy of the caller's environment, so writes
// inside the callee never propagate back.
type Environment struct {
	values map[string]Value
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

// Set inserts or overwrites a binding. Last write wins.
func (e *Environment) Set(name string, value Value) {
	e.values[name] = value
}

// Get retrieves a binding, reporting whether it exists.
func (e *Environment) Get(name string) (Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Lookup is the soft variant of Get: unknown names resolve to Undefined
// rather than an error. Scripts rely on this fault tolerance.
func (e *Environment) Lookup(name string) Value {
	if v, ok := e.values[name]; ok {
		return v
	}
	return UndefinedValue{}
}

// Has reports whether a binding exists.
func (e *Environment) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Clone copies every binding into a fresh environment. Values are immutable
// scalar structs, so a map copy is a deep copy.
func (e *Environment) Clone() *Environment {
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return &Environment{values: out}
}
