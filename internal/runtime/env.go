package runtime

// Environment holds the parameter bindings of one function call. Calls do
// not nest lexically, so there is no parent chain.
type Environment struct {
	values map[string]float64
}

// NewEnvironment binds params to args positionally.
func NewEnvironment(params []string, args []float64) *Environment {
	env := &Environment{values: make(map[string]float64, len(params))}
	for i, name := range params {
		// later duplicates shadow earlier ones
		env.values[name] = args[i]
	}
	return env
}

// Get looks up a parameter by name.
func (e *Environment) Get(name string) (float64, bool) {
	if e == nil {
		return 0, false
	}
	v, ok := e.values[name]
	return v, ok
}
