package translator

// Node is any renderable IR value.
type Node interface {
	node()
}

// Variable is a typed slot used by parameters and declarations.
type Variable struct {
	ID   Identifier // Name of the variable
	Type Type       // Primitive type of the variable
}

// Function is a named routine. It owns its parameters and body.
type Function struct {
	ID      Identifier    // Name of the function
	Params  []Variable    // Ordered parameter list
	Returns Type          // Return type
	Body    []Instruction // Ordered instruction body
}

// Graph is a whole program: its functions and an optional entry point.
type Graph struct {
	Functions []Function  // Functions in emission order
	Main      *Identifier // Entry function invoked by the generated main, if set
}

// Var returns a Variable with the given identifier and type.
func Var(id Identifier, t Type) Variable {
	return Variable{ID: id, Type: t}
}

// WithMain returns a copy of g with the entry point set to id.
func (g Graph) WithMain(id Identifier) Graph {
	g.Main = &id
	return g
}

// Function returns the function with the given identifier.
func (g Graph) Function(id Identifier) (Function, bool) {
	for _, fn := range g.Functions {
		if fn.ID == id {
			return fn, true
		}
	}

	return Function{}, false
}

// UsesStdio reports whether any function body reads or writes standard streams.
func (g Graph) UsesStdio() bool {
	for _, fn := range g.Functions {
		if usesStdio(fn.Body) {
			return true
		}
	}

	return false
}

// usesStdio walks a body looking for ReadLn or WriteLn.
func usesStdio(body []Instruction) bool {
	for _, in := range body {
		switch t := in.(type) {
		case ReadLn, WriteLn:
			return true
		case If:
			if usesStdio(t.Body) {
				return true
			}
		case While:
			if usesStdio(t.Body) {
				return true
			}
		}
	}

	return false
}

func (Variable) node() {}
func (Function) node() {}
func (Graph) node()    {}
func (Type) node()     {}

func (v Variable) String() string { return Render(v) }
func (f Function) String() string { return Render(f) }
func (g Graph) String() string    { return Render(g) }
func (t Type) String() string     { return t.Keyword() }
