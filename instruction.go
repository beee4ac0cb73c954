package translator

// Instruction is a statement node.
type Instruction interface {
	Node
	instruction()
}

// Return returns Value from the enclosing function.
type Return struct {
	Value Expr
}

// Assign stores Value into Target.
type Assign struct {
	Target Identifier
	Value  Expr
}

// Declare declares Var without initializing it.
type Declare struct {
	Var Variable
}

// If runs Body when Condition holds.
// Its closing brace is indented like the if line itself.
type If struct {
	Condition Expr
	Body      []Instruction
}

// While runs Body as long as Condition holds.
// Its closing brace is indented like the while line itself.
type While struct {
	Condition Expr
	Body      []Instruction
}

// ReadLn declares Var and reads an integer from standard input into it.
type ReadLn struct {
	Var Variable
}

// WriteLn prints Var to standard output.
type WriteLn struct {
	Var Variable
}

// Custom is raw target text emitted verbatim.
// It is not portable across backends; prefer the structured instructions.
type Custom string

func (Return) node()  {}
func (Assign) node()  {}
func (Declare) node() {}
func (If) node()      {}
func (While) node()   {}
func (ReadLn) node()  {}
func (WriteLn) node() {}
func (Custom) node()  {}

func (Return) instruction()  {}
func (Assign) instruction()  {}
func (Declare) instruction() {}
func (If) instruction()      {}
func (While) instruction()   {}
func (ReadLn) instruction()  {}
func (WriteLn) instruction() {}
func (Custom) instruction()  {}

func (r Return) String() string  { return Render(r) }
func (a Assign) String() string  { return Render(a) }
func (d Declare) String() string { return Render(d) }
func (i If) String() string      { return Render(i) }
func (w While) String() string   { return Render(w) }
func (r ReadLn) String() string  { return Render(r) }
func (w WriteLn) String() string { return Render(w) }
func (c Custom) String() string  { return string(c) }
