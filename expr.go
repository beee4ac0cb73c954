package translator

// Expr is an expression node.
type Expr interface {
	Node
	expr()
}

// Literal is an integer literal.
type Literal int64

// Remainder is A % B.
type Remainder struct {
	A, B Expr
}

// Divide is A / B.
type Divide struct {
	A, B Expr
}

// Plus is A + B.
type Plus struct {
	A, B Expr
}

// CompareOp selects the operator of a Comparison.
type CompareOp uint8

const (
	// Equals is ==.
	Equals CompareOp = iota
	// NotEquals is !=.
	NotEquals
	// GreaterThan is >.
	GreaterThan
	// LessThan is <.
	LessThan
)

var compareSymbols = [...]string{
	Equals:      "==",
	NotEquals:   "!=",
	GreaterThan: ">",
	LessThan:    "<",
}

// Symbol returns the target operator, or "" for an unknown operator.
func (op CompareOp) Symbol() string {
	if int(op) >= len(compareSymbols) {
		return ""
	}

	return compareSymbols[op]
}

// Comparison compares A and B with Op.
type Comparison struct {
	Op   CompareOp
	A, B Expr
}

// Call invokes Target with Args in order.
type Call struct {
	Target Identifier // Function being called
	Args   []Expr     // Ordered argument list
}

// isBinary reports whether e renders as an infix expression.
func isBinary(e Expr) bool {
	switch e.(type) {
	case Remainder, Divide, Plus, Comparison:
		return true
	default:
		return false
	}
}

func (Literal) node()    {}
func (Identifier) node() {}
func (Remainder) node()  {}
func (Divide) node()     {}
func (Plus) node()       {}
func (Comparison) node() {}
func (Call) node()       {}

func (Literal) expr()    {}
func (Identifier) expr() {}
func (Remainder) expr()  {}
func (Divide) expr()     {}
func (Plus) expr()       {}
func (Comparison) expr() {}
func (Call) expr()       {}

func (l Literal) String() string     { return Render(l) }
func (id Identifier) String() string { return id.Name() }
func (r Remainder) String() string   { return Render(r) }
func (d Divide) String() string      { return Render(d) }
func (p Plus) String() string        { return Render(p) }
func (c Comparison) String() string  { return Render(c) }
func (c Call) String() string        { return Render(c) }
