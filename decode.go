package translator

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Parse decodes a program description from bytes.
func Parse(data []byte, opt *DecodeOptions) (*Graph, error) {
	return Decode(bytes.NewReader(data), opt)
}

// Decode decodes a YAML or JSON program description from reader.
//
// Every distinct name in the description gets one identifier from the
// allocator. Function names are registered first, in declaration order, and
// other names follow in order of first appearance.
func Decode(r io.Reader, opt *DecodeOptions) (*Graph, error) {
	dopt := opt.normalize()

	var desc programDesc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&desc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty description", ErrDecode)
		}
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	// Allocate from a scratch copy so a failed decode consumes no identifiers.
	ids := *dopt.Allocator
	d := newDecoder(dopt, &ids)
	g, err := d.decodeProgram(desc)
	if err != nil {
		return nil, err
	}
	*dopt.Allocator = ids

	return g, nil
}

// DecodeFile decodes a program description from a file.
func DecodeFile(path string, opt *DecodeOptions) (*Graph, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b, opt)
}

// programDesc is the top-level description document.
type programDesc struct {
	Main      string         `yaml:"main"`      // Entry function name
	Functions []functionDesc `yaml:"functions"` // Functions in emission order
}

// functionDesc describes a function.
type functionDesc struct {
	Name    string    `yaml:"name"`    // Function name
	Returns string    `yaml:"returns"` // Return type name
	Params  []varDesc `yaml:"params"`  // Parameters
	Body    yaml.Node `yaml:"body"`    // Instruction sequence
}

// varDesc describes a typed variable.
type varDesc struct {
	Name string `yaml:"name"` // Variable name
	Type string `yaml:"type"` // Type name, int32 if empty
}

// decoder resolves names and builds IR nodes from yaml nodes.
type decoder struct {
	alloc *Allocator            // Identifier source
	names map[string]Identifier // Resolved names
	opt   DecodeOptions         // Options for the decoder
}

// newDecoder creates a decoder.
func newDecoder(opt DecodeOptions, alloc *Allocator) *decoder {
	return &decoder{alloc: alloc, names: make(map[string]Identifier), opt: opt}
}

// ident returns the identifier for name, allocating one on first use.
func (d *decoder) ident(name string) Identifier {
	if id, ok := d.names[name]; ok {
		return id
	}

	id := d.alloc.Allocate()
	d.names[name] = id
	return id
}

// decodeProgram builds the graph.
func (d *decoder) decodeProgram(desc programDesc) (*Graph, error) {
	// Register function names so calls resolve regardless of order.
	funcs := make(map[string]Identifier, len(desc.Functions))
	for i, fd := range desc.Functions {
		if fd.Name == "" {
			return nil, fmt.Errorf("%w: function %d has no name", ErrDecode, i)
		}
		if _, ok := funcs[fd.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate function %q", ErrDecode, fd.Name)
		}
		funcs[fd.Name] = d.ident(fd.Name)
	}

	g := &Graph{Functions: make([]Function, 0, len(desc.Functions))}
	for _, fd := range desc.Functions {
		fn, err := d.decodeFunction(fd)
		if err != nil {
			return nil, err
		}
		g.Functions = append(g.Functions, fn)
	}

	if desc.Main != "" {
		id, ok := funcs[desc.Main]
		if !ok {
			return nil, fmt.Errorf("%w: main %q is not a function", ErrDecode, desc.Main)
		}
		g.Main = &id
	}

	return g, nil
}

// decodeFunction builds a function.
func (d *decoder) decodeFunction(fd functionDesc) (Function, error) {
	ret, err := parseTypeOrDefault(fd.Returns)
	if err != nil {
		return Function{}, fmt.Errorf("%w: function %q: %w", ErrDecode, fd.Name, err)
	}

	fn := Function{ID: d.names[fd.Name], Returns: ret}
	for _, p := range fd.Params {
		v, err := d.decodeVar(p)
		if err != nil {
			return Function{}, fmt.Errorf("%w: function %q: %w", ErrDecode, fd.Name, err)
		}
		fn.Params = append(fn.Params, v)
	}

	body, err := d.decodeBody(&fd.Body)
	if err != nil {
		return Function{}, fmt.Errorf("function %q: %w", fd.Name, err)
	}
	fn.Body = body

	return fn, nil
}

// decodeVar builds a variable.
func (d *decoder) decodeVar(vd varDesc) (Variable, error) {
	if vd.Name == "" {
		return Variable{}, errors.New("variable has no name")
	}
	t, err := parseTypeOrDefault(vd.Type)
	if err != nil {
		return Variable{}, err
	}

	return Variable{ID: d.ident(vd.Name), Type: t}, nil
}

// decodeBody builds an instruction sequence. A missing body is empty.
func (d *decoder) decodeBody(n *yaml.Node) ([]Instruction, error) {
	n = resolveAlias(n)
	if n == nil || n.Kind == 0 {
		return nil, nil
	}
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null" {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, d.errorf(n, "body must be a sequence")
	}

	out := make([]Instruction, 0, len(n.Content))
	for _, c := range n.Content {
		in, err := d.decodeInstruction(c)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}

	return out, nil
}

// decodeInstruction builds one instruction from a single-key mapping.
func (d *decoder) decodeInstruction(n *yaml.Node) (Instruction, error) {
	key, val, err := d.singleKey(resolveAlias(n), "instruction")
	if err != nil {
		return nil, err
	}

	switch key {
	case "return":
		e, err := d.decodeExpr(val)
		if err != nil {
			return nil, err
		}
		return Return{Value: e}, nil
	case "assign":
		var a struct {
			To    string    `yaml:"to"`
			Value yaml.Node `yaml:"value"`
		}
		if err := d.checkFields(val, key, "to", "value"); err != nil {
			return nil, err
		}
		if err := val.Decode(&a); err != nil {
			return nil, d.wrapf(val, err, "assign")
		}
		if a.To == "" {
			return nil, d.errorf(val, "assign: missing target")
		}
		target := d.ident(a.To)
		e, err := d.decodeExpr(&a.Value)
		if err != nil {
			return nil, err
		}
		return Assign{Target: target, Value: e}, nil
	case "declare", "readln", "writeln":
		var vd varDesc
		if err := d.checkFields(val, key, "name", "type"); err != nil {
			return nil, err
		}
		if err := val.Decode(&vd); err != nil {
			return nil, d.wrapf(val, err, "%s", key)
		}
		v, err := d.decodeVar(vd)
		if err != nil {
			return nil, d.wrapf(val, err, "%s", key)
		}
		switch key {
		case "declare":
			return Declare{Var: v}, nil
		case "readln":
			return ReadLn{Var: v}, nil
		default:
			return WriteLn{Var: v}, nil
		}
	case "if", "while":
		var b struct {
			Cond yaml.Node `yaml:"cond"`
			Body yaml.Node `yaml:"body"`
		}
		if err := d.checkFields(val, key, "cond", "body"); err != nil {
			return nil, err
		}
		if err := val.Decode(&b); err != nil {
			return nil, d.wrapf(val, err, "%s", key)
		}
		cond, err := d.decodeExpr(&b.Cond)
		if err != nil {
			return nil, err
		}
		body, err := d.decodeBody(&b.Body)
		if err != nil {
			return nil, err
		}
		if key == "if" {
			return If{Condition: cond, Body: body}, nil
		}
		return While{Condition: cond, Body: body}, nil
	case "custom":
		if d.opt.DisallowCustom {
			return nil, d.errorf(val, "custom instructions are disabled")
		}
		if val.Kind != yaml.ScalarNode {
			return nil, d.errorf(val, "custom: expected text")
		}
		return Custom(val.Value), nil
	default:
		return nil, d.errorf(n, "unknown instruction %q", key)
	}
}

// decodeExpr builds an expression.
func (d *decoder) decodeExpr(n *yaml.Node) (Expr, error) {
	n = resolveAlias(n)
	if n == nil || n.Kind == 0 {
		return nil, fmt.Errorf("%w: missing expression", ErrDecode)
	}

	switch n.Kind {
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!int":
			v, err := strconv.ParseInt(n.Value, 0, 64)
			if err != nil {
				return nil, d.errorf(n, "integer literal %q: %v", n.Value, err)
			}
			return Literal(v), nil
		case "!!str":
			if n.Value == "" {
				return nil, d.errorf(n, "empty name")
			}
			return d.ident(n.Value), nil
		default:
			return nil, d.errorf(n, "unsupported scalar %q", n.Value)
		}
	case yaml.MappingNode:
		key, val, err := d.singleKey(n, "expression")
		if err != nil {
			return nil, err
		}
		if key == "call" {
			return d.decodeCall(val)
		}
		a, b, err := d.decodePair(key, val)
		if err != nil {
			return nil, err
		}
		switch key {
		case "rem":
			return Remainder{A: a, B: b}, nil
		case "div":
			return Divide{A: a, B: b}, nil
		case "plus":
			return Plus{A: a, B: b}, nil
		case "eq":
			return Comparison{Op: Equals, A: a, B: b}, nil
		case "ne":
			return Comparison{Op: NotEquals, A: a, B: b}, nil
		case "gt":
			return Comparison{Op: GreaterThan, A: a, B: b}, nil
		case "lt":
			return Comparison{Op: LessThan, A: a, B: b}, nil
		}
		return nil, d.errorf(n, "unknown expression %q", key)
	default:
		return nil, d.errorf(n, "expression must be a scalar or mapping")
	}
}

// binaryKeys lists the expression keys taking two operands.
var binaryKeys = map[string]struct{}{
	"rem": {}, "div": {}, "plus": {},
	"eq": {}, "ne": {}, "gt": {}, "lt": {},
}

// decodePair decodes the two operands of a binary expression.
func (d *decoder) decodePair(key string, n *yaml.Node) (Expr, Expr, error) {
	if _, ok := binaryKeys[key]; !ok {
		return nil, nil, d.errorf(n, "unknown expression %q", key)
	}
	n = resolveAlias(n)
	if n.Kind != yaml.SequenceNode || len(n.Content) != 2 {
		return nil, nil, d.errorf(n, "%s: expected two operands", key)
	}

	a, err := d.decodeExpr(n.Content[0])
	if err != nil {
		return nil, nil, err
	}
	b, err := d.decodeExpr(n.Content[1])
	if err != nil {
		return nil, nil, err
	}

	return a, b, nil
}

// decodeCall decodes {fn: name, args: [...]}.
func (d *decoder) decodeCall(n *yaml.Node) (Expr, error) {
	var c struct {
		Fn   string    `yaml:"fn"`
		Args yaml.Node `yaml:"args"`
	}
	if err := d.checkFields(n, "call", "fn", "args"); err != nil {
		return nil, err
	}
	if err := n.Decode(&c); err != nil {
		return nil, d.wrapf(n, err, "call")
	}
	if c.Fn == "" {
		return nil, d.errorf(n, "call: missing fn")
	}

	call := Call{Target: d.ident(c.Fn)}
	args := resolveAlias(&c.Args)
	if args.Kind == 0 {
		return call, nil
	}
	if args.Kind != yaml.SequenceNode {
		return nil, d.errorf(args, "call: args must be a sequence")
	}
	for _, a := range args.Content {
		e, err := d.decodeExpr(a)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, e)
	}

	return call, nil
}

// singleKey unpacks a mapping with exactly one key.
func (d *decoder) singleKey(n *yaml.Node, what string) (string, *yaml.Node, error) {
	if n == nil || n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		if n == nil {
			return "", nil, fmt.Errorf("%w: missing %s", ErrDecode, what)
		}
		return "", nil, d.errorf(n, "%s must be a mapping with one key", what)
	}

	return n.Content[0].Value, resolveAlias(n.Content[1]), nil
}

// checkFields rejects mapping keys outside allowed.
func (d *decoder) checkFields(n *yaml.Node, what string, allowed ...string) error {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if !slices.Contains(allowed, k.Value) {
			return d.errorf(k, "%s: unknown field %q", what, k.Value)
		}
	}

	return nil
}

// wrapf is errorf with a cause kept in the error chain.
func (d *decoder) wrapf(n *yaml.Node, cause error, format string, args ...any) error {
	return fmt.Errorf("%w: line %d:%d: %s: %w", ErrDecode, n.Line, n.Column, fmt.Sprintf(format, args...), cause)
}

// errorf returns an ErrDecode error annotated with the node position.
func (d *decoder) errorf(n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("%w: line %d:%d: %s", ErrDecode, n.Line, n.Column, fmt.Sprintf(format, args...))
}

// resolveAlias follows yaml aliases to their anchored node.
func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// parseTypeOrDefault parses a type name, defaulting to Int32.
func parseTypeOrDefault(name string) (Type, error) {
	if name == "" {
		return Int32, nil
	}
	return ParseType(name)
}
