package translator

import (
	"strconv"
)

// IssueLevel represents severity of validation issue.
type IssueLevel string

const (
	// IssueError indicates a validation error.
	IssueError IssueLevel = "error"
	// IssueWarning indicates a validation warning.
	IssueWarning IssueLevel = "warning"
)

// Issue codes.
const (
	CodeNilExpr       = "nil_expr"
	CodeNilInstr      = "nil_instruction"
	CodeUnknownType   = "unknown_type"
	CodeUnknownOp     = "unknown_operator"
	CodeDuplicateFunc = "duplicate_function"
	CodeMissingMain   = "missing_main"
	CodeCustom        = "custom_instruction"
	CodeEmptyCustom   = "empty_custom"
)

// Issue represents a validation issue.
type Issue struct {
	Level   IssueLevel `json:"level" yaml:"level"`                   // Severity level
	Code    string     `json:"code,omitempty" yaml:"code,omitempty"` // Machine-readable code
	Message string     `json:"message" yaml:"message"`               // Issue message
	Path    string     `json:"path,omitempty" yaml:"path,omitempty"` // Path to the affected node
}

// String formats the issue as "level: path: message".
func (i Issue) String() string {
	if i.Path == "" {
		return string(i.Level) + ": " + i.Message
	}

	return string(i.Level) + ": " + i.Path + ": " + i.Message
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, is := range issues {
		if is.Level == IssueError {
			return true
		}
	}

	return false
}

// Validate checks the structure of a graph and returns issues.
// It does not check that referenced identifiers are in scope.
func Validate(g *Graph, opt *ValidateOptions) []Issue {
	if g == nil {
		return nil
	}

	vopt := opt.normalize()
	v := &validator{opt: vopt}

	seen := make(map[Identifier]struct{}, len(g.Functions))
	for _, fn := range g.Functions {
		path := fn.ID.Name()
		if _, ok := seen[fn.ID]; ok {
			v.add(IssueError, CodeDuplicateFunc, "duplicate function identifier", path)
		}
		seen[fn.ID] = struct{}{}
		v.validateFunction(fn, path)
	}

	if g.Main != nil && !vopt.DisableMainCheck {
		if _, ok := seen[*g.Main]; !ok {
			v.add(IssueError, CodeMissingMain, "entry point is not a function of the graph", g.Main.Name())
		}
	}

	return v.out
}

// validator accumulates issues while walking a graph.
type validator struct {
	opt ValidateOptions
	out []Issue
}

// add appends an issue.
func (v *validator) add(level IssueLevel, code, msg, path string) {
	v.out = append(v.out, Issue{Level: level, Code: code, Message: msg, Path: path})
}

// validateFunction validates a function signature and body.
func (v *validator) validateFunction(fn Function, path string) {
	if !fn.Returns.Valid() {
		v.add(IssueError, CodeUnknownType, "unknown return type", path)
	}
	for _, p := range fn.Params {
		v.validateVariable(p, path)
	}
	v.validateBody(fn.Body, path)
}

// validateVariable validates the type of a variable.
func (v *validator) validateVariable(vr Variable, path string) {
	if !vr.Type.Valid() {
		v.add(IssueError, CodeUnknownType, "unknown variable type", path+"/"+vr.ID.Name())
	}
}

// validateBody validates each instruction of a body.
func (v *validator) validateBody(body []Instruction, path string) {
	for i, in := range body {
		v.validateInstruction(in, path+"["+strconv.Itoa(i)+"]")
	}
}

// validateInstruction validates one instruction and its children.
func (v *validator) validateInstruction(in Instruction, path string) {
	switch t := in.(type) {
	case nil:
		v.add(IssueError, CodeNilInstr, "nil instruction", path)
	case Return:
		v.validateExpr(t.Value, path)
	case Assign:
		v.validateExpr(t.Value, path)
	case Declare:
		v.validateVariable(t.Var, path)
	case ReadLn:
		v.validateVariable(t.Var, path)
	case WriteLn:
		v.validateVariable(t.Var, path)
	case If:
		v.validateExpr(t.Condition, path)
		v.validateBody(t.Body, path+"/if")
	case While:
		v.validateExpr(t.Condition, path)
		v.validateBody(t.Body, path+"/while")
	case Custom:
		if v.opt.DisableCustomCheck {
			return
		}
		if t == "" {
			v.add(IssueWarning, CodeEmptyCustom, "empty custom instruction", path)
			return
		}
		v.add(IssueWarning, CodeCustom, "custom instruction is not portable", path)
	}
}

// validateExpr validates an expression tree.
func (v *validator) validateExpr(e Expr, path string) {
	switch t := e.(type) {
	case nil:
		v.add(IssueError, CodeNilExpr, "nil expression", path)
	case Remainder:
		v.validateExpr(t.A, path)
		v.validateExpr(t.B, path)
	case Divide:
		v.validateExpr(t.A, path)
		v.validateExpr(t.B, path)
	case Plus:
		v.validateExpr(t.A, path)
		v.validateExpr(t.B, path)
	case Comparison:
		if t.Op.Symbol() == "" {
			v.add(IssueError, CodeUnknownOp, "unknown comparison operator", path)
		}
		v.validateExpr(t.A, path)
		v.validateExpr(t.B, path)
	case Call:
		for _, arg := range t.Args {
			v.validateExpr(arg, path)
		}
	}
}
