package translator

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"
)

// Encode writes the rendered node to writer.
func Encode(w io.Writer, n Node, opt *FormatOptions) error {
	fopt := opt.normalize()
	// Buffered writer reduces syscall overhead and short writes.
	bw := bufio.NewWriter(w)
	wr := &writer{w: bw, indent: fopt.Indent, opt: fopt}
	if err := wr.writeNode(n); err != nil {
		return err
	}

	return bw.Flush()
}

// EncodeFile writes the rendered node to a file.
func EncodeFile(path string, n Node, opt *FormatOptions) error {
	b, err := Format(n, opt)
	if err != nil {
		return err
	}

	return os.WriteFile(path, b, 0o600)
}

// Format renders a node to bytes.
func Format(n Node, opt *FormatOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, n, opt); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Render renders a node with default options.
func Render(n Node) string {
	var sb strings.Builder
	// strings.Builder never fails, so neither does Encode.
	_ = Encode(&sb, n, nil)

	return sb.String()
}

// writer writes IR nodes to a writer.
type writer struct {
	w      io.Writer     // Writer to write to
	indent string        // Indentation string
	cache  []string      // Cache of indentation strings
	level  int           // Current nesting level
	opt    FormatOptions // Normalized options
}

// writeNode dispatches on the node family.
func (w *writer) writeNode(n Node) error {
	switch t := n.(type) {
	case Graph:
		return w.writeGraph(t)
	case *Graph:
		if t == nil {
			return nil
		}
		return w.writeGraph(*t)
	case Function:
		return w.writeFunction(t)
	case *Function:
		if t == nil {
			return nil
		}
		return w.writeFunction(*t)
	case Variable:
		return w.writeVariable(t)
	case Type:
		return w.writeString(t.Keyword())
	case Instruction:
		return w.writeInstruction(t)
	case Expr:
		return w.writeExpr(t)
	default:
		return nil
	}
}

// writeGraph writes the functions separated by blank lines, then the entry wrapper.
func (w *writer) writeGraph(g Graph) error {
	if len(w.opt.Includes) > 0 {
		for _, inc := range w.opt.Includes {
			if err := w.writeInclude(inc); err != nil {
				return err
			}
		}
		if err := w.writeString("\n"); err != nil {
			return err
		}
	}

	for i, fn := range g.Functions {
		if i > 0 {
			if err := w.writeString("\n\n"); err != nil {
				return err
			}
		}
		if err := w.writeFunction(fn); err != nil {
			return err
		}
	}

	if g.Main == nil {
		return nil
	}
	if len(g.Functions) > 0 {
		if err := w.writeString("\n\n"); err != nil {
			return err
		}
	}
	if err := w.writeString("int main(void) { return "); err != nil {
		return err
	}
	if err := w.writeString(g.Main.Name()); err != nil {
		return err
	}

	return w.writeString("(); }")
}

// writeInclude writes one #include line.
func (w *writer) writeInclude(header string) error {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil
	}
	if err := w.writeString("#include "); err != nil {
		return err
	}

	// Keep explicit <...> and "..." forms
	if strings.HasPrefix(header, "<") || strings.HasPrefix(header, "\"") {
		if err := w.writeString(header); err != nil {
			return err
		}
		return w.writeString("\n")
	}
	if err := w.writeString("<"); err != nil {
		return err
	}
	if err := w.writeString(header); err != nil {
		return err
	}

	return w.writeString(">\n")
}

// writeFunction writes a function definition.
func (w *writer) writeFunction(f Function) error {
	if err := w.writeString(f.Returns.Keyword()); err != nil {
		return err
	}
	if err := w.writeString(" "); err != nil {
		return err
	}
	if err := w.writeString(f.ID.Name()); err != nil {
		return err
	}
	if err := w.writeString("("); err != nil {
		return err
	}

	// An empty C parameter list must be spelled void
	if len(f.Params) == 0 {
		if err := w.writeString("void"); err != nil {
			return err
		}
	}
	for i, p := range f.Params {
		if i > 0 {
			if err := w.writeString(", "); err != nil {
				return err
			}
		}
		if err := w.writeVariable(p); err != nil {
			return err
		}
	}

	if err := w.writeString(") {\n"); err != nil {
		return err
	}
	if err := w.writeBody(f.Body); err != nil {
		return err
	}

	return w.writeString("}")
}

// writeVariable writes "<type> <id>".
func (w *writer) writeVariable(v Variable) error {
	if err := w.writeString(v.Type.Keyword()); err != nil {
		return err
	}
	if err := w.writeString(" "); err != nil {
		return err
	}

	return w.writeString(v.ID.Name())
}

// writeBody writes a sequence one level deeper than the current level.
func (w *writer) writeBody(body []Instruction) error {
	w.level++
	defer func() { w.level-- }()

	for _, in := range body {
		if in == nil {
			continue
		}
		if err := w.writeIndent(); err != nil {
			return err
		}
		if err := w.writeInstruction(in); err != nil {
			return err
		}
		if err := w.writeString("\n"); err != nil {
			return err
		}
	}

	return nil
}

// writeInstruction writes a single instruction without its trailing newline.
func (w *writer) writeInstruction(in Instruction) error {
	switch t := in.(type) {
	case Return:
		if err := w.writeString("return "); err != nil {
			return err
		}
		if err := w.writeExpr(t.Value); err != nil {
			return err
		}
		return w.writeString(";")
	case Assign:
		if err := w.writeString(t.Target.Name()); err != nil {
			return err
		}
		if err := w.writeString(" = "); err != nil {
			return err
		}
		if err := w.writeExpr(t.Value); err != nil {
			return err
		}
		return w.writeString(";")
	case Declare:
		return w.writeDeclare(t.Var)
	case If:
		return w.writeBlock("if", t.Condition, t.Body)
	case While:
		return w.writeBlock("while", t.Condition, t.Body)
	case ReadLn:
		// Declaration and scanf share the current level.
		if err := w.writeDeclare(t.Var); err != nil {
			return err
		}
		if err := w.writeString("\n"); err != nil {
			return err
		}
		if err := w.writeIndent(); err != nil {
			return err
		}
		return w.writeCustom(`scanf("%d", &` + t.Var.ID.Name() + `);`)
	case WriteLn:
		return w.writeCustom(`printf("%d", ` + t.Var.ID.Name() + `);`)
	case Custom:
		return w.writeCustom(string(t))
	default:
		return nil
	}
}

// writeDeclare writes "<type> <id>;".
func (w *writer) writeDeclare(v Variable) error {
	if err := w.writeVariable(v); err != nil {
		return err
	}

	return w.writeString(";")
}

// writeBlock writes "<keyword> (<cond>) {", the body, and the closing brace.
func (w *writer) writeBlock(keyword string, cond Expr, body []Instruction) error {
	if err := w.writeString(keyword); err != nil {
		return err
	}
	if err := w.writeString(" ("); err != nil {
		return err
	}
	if err := w.writeExpr(cond); err != nil {
		return err
	}
	if err := w.writeString(") {\n"); err != nil {
		return err
	}
	if err := w.writeBody(body); err != nil {
		return err
	}
	if err := w.writeIndent(); err != nil {
		return err
	}

	return w.writeString("}")
}

// writeCustom writes raw target text verbatim.
func (w *writer) writeCustom(text string) error {
	return w.writeString(text)
}

// writeExpr writes an expression.
func (w *writer) writeExpr(e Expr) error {
	switch t := e.(type) {
	case Literal:
		return w.writeInt(int64(t))
	case Identifier:
		return w.writeString(t.Name())
	case Remainder:
		return w.writeBinary(t.A, "%", t.B)
	case Divide:
		return w.writeBinary(t.A, "/", t.B)
	case Plus:
		return w.writeBinary(t.A, "+", t.B)
	case Comparison:
		return w.writeBinary(t.A, t.Op.Symbol(), t.B)
	case Call:
		return w.writeCall(t)
	default:
		return nil
	}
}

// writeBinary writes "<a> <op> <b>".
func (w *writer) writeBinary(a Expr, op string, b Expr) error {
	if err := w.writeOperand(a); err != nil {
		return err
	}
	if err := w.writeString(" "); err != nil {
		return err
	}
	if err := w.writeString(op); err != nil {
		return err
	}
	if err := w.writeString(" "); err != nil {
		return err
	}

	return w.writeOperand(b)
}

// writeOperand writes a binary operand, parenthesizing compound expressions.
func (w *writer) writeOperand(e Expr) error {
	if w.opt.DisableOperandParens || !isBinary(e) {
		return w.writeExpr(e)
	}
	if err := w.writeString("("); err != nil {
		return err
	}
	if err := w.writeExpr(e); err != nil {
		return err
	}

	return w.writeString(")")
}

// writeCall writes "<target>(<arg0>, <arg1>, ...)".
func (w *writer) writeCall(c Call) error {
	if err := w.writeString(c.Target.Name()); err != nil {
		return err
	}
	if err := w.writeString("("); err != nil {
		return err
	}

	// Write call arguments
	for i, arg := range c.Args {
		if i > 0 {
			if err := w.writeString(", "); err != nil {
				return err
			}
		}
		if err := w.writeExpr(arg); err != nil {
			return err
		}
	}

	return w.writeString(")")
}

// writeInt writes an integer literal.
func (w *writer) writeInt(v int64) error {
	var buf [20]byte
	b := strconv.AppendInt(buf[:0], v, 10)
	_, err := w.w.Write(b)

	return err
}

// writeIndent writes the current indentation level to the writer.
func (w *writer) writeIndent() error {
	if w.level <= 0 {
		return nil
	}

	// Cache repeated indentation strings per nesting level.
	return w.writeString(w.indentFor(w.level))
}

// writeString writes a string to the writer.
func (w *writer) writeString(s string) error {
	_, err := io.WriteString(w.w, s)
	return err
}

// indentFor returns the indentation string for level.
func (w *writer) indentFor(level int) string {
	if level <= 0 {
		return ""
	}

	if len(w.cache) <= level {
		w.cache = append(w.cache, make([]string, level-len(w.cache)+1)...)
	}
	if w.cache[level] == "" {
		w.cache[level] = strings.Repeat(w.indent, level)
	}

	return w.cache[level]
}
