package translator

import (
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestAllocatorProperty checks that allocation is strictly increasing from 0.
func TestAllocatorProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("identifiers are sequential from zero", prop.ForAll(
		func(n int) bool {
			var a Allocator
			for i := 0; i < n; i++ {
				if a.Allocate().Index() != uint64(i) {
					return false
				}
			}
			return a.Peek().Index() == uint64(n)
		},
		gen.IntRange(0, 500),
	))

	properties.TestingRun(t)
}

// TestRenderProperty checks rendering rules over generated inputs.
func TestRenderProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("call arguments keep input order", prop.ForAll(
		func(target uint32, vals []int64) bool {
			args := make([]Expr, len(vals))
			parts := make([]string, len(vals))
			for i, v := range vals {
				args[i] = Literal(v)
				parts[i] = strconv.FormatInt(v, 10)
			}
			want := Identifier(target).Name() + "(" + strings.Join(parts, ", ") + ")"
			return Render(Call{Target: Identifier(target), Args: args}) == want
		},
		gen.UInt32(),
		gen.SliceOf(gen.Int64()),
	))

	properties.Property("rendering is deterministic", prop.ForAll(
		func(depth int, v int64) bool {
			g := nested(depth, v)
			return Render(g) == Render(g)
		},
		gen.IntRange(0, 10),
		gen.Int64(),
	))

	properties.Property("nested bodies indent one tab per level", prop.ForAll(
		func(depth int, v int64) bool {
			lines := strings.Split(Render(nested(depth, v)), "\n")
			// Signature, depth block openers, the return, depth closers, final brace.
			ret := lines[depth+1]
			return strings.HasPrefix(ret, strings.Repeat("\t", depth+1)+"return ") &&
				!strings.HasPrefix(ret, strings.Repeat("\t", depth+2))
		},
		gen.IntRange(0, 10),
		gen.Int64(),
	))

	properties.Property("compound operands are parenthesized", prop.ForAll(
		func(a, b, c int64) bool {
			e := Plus{A: Remainder{A: Literal(a), B: Literal(b)}, B: Literal(c)}
			want := "(" + strconv.FormatInt(a, 10) + " % " + strconv.FormatInt(b, 10) + ") + " + strconv.FormatInt(c, 10)
			return Render(e) == want
		},
		gen.Int64(),
		gen.Int64(),
		gen.Int64(),
	))

	properties.TestingRun(t)
}

// nested builds a function whose return sits depth loops deep.
func nested(depth int, v int64) Function {
	body := []Instruction{Return{Value: Literal(v)}}
	for i := 0; i < depth; i++ {
		if i%2 == 0 {
			body = []Instruction{While{Condition: Identifier(1), Body: body}}
		} else {
			body = []Instruction{If{Condition: Identifier(1), Body: body}}
		}
	}

	return Function{ID: 0, Params: []Variable{Var(1, Int32)}, Returns: Int32, Body: body}
}
