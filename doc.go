/*
Package translator builds small imperative programs as an in-memory
intermediate representation and renders them as C source text.

The IR is composed directly from values: identifiers come from an Allocator,
expressions and instructions are plain structs, and a Graph holds the
functions plus an optional entry point. Rendering is a pure function of the
tree; rendering the same tree twice yields the same text.

Builder example:

	var ids translator.Allocator
	entry := ids.Allocate()
	g := translator.Graph{
		Functions: []translator.Function{{
			ID:      entry,
			Returns: translator.Int32,
			Body:    []translator.Instruction{translator.Return{Value: translator.Literal(0)}},
		}},
		Main: &entry,
	}
	fmt.Println(translator.Render(g))

Writer example:

	out, err := translator.Format(g, &translator.FormatOptions{Includes: []string{"stdio.h"}})
	if err != nil {
		// handle error
	}

Description example:

	g, err := translator.DecodeFile("program.yaml", nil)
	if err != nil {
		// handle error
	}

Validator example:

	issues := translator.Validate(g, nil)
	if len(issues) != 0 {
		// handle validation issues
	}

Nothing in this package checks that identifiers are in scope. Invalid
references render as well-formed text that a C compiler will reject.
*/
package translator
