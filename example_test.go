package translator_test

import (
	"fmt"

	"github.com/lightdiscord/translator"
)

func ExampleGraph() {
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
	// Output:
	// int identifier_0(void) {
	// 	return 0;
	// }
	//
	// int main(void) { return identifier_0(); }
}

func ExampleCall() {
	var ids translator.Allocator
	f, a, b := ids.Allocate(), ids.Allocate(), ids.Allocate()

	fmt.Println(translator.Call{Target: f, Args: []translator.Expr{a, translator.Plus{A: b, B: translator.Literal(1)}}})
	// Output: identifier_0(identifier_1, identifier_2 + 1)
}

func ExampleValidate() {
	missing := translator.Identifier(4)
	g := &translator.Graph{
		Functions: []translator.Function{{ID: 0, Returns: translator.Int32}},
		Main:      &missing,
	}
	for _, issue := range translator.Validate(g, nil) {
		fmt.Println(issue)
	}
	// Output: error: identifier_4: entry point is not a function of the graph
}
