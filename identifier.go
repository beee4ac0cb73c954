package translator

import (
	"math"
	"strconv"
)

// Identifier is an opaque handle naming a function or variable.
// Identifiers are compared by index and rendered as identifier_<index>.
type Identifier uint64

// Index returns the sequential index of the identifier.
func (id Identifier) Index() uint64 { return uint64(id) }

// Name returns the rendered name of the identifier.
func (id Identifier) Name() string {
	return "identifier_" + strconv.FormatUint(uint64(id), 10)
}

// Allocator issues successive unique identifiers starting at 0.
// The zero value is ready to use. An Allocator is not safe for concurrent use.
type Allocator struct {
	next      uint64 // Next index to hand out
	exhausted bool   // Set once the last index has been handed out
}

// Allocate returns the next identifier and advances the counter.
// It panics with ErrAllocatorExhausted once every 64-bit index has been issued.
func (a *Allocator) Allocate() Identifier {
	if a.exhausted {
		panic(ErrAllocatorExhausted)
	}

	id := Identifier(a.next)
	if a.next == math.MaxUint64 {
		a.exhausted = true
	} else {
		a.next++
	}

	return id
}

// Peek returns the identifier the next Allocate call will return.
func (a *Allocator) Peek() Identifier { return Identifier(a.next) }
