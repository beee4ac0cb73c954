package translator

import "errors"

var (
	// ErrDecode indicates a malformed program description.
	ErrDecode = errors.New("decode error")

	// ErrUnknownType indicates a type name with no known primitive.
	ErrUnknownType = errors.New("unknown type")

	// ErrAllocatorExhausted indicates the identifier counter has no values left.
	ErrAllocatorExhausted = errors.New("identifier allocator exhausted")
)
