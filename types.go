package translator

import (
	"fmt"
	"strings"
)

// Type is a primitive type of the IR.
type Type uint8

const (
	// Int32 is a 32-bit signed integer.
	Int32 Type = iota
)

// typeKeywords maps types to target keywords.
var typeKeywords = [...]string{
	Int32: "int",
}

// typeNames maps description names to types.
var typeNames = map[string]Type{
	"int32": Int32,
	"int":   Int32,
	"i32":   Int32,
}

// Keyword returns the target keyword for t, or "" for an unknown type.
func (t Type) Keyword() string {
	if int(t) >= len(typeKeywords) {
		return ""
	}

	return typeKeywords[t]
}

// Valid reports whether t is a known primitive type.
func (t Type) Valid() bool { return t.Keyword() != "" }

// ParseType resolves a type name such as "int32".
func ParseType(name string) (Type, error) {
	if t, ok := typeNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
}
