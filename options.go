package translator

// FormatOptions controls writer formatting.
type FormatOptions struct {
	// Indent is the indentation string for one nesting level (default is a tab).
	Indent string
	// Includes lists headers emitted as #include lines before a Graph.
	// Bare names are wrapped in angle brackets; quoted or bracketed names are kept as is.
	Includes []string
	// DisableOperandParens disables parentheses around compound operands of binary expressions.
	// The output then follows C precedence, which may not match the tree.
	DisableOperandParens bool
}

// DecodeOptions controls program description decoding.
type DecodeOptions struct {
	// Allocator issues identifiers for names in the description.
	// If nil, a fresh allocator starting at 0 is used. The allocator only
	// advances when decoding succeeds.
	Allocator *Allocator
	// DisallowCustom rejects custom raw-text instructions.
	DisallowCustom bool
}

// ValidateOptions controls validation rules.
type ValidateOptions struct {
	// DisableCustomCheck disables warnings for custom raw-text instructions.
	DisableCustomCheck bool
	// DisableMainCheck disables checking that Main names one of the functions.
	DisableMainCheck bool
}

// normalize normalizes the FormatOptions.
func (o *FormatOptions) normalize() FormatOptions {
	if o == nil {
		return FormatOptions{Indent: "\t"}
	}

	out := *o
	if out.Indent == "" {
		out.Indent = "\t"
	}

	return out
}

// normalize normalizes the DecodeOptions.
func (o *DecodeOptions) normalize() DecodeOptions {
	if o == nil {
		return DecodeOptions{Allocator: &Allocator{}}
	}

	out := *o
	if out.Allocator == nil {
		out.Allocator = &Allocator{}
	}

	return out
}

// normalize normalizes the ValidateOptions.
func (o *ValidateOptions) normalize() ValidateOptions {
	if o == nil {
		return ValidateOptions{}
	}

	return *o
}
