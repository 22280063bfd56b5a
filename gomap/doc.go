// Package gomap converts between Go values and tables.
//
// Structs and enums are laid out by the Shape their type resolves to in
// a shape.Registry:
//
//	type Named struct {
//		IsReady bool `lua:"key='is_ready'"`
//	}
//	// {is_ready = true}
//
//	type Value struct {
//		shape.Enum `lua:"tag='type', content='val'"`
//		Num *uint64
//		Str *string
//	}
//	// Value{Num: &n} with n = 37 -> {type = "num", val = 37}
//
// Without tag and content an enum is a one entry table keyed by the
// snake_case variant name ({num = 37}); with a tag only, the payload is
// stored under the variant name and the tag names it
// ({type = "num", num = 37}).
//
// Other Go values convert the way Lua values do: booleans, integers and
// floats, strings (numbers and numeric strings are coerced when
// decoding), []byte as strings, slices and arrays as sequences keyed
// from 1, maps with string or integer keys as tables. *ir.Node values
// pass through, and types implementing Marshaler / Unmarshaler or the
// encoding text interfaces convert themselves.
//
// # Errors
//
// Failures to convert a value are *ConversionError, matched by kind
// with errors.Is (ErrNotATable, ErrEmptyTable, ErrUnknownVariant, ...).
// A type whose declaration is invalid yields its *shape.ConfigError
// instead. Encoding fails with ErrCycle when a pointer, map or slice
// contains itself.
package gomap
