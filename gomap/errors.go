package gomap

import (
	"fmt"
	"strings"
)

type ErrorKind int

const (
	KindNotATable ErrorKind = iota + 1
	KindEmptyTable
	KindUnknownVariant
	KindMissingKey
	KindTypeMismatch
	KindOverflow
	KindNoVariant
	KindInvalidKey
	KindCycle
	KindUnsupported
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotATable:
		return "something not a table"
	case KindEmptyTable:
		return "table was empty"
	case KindUnknownVariant:
		return "unknown variant"
	case KindMissingKey:
		return "missing key"
	case KindTypeMismatch:
		return "type mismatch"
	case KindOverflow:
		return "overflow"
	case KindNoVariant:
		return "no single variant set"
	case KindInvalidKey:
		return "invalid table key"
	case KindCycle:
		return "reference cycle"
	case KindUnsupported:
		return "unsupported value"
	}
	return fmt.Sprintf("<kind %d>", int(k))
}

// ConversionError reports a failure to encode or decode one value. Type
// names the Go or declared type being converted, Key the offending
// table key where there is one, and Path the location in the table.
//
// The Err* variables below match any ConversionError of their kind
// under errors.Is.
type ConversionError struct {
	Kind   ErrorKind
	Op     string
	Type   string
	Key    string
	Path   string
	Detail string
	Err    error
}

var (
	ErrNotATable      = &ConversionError{Kind: KindNotATable}
	ErrEmptyTable     = &ConversionError{Kind: KindEmptyTable}
	ErrUnknownVariant = &ConversionError{Kind: KindUnknownVariant}
	ErrMissingKey     = &ConversionError{Kind: KindMissingKey}
	ErrTypeMismatch   = &ConversionError{Kind: KindTypeMismatch}
	ErrOverflow       = &ConversionError{Kind: KindOverflow}
	ErrNoVariant      = &ConversionError{Kind: KindNoVariant}
	ErrInvalidKey     = &ConversionError{Kind: KindInvalidKey}
	ErrCycle          = &ConversionError{Kind: KindCycle}
	ErrUnsupported    = &ConversionError{Kind: KindUnsupported}
)

func (e *ConversionError) Error() string {
	b := &strings.Builder{}
	op := e.Op
	if op == "" {
		op = "conversion"
	}
	b.WriteString(op + " error")
	if e.Path != "" {
		b.WriteString(" at " + e.Path)
	}
	b.WriteString(": ")
	if e.Type != "" {
		b.WriteString(e.Type + ": ")
	}
	b.WriteString(e.Kind.String())
	if e.Key != "" {
		fmt.Fprintf(b, ": %s", e.Key)
	}
	if e.Detail != "" {
		b.WriteString(" (" + e.Detail + ")")
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func (e *ConversionError) Is(target error) bool {
	t, ok := target.(*ConversionError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Type == "" && t.Path == ""
}

func encodeErr(kind ErrorKind, typ, path, format string, args ...any) *ConversionError {
	return &ConversionError{Op: "encode", Kind: kind, Type: typ, Path: path, Detail: fmt.Sprintf(format, args...)}
}

func decodeErr(kind ErrorKind, typ, path, format string, args ...any) *ConversionError {
	return &ConversionError{Op: "decode", Kind: kind, Type: typ, Path: path, Detail: fmt.Sprintf(format, args...)}
}
