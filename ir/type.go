package ir

import "fmt"

type Type int

const (
	NilType Type = iota
	BoolType
	NumberType
	StringType
	TableType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NilType:    "nil",
		BoolType:   "boolean",
		NumberType: "number",
		StringType: "string",
		TableType:  "table",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"nil":     NilType,
		"boolean": BoolType,
		"number":  NumberType,
		"string":  StringType,
		"table":   TableType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NilType,
		BoolType,
		NumberType,
		StringType,
		TableType,
	}
}

func (t Type) IsLeaf() bool {
	return t != TableType
}
