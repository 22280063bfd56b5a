package shape

import "reflect"

type DeclKind string

const (
	StructDecl DeclKind = "struct"
	TupleDecl  DeclKind = "tuple"
	EnumDecl   DeclKind = "enum"
	UnionDecl  DeclKind = "union"
)

// TypeDecl is the declared form of a type before resolution: its
// fields or variants and the raw attribute groups attached to them.
// Declarations come from Go types (DeclOf) or from shape files.
type TypeDecl struct {
	Name     string        `yaml:"name"`
	Kind     DeclKind      `yaml:"kind"`
	Attrs    string        `yaml:"attrs,omitempty"`
	Fields   []FieldDecl   `yaml:"fields,omitempty"`
	Variants []VariantDecl `yaml:"variants,omitempty"`

	GoType reflect.Type `yaml:"-"`
}

// FieldDecl declares a struct field. In a tuple declaration the name is
// only used in messages.
type FieldDecl struct {
	Name  string `yaml:"name,omitempty"`
	Attrs string `yaml:"attrs,omitempty"`
	Type  string `yaml:"type,omitempty"`

	GoIndex []int        `yaml:"-"`
	GoType  reflect.Type `yaml:"-"`
}

// VariantDecl declares an enum variant. Its payload is Fields; Type is
// shorthand for a single payload of that type.
type VariantDecl struct {
	Name   string      `yaml:"name"`
	Attrs  string      `yaml:"attrs,omitempty"`
	Type   string      `yaml:"type,omitempty"`
	Fields []FieldDecl `yaml:"fields,omitempty"`

	GoIndex []int `yaml:"-"`
}

func (v *VariantDecl) payload() []FieldDecl {
	if v.Type != "" && len(v.Fields) == 0 {
		return []FieldDecl{{Type: v.Type}}
	}
	return v.Fields
}
