package shape

import (
	"reflect"
	"strconv"

	"github.com/signadot/luamap/ir"
)

type Kind int

const (
	StructKind Kind = iota
	EnumKind
)

func (k Kind) String() string {
	if k == EnumKind {
		return "enum"
	}
	return "struct"
}

// LengthKey is the table key recording an explicit maximum index.
const LengthKey = "n"

// Key is a resolved table key: a string, or a 1-based index when Index
// is positive.
type Key struct {
	Name  string
	Index int64
}

func (k Key) IsIndex() bool { return k.Index > 0 }

func (k Key) Node() *ir.Node {
	if k.IsIndex() {
		return ir.IntKey(k.Index)
	}
	return ir.StringKey(k.Name)
}

func (k Key) String() string {
	if k.IsIndex() {
		return "[" + strconv.FormatInt(k.Index, 10) + "]"
	}
	return k.Name
}

type FieldSpec struct {
	// Name is the declared name. It is empty for positional fields.
	Name     string
	Position int
	Key      Key
	// Index is the explicit index attribute, 0 if none.
	Index int64
	Type  string

	GoName  string
	GoIndex []int
	GoType  reflect.Type
}

// Label names the field in messages.
func (f *FieldSpec) Label() string {
	switch {
	case f.GoName != "":
		return f.GoName
	case f.Name != "":
		return f.Name
	}
	return strconv.Itoa(f.Position)
}

type VariantSpec struct {
	Name string
	// Key is the snake_case form of Name, used as the tag value and as
	// the default content key.
	Key  string
	Type string

	GoIndex []int
	GoType  reflect.Type
}

// Shape is the resolved, immutable description of a struct or enum that
// drives encoding and decoding.
type Shape struct {
	Name     string
	Kind     Kind
	Array    bool
	Fields   []FieldSpec
	Variants []VariantSpec
	Tag      string
	Content  string
	// LengthHint is written under LengthKey when positive: the largest
	// explicit index, when it exceeds the field count.
	LengthHint int64

	GoType reflect.Type
}

func (s *Shape) IsUnit() bool {
	return s.Kind == StructKind && len(s.Fields) == 0
}

// ContentKey returns the key holding the payload of v.
func (s *Shape) ContentKey(v *VariantSpec) string {
	if s.Content != "" {
		return s.Content
	}
	return v.Key
}

// Variant returns the variant whose key is key, or nil.
func (s *Shape) Variant(key string) *VariantSpec {
	for i := range s.Variants {
		if s.Variants[i].Key == key {
			return &s.Variants[i]
		}
	}
	return nil
}
