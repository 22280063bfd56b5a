package shape

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Builtin type names usable in shape files.
const (
	TypeAny     = "any"
	TypeBool    = "bool"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeString  = "string"
	TypeTable   = "table"
)

// ListPrefix marks a sequence type in a shape file, as in "[]Point".
const ListPrefix = "[]"

// File is the content of a shape file:
//
//	types:
//	- name: Value
//	  kind: enum
//	  attrs: tag='type', content='val'
//	  variants:
//	  - name: Num
//	    type: number
//	  - name: Str
//	    type: string
type File struct {
	Types []TypeDecl `yaml:"types"`
}

func LoadFile(r io.Reader) (*File, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f := &File{}
	if err := yaml.UnmarshalWithOptions(d, f, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("shape file: %w", err)
	}
	return f, nil
}

// Set holds the shapes resolved from a file, by name.
type Set struct {
	Shapes map[string]*Shape
	Names  []string
}

func (s *Set) Get(name string) *Shape {
	return s.Shapes[name]
}

// ResolveFile resolves every declaration of f. All configuration errors
// are returned; the Set holds the declarations that resolved.
func ResolveFile(f *File) (*Set, []error) {
	set := &Set{Shapes: map[string]*Shape{}}
	var errs []error
	for i := range f.Types {
		decl := &f.Types[i]
		if _, dup := set.Shapes[decl.Name]; dup || decl.Name == "" || isBuiltin(decl.Name) {
			errs = append(errs, configErr(decl, "", ErrUnsupportedShape, "type name %q is empty, builtin or declared twice", decl.Name))
			continue
		}
		sh, err := Resolve(decl)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		set.Shapes[decl.Name] = sh
		set.Names = append(set.Names, decl.Name)
	}
	declared := map[string]bool{}
	for i := range f.Types {
		declared[f.Types[i].Name] = true
	}
	for _, name := range set.Names {
		sh := set.Shapes[name]
		if err := checkRefs(sh, declared); err != nil {
			errs = append(errs, err)
			delete(set.Shapes, name)
		}
	}
	set.Names = set.Names[:0:0]
	for i := range f.Types {
		if _, ok := set.Shapes[f.Types[i].Name]; ok {
			set.Names = append(set.Names, f.Types[i].Name)
		}
	}
	return set, errs
}

func checkRefs(sh *Shape, declared map[string]bool) error {
	ok := func(name string) bool {
		name = ElemType(name)
		return name == "" || isBuiltin(name) || declared[name]
	}
	for i := range sh.Fields {
		if f := &sh.Fields[i]; !ok(f.Type) {
			return &ConfigError{Type: sh.Name, Field: f.Label(), Kind: ErrUnsupportedShape, Detail: fmt.Sprintf("unknown type %q", f.Type)}
		}
	}
	for i := range sh.Variants {
		if v := &sh.Variants[i]; !ok(v.Type) {
			return &ConfigError{Type: sh.Name, Field: v.Name, Kind: ErrUnsupportedShape, Detail: fmt.Sprintf("unknown type %q", v.Type)}
		}
	}
	return nil
}

// ElemType strips list prefixes from a type name: "[][]Point" -> "Point".
func ElemType(name string) string {
	for strings.HasPrefix(name, ListPrefix) {
		name = name[len(ListPrefix):]
	}
	return name
}

func isBuiltin(name string) bool {
	switch name {
	case TypeAny, TypeBool, TypeNumber, TypeInteger, TypeString, TypeTable:
		return true
	}
	return false
}
