package shape

import (
	"reflect"
)

// TagKey is the struct tag key holding attributes.
const TagKey = "lua"

// DeclOf builds the declaration of the Go struct type t from its marker
// field and `lua` struct tags.
func DeclOf(t reflect.Type) (*TypeDecl, error) {
	decl := &TypeDecl{Name: TypeName(t), Kind: StructDecl, GoType: t}
	if t.Kind() != reflect.Struct {
		return nil, configErr(decl, "", ErrUnsupportedShape, "%s is not a struct", t.Kind())
	}
	fields, err := collectFields(decl, t, nil)
	if err != nil {
		return nil, err
	}
	hasMarker := false
	for _, sf := range fields {
		kind, ok := markerKind(sf.Type)
		if !ok {
			continue
		}
		if hasMarker {
			return nil, configErr(decl, sf.Name, ErrDuplicateAttribute, "more than one marker field")
		}
		hasMarker = true
		decl.Kind = kind
		decl.Attrs = sf.Tag.Get(TagKey)
	}
	for _, sf := range fields {
		if _, ok := markerKind(sf.Type); ok {
			continue
		}
		attrs := sf.Tag.Get(TagKey)
		if decl.Kind != EnumDecl {
			decl.Fields = append(decl.Fields, FieldDecl{
				Name:    sf.Name,
				Attrs:   attrs,
				GoIndex: sf.Index,
				GoType:  sf.Type,
			})
			continue
		}
		if sf.Type.Kind() != reflect.Pointer {
			return nil, configErr(decl, sf.Name, ErrUnsupportedShape, "variant field must be a pointer, got %s", sf.Type)
		}
		vd := VariantDecl{Name: sf.Name, Attrs: attrs, GoIndex: sf.Index}
		if elem := sf.Type.Elem(); elem != unitPayload {
			vd.Fields = []FieldDecl{{GoType: elem}}
		}
		decl.Variants = append(decl.Variants, vd)
	}
	return decl, nil
}

// collectFields returns the mapped fields of t in declaration order,
// flattening untagged embedded structs.
func collectFields(decl *TypeDecl, t reflect.Type, index []int) ([]reflect.StructField, error) {
	var res []reflect.StructField
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		sf.Index = append(append([]int(nil), index...), i)
		tag, hasTag := sf.Tag.Lookup(TagKey)
		if tag == "-" {
			continue
		}
		if _, ok := markerKind(sf.Type); ok {
			if len(index) != 0 {
				return nil, configErr(decl, sf.Name, ErrUnsupportedShape, "marker inside embedded struct")
			}
			res = append(res, sf)
			continue
		}
		if sf.Anonymous && !hasTag && sf.Type.Kind() == reflect.Struct {
			sub, err := collectFields(decl, sf.Type, sf.Index)
			if err != nil {
				return nil, err
			}
			res = append(res, sub...)
			continue
		}
		if !sf.IsExported() {
			continue
		}
		res = append(res, sf)
	}
	return res, nil
}

// TypeName names t in messages and shape files.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
