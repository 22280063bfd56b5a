package shape

import "reflect"

// Marker types are embedded in a Go struct to declare how it maps to a
// table. The `lua` tag on the embedded marker carries the container
// attributes.
//
//	type Point struct {
//		shape.Tuple `lua:"array"`
//		X, Y float64
//	}
//
//	type Value struct {
//		shape.Enum `lua:"tag='type', content='val'"`
//		Num *uint64
//		Str *string
//	}
type (
	// Struct declares a struct with named fields. It is only needed to
	// attach container attributes.
	Struct struct{}
	// Tuple declares a struct whose fields are positional: the i'th
	// field maps to table key i+1.
	Tuple struct{}
	// Enum declares a struct whose exported pointer fields are the
	// variants of an enum. Exactly one of them is set in a valid value.
	Enum struct{}
)

var (
	structMarker = reflect.TypeFor[Struct]()
	tupleMarker  = reflect.TypeFor[Tuple]()
	enumMarker   = reflect.TypeFor[Enum]()
	unitPayload  = reflect.TypeFor[struct{}]()
)

func markerKind(t reflect.Type) (DeclKind, bool) {
	switch t {
	case structMarker:
		return StructDecl, true
	case tupleMarker:
		return TupleDecl, true
	case enumMarker:
		return EnumDecl, true
	}
	return "", false
}
