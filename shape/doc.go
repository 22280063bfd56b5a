// Package shape resolves type declarations into Shapes, the immutable
// layouts that drive table encoding and decoding.
//
// A declaration lists the fields of a struct, or the variants of an
// enum, with their attributes. Declarations are taken from Go types
// (see DeclOf and the marker types) or from YAML shape files (see
// LoadFile). Attributes are written as a comma separated list:
//
//	container (struct, tuple): array
//	container (enum):          tag='type', content='val'
//	field:                     key='name' or index=2
//
// Resolve reports the first rule a declaration breaks as a
// *ConfigError. A Registry caches one Shape per Go type for the life of
// the process.
package shape
