package gomap

import (
	"github.com/signadot/luamap/ir"
	"github.com/signadot/luamap/shape"
)

type (
	// Marshaler is implemented by types that encode themselves.
	Marshaler = ir.Marshaler
	// Unmarshaler is implemented by types that decode themselves.
	Unmarshaler = ir.Unmarshaler
)

// Mapper converts between Go values and tables using the shapes of a
// registry.
type Mapper struct {
	registry *shape.Registry
}

// NewMapper creates a Mapper using reg, or the default registry if reg
// is nil.
func NewMapper(reg *shape.Registry) *Mapper {
	if reg == nil {
		reg = shape.DefaultRegistry()
	}
	return &Mapper{registry: reg}
}

var defaultMapper = NewMapper(nil)

// DefaultMapper returns the Mapper backed by shape.DefaultRegistry.
func DefaultMapper() *Mapper {
	return defaultMapper
}

func (m *Mapper) Registry() *shape.Registry {
	return m.registry
}

// Encode converts v to a value using the default mapper.
func Encode(v any) (*ir.Node, error) {
	return defaultMapper.Encode(v)
}

// Decode converts node into the value pointed to by v using the
// default mapper.
func Decode(node *ir.Node, v any) error {
	return defaultMapper.Decode(node, v)
}

// DecodeNew decodes node into a new T.
func DecodeNew[T any](node *ir.Node) (T, error) {
	var res T
	err := defaultMapper.Decode(node, &res)
	return res, err
}
