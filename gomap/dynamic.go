package gomap

import (
	"strings"

	"github.com/signadot/luamap/ir"
	"github.com/signadot/luamap/shape"
)

// Canonicalize checks node against the type called name in set, a set
// of declared shapes with no Go types behind them. It applies the same
// rules as Decode and returns the table Encode would produce for the
// decoded value.
func Canonicalize(node *ir.Node, name string, set *shape.Set) (*ir.Node, error) {
	c := &canon{set: set}
	return c.typed(node, name, "$")
}

type canon struct {
	set *shape.Set
}

// optional reports whether a value of the named type may be absent.
func optional(typ string) bool {
	switch {
	case typ == "", typ == shape.TypeAny, typ == shape.TypeTable:
		return true
	case strings.HasPrefix(typ, shape.ListPrefix):
		return true
	}
	return false
}

func (c *canon) mismatch(typ, path, want string, node *ir.Node) *ConversionError {
	return decodeErr(KindTypeMismatch, typ, path, "expected %s, got %s", want, node.Type)
}

func (c *canon) typed(node *ir.Node, typ, path string) (*ir.Node, error) {
	if node == nil {
		node = nilNode
	}
	if optional(typ) && isNil(node) {
		return ir.Nil(), nil
	}
	if strings.HasPrefix(typ, shape.ListPrefix) {
		return c.list(node, typ, path)
	}
	switch typ {
	case "", shape.TypeAny:
		return node.Clone(), nil
	case shape.TypeTable:
		if node.Type != ir.TableType {
			return nil, c.mismatch(typ, path, "table", node)
		}
		return node.Clone(), nil
	case shape.TypeBool:
		if node.Type != ir.BoolType {
			return nil, c.mismatch(typ, path, "boolean", node)
		}
		return ir.FromBool(node.Bool), nil
	case shape.TypeNumber:
		n, ok := numberOf(node)
		if !ok {
			return nil, c.mismatch(typ, path, "number", node)
		}
		return n.Clone(), nil
	case shape.TypeInteger:
		i, e := integer[int64](node)
		if e != 0 {
			return nil, numberErr[int64](e, node, path)
		}
		return ir.FromInt(i), nil
	case shape.TypeString:
		s, ok := stringOf(node)
		if !ok {
			return nil, c.mismatch(typ, path, "string", node)
		}
		return ir.FromString(s), nil
	}
	sh := c.set.Get(typ)
	if sh == nil {
		return nil, decodeErr(KindUnsupported, typ, path, "type is not declared")
	}
	if node.Type != ir.TableType {
		return nil, decodeErr(KindNotATable, sh.Name, path, "got %s", node.Type)
	}
	if sh.Kind == shape.EnumKind {
		return c.enum(node, sh, path)
	}
	res := ir.NewTable()
	for i := range sh.Fields {
		f := &sh.Fields[i]
		child := node.Get(f.Key.Node())
		if child == nil && !optional(f.Type) {
			return nil, missingKey(sh, path, f.Key.String())
		}
		cv, err := c.typed(child, f.Type, keyPath(path, f.Key))
		if err != nil {
			return nil, err
		}
		setKey(res, f.Key, cv)
	}
	writeLengthHint(res, sh)
	return res, nil
}

func (c *canon) enum(node *ir.Node, sh *shape.Shape, path string) (*ir.Node, error) {
	v, payload, err := selectVariant(node, sh, path)
	if err != nil {
		return nil, err
	}
	contentKey := sh.ContentKey(v)
	if payload == nil && !optional(v.Type) {
		return nil, missingKey(sh, path, contentKey)
	}
	cv, err := c.typed(payload, v.Type, ir.JoinField(path, contentKey))
	if err != nil {
		return nil, err
	}
	return writeEnum(sh, v, cv), nil
}

func (c *canon) list(node *ir.Node, typ, path string) (*ir.Node, error) {
	if node.Type != ir.TableType {
		return nil, c.mismatch(typ, path, "table", node)
	}
	elem := typ[len(shape.ListPrefix):]
	n := node.Len()
	vals := make([]*ir.Node, n)
	for i := 0; i < n; i++ {
		idx := int64(i + 1)
		v, err := c.typed(node.Index(idx), elem, ir.JoinIndex(path, idx))
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return ir.FromSlice(vals), nil
}
