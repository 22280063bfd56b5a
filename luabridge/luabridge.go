package luabridge

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/signadot/luamap/gomap"
	"github.com/signadot/luamap/ir"

	lua "github.com/yuin/gopher-lua"
)

var (
	ErrUnsupportedValue = errors.New("unsupported lua value")
	ErrTableKey         = errors.New("invalid table key")
	ErrTableCycle       = errors.New("table contains itself")
)

// maxExact is the largest magnitude at which every integer is a float64.
const maxExact = 1 << 53

// ToLua creates the Lua value of node in L.
func ToLua(L *lua.LState, node *ir.Node) lua.LValue {
	if node == nil {
		return lua.LNil
	}
	switch node.Type {
	case ir.BoolType:
		return lua.LBool(node.Bool)
	case ir.NumberType:
		f, _ := node.AsFloat()
		return lua.LNumber(f)
	case ir.StringType:
		return lua.LString(node.String)
	case ir.TableType:
		tbl := L.CreateTable(node.Len(), len(node.Keys)-node.Len())
		for i, k := range node.Keys {
			v := ToLua(L, node.Values[i])
			if k.Type == ir.NumberType {
				n, _ := k.AsInt()
				tbl.RawSetInt(int(n), v)
				continue
			}
			tbl.RawSetString(k.String, v)
		}
		return tbl
	}
	return lua.LNil
}

// FromLua converts lv. Tables are read with LTable.Next, so entries
// keep the table's iteration order.
func FromLua(lv lua.LValue) (*ir.Node, error) {
	c := &converter{visiting: map[*lua.LTable]bool{}}
	return c.value(lv, "$")
}

type converter struct {
	visiting map[*lua.LTable]bool
}

func (c *converter) value(lv lua.LValue, path string) (*ir.Node, error) {
	switch v := lv.(type) {
	case *lua.LNilType:
		return ir.Nil(), nil
	case lua.LBool:
		return ir.FromBool(bool(v)), nil
	case lua.LNumber:
		return number(float64(v)), nil
	case lua.LString:
		return ir.FromString(string(v)), nil
	case *lua.LTable:
		return c.table(v, path)
	}
	return nil, fmt.Errorf("%w at %s: %s", ErrUnsupportedValue, path, lv.Type())
}

func number(f float64) *ir.Node {
	if f == math.Trunc(f) && math.Abs(f) <= maxExact {
		return ir.FromInt(int64(f))
	}
	return ir.FromFloat(f)
}

func (c *converter) table(tbl *lua.LTable, path string) (*ir.Node, error) {
	if c.visiting[tbl] {
		return nil, fmt.Errorf("%w at %s", ErrTableCycle, path)
	}
	c.visiting[tbl] = true
	defer delete(c.visiting, tbl)

	res := ir.NewTable()
	for k, v := tbl.Next(lua.LNil); k != lua.LNil; k, v = tbl.Next(k) {
		key, err := c.key(k, path)
		if err != nil {
			return nil, err
		}
		child, err := c.value(v, ir.JoinPath(path, key))
		if err != nil {
			return nil, err
		}
		if err := res.Set(key, child); err != nil {
			return nil, fmt.Errorf("%w at %s: %v", ErrTableKey, path, err)
		}
	}
	return res, nil
}

func (c *converter) key(k lua.LValue, path string) (*ir.Node, error) {
	switch k := k.(type) {
	case lua.LString:
		return ir.StringKey(string(k)), nil
	case lua.LNumber:
		f := float64(k)
		if f >= 1 && f == math.Trunc(f) && f <= maxExact {
			return ir.IntKey(int64(f)), nil
		}
		return nil, fmt.Errorf("%w at %s: number %s", ErrTableKey, path, k.String())
	}
	return nil, fmt.Errorf("%w at %s: %s", ErrTableKey, path, k.Type())
}

// Encode converts v with gomap and creates its Lua value in L.
func Encode(L *lua.LState, v any) (lua.LValue, error) {
	node, err := gomap.Encode(v)
	if err != nil {
		return nil, err
	}
	return ToLua(L, node), nil
}

// Decode converts lv with FromLua and decodes it into the value v
// points to.
func Decode(lv lua.LValue, v any) error {
	node, err := FromLua(lv)
	if err != nil {
		return err
	}
	return gomap.Decode(node, v)
}

// Eval runs src, named name in messages, in a new state with no
// libraries opened and converts its first return value.
func Eval(src, name string) (*ir.Node, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	fn, err := L.Load(strings.NewReader(src), name)
	if err != nil {
		return nil, err
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		return nil, err
	}
	res := L.Get(-1)
	L.Pop(1)
	return FromLua(res)
}
