package gomap

import (
	"fmt"
	"strings"

	"github.com/signadot/luamap/ir"
	"github.com/signadot/luamap/shape"
)

type named struct {
	IsReady bool `lua:"key='is_ready'"`
}

type indexed struct {
	Foo int `lua:"index=2"`
}

type positional struct {
	shape.Tuple
	Foo int `lua:"key='foo'"`
	Bar string
}

type point struct {
	shape.Tuple `lua:"array"`
	X, Y float64
}

type unit struct{}

type value struct {
	shape.Enum
	Num *uint64
	Str *string
}

type tagged struct {
	shape.Enum `lua:"tag='type', content='val'"`
	Num        *uint64
	Str        *string
}

type tagOnly struct {
	shape.Enum `lua:"tag='type'"`
	Num        *uint64
	Str        *string
}

type holder struct {
	shape.Enum
	Any  *any
	Nums *[]int
}

type taggedHolder struct {
	shape.Enum `lua:"tag='type'"`
	Any        *any
	Nums       *[]int
}

type shapeKind struct {
	shape.Enum
	Circle     *float64
	HTTPServer *string
}

type pair struct {
	A int
	B int
}

type link struct {
	Name string
	Next *link
}

type record struct {
	Name    string
	Tags    []string
	Meta    map[string]int
	Where   *point
	Payload value
	Extra   any
	Raw     []byte
}

type level int

func (l level) MarshalText() ([]byte, error) {
	return []byte(strings.Repeat("*", int(l))), nil
}

func (l *level) UnmarshalText(d []byte) error {
	if strings.Trim(string(d), "*") != "" {
		return fmt.Errorf("bad level %q", d)
	}
	*l = level(len(d))
	return nil
}

type celsius float64

func (c celsius) MarshalTable() (*ir.Node, error) {
	return ir.NewTable().SetField("c", ir.FromFloat(float64(c))), nil
}

func (c *celsius) UnmarshalTable(node *ir.Node) error {
	f, ok := node.Field("c").AsFloat()
	if !ok {
		return fmt.Errorf("no c")
	}
	*c = celsius(f)
	return nil
}

type reading struct {
	Level level
	Temp  celsius
}

func ptr[T any](v T) *T { return &v }

func table(kvs ...any) *ir.Node {
	res := ir.NewTable()
	for i := 0; i < len(kvs); i += 2 {
		if err := res.Set(leaf(kvs[i]), leaf(kvs[i+1])); err != nil {
			panic(err)
		}
	}
	return res
}

func leaf(v any) *ir.Node {
	switch v := v.(type) {
	case *ir.Node:
		return v
	case bool:
		return ir.FromBool(v)
	case int:
		return ir.FromInt(int64(v))
	case float64:
		return ir.FromFloat(v)
	case string:
		return ir.FromString(v)
	}
	panic(fmt.Sprintf("leaf %T", v))
}
