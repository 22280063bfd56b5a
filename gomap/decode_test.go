package gomap

import (
	"errors"
	"testing"

	"github.com/signadot/luamap/ir"
	"github.com/stretchr/testify/require"
)

func TestDecodeStruct(t *testing.T) {
	got, err := DecodeNew[named](table("is_ready", true))
	require.NoError(t, err)
	require.Equal(t, named{IsReady: true}, got)

	idx, err := DecodeNew[indexed](table(2, 37, "n", 2))
	require.NoError(t, err)
	require.Equal(t, indexed{Foo: 37}, idx)

	pos, err := DecodeNew[positional](table("foo", 37, 2, "x"))
	require.NoError(t, err)
	require.Equal(t, positional{Foo: 37, Bar: "x"}, pos)
}

func TestDecodeUnit(t *testing.T) {
	for _, in := range []*ir.Node{table(), table("x", 1), table(1, "a")} {
		_, err := DecodeNew[unit](in)
		require.NoError(t, err)
	}
	_, err := DecodeNew[unit](ir.FromInt(1))
	require.True(t, errors.Is(err, ErrNotATable), "got %v", err)
}

func TestDecodeEnum(t *testing.T) {
	v, err := DecodeNew[value](table("num", 37))
	require.NoError(t, err)
	require.Equal(t, value{Num: ptr[uint64](37)}, v)

	tc, err := DecodeNew[tagged](table("type", "num", "val", 37))
	require.NoError(t, err)
	require.Equal(t, tagged{Num: ptr[uint64](37)}, tc)

	to, err := DecodeNew[tagOnly](table("type", "str", "str", "x"))
	require.NoError(t, err)
	require.Equal(t, tagOnly{Str: ptr("x")}, to)

	sk, err := DecodeNew[shapeKind](table("http_server", "a"))
	require.NoError(t, err)
	require.Equal(t, shapeKind{HTTPServer: ptr("a")}, sk)
}

func TestDecodeEnumFirstPair(t *testing.T) {
	in := ir.NewTable()
	in.SetField("str", ir.FromString("first"))
	in.SetField("num", ir.FromInt(2))
	v, err := DecodeNew[value](in)
	require.NoError(t, err)
	require.Equal(t, value{Str: ptr("first")}, v)
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		in   *ir.Node
		into func(*ir.Node) error
		want error
	}{
		{"struct from number", ir.FromInt(1), decodeAs[named], ErrNotATable},
		{"enum from string", ir.FromString("num"), decodeAs[value], ErrNotATable},
		{"empty enum", table(), decodeAs[value], ErrEmptyTable},
		{"unknown variant", table("bogus", 1), decodeAs[value], ErrUnknownVariant},
		{"unknown tagged variant", table("type", "bogus", "val", 1), decodeAs[tagged], ErrUnknownVariant},
		{"missing tag", table("val", 1), decodeAs[tagged], ErrMissingKey},
		{"missing content", table("type", "num"), decodeAs[tagged], ErrMissingKey},
		{"missing field", table(), decodeAs[named], ErrMissingKey},
		{"missing array element", table(1, 1.0), decodeAs[point], ErrMissingKey},
		{"bool from number", table("is_ready", 1), decodeAs[named], ErrTypeMismatch},
		{"fraction", table("A", 1.5, "B", 1), decodeAs[pair], ErrTypeMismatch},
		{"not a number", table("A", "x", "B", 1), decodeAs[pair], ErrTypeMismatch},
		{"overflow", ir.FromInt(300), decodeAs[int8], ErrOverflow},
		{"negative unsigned", ir.FromInt(-1), decodeAs[uint], ErrOverflow},
		{"variant overflow", table("num", -1), decodeAs[value], ErrOverflow},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.into(c.in)
			require.Error(t, err)
			require.True(t, errors.Is(err, c.want), "got %v", err)
		})
	}
}

func decodeAs[T any](node *ir.Node) error {
	_, err := DecodeNew[T](node)
	return err
}

func TestDecodeUnknownVariantKey(t *testing.T) {
	_, err := DecodeNew[value](table("bogus", 1))
	var ce *ConversionError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, KindUnknownVariant, ce.Kind)
	require.Equal(t, "bogus", ce.Key)
	require.Contains(t, err.Error(), "unknown variant: bogus")
}

func TestDecodeNotATableMessage(t *testing.T) {
	_, err := DecodeNew[named](ir.FromString("x"))
	var ce *ConversionError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, "got string", ce.Detail)
	require.Equal(t, "$", ce.Path)
}

func TestDecodeErrorPath(t *testing.T) {
	in := table("Name", "r", "Tags", table(1, "a", 2, table()))
	_, err := DecodeNew[record](in)
	var ce *ConversionError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, "$.Tags[2]", ce.Path)
}

func TestDecodeAtomic(t *testing.T) {
	p := pair{A: 1, B: 2}
	err := Decode(table("A", 5, "B", "x"), &p)
	require.Error(t, err)
	require.Equal(t, pair{A: 1, B: 2}, p)

	v := value{Str: ptr("keep")}
	err = Decode(table("num", "x"), &v)
	require.Error(t, err)
	require.Equal(t, value{Str: ptr("keep")}, v)
}

func TestDecodeTarget(t *testing.T) {
	require.True(t, errors.Is(Decode(table(), named{}), ErrUnsupported))
	require.True(t, errors.Is(Decode(table(), (*named)(nil)), ErrUnsupported))
	require.True(t, errors.Is(Decode(table(), nil), ErrUnsupported))
}

func TestDecodeCoercion(t *testing.T) {
	p, err := DecodeNew[pair](table("A", "42", "B", " 0x10 "))
	require.NoError(t, err)
	require.Equal(t, pair{A: 42, B: 16}, p)

	s, err := DecodeNew[string](ir.FromInt(5))
	require.NoError(t, err)
	require.Equal(t, "5", s)

	f, err := DecodeNew[float64](ir.FromString("2.5"))
	require.NoError(t, err)
	require.Equal(t, 2.5, f)

	i, err := DecodeNew[int](ir.FromFloat(3))
	require.NoError(t, err)
	require.Equal(t, 3, i)

	o, err := DecodeNew[int](ir.FromString("010"))
	require.NoError(t, err)
	require.Equal(t, 10, o)
}

func TestDecodeDynamic(t *testing.T) {
	seq, err := DecodeNew[any](table(1, 1, 2, "b"))
	require.NoError(t, err)
	require.Equal(t, []any{int64(1), "b"}, seq)

	m, err := DecodeNew[any](table("a", table(1, 2.5), "b", true))
	require.NoError(t, err)
	require.Equal(t, map[string]any{"a": []any{2.5}, "b": true}, m)

	n, err := DecodeNew[any](ir.Nil())
	require.NoError(t, err)
	require.Nil(t, n)
}

func TestDecodeOptional(t *testing.T) {
	r, err := DecodeNew[record](table("Name", "r", "Payload", table("str", "s")))
	require.NoError(t, err)
	require.Equal(t, record{Name: "r", Payload: value{Str: ptr("s")}}, r)
}

func TestDecodeCustom(t *testing.T) {
	r, err := DecodeNew[reading](table("Level", "**", "Temp", table("c", 21.5)))
	require.NoError(t, err)
	require.Equal(t, reading{Level: 2, Temp: 21.5}, r)

	_, err = DecodeNew[reading](table("Level", "x", "Temp", table("c", 1)))
	require.True(t, errors.Is(err, ErrTypeMismatch), "got %v", err)
}

func TestDecodeMaps(t *testing.T) {
	m, err := DecodeNew[map[string]int](table("a", 1, 2, 3))
	require.NoError(t, err)
	require.Equal(t, map[string]int{"a": 1, "2": 3}, m)

	im, err := DecodeNew[map[int]string](table(1, "a", 7, "b"))
	require.NoError(t, err)
	require.Equal(t, map[int]string{1: "a", 7: "b"}, im)

	_, err = DecodeNew[map[int]string](table("a", "b"))
	require.True(t, errors.Is(err, ErrInvalidKey), "got %v", err)
}

func TestDecodeNode(t *testing.T) {
	in := table("x", table(1, 2))
	got, err := DecodeNew[*ir.Node](in)
	require.NoError(t, err)
	require.True(t, ir.Equal(in, got))
	require.NotSame(t, in, got)
}
