package gomap

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func roundTrip[T any](t *testing.T, in T) {
	t.Helper()
	node, err := Encode(in)
	require.NoError(t, err)
	out, err := DecodeNew[T](node)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestRoundTrip(t *testing.T) {
	roundTrip(t, named{IsReady: true})
	roundTrip(t, named{})
	roundTrip(t, taggedHolder{Any: ptr[any](nil)})
	roundTrip(t, taggedHolder{Nums: ptr[[]int](nil)})
	roundTrip(t, holder{Nums: ptr([]int{1, 2})})
	roundTrip(t, indexed{Foo: -4})
	roundTrip(t, positional{Foo: 1, Bar: "b"})
	roundTrip(t, point{X: 0.5, Y: -3})
	roundTrip(t, unit{})
	roundTrip(t, value{Num: ptr[uint64](37)})
	roundTrip(t, value{Str: ptr("")})
	roundTrip(t, tagged{Str: ptr("s")})
	roundTrip(t, tagOnly{Num: ptr[uint64](0)})
	roundTrip(t, shapeKind{Circle: ptr(1.25)})
	roundTrip(t, reading{Level: 4, Temp: -2})
	roundTrip(t, []point{{X: 1}, {Y: 2}})
	roundTrip(t, map[string]tagged{"a": {Num: ptr[uint64](1)}})
	roundTrip(t, [2]int{7, 8})
	roundTrip(t, record{
		Name:    "r",
		Tags:    []string{"x"},
		Meta:    map[string]int{"m": 3},
		Where:   &point{X: 1, Y: 2},
		Payload: value{Num: ptr[uint64](9)},
		Raw:     []byte("bytes"),
	})
}

func TestRoundTripOtherMapper(t *testing.T) {
	m := NewMapper(nil)
	require.Same(t, DefaultMapper().Registry(), m.Registry())

	node, err := m.Encode(tagged{Num: ptr[uint64](37)})
	require.NoError(t, err)
	var out tagged
	require.NoError(t, m.Decode(node, &out))
	require.True(t, reflect.DeepEqual(tagged{Num: ptr[uint64](37)}, out))
}
