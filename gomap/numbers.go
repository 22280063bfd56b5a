package gomap

import (
	"math"
	"strconv"
	"strings"

	"github.com/signadot/luamap/ir"

	"golang.org/x/exp/constraints"
)

// numberOf returns node as a number, converting numeric strings the way
// Lua does in arithmetic.
func numberOf(node *ir.Node) (*ir.Node, bool) {
	switch node.Type {
	case ir.NumberType:
		return node, true
	case ir.StringType:
		s := strings.TrimSpace(node.String)
		if i, ok := parseInt(s); ok {
			return ir.FromInt(i), true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return ir.FromFloat(f), true
		}
	}
	return nil, false
}

// parseInt accepts decimal and 0x-prefixed hexadecimal integers. A
// leading zero does not mean octal.
func parseInt(s string) (int64, bool) {
	digits := strings.TrimLeft(s, "+-")
	if len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X") {
		i, err := strconv.ParseInt(s, 0, 64)
		return i, err == nil
	}
	i, err := strconv.ParseInt(s, 10, 64)
	return i, err == nil
}

// stringOf returns node as a string, converting numbers the way Lua
// does in concatenation.
func stringOf(node *ir.Node) (string, bool) {
	switch node.Type {
	case ir.StringType:
		return node.String, true
	case ir.NumberType:
		return node.KeyString(), true
	}
	return "", false
}

type numberError int

const (
	notANumber numberError = iota + 1
	notIntegral
	outOfRange
)

// integer converts node to T, checking that it is integral and fits.
func integer[T constraints.Integer](node *ir.Node) (T, numberError) {
	n, ok := numberOf(node)
	if !ok {
		return 0, notANumber
	}
	i, ok := n.AsInt()
	if !ok {
		if f, _ := n.AsFloat(); f == math.Trunc(f) {
			return 0, outOfRange
		}
		return 0, notIntegral
	}
	v := T(i)
	if int64(v) != i || (v < 0) != (i < 0) {
		return 0, outOfRange
	}
	return v, 0
}

// floating converts node to T, checking that it fits.
func floating[T constraints.Float](node *ir.Node) (T, numberError) {
	n, ok := numberOf(node)
	if !ok {
		return 0, notANumber
	}
	f, _ := n.AsFloat()
	v := T(f)
	if math.IsInf(float64(v), 0) && !math.IsInf(f, 0) {
		return 0, outOfRange
	}
	return v, 0
}
