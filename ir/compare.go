package ir

import (
	"cmp"
	"strings"
)

// Compare returns an integer comparing two leaf nodes or keys.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Tables compare by entry count only; use Equal for table contents.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}
	switch a.Type {
	case NumberType:
		return compareNumbers(a, b)
	case StringType:
		return strings.Compare(a.String, b.String)
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case TableType:
		return cmp.Compare(len(a.Keys), len(b.Keys))
	}
	return 0
}

// rank returns the sorting rank of a type.
// Order: nil < boolean < number < string < table
func rank(t Type) int {
	switch t {
	case NilType:
		return 0
	case BoolType:
		return 1
	case NumberType:
		return 2
	case StringType:
		return 3
	case TableType:
		return 4
	}
	return 100
}

func compareNumbers(a, b *Node) int {
	if a.Int64 != nil && b.Int64 != nil {
		return cmp.Compare(*a.Int64, *b.Int64)
	}
	fa, _ := a.AsFloat()
	fb, _ := b.AsFloat()
	return cmp.Compare(fa, fb)
}

// Equal reports whether a and b hold the same value. Numbers compare
// numerically and tables compare by key set, ignoring insertion order.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return isNil(a) && isNil(b)
	}
	if a.Type != b.Type {
		return false
	}
	if a.Type != TableType {
		return Compare(a, b) == 0
	}
	if len(a.Keys) != len(b.Keys) {
		return false
	}
	for i, k := range a.Keys {
		if !Equal(a.Values[i], b.Get(k)) {
			return false
		}
	}
	return true
}

func isNil(y *Node) bool {
	return y == nil || y.Type == NilType
}
