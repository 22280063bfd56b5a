package ir

import (
	"fmt"
	"iter"
	"maps"
	"math"
	"slices"
	"strconv"
)

// Node is a dynamically typed value. Tables keep their entries in
// insertion order: Keys[i] is the key of Values[i].
type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	Keys        []*Node
	Values      []*Node

	String  string
	Bool    bool
	Float64 *float64
	Int64   *int64
}

func Nil() *Node {
	return &Node{Type: NilType}
}

func FromBool(b bool) *Node {
	return &Node{Type: BoolType, Bool: b}
}

func FromString(s string) *Node {
	return &Node{Type: StringType, String: s}
}

func FromInt(i int64) *Node {
	return &Node{Type: NumberType, Int64: &i}
}

func FromFloat(f float64) *Node {
	return &Node{Type: NumberType, Float64: &f}
}

func NewTable() *Node {
	return &Node{Type: TableType}
}

// StringKey returns a key node for s.
func StringKey(s string) *Node { return FromString(s) }

// IntKey returns a key node for i. Only keys >= 1 are valid.
func IntKey(i int64) *Node { return FromInt(i) }

type KeyVal struct {
	Key *Node
	Val *Node
}

func FromKeyVals(kvs []KeyVal) (*Node, error) {
	res := NewTable()
	for i := range kvs {
		kv := &kvs[i]
		if err := res.Set(kv.Key, kv.Val); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// FromMap creates a table from m with keys in sorted order.
func FromMap(m map[string]*Node) *Node {
	res := NewTable()
	for _, k := range slices.Sorted(maps.Keys(m)) {
		res.SetField(k, m[k])
	}
	return res
}

// FromSlice creates a sequence: vals[i] is stored at key i+1. Nil
// entries leave holes.
func FromSlice(vals []*Node) *Node {
	res := NewTable()
	for i, v := range vals {
		res.setNormal(IntKey(int64(i+1)), v)
	}
	return res
}

// NormalKey validates key and returns its canonical form: strings as
// is, integral numbers >= 1 as Int64 keys.
func NormalKey(key *Node) (*Node, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: nil", ErrInvalidKey)
	}
	switch key.Type {
	case StringType:
		return key, nil
	case NumberType:
		i, ok := key.AsInt()
		if !ok || i < 1 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidKey, key.KeyString())
		}
		if key.Int64 != nil {
			return key, nil
		}
		return IntKey(i), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidKey, key.Type)
	}
}

// Set stores val under key. An existing key keeps its position and its
// value is replaced. A nil or NilType value removes the key.
func (t *Node) Set(key, val *Node) error {
	if t.Type != TableType {
		return ErrNotTable
	}
	nk, err := NormalKey(key)
	if err != nil {
		return err
	}
	t.setNormal(nk, val)
	return nil
}

// SetField sets t[name] = val and returns t.
func (t *Node) SetField(name string, val *Node) *Node {
	t.setNormal(StringKey(name), val)
	return t
}

// SetIndex sets t[i] = val.
func (t *Node) SetIndex(i int64, val *Node) error {
	if i < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidKey, i)
	}
	t.setNormal(IntKey(i), val)
	return nil
}

func (t *Node) setNormal(key, val *Node) {
	if val != nil && val.Type == NilType {
		val = nil
	}
	i := t.find(key)
	if i == -1 {
		if val == nil {
			return
		}
		key.Parent, key.ParentIndex = t, len(t.Keys)
		val.Parent, val.ParentIndex = t, len(t.Values)
		t.Keys = append(t.Keys, key)
		t.Values = append(t.Values, val)
		return
	}
	if val != nil {
		val.Parent, val.ParentIndex = t, i
		t.Values[i] = val
		return
	}
	t.Keys = slices.Delete(t.Keys, i, i+1)
	t.Values = slices.Delete(t.Values, i, i+1)
	for j := i; j < len(t.Keys); j++ {
		t.Keys[j].ParentIndex = j
		t.Values[j].ParentIndex = j
	}
}

func (t *Node) find(key *Node) int {
	if key.Type == NumberType {
		n := *key.Int64
		if n <= int64(len(t.Keys)) {
			k := t.Keys[n-1]
			if k.Type == NumberType && *k.Int64 == n {
				return int(n - 1)
			}
		}
		for i, k := range t.Keys {
			if k.Type == NumberType && *k.Int64 == n {
				return i
			}
		}
		return -1
	}
	for i, k := range t.Keys {
		if k.Type == StringType && k.String == key.String {
			return i
		}
	}
	return -1
}

// Get returns t[key], or nil if t is not a table or has no such key.
func (t *Node) Get(key *Node) *Node {
	if t == nil || t.Type != TableType {
		return nil
	}
	nk, err := NormalKey(key)
	if err != nil {
		return nil
	}
	i := t.find(nk)
	if i == -1 {
		return nil
	}
	return t.Values[i]
}

func (t *Node) Field(name string) *Node {
	return t.Get(StringKey(name))
}

func (t *Node) Index(i int64) *Node {
	if i < 1 {
		return nil
	}
	return t.Get(IntKey(i))
}

// First returns the first entry of t in insertion order.
func (t *Node) First() (key, val *Node, ok bool) {
	if t == nil || t.Type != TableType || len(t.Keys) == 0 {
		return nil, nil, false
	}
	return t.Keys[0], t.Values[0], true
}

// Len returns the border of t: the largest n such that keys 1..n are
// all present.
func (t *Node) Len() int {
	if t == nil || t.Type != TableType {
		return 0
	}
	n := 0
	for t.Index(int64(n+1)) != nil {
		n++
	}
	return n
}

// IsSequence reports whether the keys of t are exactly 1..len in order.
func (t *Node) IsSequence() bool {
	if t.Type != TableType {
		return false
	}
	for i, k := range t.Keys {
		if k.Type != NumberType || *k.Int64 != int64(i+1) {
			return false
		}
	}
	return true
}

func (t *Node) Pairs() iter.Seq2[*Node, *Node] {
	return func(yield func(*Node, *Node) bool) {
		if t == nil || t.Type != TableType {
			return
		}
		for i, k := range t.Keys {
			if !yield(k, t.Values[i]) {
				return
			}
		}
	}
}

// AsInt returns the integer value of a number node if it is integral.
func (y *Node) AsInt() (int64, bool) {
	if y == nil || y.Type != NumberType {
		return 0, false
	}
	if y.Int64 != nil {
		return *y.Int64, true
	}
	if y.Float64 == nil {
		return 0, false
	}
	f := *y.Float64
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// AsFloat returns the value of a number node as a float64.
func (y *Node) AsFloat() (float64, bool) {
	if y == nil || y.Type != NumberType {
		return 0, false
	}
	if y.Int64 != nil {
		return float64(*y.Int64), true
	}
	if y.Float64 != nil {
		return *y.Float64, true
	}
	return 0, false
}

// KeyString renders a key (or any leaf) for use in messages and paths.
func (y *Node) KeyString() string {
	switch y.Type {
	case StringType:
		return y.String
	case NumberType:
		if y.Int64 != nil {
			return strconv.FormatInt(*y.Int64, 10)
		}
		if y.Float64 != nil {
			return strconv.FormatFloat(*y.Float64, 'g', -1, 64)
		}
	case BoolType:
		return strconv.FormatBool(y.Bool)
	}
	return y.Type.String()
}

func (y *Node) Clone() *Node {
	if y == nil {
		return nil
	}
	res := &Node{Type: y.Type, String: y.String, Bool: y.Bool}
	if y.Float64 != nil {
		f := *y.Float64
		res.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		res.Int64 = &i
	}
	if y.Type != TableType {
		return res
	}
	res.Keys = make([]*Node, len(y.Keys))
	res.Values = make([]*Node, len(y.Values))
	for i := range y.Keys {
		k, v := y.Keys[i].Clone(), y.Values[i].Clone()
		k.Parent, k.ParentIndex = res, i
		v.Parent, v.ParentIndex = res, i
		res.Keys[i] = k
		res.Values[i] = v
	}
	return res
}

func (y *Node) Root() *Node {
	for y.Parent != nil {
		y = y.Parent
	}
	return y
}
