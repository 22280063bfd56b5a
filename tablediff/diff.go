package tablediff

import (
	"github.com/signadot/luamap/encode"
	"github.com/signadot/luamap/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Added Op = iota
	Removed
	Changed
)

func (o Op) String() string {
	switch o {
	case Added:
		return "+"
	case Removed:
		return "-"
	default:
		return "~"
	}
}

// Change is one differing entry. From is nil for Added, To for Removed.
type Change struct {
	Op   Op
	Path string
	From *ir.Node
	To   *ir.Node
}

func (c Change) String() string {
	wire := encode.EncodeWire(true)
	switch c.Op {
	case Added:
		return c.Op.String() + " " + c.Path + " = " + encode.MustString(c.To, wire)
	case Removed:
		return c.Op.String() + " " + c.Path + " = " + encode.MustString(c.From, wire)
	}
	return c.Op.String() + " " + c.Path + ": " + encode.MustString(c.From, wire) + " -> " + encode.MustString(c.To, wire)
}

// Diff returns the changes turning from into to. Tables are compared
// entry by entry, recursively; other values are compared with ir.Equal.
func Diff(from, to *ir.Node) []Change {
	return diff(from, to, "$", nil)
}

func diff(from, to *ir.Node, path string, res []Change) []Change {
	if from == nil {
		from = ir.Nil()
	}
	if to == nil {
		to = ir.Nil()
	}
	if from.Type != ir.TableType || to.Type != ir.TableType {
		if !ir.Equal(from, to) {
			res = append(res, Change{Op: Changed, Path: path, From: from, To: to})
		}
		return res
	}
	return diffTable(from, to, path, res)
}

// keyID identifies a key across both tables: integer keys and strings
// must not collide.
func keyID(k *ir.Node) string {
	if k.Type == ir.NumberType {
		return "#" + k.KeyString()
	}
	return "." + k.String
}

func diffTable(from, to *ir.Node, path string, res []Change) []Change {
	fieldMap := map[string]rune{}
	runeMap := map[rune]*ir.Node{}
	fromRunes := mapKeysTo(fieldMap, runeMap, from)
	toRunes := mapKeysTo(fieldMap, runeMap, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)

	// keys present on both sides but not aligned are compared, not
	// added and removed
	deleted := map[rune]bool{}
	inserted := map[rune]bool{}
	for i := range diffs {
		for _, r := range diffs[i].Text {
			switch diffs[i].Type {
			case diffpatch.DiffDelete:
				deleted[r] = true
			case diffpatch.DiffInsert:
				inserted[r] = true
			}
		}
	}
	for i := range diffs {
		d := &diffs[i]
		for _, r := range d.Text {
			key := runeMap[r]
			kp := ir.JoinPath(path, key)
			switch {
			case d.Type == diffpatch.DiffEqual:
				res = diff(from.Get(key), to.Get(key), kp, res)
			case d.Type == diffpatch.DiffDelete && inserted[r]:
				res = diff(from.Get(key), to.Get(key), kp, res)
			case d.Type == diffpatch.DiffDelete:
				res = append(res, Change{Op: Removed, Path: kp, From: from.Get(key)})
			case d.Type == diffpatch.DiffInsert && !deleted[r]:
				res = append(res, Change{Op: Added, Path: kp, To: to.Get(key)})
			}
		}
	}
	return res
}

func mapKeysTo(m map[string]rune, im map[rune]*ir.Node, node *ir.Node) []rune {
	rs := make([]rune, len(node.Keys))
	for i, k := range node.Keys {
		id := keyID(k)
		r, ok := m[id]
		if !ok {
			r = rune(len(m))
			m[id] = r
			im[r] = k
		}
		rs[i] = r
	}
	return rs
}
