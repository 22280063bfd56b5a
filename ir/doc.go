// Package ir provides the dynamic value model shared by the codec, the
// Lua bridge and the text formats.
//
// A table is an insertion ordered mapping from keys to values. Keys are
// strings or integers >= 1; values are never nil, storing nil removes
// the key, and storing under an existing key replaces its value in
// place (last write wins).
//
//	t := ir.NewTable()
//	t.SetField("type", ir.FromString("num"))
//	t.SetField("val", ir.FromInt(37))
//	k, v, _ := t.First() // "type", "num"
package ir
