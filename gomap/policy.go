package gomap

import (
	"github.com/signadot/luamap/ir"
	"github.com/signadot/luamap/shape"
)

// The table layout rules shared by the typed codec and Canonicalize.

func keyPath(path string, k shape.Key) string {
	if k.IsIndex() {
		return ir.JoinIndex(path, k.Index)
	}
	return ir.JoinField(path, k.Name)
}

func setKey(t *ir.Node, k shape.Key, v *ir.Node) {
	if k.IsIndex() {
		_ = t.SetIndex(k.Index, v)
		return
	}
	t.SetField(k.Name, v)
}

func writeLengthHint(t *ir.Node, sh *shape.Shape) {
	if sh.LengthHint > 0 {
		t.SetField(shape.LengthKey, ir.FromInt(sh.LengthHint))
	}
}

// writeEnum builds the table of variant v holding payload.
func writeEnum(sh *shape.Shape, v *shape.VariantSpec, payload *ir.Node) *ir.Node {
	t := ir.NewTable()
	if sh.Tag != "" {
		t.SetField(sh.Tag, ir.FromString(v.Key))
	}
	t.SetField(sh.ContentKey(v), payload)
	return t
}

// selectVariant finds the variant of an enum table and its payload.
//   - tag and content: table[tag] names the variant, table[content] holds it
//   - tag only: table[tag] names the variant, table[table[tag]] holds it
//   - neither: the first entry of the table is the variant and payload
//
// The payload is nil when absent.
func selectVariant(node *ir.Node, sh *shape.Shape, path string) (*shape.VariantSpec, *ir.Node, error) {
	var key string
	var payload *ir.Node
	if sh.Tag != "" {
		tv := node.Field(sh.Tag)
		if tv == nil {
			return nil, nil, &ConversionError{Op: "decode", Kind: KindMissingKey, Type: sh.Name, Key: sh.Tag, Path: path, Detail: "tag"}
		}
		if tv.Type != ir.StringType {
			return nil, nil, decodeErr(KindTypeMismatch, sh.Name, ir.JoinField(path, sh.Tag), "tag must be a string, got %s", tv.Type)
		}
		key = tv.String
		if sh.Content != "" {
			payload = node.Field(sh.Content)
		} else {
			payload = node.Field(key)
		}
	} else {
		k, v, ok := node.First()
		if !ok {
			return nil, nil, decodeErr(KindEmptyTable, sh.Name, path, "")
		}
		key, payload = k.KeyString(), v
	}
	v := sh.Variant(key)
	if v == nil {
		return nil, nil, &ConversionError{Op: "decode", Kind: KindUnknownVariant, Type: sh.Name, Key: key, Path: path}
	}
	return v, payload, nil
}

func missingKey(sh *shape.Shape, path, key string) *ConversionError {
	return &ConversionError{Op: "decode", Kind: KindMissingKey, Type: sh.Name, Key: key, Path: path}
}
