package gomap

import (
	"encoding"
	"reflect"
	"strconv"

	"github.com/signadot/luamap/debug"
	"github.com/signadot/luamap/ir"
	"github.com/signadot/luamap/shape"

	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
)

type decoder struct {
	m *Mapper
}

// Decode converts node into the value pointed to by v. The value is
// built separately and only stored into *v when every part of it
// decoded, so a failed Decode leaves *v unchanged.
func (m *Mapper) Decode(node *ir.Node, v any) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return decodeErr(KindUnsupported, typeName(reflect.TypeOf(v)), "", "decode target must be a non-nil pointer")
	}
	d := &decoder{m: m}
	tmp := reflect.New(rv.Elem().Type()).Elem()
	err := d.value(node, tmp, "$")
	if debug.Decode() {
		debug.Logger().Debug("decode", zap.String("type", typeName(tmp.Type())), zap.Error(err))
	}
	if err != nil {
		return err
	}
	rv.Elem().Set(tmp)
	return nil
}

var nilNode = ir.Nil()

func isNil(node *ir.Node) bool {
	return node == nil || node.Type == ir.NilType
}

// nillable reports whether an absent key may decode into t.
func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		return true
	}
	return false
}

func mismatch(t reflect.Type, path, want string, node *ir.Node) *ConversionError {
	return decodeErr(KindTypeMismatch, typeName(t), path, "expected %s, got %s", want, node.Type)
}

func (d *decoder) value(node *ir.Node, val reflect.Value, path string) error {
	if node == nil {
		node = nilNode
	}
	t := val.Type()
	switch t {
	case nodePtrType:
		if isNil(node) {
			val.SetZero()
			return nil
		}
		val.Set(reflect.ValueOf(node.Clone()))
		return nil
	case nodeType:
		val.Set(reflect.ValueOf(node.Clone()).Elem())
		return nil
	}
	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface && val.CanAddr() {
		if u, ok := val.Addr().Interface().(Unmarshaler); ok {
			if err := u.UnmarshalTable(node); err != nil {
				return &ConversionError{Op: "decode", Kind: KindTypeMismatch, Type: typeName(t), Path: path, Err: err}
			}
			return nil
		}
		if u, ok := val.Addr().Interface().(encoding.TextUnmarshaler); ok {
			s, ok := stringOf(node)
			if !ok {
				return mismatch(t, path, "string", node)
			}
			if err := u.UnmarshalText([]byte(s)); err != nil {
				return &ConversionError{Op: "decode", Kind: KindTypeMismatch, Type: typeName(t), Path: path, Err: err}
			}
			return nil
		}
	}

	switch val.Kind() {
	case reflect.Pointer:
		if isNil(node) {
			val.SetZero()
			return nil
		}
		p := reflect.New(t.Elem())
		if err := d.value(node, p.Elem(), path); err != nil {
			return err
		}
		val.Set(p)
		return nil
	case reflect.Interface:
		if isNil(node) {
			val.SetZero()
			return nil
		}
		if t.NumMethod() != 0 {
			return decodeErr(KindUnsupported, typeName(t), path, "cannot decode into a non-empty interface")
		}
		val.Set(reflect.ValueOf(dynamic(node)))
		return nil
	case reflect.Bool:
		if node.Type != ir.BoolType {
			return mismatch(t, path, "boolean", node)
		}
		val.SetBool(node.Bool)
		return nil
	case reflect.Int:
		return setInt[int](node, val, path)
	case reflect.Int8:
		return setInt[int8](node, val, path)
	case reflect.Int16:
		return setInt[int16](node, val, path)
	case reflect.Int32:
		return setInt[int32](node, val, path)
	case reflect.Int64:
		return setInt[int64](node, val, path)
	case reflect.Uint:
		return setUint[uint](node, val, path)
	case reflect.Uint8:
		return setUint[uint8](node, val, path)
	case reflect.Uint16:
		return setUint[uint16](node, val, path)
	case reflect.Uint32:
		return setUint[uint32](node, val, path)
	case reflect.Uint64:
		return setUint[uint64](node, val, path)
	case reflect.Uintptr:
		return setUint[uintptr](node, val, path)
	case reflect.Float32:
		return setFloat[float32](node, val, path)
	case reflect.Float64:
		return setFloat[float64](node, val, path)
	case reflect.String:
		s, ok := stringOf(node)
		if !ok {
			return mismatch(t, path, "string", node)
		}
		val.SetString(s)
		return nil
	case reflect.Slice:
		if isNil(node) {
			val.SetZero()
			return nil
		}
		if t.Elem().Kind() == reflect.Uint8 {
			s, ok := stringOf(node)
			if !ok {
				return mismatch(t, path, "string", node)
			}
			val.SetBytes([]byte(s))
			return nil
		}
		return d.slice(node, val, path)
	case reflect.Array:
		return d.array(node, val, path)
	case reflect.Map:
		if isNil(node) {
			val.SetZero()
			return nil
		}
		return d.mapValue(node, val, path)
	case reflect.Struct:
		return d.structValue(node, val, path)
	default:
		return decodeErr(KindUnsupported, typeName(t), path, "cannot decode into %s", t.Kind())
	}
}

func numberErr[T any](e numberError, node *ir.Node, path string) error {
	t := reflect.TypeFor[T]()
	switch e {
	case notANumber:
		return mismatch(t, path, "number", node)
	case notIntegral:
		return decodeErr(KindTypeMismatch, typeName(t), path, "%s is not an integer", node.KeyString())
	default:
		return decodeErr(KindOverflow, typeName(t), path, "%s does not fit", node.KeyString())
	}
}

func setInt[T constraints.Signed](node *ir.Node, val reflect.Value, path string) error {
	v, e := integer[T](node)
	if e != 0 {
		return numberErr[T](e, node, path)
	}
	val.SetInt(int64(v))
	return nil
}

func setUint[T constraints.Unsigned](node *ir.Node, val reflect.Value, path string) error {
	v, e := integer[T](node)
	if e != 0 {
		return numberErr[T](e, node, path)
	}
	val.SetUint(uint64(v))
	return nil
}

func setFloat[T constraints.Float](node *ir.Node, val reflect.Value, path string) error {
	v, e := floating[T](node)
	if e != 0 {
		return numberErr[T](e, node, path)
	}
	val.SetFloat(float64(v))
	return nil
}

// dynamic converts node for an empty interface: sequences become []any,
// other tables map[string]any.
func dynamic(node *ir.Node) any {
	switch node.Type {
	case ir.BoolType:
		return node.Bool
	case ir.NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		f, _ := node.AsFloat()
		return f
	case ir.StringType:
		return node.String
	case ir.TableType:
		if len(node.Keys) != 0 && node.IsSequence() {
			res := make([]any, len(node.Values))
			for i, v := range node.Values {
				res[i] = dynamic(v)
			}
			return res
		}
		res := make(map[string]any, len(node.Keys))
		for k, v := range node.Pairs() {
			res[k.KeyString()] = dynamic(v)
		}
		return res
	}
	return nil
}

func (d *decoder) slice(node *ir.Node, val reflect.Value, path string) error {
	t := val.Type()
	if node.Type != ir.TableType {
		return mismatch(t, path, "table", node)
	}
	n := node.Len()
	res := reflect.MakeSlice(t, n, n)
	for i := 0; i < n; i++ {
		idx := int64(i + 1)
		if err := d.value(node.Index(idx), res.Index(i), ir.JoinIndex(path, idx)); err != nil {
			return err
		}
	}
	val.Set(res)
	return nil
}

func (d *decoder) array(node *ir.Node, val reflect.Value, path string) error {
	t := val.Type()
	if t.Elem().Kind() == reflect.Uint8 {
		s, ok := stringOf(node)
		if !ok {
			return mismatch(t, path, "string", node)
		}
		if len(s) != t.Len() {
			return decodeErr(KindTypeMismatch, typeName(t), path, "expected %d bytes, got %d", t.Len(), len(s))
		}
		reflect.Copy(val, reflect.ValueOf([]byte(s)))
		return nil
	}
	if node.Type != ir.TableType {
		return mismatch(t, path, "table", node)
	}
	for i := 0; i < t.Len(); i++ {
		idx := int64(i + 1)
		child := node.Index(idx)
		if child == nil && !nillable(t.Elem()) {
			return &ConversionError{Op: "decode", Kind: KindMissingKey, Type: typeName(t), Key: strconv.Itoa(i + 1), Path: path}
		}
		if err := d.value(child, val.Index(i), ir.JoinIndex(path, idx)); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) mapValue(node *ir.Node, val reflect.Value, path string) error {
	t := val.Type()
	if node.Type != ir.TableType {
		return mismatch(t, path, "table", node)
	}
	res := reflect.MakeMapWithSize(t, len(node.Keys))
	for k, v := range node.Pairs() {
		key := reflect.New(t.Key()).Elem()
		if t.Key().Kind() == reflect.String {
			key.SetString(k.KeyString())
		} else if err := d.value(k, key, path); err != nil {
			return decodeErr(KindInvalidKey, typeName(t), path, "key %q: %v", k.KeyString(), err)
		}
		elem := reflect.New(t.Elem()).Elem()
		if err := d.value(v, elem, ir.JoinPath(path, k)); err != nil {
			return err
		}
		res.SetMapIndex(key, elem)
	}
	val.Set(res)
	return nil
}

func (d *decoder) structValue(node *ir.Node, val reflect.Value, path string) error {
	t := val.Type()
	sh, err := d.m.registry.Resolve(t)
	if err != nil {
		return err
	}
	if node.Type != ir.TableType {
		return decodeErr(KindNotATable, sh.Name, path, "got %s", node.Type)
	}
	tmp := reflect.New(t).Elem()
	if sh.Kind == shape.EnumKind {
		err = d.enumValue(node, tmp, sh, path)
	} else {
		err = d.fields(node, tmp, sh, path)
	}
	if err != nil {
		return err
	}
	val.Set(tmp)
	return nil
}

func (d *decoder) fields(node *ir.Node, val reflect.Value, sh *shape.Shape, path string) error {
	for i := range sh.Fields {
		f := &sh.Fields[i]
		child := node.Get(f.Key.Node())
		if child == nil && !nillable(f.GoType) {
			return missingKey(sh, path, f.Key.String())
		}
		if err := d.value(child, val.FieldByIndex(f.GoIndex), keyPath(path, f.Key)); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) enumValue(node *ir.Node, val reflect.Value, sh *shape.Shape, path string) error {
	v, payload, err := selectVariant(node, sh, path)
	if err != nil {
		return err
	}
	contentKey := sh.ContentKey(v)
	if payload == nil && !nillable(v.GoType) {
		return missingKey(sh, path, contentKey)
	}
	p := reflect.New(v.GoType)
	if err := d.value(payload, p.Elem(), ir.JoinField(path, contentKey)); err != nil {
		return err
	}
	val.FieldByIndex(v.GoIndex).Set(p)
	return nil
}
