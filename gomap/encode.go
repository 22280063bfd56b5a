package gomap

import (
	"encoding"
	"math"
	"reflect"
	"slices"

	"github.com/signadot/luamap/debug"
	"github.com/signadot/luamap/ir"
	"github.com/signadot/luamap/shape"

	"go.uber.org/zap"
)

var (
	nodeType          = reflect.TypeFor[ir.Node]()
	nodePtrType       = reflect.TypeFor[*ir.Node]()
	marshalerType     = reflect.TypeFor[Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

type encoder struct {
	m       *Mapper
	visited map[visit]bool
}

// visit identifies a pointer, map or slice on the current encoding path.
// Slices sharing a backing array differ by length.
type visit struct {
	kind reflect.Kind
	ptr  uintptr
	len  int
}

// Encode converts v to a value. Structs become tables laid out by their
// Shape; the other Go kinds convert as described in the package
// documentation.
func (m *Mapper) Encode(v any) (*ir.Node, error) {
	e := &encoder{m: m, visited: map[visit]bool{}}
	node, err := e.value(reflect.ValueOf(v), "$")
	if debug.Encode() {
		debug.Logger().Debug("encode", zap.String("type", typeName(reflect.TypeOf(v))), zap.Error(err))
	}
	if err != nil {
		return nil, err
	}
	return node, nil
}

func typeName(t reflect.Type) string {
	return shape.TypeName(t)
}

func (e *encoder) value(val reflect.Value, path string) (*ir.Node, error) {
	if !val.IsValid() {
		return ir.Nil(), nil
	}
	t := val.Type()
	switch val.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if val.IsNil() {
			return ir.Nil(), nil
		}
	}
	if !val.CanAddr() && addrMethods(t) {
		c := reflect.New(t).Elem()
		c.Set(val)
		val = c
	}
	switch t {
	case nodePtrType:
		return val.Interface().(*ir.Node).Clone(), nil
	case nodeType:
		n := val.Interface().(ir.Node)
		return n.Clone(), nil
	}
	if m, ok := asInterface[Marshaler](val, marshalerType); ok {
		node, err := m.MarshalTable()
		if err != nil {
			return nil, &ConversionError{Op: "encode", Kind: KindUnsupported, Type: typeName(t), Path: path, Err: err}
		}
		if node == nil {
			node = ir.Nil()
		}
		return node, nil
	}
	if m, ok := asInterface[encoding.TextMarshaler](val, textMarshalerType); ok {
		d, err := m.MarshalText()
		if err != nil {
			return nil, &ConversionError{Op: "encode", Kind: KindUnsupported, Type: typeName(t), Path: path, Err: err}
		}
		return ir.FromString(string(d)), nil
	}

	switch val.Kind() {
	case reflect.Pointer:
		leave, err := e.enter(val, path)
		if err != nil {
			return nil, err
		}
		defer leave()
		return e.value(val.Elem(), path)
	case reflect.Interface:
		return e.value(val.Elem(), path)
	case reflect.Bool:
		return ir.FromBool(val.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := val.Uint()
		if u > math.MaxInt64 {
			return nil, encodeErr(KindOverflow, typeName(t), path, "%d does not fit in a number", u)
		}
		return ir.FromInt(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return ir.FromFloat(val.Float()), nil
	case reflect.String:
		return ir.FromString(val.String()), nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return ir.FromString(string(val.Bytes())), nil
		}
		if val.Len() > 0 {
			leave, err := e.enter(val, path)
			if err != nil {
				return nil, err
			}
			defer leave()
		}
		return e.sequence(val, path)
	case reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			b := make([]byte, val.Len())
			reflect.Copy(reflect.ValueOf(b), val)
			return ir.FromString(string(b)), nil
		}
		return e.sequence(val, path)
	case reflect.Map:
		if val.Len() > 0 {
			leave, err := e.enter(val, path)
			if err != nil {
				return nil, err
			}
			defer leave()
		}
		return e.mapValue(val, path)
	case reflect.Struct:
		return e.structValue(val, path)
	default:
		return nil, encodeErr(KindUnsupported, typeName(t), path, "cannot encode %s", val.Kind())
	}
}

// enter marks val as being encoded until the returned func is called.
func (e *encoder) enter(val reflect.Value, path string) (func(), error) {
	v := visit{kind: val.Kind(), ptr: val.Pointer()}
	if v.kind == reflect.Slice {
		v.len = val.Len()
	}
	if e.visited[v] {
		return nil, encodeErr(KindCycle, typeName(val.Type()), path, "%s already being encoded", v.kind)
	}
	e.visited[v] = true
	return func() { delete(e.visited, v) }, nil
}

// addrMethods reports whether *t has conversion methods that t lacks.
func addrMethods(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer || t.Kind() == reflect.Interface {
		return false
	}
	pt := reflect.PointerTo(t)
	return (pt.Implements(marshalerType) && !t.Implements(marshalerType)) ||
		(pt.Implements(textMarshalerType) && !t.Implements(textMarshalerType))
}

// asInterface returns val as an I if val, or its address, implements it.
func asInterface[I any](val reflect.Value, it reflect.Type) (I, bool) {
	var zero I
	if val.Type().Implements(it) {
		if val.Kind() == reflect.Pointer && val.IsNil() {
			return zero, false
		}
		return val.Interface().(I), true
	}
	if val.CanAddr() && val.Addr().Type().Implements(it) {
		return val.Addr().Interface().(I), true
	}
	return zero, false
}

func (e *encoder) sequence(val reflect.Value, path string) (*ir.Node, error) {
	res := ir.NewTable()
	for i := 0; i < val.Len(); i++ {
		idx := int64(i + 1)
		child, err := e.value(val.Index(i), ir.JoinIndex(path, idx))
		if err != nil {
			return nil, err
		}
		_ = res.SetIndex(idx, child)
	}
	return res, nil
}

func (e *encoder) mapValue(val reflect.Value, path string) (*ir.Node, error) {
	t := val.Type()
	type entry struct {
		key *ir.Node
		val reflect.Value
	}
	entries := make([]entry, 0, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		k := iter.Key()
		var key *ir.Node
		switch k.Kind() {
		case reflect.String:
			key = ir.StringKey(k.String())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if k.Int() < 1 {
				return nil, encodeErr(KindInvalidKey, typeName(t), path, "integer key %d is not positive", k.Int())
			}
			key = ir.IntKey(k.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if k.Uint() < 1 || k.Uint() > math.MaxInt64 {
				return nil, encodeErr(KindInvalidKey, typeName(t), path, "integer key %d out of range", k.Uint())
			}
			key = ir.IntKey(int64(k.Uint()))
		default:
			return nil, encodeErr(KindInvalidKey, typeName(t), path, "cannot use %s as a key", k.Kind())
		}
		entries = append(entries, entry{key: key, val: iter.Value()})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return ir.Compare(a.key, b.key)
	})
	res := ir.NewTable()
	for _, ent := range entries {
		child, err := e.value(ent.val, ir.JoinPath(path, ent.key))
		if err != nil {
			return nil, err
		}
		if err := res.Set(ent.key, child); err != nil {
			return nil, encodeErr(KindInvalidKey, typeName(t), path, "%v", err)
		}
	}
	return res, nil
}

func (e *encoder) structValue(val reflect.Value, path string) (*ir.Node, error) {
	sh, err := e.m.registry.Resolve(val.Type())
	if err != nil {
		return nil, err
	}
	if sh.Kind == shape.EnumKind {
		return e.enumValue(val, sh, path)
	}
	res := ir.NewTable()
	for i := range sh.Fields {
		f := &sh.Fields[i]
		child, err := e.value(val.FieldByIndex(f.GoIndex), keyPath(path, f.Key))
		if err != nil {
			return nil, err
		}
		setKey(res, f.Key, child)
	}
	writeLengthHint(res, sh)
	return res, nil
}

func (e *encoder) enumValue(val reflect.Value, sh *shape.Shape, path string) (*ir.Node, error) {
	var chosen *shape.VariantSpec
	var payload reflect.Value
	for i := range sh.Variants {
		v := &sh.Variants[i]
		fv := val.FieldByIndex(v.GoIndex)
		if fv.IsNil() {
			continue
		}
		if chosen != nil {
			return nil, encodeErr(KindNoVariant, sh.Name, path, "both %s and %s are set", chosen.Name, v.Name)
		}
		chosen, payload = v, fv.Elem()
	}
	if chosen == nil {
		return nil, encodeErr(KindNoVariant, sh.Name, path, "no variant is set")
	}
	contentPath := ir.JoinField(path, sh.ContentKey(chosen))
	child, err := e.value(payload, contentPath)
	if err != nil {
		return nil, err
	}
	// an untagged variant is only identified by its entry
	if sh.Tag == "" && child.Type == ir.NilType {
		return nil, encodeErr(KindUnsupported, sh.Name, contentPath, "variant %s has a nil payload", chosen.Name)
	}
	return writeEnum(sh, chosen, child), nil
}
