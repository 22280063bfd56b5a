package shape

import (
	"encoding"
	"fmt"
	"reflect"
	"sync"

	"github.com/signadot/luamap/debug"
	"github.com/signadot/luamap/ir"

	"go.uber.org/zap"
)

type entry struct {
	shape *Shape
	err   error
}

// Registry caches the resolved Shape of each Go type. Entries are
// written once and never change, so lookups need no locking.
type Registry struct {
	mu      sync.Mutex
	entries sync.Map // reflect.Type -> *entry
	log     *zap.Logger
}

type RegistryOption func(*Registry)

// WithLogger sets the logger used to report resolutions. Without it,
// resolutions are logged to debug.Logger only when LUAMAP_DEBUG_RESOLVE
// is set.
func WithLogger(l *zap.Logger) RegistryOption {
	return func(r *Registry) { r.log = l }
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process wide registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

var nopLogger = zap.NewNop()

func (r *Registry) logger() *zap.Logger {
	if r.log != nil {
		return r.log
	}
	if debug.Resolve() {
		return debug.Logger()
	}
	return nopLogger
}

// Register resolves T ahead of its first use.
func Register[T any](r *Registry) (*Shape, error) {
	return r.Resolve(reflect.TypeFor[T]())
}

// MustRegister is like Register but panics on a configuration error.
func MustRegister[T any](r *Registry) *Shape {
	sh, err := Register[T](r)
	if err != nil {
		panic(err)
	}
	return sh
}

func (r *Registry) load(t reflect.Type) *entry {
	e, ok := r.entries.Load(t)
	if !ok {
		return nil
	}
	return e.(*entry)
}

// Resolve returns the Shape of the struct type t, resolving it and every
// struct type reachable from its fields on first use. Failures are
// cached as well.
func (r *Registry) Resolve(t reflect.Type) (*Shape, error) {
	if e := r.load(t); e != nil {
		return e.shape, e.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolveLocked(t, nil, map[reflect.Type]bool{})
}

// Bind makes decl the declaration of t in place of its struct tags.
// Fields and variants are matched to Go fields by name and every
// mapped Go field must be declared.
func (r *Registry) Bind(t reflect.Type, decl *TypeDecl) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.load(t) != nil {
		return fmt.Errorf("%s is already resolved", TypeName(t))
	}
	bound, err := bindDecl(t, decl)
	if err != nil {
		return err
	}
	_, err = r.resolveLocked(t, bound, map[reflect.Type]bool{})
	return err
}

func (r *Registry) resolveLocked(t reflect.Type, decl *TypeDecl, inConstruction map[reflect.Type]bool) (*Shape, error) {
	if e := r.load(t); e != nil {
		return e.shape, e.err
	}
	if inConstruction[t] {
		return nil, nil
	}
	inConstruction[t] = true
	defer delete(inConstruction, t)

	sh, err := r.build(t, decl)
	if err == nil {
		err = r.resolveNested(sh, inConstruction)
	}
	if err != nil {
		sh = nil
		r.logger().Debug("shape rejected", zap.String("type", TypeName(t)), zap.Error(err))
	} else {
		r.logger().Debug("shape resolved",
			zap.String("type", sh.Name),
			zap.Stringer("kind", sh.Kind),
			zap.Int("fields", len(sh.Fields)),
			zap.Int("variants", len(sh.Variants)))
	}
	r.entries.Store(t, &entry{shape: sh, err: err})
	return sh, err
}

func (r *Registry) build(t reflect.Type, decl *TypeDecl) (*Shape, error) {
	if decl == nil {
		var err error
		decl, err = DeclOf(t)
		if err != nil {
			return nil, err
		}
	}
	return Resolve(decl)
}

func (r *Registry) resolveNested(sh *Shape, inConstruction map[reflect.Type]bool) error {
	check := func(label string, ft reflect.Type) error {
		err := r.checkType(ft, inConstruction)
		if err == nil {
			return nil
		}
		return &ConfigError{Type: sh.Name, Field: label, Kind: ErrUnsupportedShape, Err: err}
	}
	for i := range sh.Fields {
		f := &sh.Fields[i]
		if err := check(f.Label(), f.GoType); err != nil {
			return err
		}
	}
	for i := range sh.Variants {
		v := &sh.Variants[i]
		if err := check(v.Name, v.GoType); err != nil {
			return err
		}
	}
	return nil
}

var (
	nodeType            = reflect.TypeFor[ir.Node]()
	marshalerType       = reflect.TypeFor[ir.Marshaler]()
	unmarshalerType     = reflect.TypeFor[ir.Unmarshaler]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// Opaque reports whether values of t convert themselves, so that t is
// not given a Shape.
func Opaque(t reflect.Type) bool {
	if t == nodeType {
		return true
	}
	pt := reflect.PointerTo(t)
	for _, it := range []reflect.Type{marshalerType, unmarshalerType, textMarshalerType, textUnmarshalerType} {
		if t.Implements(it) || pt.Implements(it) {
			return true
		}
	}
	return false
}

// checkType verifies that values of t can be converted, resolving the
// struct types it contains.
func (r *Registry) checkType(t reflect.Type, inConstruction map[reflect.Type]bool) error {
	for t != nil {
		if Opaque(t) {
			return nil
		}
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array:
			t = t.Elem()
		case reflect.Map:
			if !isMapKey(t.Key()) {
				return fmt.Errorf("map key %s is neither a string nor an integer", t.Key())
			}
			t = t.Elem()
		case reflect.Struct:
			_, err := r.resolveLocked(t, nil, inConstruction)
			return err
		case reflect.Bool, reflect.String, reflect.Interface,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
			reflect.Float32, reflect.Float64:
			return nil
		default:
			return fmt.Errorf("cannot convert %s values", t)
		}
	}
	return nil
}

func isMapKey(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func bindDecl(t reflect.Type, decl *TypeDecl) (*TypeDecl, error) {
	res := *decl
	res.GoType = t
	if t.Kind() != reflect.Struct {
		return nil, configErr(&res, "", ErrUnsupportedShape, "%s is not a struct", t)
	}
	all, err := collectFields(&res, t, nil)
	if err != nil {
		return nil, err
	}
	goFields := map[string]reflect.StructField{}
	for _, sf := range all {
		if _, ok := markerKind(sf.Type); ok {
			continue
		}
		goFields[sf.Name] = sf
	}
	used := map[string]bool{}
	take := func(name string) (reflect.StructField, error) {
		sf, ok := goFields[name]
		if !ok {
			return sf, configErr(&res, name, ErrUnsupportedShape, "%s has no field %q", t, name)
		}
		used[name] = true
		return sf, nil
	}
	switch res.Kind {
	case EnumDecl:
		res.Variants = append([]VariantDecl(nil), decl.Variants...)
		for i := range res.Variants {
			vd := &res.Variants[i]
			sf, err := take(vd.Name)
			if err != nil {
				return nil, err
			}
			if sf.Type.Kind() != reflect.Pointer {
				return nil, configErr(&res, vd.Name, ErrUnsupportedShape, "variant field must be a pointer, got %s", sf.Type)
			}
			vd.GoIndex = sf.Index
			payload := append([]FieldDecl(nil), vd.payload()...)
			if len(payload) == 1 {
				payload[0].GoType = sf.Type.Elem()
			}
			vd.Fields, vd.Type = payload, ""
		}
	default:
		res.Fields = append([]FieldDecl(nil), decl.Fields...)
		for i := range res.Fields {
			fd := &res.Fields[i]
			sf, err := take(fd.Name)
			if err != nil {
				return nil, err
			}
			fd.GoIndex = sf.Index
			fd.GoType = sf.Type
		}
	}
	for _, sf := range all {
		if _, ok := markerKind(sf.Type); ok || used[sf.Name] {
			continue
		}
		return nil, configErr(&res, sf.Name, ErrUnsupportedShape, "field %q is not declared", sf.Name)
	}
	return &res, nil
}
