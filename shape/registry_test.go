package shape

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/signadot/luamap/debug"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type tree struct {
	Value    int
	Children []*tree
}

type badLeaf struct {
	Key string `lua:"key='a', index=1"`
}

type holdsBad struct {
	Inner *badLeaf
}

type holdsChan struct {
	C chan int
}

type boolMap struct {
	M map[bool]string
}

type bindTarget struct {
	Kind  string
	Count int
}

type bindEnum struct {
	A *int
	B *string
}

func TestRegistryCaches(t *testing.T) {
	r := NewRegistry()
	a, err := Register[named](r)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Resolve(reflect.TypeFor[named]())
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("shape resolved twice")
	}
}

func TestRegistryRecursiveType(t *testing.T) {
	r := NewRegistry()
	sh, err := Register[tree](r)
	if err != nil {
		t.Fatal(err)
	}
	if len(sh.Fields) != 2 || sh.Fields[1].Key.Name != "Children" {
		t.Errorf("unexpected shape %+v", sh)
	}
}

func TestRegistryNestedErrors(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want error
	}{
		{"nested config", reflect.TypeFor[holdsBad](), ErrAmbiguousField},
		{"chan field", reflect.TypeFor[holdsChan](), ErrUnsupportedShape},
		{"bool map key", reflect.TypeFor[boolMap](), ErrUnsupportedShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			_, err := r.Resolve(tt.typ)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			_, again := r.Resolve(tt.typ)
			if again != err {
				t.Errorf("error not cached")
			}
		})
	}
}

func TestMustRegisterPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic")
		}
	}()
	MustRegister[badLeaf](NewRegistry())
}

func TestRegistryConcurrent(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	shapes := make([]*Shape, 16)
	for i := range shapes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			shapes[i], _ = Register[message](r)
		}()
	}
	wg.Wait()
	for _, sh := range shapes {
		if sh == nil || sh != shapes[0] {
			t.Fatalf("inconsistent shapes")
		}
	}
}

func TestRegistryLogs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := NewRegistry(WithLogger(zap.New(core)))
	MustRegister[point](r)
	if logs.FilterMessage("shape resolved").Len() != 1 {
		t.Errorf("expected one resolution log, got %v", logs.All())
	}
}

func TestRegistryQuietByDefault(t *testing.T) {
	if debug.Resolve() {
		t.Skip("LUAMAP_DEBUG_RESOLVE is set")
	}
	core, logs := observer.New(zap.DebugLevel)
	debug.SetLogger(zap.New(core))
	defer debug.SetLogger(nil)
	MustRegister[point](NewRegistry())
	if logs.Len() != 0 {
		t.Errorf("expected no resolution logs, got %v", logs.All())
	}
}

func TestBind(t *testing.T) {
	r := NewRegistry()
	err := r.Bind(reflect.TypeFor[bindTarget](), &TypeDecl{
		Name: "Target",
		Kind: TupleDecl,
		Fields: []FieldDecl{
			{Name: "Kind"},
			{Name: "Count", Attrs: "key='count'"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	sh, err := Register[bindTarget](r)
	if err != nil {
		t.Fatal(err)
	}
	if sh.Name != "Target" || sh.Fields[0].Key.Index != 1 || sh.Fields[1].Key.Name != "count" {
		t.Errorf("unexpected shape %+v", sh)
	}
	if sh.Fields[1].GoType != reflect.TypeFor[int]() {
		t.Errorf("go type not bound")
	}
	if err := r.Bind(reflect.TypeFor[bindTarget](), &TypeDecl{Name: "X", Kind: StructDecl}); err == nil {
		t.Errorf("rebinding succeeded")
	}
}

func TestBindEnum(t *testing.T) {
	r := NewRegistry()
	err := r.Bind(reflect.TypeFor[bindEnum](), &TypeDecl{
		Name:  "Either",
		Kind:  EnumDecl,
		Attrs: "tag='t'",
		Variants: []VariantDecl{
			{Name: "A", Type: TypeInteger},
			{Name: "B", Type: TypeString},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	sh, _ := Register[bindEnum](r)
	if sh.Variants[1].GoType != reflect.TypeFor[string]() || sh.Variants[1].GoIndex[0] != 1 {
		t.Errorf("unexpected variant %+v", sh.Variants[1])
	}
}

func TestBindErrors(t *testing.T) {
	tests := []struct {
		name string
		decl *TypeDecl
		msg  string
	}{
		{
			"missing go field",
			&TypeDecl{Name: "T", Kind: StructDecl, Fields: []FieldDecl{{Name: "Kind"}, {Name: "Count"}, {Name: "Extra"}}},
			`has no field "Extra"`,
		},
		{
			"undeclared go field",
			&TypeDecl{Name: "T", Kind: StructDecl, Fields: []FieldDecl{{Name: "Kind"}}},
			`field "Count" is not declared`,
		},
		{
			"variant not a pointer",
			&TypeDecl{Name: "T", Kind: EnumDecl, Variants: []VariantDecl{{Name: "Kind", Type: TypeString}}},
			"must be a pointer",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRegistry().Bind(reflect.TypeFor[bindTarget](), tt.decl)
			if !errors.Is(err, ErrUnsupportedShape) || !strings.Contains(err.Error(), tt.msg) {
				t.Fatalf("unexpected error %v", err)
			}
		})
	}
}
