package shape

import (
	"fmt"
	"slices"
)

// attribute names
const (
	attrArray    = "array"
	attrLuaArray = "as_lua_array"
	attrTag      = "tag"
	attrContent  = "content"
	attrKey      = "key"
	attrIndex    = "index"
)

type attrSet struct {
	owner string
	attrs []Attr
	err   error
}

func parseAttrSet(owner, group string) *attrSet {
	as := &attrSet{owner: owner}
	as.attrs, as.err = ParseAttrs(group)
	return as
}

func canonicalName(name string) string {
	if name == attrLuaArray {
		return attrArray
	}
	return name
}

func (as *attrSet) get(name string) (Attr, bool) {
	for _, a := range as.attrs {
		if canonicalName(a.Name) == name {
			return a, true
		}
	}
	return Attr{}, false
}

func (as *attrSet) has(name string) bool {
	_, ok := as.get(name)
	return ok
}

func (as *attrSet) duplicate() (string, bool) {
	seen := map[string]bool{}
	for _, a := range as.attrs {
		n := canonicalName(a.Name)
		if seen[n] {
			return a.Name, true
		}
		seen[n] = true
	}
	return "", false
}

// check validates names and value kinds against the names allowed in
// this scope.
func (as *attrSet) check(decl *TypeDecl, allowed map[string]ValueKind) *ConfigError {
	if as.err != nil {
		return configErr(decl, as.owner, ErrInvalidAttribute, "%v", as.err)
	}
	for _, a := range as.attrs {
		want, ok := allowed[canonicalName(a.Name)]
		if !ok {
			return configErr(decl, as.owner, ErrInvalidAttribute, "unrecognized attribute %q", a.Name)
		}
		if a.Kind != want {
			return configErr(decl, as.owner, ErrInvalidAttribute, "%s requires a %s, got %q", a.Name, want, a.Raw)
		}
		switch {
		case a.Kind == StringValue && a.Str == "":
			return configErr(decl, as.owner, ErrInvalidAttribute, "%s must not be empty", a.Name)
		case a.Kind == IntValue && a.Int == 0:
			return configErr(decl, as.owner, ErrInvalidAttribute, "%s is 1-based, got 0", a.Name)
		case a.Kind == IntValue && a.Int > 1<<53:
			return configErr(decl, as.owner, ErrInvalidAttribute, "%s %d out of range", a.Name, a.Int)
		}
	}
	return nil
}

var (
	structAttrs  = map[string]ValueKind{attrArray: FlagValue}
	enumAttrs    = map[string]ValueKind{attrTag: StringValue, attrContent: StringValue}
	fieldAttrs   = map[string]ValueKind{attrKey: StringValue, attrIndex: IntValue}
	variantAttrs = map[string]ValueKind{}
)

// Resolve validates decl and produces its Shape. The first rule violated
// is reported as a *ConfigError, checked in this order: unsupported
// kinds, ambiguous field mappings, array mode with named fields, content
// without tag, duplicate attributes, invalid attributes, variant arity.
// Two fields resolving to the same table key are an ambiguous mapping.
func Resolve(decl *TypeDecl) (*Shape, error) {
	switch decl.Kind {
	case StructDecl, TupleDecl:
		return resolveStruct(decl)
	case EnumDecl:
		return resolveEnum(decl)
	case UnionDecl:
		return nil, configErr(decl, "", ErrUnsupportedShape, "unions cannot be converted")
	default:
		return nil, configErr(decl, "", ErrUnsupportedShape, "unknown kind %q", decl.Kind)
	}
}

func fieldOwner(decl *TypeDecl, i int) string {
	f := &decl.Fields[i]
	if f.Name != "" {
		return f.Name
	}
	return fmt.Sprint(i)
}

func resolveStruct(decl *TypeDecl) (*Shape, error) {
	container := parseAttrSet("", decl.Attrs)
	fields := make([]*attrSet, len(decl.Fields))
	for i := range decl.Fields {
		fields[i] = parseAttrSet(fieldOwner(decl, i), decl.Fields[i].Attrs)
	}
	positional := decl.Kind == TupleDecl
	array := container.has(attrArray)

	for _, fa := range fields {
		if fa.has(attrKey) && fa.has(attrIndex) {
			return nil, configErr(decl, fa.owner, ErrAmbiguousField, "both key and index are set")
		}
	}
	if array {
		for _, fa := range fields {
			if fa.has(attrKey) {
				return nil, configErr(decl, fa.owner, ErrArrayModeNamed, "field has a key attribute")
			}
			if !positional && !fa.has(attrIndex) {
				return nil, configErr(decl, fa.owner, ErrArrayModeNamed, "named field has no index")
			}
		}
	}
	for _, as := range append([]*attrSet{container}, fields...) {
		if name, dup := as.duplicate(); dup {
			return nil, configErr(decl, as.owner, ErrDuplicateAttribute, "%s specified more than once", name)
		}
	}
	if err := container.check(decl, structAttrs); err != nil {
		return nil, err
	}
	for _, fa := range fields {
		if err := fa.check(decl, fieldAttrs); err != nil {
			return nil, err
		}
	}

	sh := &Shape{
		Name:   decl.Name,
		Kind:   StructKind,
		Array:  array,
		GoType: decl.GoType,
		Fields: make([]FieldSpec, len(decl.Fields)),
	}
	var maxIndex int64
	for i := range decl.Fields {
		fd := &decl.Fields[i]
		fs := FieldSpec{
			Position: i,
			Type:     fd.Type,
			GoIndex:  fd.GoIndex,
			GoType:   fd.GoType,
		}
		if !positional {
			fs.Name = fd.Name
		}
		if positional || fd.GoIndex != nil {
			fs.GoName = fd.Name
		}
		switch {
		case fields[i].has(attrKey):
			a, _ := fields[i].get(attrKey)
			fs.Key = Key{Name: a.Str}
		case fields[i].has(attrIndex):
			a, _ := fields[i].get(attrIndex)
			fs.Index = int64(a.Int)
			fs.Key = Key{Index: fs.Index}
			maxIndex = max(maxIndex, fs.Index)
		case positional:
			fs.Key = Key{Index: int64(i + 1)}
		default:
			if fd.Name == "" {
				return nil, configErr(decl, fieldOwner(decl, i), ErrInvalidAttribute, "named field without a name")
			}
			fs.Key = Key{Name: fd.Name}
		}
		if j := slices.IndexFunc(sh.Fields[:i], func(o FieldSpec) bool { return o.Key == fs.Key }); j != -1 {
			return nil, configErr(decl, fieldOwner(decl, i), ErrAmbiguousField,
				"key %s is also used by %s", fs.Key, sh.Fields[j].Label())
		}
		sh.Fields[i] = fs
	}
	if maxIndex > int64(len(sh.Fields)) {
		sh.LengthHint = maxIndex
		for i := range sh.Fields {
			if sh.Fields[i].Key.Name == LengthKey && !sh.Fields[i].Key.IsIndex() {
				return nil, configErr(decl, sh.Fields[i].Label(), ErrAmbiguousField,
					"key %q is used for the length of index %d", LengthKey, maxIndex)
			}
		}
	}
	return sh, nil
}

func resolveEnum(decl *TypeDecl) (*Shape, error) {
	container := parseAttrSet("", decl.Attrs)
	variants := make([]*attrSet, len(decl.Variants))
	for i := range decl.Variants {
		variants[i] = parseAttrSet(decl.Variants[i].Name, decl.Variants[i].Attrs)
	}

	if container.has(attrContent) && !container.has(attrTag) {
		return nil, configErr(decl, "", ErrContentWithoutTag, "content is set but tag is not")
	}
	for _, as := range append([]*attrSet{container}, variants...) {
		if name, dup := as.duplicate(); dup {
			return nil, configErr(decl, as.owner, ErrDuplicateAttribute, "%s specified more than once", name)
		}
	}
	if err := container.check(decl, enumAttrs); err != nil {
		return nil, err
	}
	for _, va := range variants {
		if err := va.check(decl, variantAttrs); err != nil {
			return nil, err
		}
	}
	for i := range decl.Variants {
		vd := &decl.Variants[i]
		for j, pf := range vd.payload() {
			if pf.Attrs != "" {
				return nil, configErr(decl, vd.Name, ErrInvalidAttribute, "payload %d has attributes %q", j, pf.Attrs)
			}
		}
	}
	tag, _ := container.get(attrTag)
	content, _ := container.get(attrContent)
	if tag.Str != "" && tag.Str == content.Str {
		return nil, configErr(decl, "", ErrInvalidAttribute, "tag and content are both %q", tag.Str)
	}

	sh := &Shape{
		Name:     decl.Name,
		Kind:     EnumKind,
		Tag:      tag.Str,
		Content:  content.Str,
		GoType:   decl.GoType,
		Variants: make([]VariantSpec, len(decl.Variants)),
	}
	var keys []string
	for i := range decl.Variants {
		vd := &decl.Variants[i]
		payload := vd.payload()
		if len(payload) != 1 {
			return nil, configErr(decl, vd.Name, ErrVariantArity, "has %d payload fields", len(payload))
		}
		key := SnakeCase(vd.Name)
		if j := slices.Index(keys, key); j != -1 {
			return nil, configErr(decl, vd.Name, ErrDuplicateVariant,
				"%s and %s both map to %q", decl.Variants[j].Name, vd.Name, key)
		}
		if sh.Content == "" && key == sh.Tag {
			return nil, configErr(decl, vd.Name, ErrDuplicateVariant, "variant key %q is the tag key", key)
		}
		keys = append(keys, key)
		sh.Variants[i] = VariantSpec{
			Name:    vd.Name,
			Key:     key,
			Type:    payload[0].Type,
			GoIndex: vd.GoIndex,
			GoType:  payload[0].GoType,
		}
	}
	return sh, nil
}
