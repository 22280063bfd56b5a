package encode

import (
	"io"
	"strconv"
	"strings"

	"github.com/signadot/luamap/format"
	"github.com/signadot/luamap/ir"
)

var luaKeywords = map[string]bool{
	"and": true, "break": true, "do": true, "else": true, "elseif": true,
	"end": true, "false": true, "for": true, "function": true, "goto": true,
	"if": true, "in": true, "local": true, "nil": true, "not": true,
	"or": true, "repeat": true, "return": true, "then": true, "true": true,
	"until": true, "while": true,
}

// LuaQuote quotes s as a Lua string literal. Control characters are
// written as three digit decimal escapes.
func LuaQuote(s string) string {
	b := &strings.Builder{}
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20 || c == 0x7f:
			d := strconv.Itoa(int(c))
			b.WriteString(`\` + strings.Repeat("0", 3-len(d)) + d)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// IsIdent reports whether s can be written as a bare field name.
func IsIdent(s string) bool {
	if s == "" || luaKeywords[s] {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func luaKey(k *ir.Node) string {
	if k.Type == ir.NumberType {
		return "[" + k.KeyString() + "]"
	}
	if IsIdent(k.String) {
		return k.String
	}
	return "[" + LuaQuote(k.String) + "]"
}

func encodeLua(node *ir.Node, w io.Writer, es *EncState) error {
	s, err := es.lua(node)
	if err != nil {
		return err
	}
	return writeString(w, s)
}

func (es *EncState) lua(node *ir.Node) (string, error) {
	if node.Type != ir.TableType {
		s, err := leaf(node, format.LuaFormat, LuaQuote)
		if err != nil {
			return "", err
		}
		return es.color(node.Type, ValueColor, s), nil
	}
	lb := es.color(ir.TableType, SepColor, "{")
	rb := es.color(ir.TableType, SepColor, "}")
	if len(node.Keys) == 0 {
		return lb + rb, nil
	}
	seq := node.IsSequence()
	items := make([]string, len(node.Keys))
	width, nested := 2, false
	es.depth++
	for i, k := range node.Keys {
		v := node.Values[i]
		if v.Type == ir.TableType && len(v.Keys) != 0 {
			nested = true
		}
		vs, err := es.lua(v)
		if err != nil {
			es.depth--
			return "", err
		}
		item := vs
		if !seq {
			key := luaKey(k)
			item = es.color(ir.TableType, FieldColor, key) + " = " + vs
			width += len(key) + 3
		}
		if !nested {
			plain, _ := leaf(v, format.LuaFormat, LuaQuote)
			width += len(plain) + 2
		}
		items[i] = item
	}
	b := &strings.Builder{}
	b.WriteString(lb)
	if es.wire || (!nested && width <= es.inlineWidth) {
		es.depth--
		b.WriteString(strings.Join(items, ", "))
		b.WriteString(rb)
		return b.String(), nil
	}
	for _, item := range items {
		b.WriteString(es.newline())
		b.WriteString(item + ",")
	}
	es.depth--
	b.WriteString(es.newline())
	b.WriteString(rb)
	return b.String(), nil
}
