package encode

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/signadot/luamap/format"
	"github.com/signadot/luamap/ir"
)

func jsonQuote(s string) string {
	b := &strings.Builder{}
	enc := json.NewEncoder(b)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(b.String(), "\n")
}

// encodeJSON writes sequences as arrays and other tables as objects,
// integer keys becoming their decimal strings.
func encodeJSON(node *ir.Node, w io.Writer, es *EncState) error {
	s, err := es.json(node)
	if err != nil {
		return err
	}
	return writeString(w, s)
}

func (es *EncState) json(node *ir.Node) (string, error) {
	if node.Type != ir.TableType {
		s, err := leaf(node, format.JSONFormat, jsonQuote)
		if err != nil {
			return "", err
		}
		return es.color(node.Type, ValueColor, s), nil
	}
	seq := node.IsSequence() && len(node.Keys) != 0
	lb, rb := "{", "}"
	if seq {
		lb, rb = "[", "]"
	}
	lb = es.color(ir.TableType, SepColor, lb)
	rb = es.color(ir.TableType, SepColor, rb)
	if len(node.Keys) == 0 {
		return lb + rb, nil
	}
	sep := ","
	colon := ": "
	if es.wire {
		colon = ":"
	}
	b := &strings.Builder{}
	b.WriteString(lb)
	es.depth++
	for i, k := range node.Keys {
		vs, err := es.json(node.Values[i])
		if err != nil {
			es.depth--
			return "", err
		}
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(es.newline())
		if !seq {
			b.WriteString(es.color(ir.TableType, FieldColor, jsonQuote(k.KeyString())) + colon)
		}
		b.WriteString(vs)
	}
	es.depth--
	b.WriteString(es.newline())
	b.WriteString(rb)
	return b.String(), nil
}
