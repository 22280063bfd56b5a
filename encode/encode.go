package encode

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/luamap/format"
	"github.com/signadot/luamap/ir"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth, indent int
	inlineWidth   int
	wire          bool

	format format.Format
	Color  func(ir.Type, ColorAttr, string) string
}

func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent:      2,
		inlineWidth: 72,
	}
	for _, opt := range opts {
		opt(es)
	}
	if node == nil {
		node = ir.Nil()
	}
	var err error
	switch es.format {
	case format.LuaFormat:
		err = encodeLua(node, w, es)
	case format.JSONFormat:
		err = encodeJSON(node, w, es)
	case format.YAMLFormat:
		return encodeYAML(node, w, es)
	default:
		return fmt.Errorf("%w: unknown format %d", ErrEncoding, es.format)
	}
	if err != nil {
		return err
	}
	return writeString(w, "\n")
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

func (es *EncState) newline() string {
	if es.wire {
		return ""
	}
	return "\n" + strings.Repeat(" ", es.indent*es.depth)
}

// leaf renders a non-table value; strings are quoted by quote.
func leaf(node *ir.Node, f format.Format, quote func(string) string) (string, error) {
	switch node.Type {
	case ir.NilType:
		if f == format.LuaFormat {
			return "nil", nil
		}
		return "null", nil
	case ir.BoolType:
		return strconv.FormatBool(node.Bool), nil
	case ir.NumberType:
		if node.Int64 != nil {
			return strconv.FormatInt(*node.Int64, 10), nil
		}
		v, _ := node.AsFloat()
		switch {
		case !math.IsNaN(v) && !math.IsInf(v, 0):
			s := strconv.FormatFloat(v, 'g', -1, 64)
			if f == format.JSONFormat && v == math.Trunc(v) && !strings.ContainsAny(s, "e.") {
				s += ".0"
			}
			return s, nil
		case f != format.LuaFormat:
			return "", fmt.Errorf("%w: %v in %s", ErrEncoding, v, f)
		case math.IsNaN(v):
			return "0/0", nil
		case v > 0:
			return "1/0", nil
		default:
			return "-1/0", nil
		}
	case ir.StringType:
		return quote(node.String), nil
	}
	return "", fmt.Errorf("%w: %s is not a leaf", ErrEncoding, node.Type)
}
