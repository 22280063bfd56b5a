package encode

import (
	"bytes"
	"io"

	"github.com/signadot/luamap/ir"

	"github.com/goccy/go-yaml"
)

// ToYAML converts node to the values go-yaml marshals: yaml.MapSlice
// for tables, keeping their order, and []any for sequences.
func ToYAML(node *ir.Node) any {
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
				res[i] = ToYAML(v)
			}
			return res
		}
		res := make(yaml.MapSlice, len(node.Keys))
		for i, k := range node.Keys {
			res[i] = yaml.MapItem{Key: ToYAML(k), Value: ToYAML(node.Values[i])}
		}
		return res
	}
	return nil
}

func encodeYAML(node *ir.Node, w io.Writer, es *EncState) error {
	opts := []yaml.EncodeOption{yaml.Indent(es.indent), yaml.IndentSequence(true)}
	if es.wire {
		opts = append(opts, yaml.Flow(true))
	}
	d, err := yaml.MarshalWithOptions(ToYAML(node), opts...)
	if err != nil {
		return err
	}
	d = append(bytes.TrimRight(d, "\n"), '\n')
	_, err = w.Write(d)
	return err
}
