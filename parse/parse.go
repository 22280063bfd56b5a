package parse

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/signadot/luamap/format"
	"github.com/signadot/luamap/ir"
	"github.com/signadot/luamap/luabridge"

	"github.com/goccy/go-yaml"
)

var ErrParse = errors.New("parse error")

// Parse reads one value from d, by default in lua format.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{format: format.LuaFormat, name: "input"}
	for _, f := range opts {
		f(pOpts)
	}
	switch pOpts.format {
	case format.LuaFormat:
		return parseLua(string(d), pOpts.name)
	case format.JSONFormat, format.YAMLFormat:
		return parseYAML(d, pOpts.name, pOpts.format == format.JSONFormat)
	}
	return nil, fmt.Errorf("%w: unknown format %d", ErrParse, pOpts.format)
}

// parseLua evaluates src as an expression first, then as a chunk.
func parseLua(src, name string) (*ir.Node, error) {
	node, err := luabridge.Eval("return "+src, name)
	if err == nil {
		return node, nil
	}
	node, err2 := luabridge.Eval(src, name)
	if err2 != nil {
		if errors.Is(err, luabridge.ErrTableKey) || errors.Is(err, luabridge.ErrUnsupportedValue) || errors.Is(err, luabridge.ErrTableCycle) {
			err2 = err
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, name, err2)
	}
	return node, nil
}

// parseYAML reads yaml or json. JSON objects cannot have integer keys, so
// with decimalKeys a key written as a canonical positive decimal string
// becomes an integer key.
func parseYAML(d []byte, name string, decimalKeys bool) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, name, err)
	}
	r := &yamlReader{decimalKeys: decimalKeys}
	node, err := r.value(v, "$")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, name, err)
	}
	return node, nil
}

type yamlReader struct {
	decimalKeys bool
}

func (r *yamlReader) value(v any, path string) (*ir.Node, error) {
	switch v := v.(type) {
	case nil:
		return ir.Nil(), nil
	case bool:
		return ir.FromBool(v), nil
	case string:
		return ir.FromString(v), nil
	case int:
		return ir.FromInt(int64(v)), nil
	case int64:
		return ir.FromInt(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return ir.FromFloat(float64(v)), nil
		}
		return ir.FromInt(int64(v)), nil
	case float64:
		return ir.FromFloat(v), nil
	case []any:
		res := ir.NewTable()
		for i, e := range v {
			idx := int64(i + 1)
			child, err := r.value(e, ir.JoinIndex(path, idx))
			if err != nil {
				return nil, err
			}
			_ = res.SetIndex(idx, child)
		}
		return res, nil
	case yaml.MapSlice:
		res := ir.NewTable()
		for _, item := range v {
			key, err := r.key(item.Key, path)
			if err != nil {
				return nil, err
			}
			child, err := r.value(item.Value, ir.JoinPath(path, key))
			if err != nil {
				return nil, err
			}
			if err := res.Set(key, child); err != nil {
				return nil, fmt.Errorf("at %s: %w", path, err)
			}
		}
		return res, nil
	}
	return nil, fmt.Errorf("at %s: unsupported %T", path, v)
}

func (r *yamlReader) key(k any, path string) (*ir.Node, error) {
	if s, ok := k.(string); ok && r.decimalKeys && s != "" && s[0] >= '1' && s[0] <= '9' {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return ir.IntKey(i), nil
		}
	}
	return r.value(k, path)
}
