package ir

import (
	"encoding/json"
	"fmt"
)

type irBase struct {
	Type    Type     `json:"type"`
	Keys    []*Node  `json:"keys,omitempty"`
	Values  []*Node  `json:"values,omitempty"`
	Float64 *float64 `json:"float,omitempty"`
	Int64   *int64   `json:"int,omitempty"`
}

func (y *Node) MarshalJSON() ([]byte, error) {
	base := &irBase{
		Type:    y.Type,
		Keys:    y.Keys,
		Values:  y.Values,
		Float64: y.Float64,
		Int64:   y.Int64,
	}
	switch y.Type {
	case StringType:
		type C struct {
			irBase
			String string `json:"string"`
		}
		return json.Marshal(C{irBase: *base, String: y.String})
	case BoolType:
		type C struct {
			irBase
			Bool bool `json:"bool"`
		}
		return json.Marshal(C{irBase: *base, Bool: y.Bool})
	default:
		return json.Marshal(base)
	}
}

func (y *Node) UnmarshalJSON(d []byte) error {
	type C struct {
		irBase
		String string `json:"string"`
		Bool   bool   `json:"bool"`
	}
	tmp := &C{}
	if err := json.Unmarshal(d, tmp); err != nil {
		return err
	}
	if len(tmp.Keys) != len(tmp.Values) {
		return fmt.Errorf("%d keys but %d values", len(tmp.Keys), len(tmp.Values))
	}
	*y = Node{
		Type:    tmp.Type,
		String:  tmp.String,
		Bool:    tmp.Bool,
		Float64: tmp.Float64,
		Int64:   tmp.Int64,
	}
	if y.Type != TableType {
		return nil
	}
	for i, k := range tmp.Keys {
		if err := y.Set(k, tmp.Values[i]); err != nil {
			return err
		}
	}
	return nil
}
