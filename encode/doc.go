// Package encode writes tables as text.
//
// # Usage
//
//	node := ir.NewTable().
//		SetField("type", ir.FromString("num")).
//		SetField("val", ir.FromInt(37))
//	err := encode.Encode(node, os.Stdout)
//	// {type = "num", val = 37}
//
//	// Encode to JSON, with colors
//	err := encode.Encode(node, os.Stdout,
//		encode.EncodeFormat(format.JSONFormat),
//		encode.EncodeColors(encode.NewColors()))
//
// # Related Packages
//
//   - github.com/signadot/luamap/ir - Table representation
//   - github.com/signadot/luamap/parse - Parse text to tables
package encode
