// Package format names the text formats tables are read from and
// written to.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	f, ok := format.FromExt("points.lua")
//
// # Related Packages
//
//   - github.com/signadot/luamap/parse - Parse text to tables
//   - github.com/signadot/luamap/encode - Encode tables to text
package format
