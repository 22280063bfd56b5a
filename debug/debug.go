// Package debug holds environment controlled debugging switches and the
// logger shared by the luamap packages.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Resolve bool
	Encode  bool
	Decode  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Resolve = boolEnv("LUAMAP_DEBUG_RESOLVE")
	d.Encode = boolEnv("LUAMAP_DEBUG_ENCODE")
	d.Decode = boolEnv("LUAMAP_DEBUG_DECODE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Resolve() bool {
	return d.Resolve
}
func Encode() bool {
	return d.Encode
}
func Decode() bool {
	return d.Decode
}

func enabled() bool {
	return d.Resolve || d.Encode || d.Decode
}
