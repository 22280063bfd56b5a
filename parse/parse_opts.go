package parse

import "github.com/signadot/luamap/format"

type parseOpts struct {
	format format.Format
	name   string
}

type ParseOption func(*parseOpts)

func ParseLua() ParseOption {
	return ParseFormat(format.LuaFormat)
}
func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// ParseName names the input in error messages.
func ParseName(name string) ParseOption {
	return func(o *parseOpts) { o.name = name }
}
