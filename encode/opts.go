package encode

import "github.com/signadot/luamap/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// EncodeWire writes everything on one line.
func EncodeWire(v bool) EncodeOption {
	return func(es *EncState) { es.wire = v }
}

// Indent sets the number of spaces per nesting level.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// InlineWidth sets the longest table, in bytes, written on one line in
// lua format. Tables holding other tables are never inlined.
func InlineWidth(n int) EncodeOption {
	return func(es *EncState) { es.inlineWidth = n }
}
