package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/luamap/ir"
)

// MustString returns the lua form of node, without the trailing
// newline. It panics if node cannot be encoded.
func MustString(node *ir.Node, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
