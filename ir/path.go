package ir

import (
	"strconv"
	"strings"
)

// Path returns the location of y relative to its root, for example
// $.items[2].kind
func (y *Node) Path() string {
	if y.Parent == nil {
		return "$"
	}
	p := y.Parent
	if y.ParentIndex >= len(p.Keys) {
		return p.Path()
	}
	key := p.Keys[y.ParentIndex]
	if key == y {
		return p.Path()
	}
	return JoinPath(p.Path(), key)
}

// JoinPath appends key to the path prefix.
func JoinPath(prefix string, key *Node) string {
	if key.Type == NumberType {
		return prefix + "[" + key.KeyString() + "]"
	}
	return JoinField(prefix, key.String)
}

// JoinField appends a string key to the path prefix.
func JoinField(prefix, f string) string {
	if f != "" && strings.IndexAny(f, "'.*$[] ") == -1 {
		return prefix + "." + f
	}
	return prefix + "['" + strings.ReplaceAll(f, "'", "\\'") + "']"
}

// JoinIndex appends an integer key to the path prefix.
func JoinIndex(prefix string, i int64) string {
	return prefix + "[" + strconv.FormatInt(i, 10) + "]"
}
