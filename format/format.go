package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Format is a text representation of a table.
type Format int

const (
	LuaFormat Format = iota
	YAMLFormat
	JSONFormat
)

var ErrBadFormat = errors.New("bad format")

// names are indexed by Format; exts[0] is the preferred suffix.
var names = []struct {
	name, short string
	exts        []string
}{
	LuaFormat:  {"lua", "l", []string{".lua"}},
	YAMLFormat: {"yaml", "y", []string{".yaml", ".yml"}},
	JSONFormat: {"json", "j", []string{".json"}},
}

func (f Format) valid() bool {
	return f >= 0 && int(f) < len(names)
}

// ParseFormat accepts a format name or its one letter abbreviation.
func ParseFormat(v string) (Format, error) {
	for i, n := range names {
		if v == n.name || v == n.short {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

// FromExt returns the format of a file name by its extension.
func FromExt(name string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	for i, n := range names {
		if slices.Contains(n.exts, ext) {
			return Format(i), true
		}
	}
	return 0, false
}

// Suffix returns the preferred file extension of f, including the dot.
func (f Format) Suffix() string {
	if !f.valid() {
		return ""
	}
	return names[f].exts[0]
}

func (f Format) String() string {
	if !f.valid() {
		return fmt.Sprintf("<err: %d is not a format>", int(f))
	}
	return names[f].name
}

func (f Format) MarshalText() ([]byte, error) {
	if !f.valid() {
		return nil, fmt.Errorf("%w: %d", ErrBadFormat, int(f))
	}
	return []byte(names[f].name), nil
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{LuaFormat, YAMLFormat, JSONFormat}
}
