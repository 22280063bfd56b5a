package shape

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type ValueKind int

const (
	// FlagValue is an attribute given by name only, as in `array`.
	FlagValue ValueKind = iota
	// StringValue is a quoted string, as in `tag = 'type'`.
	StringValue
	// IntValue is an unsigned decimal integer, as in `index = 2`.
	IntValue
	// BareValue is anything else, as in `tag = type`.
	BareValue
)

func (k ValueKind) String() string {
	switch k {
	case FlagValue:
		return "flag"
	case StringValue:
		return "string"
	case IntValue:
		return "integer"
	default:
		return "bare value"
	}
}

// Attr is one parsed attribute item.
type Attr struct {
	Name string
	Kind ValueKind
	Str  string
	Int  uint64
	Raw  string
}

func (a Attr) String() string {
	return a.Raw
}

var errAttrSyntax = errors.New("attribute syntax")

// ParseAttrs parses one attribute group: a comma separated list of
// `name`, `name = 'str'`, `name = "str"` or `name = N` items. Single
// quoted strings are taken literally, double quoted strings use Go
// escapes.
func ParseAttrs(group string) ([]Attr, error) {
	parts, err := splitAttrs(group)
	if err != nil {
		return nil, err
	}
	res := make([]Attr, 0, len(parts))
	for _, part := range parts {
		a, err := parseAttr(part)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, nil
}

func splitAttrs(group string) ([]string, error) {
	var parts []string
	var current strings.Builder
	inSingleQuote := false
	inDoubleQuote := false

	for i := 0; i < len(group); i++ {
		char := group[i]
		switch {
		case char == '\\' && inDoubleQuote && i+1 < len(group):
			current.WriteByte(char)
			i++
			current.WriteByte(group[i])
		case char == '\'' && !inDoubleQuote:
			inSingleQuote = !inSingleQuote
			current.WriteByte(char)
		case char == '"' && !inSingleQuote:
			inDoubleQuote = !inDoubleQuote
			current.WriteByte(char)
		case char == ',' && !inSingleQuote && !inDoubleQuote:
			part := strings.TrimSpace(current.String())
			if part != "" {
				parts = append(parts, part)
			}
			current.Reset()
		default:
			current.WriteByte(char)
		}
	}
	if inSingleQuote || inDoubleQuote {
		return nil, fmt.Errorf("%w: unterminated quote in %q", errAttrSyntax, group)
	}
	part := strings.TrimSpace(current.String())
	if part != "" {
		parts = append(parts, part)
	}
	return parts, nil
}

func parseAttr(part string) (Attr, error) {
	a := Attr{Raw: part}
	name, value, hasValue := strings.Cut(part, "=")
	name = strings.TrimSpace(name)
	if !isIdent(name) {
		return a, fmt.Errorf("%w: bad attribute name in %q", errAttrSyntax, part)
	}
	a.Name = name
	if !hasValue {
		a.Kind = FlagValue
		return a, nil
	}
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		return a, fmt.Errorf("%w: missing value in %q", errAttrSyntax, part)
	case value[0] == '\'':
		if len(value) < 2 || value[len(value)-1] != '\'' {
			return a, fmt.Errorf("%w: bad quoting in %q", errAttrSyntax, part)
		}
		a.Kind = StringValue
		a.Str = value[1 : len(value)-1]
	case value[0] == '"':
		s, err := strconv.Unquote(value)
		if err != nil {
			return a, fmt.Errorf("%w: bad quoting in %q", errAttrSyntax, part)
		}
		a.Kind = StringValue
		a.Str = s
	default:
		if n, err := strconv.ParseUint(value, 10, 64); err == nil {
			a.Kind = IntValue
			a.Int = n
			return a, nil
		}
		a.Kind = BareValue
		a.Str = value
	}
	return a, nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
