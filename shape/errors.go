package shape

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedShape   = errors.New("unsupported shape")
	ErrAmbiguousField     = errors.New("ambiguous field mapping")
	ErrArrayModeNamed     = errors.New("array mode requires purely positional fields")
	ErrContentWithoutTag  = errors.New("content requires tag")
	ErrDuplicateAttribute = errors.New("duplicate attribute")
	ErrInvalidAttribute   = errors.New("invalid attribute")
	ErrVariantArity       = errors.New("variant must hold exactly one payload")
	ErrDuplicateVariant   = errors.New("duplicate variant key")
)

// ConfigError reports a type declaration that cannot be resolved into a
// Shape. Kind is one of the Err* sentinels above, so errors.Is can be
// used to test for a particular rule.
type ConfigError struct {
	Type   string
	Field  string // field or variant name, if any
	Kind   error
	Detail string
	Err    error // nested failure, for errors in a field's type
}

func (e *ConfigError) Error() string {
	where := e.Type
	if e.Field != "" {
		where += "." + e.Field
	}
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if where == "" {
		return fmt.Sprintf("config error: %s", msg)
	}
	return fmt.Sprintf("config error for %s: %s", where, msg)
}

func (e *ConfigError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func configErr(decl *TypeDecl, field string, kind error, format string, args ...any) *ConfigError {
	return &ConfigError{
		Type:   decl.Name,
		Field:  field,
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
	}
}
