package ir

import "errors"

var (
	ErrInvalidKey = errors.New("invalid table key")
	ErrNotTable   = errors.New("not a table")
)
