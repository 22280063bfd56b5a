package ir

// Marshaler is implemented by types that encode themselves to a value.
type Marshaler interface {
	MarshalTable() (*Node, error)
}

// Unmarshaler is implemented by types that decode themselves from a
// value. The node must not be retained.
type Unmarshaler interface {
	UnmarshalTable(*Node) error
}
