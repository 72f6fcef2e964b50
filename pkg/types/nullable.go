package types

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

// Nullable tracks whether a JSON field was present, so PATCH handlers can
// tell "absent" from "explicit null".
type Nullable[T any] struct {
	Valid bool
	Value *T
}

type (
	NullableUUID   = Nullable[uuid.UUID]
	NullableFloat  = Nullable[float64]
	NullableString = Nullable[string]
)

// UnmarshalJSON implements json.Unmarshaler.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	n.Valid = true
	if bytes.Equal(trimmed, []byte("null")) {
		n.Value = nil
		return nil
	}

	var parsed T
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		n.Valid = false
		return err
	}
	n.Value = &parsed
	return nil
}

// MarshalJSON renders the value or null.
func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// IsNull reports an explicit null.
func (n Nullable[T]) IsNull() bool {
	return n.Valid && n.Value == nil
}

// Clone returns a copy that does not share the pointed-to value.
func (n Nullable[T]) Clone() Nullable[T] {
	if n.Value == nil {
		return Nullable[T]{Valid: n.Valid}
	}
	copied := *n.Value
	return Nullable[T]{Valid: n.Valid, Value: &copied}
}
