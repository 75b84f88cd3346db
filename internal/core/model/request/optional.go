package request

import (
	"bytes"
	"encoding/json"
)

// Optional records whether a JSON key was present, and whether it was null,
// so partial updates can tell "not sent" apart from "sent empty".
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON only runs when the key is present in the payload.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}

	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}

	return json.Marshal(o.Value)
}

// Or returns the value when the key was sent with a non-null value, the
// fallback otherwise.
func (o Optional[T]) Or(fallback T) T {
	if o.Set && !o.Null {
		return o.Value
	}

	return fallback
}
