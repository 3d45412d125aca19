// Package optional distinguishes absent JSON keys from explicit nulls in
// partial-update payloads.
package optional

import (
	"bytes"
	"encoding/json"
)

var nullLiteral = []byte("null")

// Field is a tri-state JSON value: absent, explicit null, or a value. The
// zero Field means the key was absent from the payload; an explicit null
// sets the field with the zero value of T.
type Field[T any] struct {
	Set   bool
	Value T
}

// Of returns a set Field holding v.
func Of[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// UnmarshalJSON marks the field as present. Explicit null leaves the zero
// value of T in place, so callers can treat null as a clear.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), nullLiteral) {
		var zero T
		f.Value = zero
		return nil
	}
	return json.Unmarshal(data, &f.Value)
}

// MarshalJSON renders the held value; an unset field renders as null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return nullLiteral, nil
	}
	return json.Marshal(f.Value)
}
