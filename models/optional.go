// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
)

// Optional is a value with presence tracking for partial updates.
//
//   - Set == false: the field was absent, leave the stored value unchanged.
//   - Set == true, Null == true: the field was an explicit JSON null.
//   - Set == true, Null == false: Value holds the supplied value.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null returns an Optional that is present but explicitly null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON records presence. encoding/json calls it for JSON null too,
// because Optional is a struct, not a pointer.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}

	o.Null = false
	return json.Unmarshal(b, &o.Value)
}

// MarshalJSON writes null for explicit nulls and the value otherwise.
// Absent values are dropped by the `omitzero` tag through IsZero.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// IsZero reports whether the value was not supplied.
func (o Optional[T]) IsZero() bool {
	return !o.Set
}

// Ptr returns nil for absent or null values and a pointer to Value otherwise.
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}
