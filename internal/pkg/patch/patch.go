// Package patch carries tri-state patch fields for partial updates.
//
// A Field distinguishes "key absent from the payload" from "key present
// with null" from "key present with a value", so that a caller can patch
// one column without wiping unrelated nested state.
package patch

import (
	"bytes"
	"encoding/json"
)

type Field[T any] struct {
	set  bool
	null bool
	val  T
}

func Value[T any](v T) Field[T] {
	return Field[T]{set: true, val: v}
}

func Null[T any]() Field[T] {
	return Field[T]{set: true, null: true}
}

func Unset[T any]() Field[T] {
	return Field[T]{}
}

// IsSet reports whether the key appeared in the payload at all.
func (f Field[T]) IsSet() bool { return f.set }

// IsNull reports whether the key appeared with an explicit null.
func (f Field[T]) IsNull() bool { return f.set && f.null }

// HasValue reports whether the key appeared with a non-null value.
func (f Field[T]) HasValue() bool { return f.set && !f.null }

func (f Field[T]) Get() (T, bool) {
	if !f.HasValue() {
		var zero T
		return zero, false
	}
	return f.val, true
}

// MustGet is for call sites that already checked HasValue.
func (f Field[T]) MustGet() T { return f.val }

// Ptr returns nil when the field is unset or null.
func (f Field[T]) Ptr() *T {
	if !f.HasValue() {
		return nil
	}
	v := f.val
	return &v
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.set = true
	if bytes.Equal(data, []byte("null")) {
		f.null = true
		return nil
	}
	return json.Unmarshal(data, &f.val)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.set || f.null {
		return []byte("null"), nil
	}
	return json.Marshal(f.val)
}

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}
