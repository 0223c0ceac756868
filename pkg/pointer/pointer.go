// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

/*
Package pointer provides generic helpers for optional values.

Partial updates decode into pointer fields: nil means "keep the current
value", anything else replaces it.
*/
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer, returning the zero value for nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback dereferences p, or returns fallback when p is nil.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// NonZero dereferences p unless it is nil or holds the zero value, in which
// case current is returned. Used for merges where an empty string means
// "unchanged".
func NonZero[T comparable](p *T, current T) T {
	var zero T
	if p == nil || *p == zero {
		return current
	}
	return *p
}
