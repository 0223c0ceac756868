// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

/*
Package slice complements the standard [slices] package with Map and Filter.
*/
package slice

// Map maps a slice of type T to a slice of type U.
// A nil input yields an empty, non-nil slice so JSON encodes it as [].
func Map[T any, U any](input []T, transform func(T) U) []U {
	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// Filter returns the elements for which predicate is true.
func Filter[T any](input []T, predicate func(T) bool) []T {
	result := make([]T, 0, len(input))
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}
	return result
}

// Clean drops empty strings, keeping order.
func Clean(input []string) []string {
	return Filter(input, func(s string) bool { return s != "" })
}
