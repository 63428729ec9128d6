// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

// Package slice complements the standard [slices] package with a generic
// Map, used for projecting entity slices (ids for batched queries, typed
// constants to their string forms).
package slice

// Map transforms a slice of T into a slice of U, preserving order. A nil
// input stays nil.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}

	return result
}
