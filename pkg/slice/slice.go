// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slice holds generic helpers the standard [slices] package lacks.
package slice

// Filter returns the elements for which keep is true, in input order.
//
// The result is never nil so an empty match encodes as [] in JSON.
func Filter[T any](input []T, keep func(T) bool) []T {
	result := make([]T, 0, len(input)/2)
	for _, item := range input {
		if keep(item) {
			result = append(result, item)
		}
	}
	return result
}
