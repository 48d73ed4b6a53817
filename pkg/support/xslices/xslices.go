// Copyright 2026 The TNT Authors. SPDX-License-Identifier: Apache-2.0

// Package xslices provides small helpers missing from the standard slices package.
package xslices

import (
	"golang.org/x/exp/constraints"
)

// FillSlice fills the slice with the given value.
func FillSlice[T any](slice []T, value T) {
	// Doubling copy is faster than a plain loop.
	if len(slice) == 0 {
		return
	}
	slice[0] = value
	filled := 1
	for ; filled < len(slice); filled *= 2 {
		copy(slice[filled:], slice[:filled])
	}
}

// SliceWithValue creates a slice of given size filled with given value.
func SliceWithValue[T any](size int, value T) []T {
	s := make([]T, size)
	FillSlice(s, value)
	return s
}

// Copy creates a new (shallow) copy of the slice. A shortcut to a call to `make` followed by `copy`.
func Copy[T any](slice []T) []T {
	if len(slice) == 0 {
		return nil
	}
	slice2 := make([]T, len(slice))
	copy(slice2, slice)
	return slice2
}

// Max returns the largest element of the slice. It panics if the slice is empty.
func Max[T constraints.Ordered](slice []T) T {
	if len(slice) == 0 {
		panic("xslices.Max of empty slice")
	}
	maxValue := slice[0]
	for _, v := range slice[1:] {
		if v > maxValue {
			maxValue = v
		}
	}
	return maxValue
}
