// Copyright 2026 The TNT Authors. SPDX-License-Identifier: Apache-2.0

package xslices

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillSlice(t *testing.T) {
	s := make([]int, 7)
	FillSlice(s, 3)
	assert.Equal(t, []int{3, 3, 3, 3, 3, 3, 3}, s)

	empty := []float32{}
	FillSlice(empty, 1.0) // Must not panic.
}

func TestSliceWithValue(t *testing.T) {
	assert.Equal(t, []string{"x", "x", "x"}, SliceWithValue(3, "x"))
	assert.Empty(t, SliceWithValue(0, 7))
}

func TestCopy(t *testing.T) {
	orig := []int{1, 2, 3}
	dup := Copy(orig)
	assert.Equal(t, orig, dup)
	dup[0] = 10
	assert.Equal(t, 1, orig[0])
	assert.Nil(t, Copy[int](nil))
}

func TestMax(t *testing.T) {
	assert.Equal(t, 5, Max([]int{3, 5, 1}))
	assert.Equal(t, float64(-1), Max([]float64{-3, -1, -2}))
	require.Panics(t, func() { Max([]int{}) })
}
