// Copyright 2026 The TNT Authors. SPDX-License-Identifier: Apache-2.0

package shapes_test

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninginthecloud/tnt/pkg/core/shapes"
)

func TestMake(t *testing.T) {
	s := shapes.Make(dtypes.Float32, 2, 3)
	assert.Equal(t, 2, s.Rank())
	assert.Equal(t, 6, s.Size())
	assert.Equal(t, 3, s.Dim(1))
	assert.Equal(t, 3, s.Dim(-1))
	assert.True(t, s.Ok())
	assert.False(t, s.IsScalar())
	assert.Equal(t, "(Float32)[2 3]", s.String())

	require.Panics(t, func() { shapes.Make(dtypes.Float32, 2, -1) })
	require.Panics(t, func() { s.Dim(2) })
}

func TestZeroSize(t *testing.T) {
	s := shapes.Make(dtypes.Int64, 0)
	assert.True(t, s.Ok())
	assert.True(t, s.IsZeroSize())
	assert.Equal(t, 0, s.Size())
	assert.Equal(t, 1, s.Rank())
}

func TestScalar(t *testing.T) {
	s := shapes.Scalar[float64]()
	assert.True(t, s.IsScalar())
	assert.Equal(t, 0, s.Rank())
	assert.Equal(t, 1, s.Size())
	assert.Equal(t, dtypes.Float64, s.DType)
}

func TestEqual(t *testing.T) {
	a := shapes.Make(dtypes.Float32, 2, 3)
	b := shapes.Make(dtypes.Float32, 2, 3)
	c := shapes.Make(dtypes.Float64, 2, 3)
	d := shapes.Make(dtypes.Float32, 3, 2)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
	assert.True(t, a.EqualDimensions(c))
}

func TestStrides(t *testing.T) {
	s := shapes.Make(dtypes.Float32, 2, 3, 4)
	assert.Equal(t, []int{12, 4, 1}, s.Strides())
	assert.Nil(t, shapes.Scalar[float32]().Strides())
	assert.Equal(t, []int{0, 0}, shapes.Make(dtypes.Float32, 2, 0).Strides())
}

func TestClone(t *testing.T) {
	a := shapes.Make(dtypes.Int32, 5)
	b := a.Clone()
	b.Dimensions[0] = 7
	assert.Equal(t, 5, a.Dimensions[0])
}
