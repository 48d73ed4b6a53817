// Copyright 2026 The TNT Authors. SPDX-License-Identifier: Apache-2.0

package tensors_test

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninginthecloud/tnt/pkg/core/shapes"
	"github.com/ninginthecloud/tnt/pkg/core/tensors"
)

func TestFromShape(t *testing.T) {
	tensor := tensors.FromShape(shapes.Make(dtypes.Float32, 2, 3))
	assert.Equal(t, 6, tensor.Size())
	assert.Equal(t, dtypes.Float32, tensor.DType())
	tensors.ConstFlatData(tensor, func(flat []float32) {
		assert.Equal(t, []float32{0, 0, 0, 0, 0, 0}, flat)
	})
}

func TestFromScalarAndDimensions(t *testing.T) {
	tensor := tensors.FromScalarAndDimensions(float32(1), 3)
	assert.Equal(t, 1, tensor.Rank())
	tensors.ConstFlatData(tensor, func(flat []float32) {
		assert.Equal(t, []float32{1, 1, 1}, flat)
	})

	scalar := tensors.FromScalar(int32(7))
	assert.True(t, scalar.IsScalar())
	assert.Equal(t, 1, scalar.Size())
}

func TestFromFlatDataAndDimensions(t *testing.T) {
	tensor := tensors.FromFlatDataAndDimensions([]int64{1, 2, 3, 4}, 2, 2)
	assert.Equal(t, []int{2, 2}, tensor.Shape().Dimensions)
	tensors.ConstFlatData(tensor, func(flat []int64) {
		assert.Equal(t, []int64{1, 2, 3, 4}, flat)
	})

	require.Panics(t, func() {
		tensors.FromFlatDataAndDimensions([]int64{1, 2, 3}, 2, 2)
	})
}

func TestZeroSizeTensor(t *testing.T) {
	tensor := tensors.FromShape(shapes.Make(dtypes.Float32, 0))
	assert.Equal(t, 0, tensor.Size())
	clone := tensor.Clone()
	assert.True(t, tensor.Equal(clone))
}

func TestWrongDTypeAccessPanics(t *testing.T) {
	tensor := tensors.FromScalar(float32(1))
	require.Panics(t, func() {
		tensors.ConstFlatData(tensor, func(flat []float64) {})
	})
}

func TestCloneAndEqual(t *testing.T) {
	a := tensors.FromFlatDataAndDimensions([]float64{1, 2, 3}, 3)
	b := a.Clone()
	assert.True(t, a.Equal(b))

	tensors.MutableFlatData(b, func(flat []float64) { flat[1] = 20 })
	assert.False(t, a.Equal(b))
	tensors.ConstFlatData(a, func(flat []float64) {
		assert.Equal(t, float64(2), flat[1]) // Clone must not share storage.
	})

	c := tensors.FromFlatDataAndDimensions([]float64{1, 2, 3}, 1, 3)
	assert.False(t, a.Equal(c)) // Same data, different shape.
}

func TestCopyFrom(t *testing.T) {
	dst := tensors.FromShape(shapes.Make(dtypes.Int32, 2))
	src := tensors.FromFlatDataAndDimensions([]int32{5, 6}, 2)
	require.NoError(t, dst.CopyFrom(src))
	assert.True(t, dst.Equal(src))

	bad := tensors.FromShape(shapes.Make(dtypes.Int32, 3))
	require.Error(t, dst.CopyFrom(bad))
}

func TestString(t *testing.T) {
	tensor := tensors.FromFlatDataAndDimensions([]int32{1, 2, 3, 4}, 2, 2)
	assert.Equal(t, "(Int32)[2 2]: [1 2 3 4]", tensor.String())
}
