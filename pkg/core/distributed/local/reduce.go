// Copyright 2026 The TNT Authors. SPDX-License-Identifier: Apache-2.0

package local

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"

	"github.com/ninginthecloud/tnt/pkg/core/distributed"
	"github.com/ninginthecloud/tnt/pkg/core/tensors"
)

// reduceInto element-wise reduces in into acc, in place. The tensors are
// already checked to have identical shapes.
func reduceInto(acc, in *tensors.Tensor, op distributed.ReduceOp) error {
	switch acc.DType() {
	case dtypes.Int8:
		reduceSlices[int8](acc, in, op)
	case dtypes.Int16:
		reduceSlices[int16](acc, in, op)
	case dtypes.Int32:
		reduceSlices[int32](acc, in, op)
	case dtypes.Int64:
		reduceSlices[int64](acc, in, op)
	case dtypes.Uint8:
		reduceSlices[uint8](acc, in, op)
	case dtypes.Uint16:
		reduceSlices[uint16](acc, in, op)
	case dtypes.Uint32:
		reduceSlices[uint32](acc, in, op)
	case dtypes.Uint64:
		reduceSlices[uint64](acc, in, op)
	case dtypes.Float32:
		reduceSlices[float32](acc, in, op)
	case dtypes.Float64:
		reduceSlices[float64](acc, in, op)
	default:
		return errors.Errorf("allreduce not supported for dtype %s", acc.DType())
	}
	return nil
}

func reduceSlices[T interface {
	constraints.Integer | constraints.Float
	dtypes.Supported
}](acc, in *tensors.Tensor, op distributed.ReduceOp) {
	tensors.MutableFlatData(acc, func(a []T) {
		tensors.ConstFlatData(in, func(b []T) {
			switch op {
			case distributed.ReduceOpSum:
				for i := range a {
					a[i] += b[i]
				}
			case distributed.ReduceOpProduct:
				for i := range a {
					a[i] *= b[i]
				}
			case distributed.ReduceOpMax:
				for i := range a {
					if b[i] > a[i] {
						a[i] = b[i]
					}
				}
			case distributed.ReduceOpMin:
				for i := range a {
					if b[i] < a[i] {
						a[i] = b[i]
					}
				}
			}
		})
	})
}
