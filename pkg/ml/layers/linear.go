// Copyright 2026 The TNT Authors. SPDX-License-Identifier: Apache-2.0

package layers

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"

	"github.com/ninginthecloud/tnt/pkg/core/shapes"
	"github.com/ninginthecloud/tnt/pkg/core/tensors"
)

// Linear is a fully-connected layer: y = x·Wᵀ + b.
type Linear struct {
	InFeatures, OutFeatures int

	// Weight has shape [OutFeatures, InFeatures], Bias has shape [OutFeatures].
	Weight, Bias *tensors.Tensor
}

// NewLinear creates a Linear layer with zero-initialized weight and bias.
func NewLinear(inFeatures, outFeatures int) *Linear {
	return &Linear{
		InFeatures:  inFeatures,
		OutFeatures: outFeatures,
		Weight:      tensors.FromShape(shapes.Make(dtypes.Float32, outFeatures, inFeatures)),
		Bias:        tensors.FromShape(shapes.Make(dtypes.Float32, outFeatures)),
	}
}

// Forward computes y = x·Wᵀ + b for x of shape [batch, InFeatures], returning a
// tensor of shape [batch, OutFeatures].
func (l *Linear) Forward(x *tensors.Tensor) (*tensors.Tensor, error) {
	if x.DType() != dtypes.Float32 || x.Rank() != 2 || x.Shape().Dim(1) != l.InFeatures {
		return nil, errors.Errorf("Linear.Forward: input must be (Float32)[batch %d], got %s",
			l.InFeatures, x.Shape())
	}
	batch := x.Shape().Dim(0)
	y := tensors.FromShape(shapes.Make(dtypes.Float32, batch, l.OutFeatures))
	tensors.ConstFlatData(x, func(xFlat []float32) {
		tensors.ConstFlatData(l.Weight, func(w []float32) {
			tensors.ConstFlatData(l.Bias, func(b []float32) {
				tensors.MutableFlatData(y, func(yFlat []float32) {
					for row := 0; row < batch; row++ {
						for out := 0; out < l.OutFeatures; out++ {
							sum := b[out]
							for in := 0; in < l.InFeatures; in++ {
								sum += xFlat[row*l.InFeatures+in] * w[out*l.InFeatures+in]
							}
							yFlat[row*l.OutFeatures+out] = sum
						}
					}
				})
			})
		})
	})
	return y, nil
}
