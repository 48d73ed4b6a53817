// Copyright 2026 The TNT Authors. SPDX-License-Identifier: Apache-2.0

package layers

import (
	"math"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"

	"github.com/ninginthecloud/tnt/pkg/core/distributed"
	"github.com/ninginthecloud/tnt/pkg/core/shapes"
	"github.com/ninginthecloud/tnt/pkg/core/tensors"
)

// BatchNorm normalizes its input per feature with running statistics:
// y = scale·(x-mean)/sqrt(variance+epsilon) + offset.
//
// Forward here runs in inference mode, using the stored running statistics.
type BatchNorm struct {
	NumFeatures int
	Epsilon     float32
	Momentum    float32

	// Scale (gamma) and Offset (beta) are the learned affine parameters, both of
	// shape [NumFeatures].
	Scale, Offset *tensors.Tensor

	// RunningMean and RunningVariance are the statistics accumulated during
	// training, both of shape [NumFeatures].
	RunningMean, RunningVariance *tensors.Tensor
}

// NewBatchNorm creates a BatchNorm for the given number of features, with the
// usual initialization: scale one, offset zero, running mean zero, running
// variance one.
func NewBatchNorm(numFeatures int) *BatchNorm {
	return &BatchNorm{
		NumFeatures:     numFeatures,
		Epsilon:         1e-5,
		Momentum:        0.1,
		Scale:           tensors.FromScalarAndDimensions(float32(1), numFeatures),
		Offset:          tensors.FromShape(shapes.Make(dtypes.Float32, numFeatures)),
		RunningMean:     tensors.FromShape(shapes.Make(dtypes.Float32, numFeatures)),
		RunningVariance: tensors.FromScalarAndDimensions(float32(1), numFeatures),
	}
}

// Forward normalizes x of shape [batch, NumFeatures] with the running statistics.
func (bn *BatchNorm) Forward(x *tensors.Tensor) (*tensors.Tensor, error) {
	if x.DType() != dtypes.Float32 || x.Rank() != 2 || x.Shape().Dim(1) != bn.NumFeatures {
		return nil, errors.Errorf("BatchNorm.Forward: input must be (Float32)[batch %d], got %s",
			bn.NumFeatures, x.Shape())
	}
	batch := x.Shape().Dim(0)
	y := tensors.FromShape(x.Shape())
	tensors.ConstFlatData(x, func(xFlat []float32) {
		tensors.ConstFlatData(bn.RunningMean, func(mean []float32) {
			tensors.ConstFlatData(bn.RunningVariance, func(variance []float32) {
				tensors.ConstFlatData(bn.Scale, func(scale []float32) {
					tensors.ConstFlatData(bn.Offset, func(offset []float32) {
						tensors.MutableFlatData(y, func(yFlat []float32) {
							for row := 0; row < batch; row++ {
								for f := 0; f < bn.NumFeatures; f++ {
									idx := row*bn.NumFeatures + f
									invStd := float32(1.0 / math.Sqrt(float64(variance[f]+bn.Epsilon)))
									yFlat[idx] = scale[f]*(xFlat[idx]-mean[f])*invStd + offset[f]
								}
							}
						})
					})
				})
			})
		})
	})
	return y, nil
}

// SyncBatchNorm is the distributed variant of BatchNorm: during training its
// batch statistics are meant to be reduced across all workers of its process
// group instead of computed per worker. Inference behaves exactly like
// BatchNorm, on the (shared) running statistics.
//
// Only the conversion to and from the local variant is handled in this package;
// the cross-worker statistics reduction belongs to the training loop driving
// the layer.
type SyncBatchNorm struct {
	BatchNorm

	pg distributed.ProcessGroup
}

// NewSyncBatchNorm creates a SyncBatchNorm for the given number of features,
// synchronized over the given process group.
func NewSyncBatchNorm(numFeatures int, pg distributed.ProcessGroup) *SyncBatchNorm {
	return &SyncBatchNorm{BatchNorm: *NewBatchNorm(numFeatures), pg: pg}
}

// ProcessGroup returns the group the layer's statistics are synchronized over.
func (sbn *SyncBatchNorm) ProcessGroup() distributed.ProcessGroup { return sbn.pg }

// ConvertSyncBatchNorm returns a copy of the module tree with every BatchNorm
// replaced by a SyncBatchNorm synchronized over pg. Parameters and running
// statistics are carried over (shared, not copied). Other modules are kept as-is.
func ConvertSyncBatchNorm(m Module, pg distributed.ProcessGroup) Module {
	switch m := m.(type) {
	case *Sequential:
		converted := make([]Module, len(m.Modules))
		for i, child := range m.Modules {
			converted[i] = ConvertSyncBatchNorm(child, pg)
		}
		return NewSequential(converted...)
	case *SyncBatchNorm:
		return m
	case *BatchNorm:
		return &SyncBatchNorm{BatchNorm: *m, pg: pg}
	}
	return m
}

// RevertSyncBatchNorm returns a copy of the module tree with every
// SyncBatchNorm replaced by its plain BatchNorm form, carrying over parameters
// and running statistics (shared, not copied). The inverse of
// ConvertSyncBatchNorm. Other modules are kept as-is.
func RevertSyncBatchNorm(m Module) Module {
	switch m := m.(type) {
	case *Sequential:
		reverted := make([]Module, len(m.Modules))
		for i, child := range m.Modules {
			reverted[i] = RevertSyncBatchNorm(child)
		}
		return NewSequential(reverted...)
	case *SyncBatchNorm:
		bn := m.BatchNorm
		return &bn
	}
	return m
}
