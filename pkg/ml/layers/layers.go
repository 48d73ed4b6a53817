// Copyright 2026 The TNT Authors. SPDX-License-Identifier: Apache-2.0

// Package layers implements a minimal set of neural-network modules: enough to
// express models as trees of layers, and to convert normalization layers between
// their distributed (cross-worker synchronized) and local variants.
//
// A model is a tree of Module values; Sequential is the container node. The
// conversion helpers ConvertSyncBatchNorm and RevertSyncBatchNorm rebuild the
// tree, swapping BatchNorm and SyncBatchNorm nodes for each other while carrying
// over learned parameters and running statistics.
package layers

import (
	"github.com/ninginthecloud/tnt/pkg/core/tensors"
)

// Module is the interface implemented by all neural-network layers: it computes
// an output tensor from an input tensor.
type Module interface {
	Forward(x *tensors.Tensor) (*tensors.Tensor, error)
}

// Sequential chains modules: each module's output becomes the next module's
// input.
type Sequential struct {
	Modules []Module
}

// NewSequential creates a Sequential container with the given modules.
func NewSequential(modules ...Module) *Sequential {
	return &Sequential{Modules: modules}
}

// Forward applies all modules in sequence.
func (s *Sequential) Forward(x *tensors.Tensor) (*tensors.Tensor, error) {
	var err error
	for _, module := range s.Modules {
		x, err = module.Forward(x)
		if err != nil {
			return nil, err
		}
	}
	return x, nil
}
