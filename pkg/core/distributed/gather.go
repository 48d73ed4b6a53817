// Copyright 2026 The TNT Authors. SPDX-License-Identifier: Apache-2.0

package distributed

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/ninginthecloud/tnt/pkg/core/shapes"
	"github.com/ninginthecloud/tnt/pkg/core/tensors"
	"github.com/ninginthecloud/tnt/pkg/support/xslices"
)

// AllGatherTensors gathers tensors of possibly differing shapes from all workers
// into rank order: the result has exactly WorldSize entries, and entry i has
// exactly the shape (and content) worker i passed in, including zero-size
// tensors.
//
// The underlying runtime only provides a shape-uniform all-gather, so the
// helper runs a strict two-phase protocol:
//
//  1. Shape exchange: workers first agree on every worker's shape, using
//     uniform collectives over fixed-size shape descriptors.
//  2. Data exchange: each worker stages its tensor into a buffer of the
//     maximum agreed shape, all-gathers the uniform buffers, and trims each
//     received buffer back to the shape its sender declared in phase 1.
//
// Phase 2 never starts before phase 1 completes on all workers; interleaving
// them would corrupt the results.
//
// All workers must hold tensors of the same rank (number of axes): differing
// ranks are reported as an error, detected at the end of the rank-count
// exchange, before any tensor data moves. Dimensions within that rank are free
// to differ per worker.
//
// If pg is nil (not running distributed), it returns a single-entry collection
// holding a copy of local.
func AllGatherTensors(pg ProcessGroup, local *tensors.Tensor) ([]*tensors.Tensor, error) {
	if pg == nil {
		return []*tensors.Tensor{local.Clone()}, nil
	}
	worldSize := pg.WorldSize()
	localShape := local.Shape()
	rank := localShape.Rank()

	// Phase 1a: exchange rank counts. Rank counts are scalars, so this round is
	// trivially uniform, and it decides whether the dimensions round below is.
	gatheredRanks, err := pg.AllGather(tensors.FromScalar(int64(rank)))
	if err != nil {
		return nil, errors.WithMessagef(err, "AllGatherTensors: exchanging tensor ranks")
	}
	for peer, peerRankT := range gatheredRanks {
		tensors.ConstFlatData(peerRankT, func(flat []int64) {
			if int(flat[0]) != rank {
				err = errors.Errorf(
					"AllGatherTensors: workers must hold tensors of the same rank, rank %d here vs rank %d on worker %d",
					rank, flat[0], peer)
			}
		})
		if err != nil {
			// Every worker observes the same gathered ranks, so every worker
			// aborts here consistently, before any dimension or data round.
			return nil, err
		}
	}

	// Phase 1b: exchange per-axis dimensions, as fixed-length (rank) vectors.
	dims := make([]int64, rank)
	for axis, dim := range localShape.Dimensions {
		dims[axis] = int64(dim)
	}
	gatheredDims, err := pg.AllGather(tensors.FromFlatDataAndDimensions(dims, rank))
	if err != nil {
		return nil, errors.WithMessagef(err, "AllGatherTensors: exchanging tensor dimensions")
	}
	peerShapes := make([]shapes.Shape, worldSize)
	for peer, peerDimsT := range gatheredDims {
		peerDims := make([]int, rank)
		tensors.ConstFlatData(peerDimsT, func(flat []int64) {
			for axis, dim := range flat {
				peerDims[axis] = int(dim)
			}
		})
		peerShapes[peer] = shapes.Make(localShape.DType, peerDims...)
	}

	// Fast path: every worker already holds the same shape, gather directly.
	uniform := true
	for _, peerShape := range peerShapes {
		if !peerShape.Equal(localShape) {
			uniform = false
			break
		}
	}
	if uniform {
		return pg.AllGather(local)
	}

	// Phase 2: stage into a buffer of the maximum shape per axis, gather the
	// uniform buffers, and trim each back to its sender's declared shape.
	maxDims := make([]int, rank)
	axisDims := make([]int, worldSize)
	for axis := range maxDims {
		for peer, peerShape := range peerShapes {
			axisDims[peer] = peerShape.Dimensions[axis]
		}
		maxDims[axis] = xslices.Max(axisDims)
	}
	klog.V(1).Infof("AllGatherTensors: uneven shapes, staging %s into %v for %d workers",
		localShape, maxDims, worldSize)

	staged := tensors.FromShape(shapes.Make(localShape.DType, maxDims...))
	copyRegion(staged, local, localShape.Dimensions)
	gathered, err := pg.AllGather(staged)
	if err != nil {
		return nil, errors.WithMessagef(err, "AllGatherTensors: exchanging staged tensors")
	}

	result := make([]*tensors.Tensor, worldSize)
	for peer, buffer := range gathered {
		trimmed := tensors.FromShape(peerShapes[peer])
		copyRegion(trimmed, buffer, peerShapes[peer].Dimensions)
		result[peer] = trimmed
	}
	return result, nil
}

// copyRegion copies the leading region (given as per-axis dimensions) from src
// into dst. dst and src must have the same dtype and rank as the region, and
// each must be at least as large as the region along every axis. Both are
// row-major, so the innermost axis is copied as one contiguous run.
func copyRegion(dst, src *tensors.Tensor, region []int) {
	elemSize := int(dst.DType().Memory())
	dst.MutableBytes(func(dstBytes []byte) {
		src.ConstBytes(func(srcBytes []byte) {
			copyRegionBytes(dstBytes, srcBytes,
				dst.Shape().Dimensions, src.Shape().Dimensions, region, elemSize)
		})
	})
}

func copyRegionBytes(dst, src []byte, dstDims, srcDims, region []int, elemSize int) {
	switch len(region) {
	case 0:
		// Scalars.
		copy(dst[:elemSize], src[:elemSize])
		return
	case 1:
		copy(dst[:region[0]*elemSize], src[:region[0]*elemSize])
		return
	}
	dstStride := sizeOf(dstDims[1:]) * elemSize
	srcStride := sizeOf(srcDims[1:]) * elemSize
	for i := 0; i < region[0]; i++ {
		copyRegionBytes(dst[i*dstStride:], src[i*srcStride:], dstDims[1:], srcDims[1:], region[1:], elemSize)
	}
}

func sizeOf(dims []int) int {
	size := 1
	for _, dim := range dims {
		size *= dim
	}
	return size
}
