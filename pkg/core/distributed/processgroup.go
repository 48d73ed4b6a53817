// Copyright 2026 The TNT Authors. SPDX-License-Identifier: Apache-2.0

package distributed

import (
	"github.com/ninginthecloud/tnt/pkg/core/tensors"
)

// ReduceOp selects among the basic types of element-wise reduction a process
// group's AllReduce supports.
type ReduceOp int

//go:generate go tool enumer -type=ReduceOp -trimprefix=ReduceOp -output=gen_reduceop_enumer.go processgroup.go

const (
	// ReduceOpUndefined is an undefined value.
	ReduceOpUndefined ReduceOp = iota

	// ReduceOpSum reduces by summing the elements across workers.
	ReduceOpSum

	// ReduceOpProduct reduces by multiplying the elements across workers.
	ReduceOpProduct

	// ReduceOpMax reduces by taking the maximum element across workers.
	ReduceOpMax

	// ReduceOpMin reduces by taking the minimum element across workers.
	ReduceOpMin
)

// RankProvider is the capability of knowing the current worker's global rank.
// It is the only part of the runtime the rank-gating helpers need, so they take
// it explicitly instead of reaching for a process-global accessor.
//
// A nil RankProvider means "not running distributed" and is treated as rank 0.
//
// ProcessGroup implementations satisfy RankProvider.
type RankProvider interface {
	// Rank returns this worker's global rank, in [0, WorldSize).
	Rank() int
}

// ProcessGroup is the interface to the distributed runtime collaborator: an
// already-initialized group of worker processes with collective-communication
// primitives among them.
//
// All collective methods are blocking barriers from the calling worker's point
// of view: every worker of the group must call them, in the same order. Errors
// returned by collectives (peer crash, transport failure) are not recoverable at
// this layer and must be propagated -- masking them could desynchronize workers.
//
// Lifecycle (initialization, teardown, elastic re-formation) belongs to the
// implementation and its launcher, not to this interface.
type ProcessGroup interface {
	RankProvider

	// WorldSize returns the total number of workers in the group.
	WorldSize() int

	// AllGather gathers one tensor per worker, in rank order. All workers must
	// pass tensors of identical shape -- see AllGatherTensors for the uneven
	// variant built on top of this.
	AllGather(local *tensors.Tensor) ([]*tensors.Tensor, error)

	// Broadcast overwrites t in-place on every worker with root's value of t.
	// All workers must pass tensors of identical shape.
	Broadcast(t *tensors.Tensor, root int) error

	// AllReduce element-wise reduces t across all workers with the given op and
	// overwrites t in-place with the reduced result, identical on every worker.
	// All workers must pass tensors of identical shape.
	AllReduce(t *tensors.Tensor, op ReduceOp) error

	// Barrier blocks until every worker of the group has reached it.
	Barrier() error
}
