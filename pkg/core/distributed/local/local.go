// Copyright 2026 The TNT Authors. SPDX-License-Identifier: Apache-2.0

// Package local implements an in-process distributed.ProcessGroup: a World of
// workers that live in the same OS process, one goroutine per rank, with
// collectives implemented over shared memory.
//
// It serves single-machine simulation and, mostly, tests: multi-worker protocol
// tests can run inside a regular `go test` without a launcher, while keeping
// the blocking, positionally-matched semantics of real collective backends.
// Unlike a real backend, it can also detect some protocol misuse: if the
// workers of one collective round disagree on the operation (or its operands'
// shapes), every participant of the round receives an error.
//
// A worker that never joins a round blocks its peers forever, like the real
// thing. There are no timeouts here; that belongs to the launcher.
package local

import (
	"sync"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/ninginthecloud/tnt/pkg/core/distributed"
	"github.com/ninginthecloud/tnt/pkg/core/tensors"
)

// World is a group of in-process workers with collective communication among
// them. Create it with NewWorld, and hand each worker goroutine its own group
// with World.Group, or use World.Run to launch one goroutine per rank.
type World struct {
	size   int
	groups []*Group

	mu    sync.Mutex
	cond  *sync.Cond
	round *round
}

// round is one collective rendezvous. All ranks deposit their input, the last
// to arrive computes the result, and the round is recycled once all depart.
type round struct {
	kind string // "allgather", "broadcast", "allreduce" or "barrier".
	op   distributed.ReduceOp
	root int

	inputs   []*tensors.Tensor
	arrived  int
	departed int
	done     bool

	// result is the reduced (or root's) tensor; gathered is the rank-ordered
	// collection for all-gather rounds. Departing ranks copy, never share.
	result   *tensors.Tensor
	gathered []*tensors.Tensor
	err      error
}

// NewWorld creates an in-process world with the given number of workers.
func NewWorld(size int) (*World, error) {
	if size <= 0 {
		return nil, errors.Errorf("local.NewWorld: world size must be positive, got %d", size)
	}
	w := &World{size: size}
	w.cond = sync.NewCond(&w.mu)
	w.groups = make([]*Group, size)
	for rank := range w.groups {
		w.groups[rank] = &Group{world: w, rank: rank}
	}
	klog.V(1).Infof("local.NewWorld: created in-process world with %d workers", size)
	return w, nil
}

// Size returns the number of workers in the world.
func (w *World) Size() int { return w.size }

// Group returns the process group handle for the given rank. Each worker
// goroutine must use its own handle.
func (w *World) Group(rank int) *Group {
	if rank < 0 || rank >= w.size {
		panic(errors.Errorf("local.World.Group: rank %d out of range [0, %d)", rank, w.size))
	}
	return w.groups[rank]
}

// Run launches fn once per rank, each in its own goroutine with that rank's
// group, and waits for all of them. It returns the first per-rank error, by
// rank order.
func (w *World) Run(fn func(g *Group) error) error {
	var wg sync.WaitGroup
	errs := make([]error, w.size)
	for rank := 0; rank < w.size; rank++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			errs[rank] = fn(w.groups[rank])
		}(rank)
	}
	wg.Wait()
	for rank, err := range errs {
		if err != nil {
			return errors.WithMessagef(err, "worker %d", rank)
		}
	}
	return nil
}

// rendezvous runs one collective round for the calling rank: it blocks until
// all ranks have joined with input, has the last arrival run compute, and
// returns the finished round to every participant.
//
// Rounds are positionally matched: the first collective call of each rank joins
// round 1, the second joins round 2, and so on. If the ranks of one round
// disagree on what collective they are running, the round fails for all of them.
func (w *World) rendezvous(rank int, kind string, op distributed.ReduceOp, root int, input *tensors.Tensor) (*round, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	// A finished round stays current until all its participants depart; wait for
	// the next one to open.
	for w.round != nil && w.round.done {
		w.cond.Wait()
	}
	if w.round == nil {
		w.round = &round{
			kind:   kind,
			op:     op,
			root:   root,
			inputs: make([]*tensors.Tensor, w.size),
		}
	}
	r := w.round
	if r.kind != kind || r.op != op || r.root != root {
		// Mismatched collectives: the job is desynchronized. Fail the whole round.
		r.err = errors.Errorf(
			"mismatched collective operations in the same round: %s(op=%s, root=%d) vs %s(op=%s, root=%d)",
			r.kind, r.op, r.root, kind, op, root)
	}
	if input != nil {
		r.inputs[rank] = input.Clone()
	}
	r.arrived++

	if r.arrived == w.size {
		klog.V(2).Infof("local.World: %s round complete with %d workers", kind, w.size)
		if r.err == nil {
			r.err = w.compute(r)
		}
		r.done = true
		w.cond.Broadcast()
	} else {
		for !r.done {
			w.cond.Wait()
		}
	}

	r.departed++
	if r.departed == w.size {
		w.round = nil
		w.cond.Broadcast()
	}
	return r, r.err
}

// compute runs with w.mu held, once per round, by the last arriving rank.
func (w *World) compute(r *round) error {
	switch r.kind {
	case "barrier":
		return nil
	case "allgather":
		if err := checkUniform(r.inputs); err != nil {
			return err
		}
		r.gathered = r.inputs
		return nil
	case "broadcast":
		if err := checkUniform(r.inputs); err != nil {
			return err
		}
		if r.root < 0 || r.root >= w.size {
			return errors.Errorf("broadcast root %d out of range [0, %d)", r.root, w.size)
		}
		r.result = r.inputs[r.root]
		return nil
	case "allreduce":
		if err := checkUniform(r.inputs); err != nil {
			return err
		}
		result := r.inputs[0].Clone()
		for _, input := range r.inputs[1:] {
			if err := reduceInto(result, input, r.op); err != nil {
				return err
			}
		}
		r.result = result
		return nil
	}
	return errors.Errorf("unknown collective kind %q", r.kind)
}

// checkUniform verifies the shape-uniformity requirement of the underlying
// collectives: every rank must contribute the same shape and dtype.
func checkUniform(inputs []*tensors.Tensor) error {
	shape := inputs[0].Shape()
	for rank, input := range inputs[1:] {
		if !input.Shape().Equal(shape) {
			return errors.Errorf(
				"collective requires identical shapes on all workers, got %s on worker 0 vs %s on worker %d",
				shape, input.Shape(), rank+1)
		}
	}
	return nil
}

// Group is one worker's handle into a World. It implements
// distributed.ProcessGroup.
type Group struct {
	world *World
	rank  int
}

var _ distributed.ProcessGroup = (*Group)(nil)

// Rank returns this worker's rank in the world, in [0, WorldSize).
func (g *Group) Rank() int { return g.rank }

// WorldSize returns the number of workers in the world.
func (g *Group) WorldSize() int { return g.world.size }

// AllGather implements distributed.ProcessGroup: it gathers one tensor per
// worker, in rank order. All workers must pass identical shapes.
func (g *Group) AllGather(local *tensors.Tensor) ([]*tensors.Tensor, error) {
	r, err := g.world.rendezvous(g.rank, "allgather", distributed.ReduceOpUndefined, -1, local)
	if err != nil {
		return nil, err
	}
	// Each worker gets its own copies: results must not share storage across
	// goroutines.
	result := make([]*tensors.Tensor, len(r.gathered))
	for i, t := range r.gathered {
		result[i] = t.Clone()
	}
	return result, nil
}

// Broadcast implements distributed.ProcessGroup: it overwrites t in-place on
// every worker with root's value.
func (g *Group) Broadcast(t *tensors.Tensor, root int) error {
	r, err := g.world.rendezvous(g.rank, "broadcast", distributed.ReduceOpUndefined, root, t)
	if err != nil {
		return err
	}
	return t.CopyFrom(r.result)
}

// AllReduce implements distributed.ProcessGroup: it element-wise reduces t
// across all workers and overwrites t in-place with the result.
func (g *Group) AllReduce(t *tensors.Tensor, op distributed.ReduceOp) error {
	if !op.IsAReduceOp() || op == distributed.ReduceOpUndefined {
		return errors.Errorf("invalid reduce op %v", op)
	}
	r, err := g.world.rendezvous(g.rank, "allreduce", op, -1, t)
	if err != nil {
		return err
	}
	return t.CopyFrom(r.result)
}

// Barrier implements distributed.ProcessGroup: it blocks until every worker of
// the world has reached it.
func (g *Group) Barrier() error {
	_, err := g.world.rendezvous(g.rank, "barrier", distributed.ReduceOpUndefined, -1, nil)
	return err
}
