// Copyright 2026 The TNT Authors. SPDX-License-Identifier: Apache-2.0

// Package distributed implements helpers for multi-worker (data-parallel) training
// jobs, layered on top of an injected distributed runtime.
//
// The runtime collaborator is represented by the ProcessGroup interface: it owns
// process-group lifecycle, rank assignment and the collective-communication
// primitives (all-gather, broadcast, all-reduce, barrier). This package only adds
// thin orchestration on top:
//
//   - BackendForDevice selects the collective-communication backend able to
//     operate on tensors resident on a given device ("gloo" for CPU, "nccl" for
//     CUDA devices).
//   - AllGatherTensors gathers tensors of differing shapes across workers, built
//     only out of the runtime's shape-uniform all-gather.
//   - RankZeroFn wraps a function so its body only runs on the coordinator
//     (global rank 0).
//   - SyncBool reconciles divergent per-worker boolean decisions into one value
//     every worker agrees on, under a configurable CoherenceMode.
//
// Every helper that touches more than one worker is a blocking collective: all
// participating workers must call it, in the same order relative to other
// collectives. Collectives are matched positionally, not tagged, so a worker
// that skips a call deadlocks or corrupts the job. There is no timeout or
// cancellation at this layer; that responsibility belongs to the runtime and
// the surrounding launcher.
//
// All helpers accept a nil ProcessGroup to mean "not running distributed", in
// which case they degrade to their single-process behavior. Callers don't need
// to branch on whether a runtime was initialized.
//
// See subpackage local for an in-process ProcessGroup implementation, used for
// testing and single-machine simulation.
package distributed
