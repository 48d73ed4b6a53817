// Copyright 2026 The TNT Authors. SPDX-License-Identifier: Apache-2.0

package distributed

// CoherenceMode is the policy SyncBool uses to reconcile divergent per-worker
// boolean decisions into one value every worker agrees on.
type CoherenceMode int

//go:generate go tool enumer -type=CoherenceMode -trimprefix=CoherenceMode -transform=snake -output=gen_coherencemode_enumer.go coherencemode.go

const (
	// CoherenceModeRankZero takes rank 0's local value and broadcasts it to all
	// other workers; their local values are ignored.
	CoherenceModeRankZero CoherenceMode = iota

	// CoherenceModeAny is the logical OR across all workers' local values: true
	// if at least one worker proposed true.
	CoherenceModeAny

	// CoherenceModeAll is the logical AND across all workers' local values: true
	// only if every worker proposed true.
	CoherenceModeAll
)
