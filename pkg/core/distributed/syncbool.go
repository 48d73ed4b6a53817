// Copyright 2026 The TNT Authors. SPDX-License-Identifier: Apache-2.0

package distributed

import (
	"github.com/pkg/errors"

	"github.com/ninginthecloud/tnt/pkg/core/tensors"
)

// SyncBool reconciles a possibly-divergent local boolean decision (e.g., "should
// training stop") into one value returned identically on every worker of the
// group, according to mode.
//
// If pg is nil (not running distributed), it returns local unchanged, for every
// mode, so callers don't need to branch on whether a runtime was initialized.
//
// An unrecognized mode is an error, reported before any collective communication
// is attempted -- failing mid-protocol would leave peers blocked on a collective
// round that never completes.
func SyncBool(pg ProcessGroup, local bool, mode CoherenceMode) (bool, error) {
	if !mode.IsACoherenceMode() {
		return false, errors.Errorf("invalid coherence mode %v, must be one of %v",
			mode, CoherenceModeStrings())
	}
	if pg == nil {
		return local, nil
	}

	var value int32
	if local {
		value = 1
	}
	t := tensors.FromScalar(value)
	var err error
	switch mode {
	case CoherenceModeRankZero:
		err = pg.Broadcast(t, 0)
	case CoherenceModeAny:
		// OR over {0, 1} is the max.
		err = pg.AllReduce(t, ReduceOpMax)
	case CoherenceModeAll:
		// AND over {0, 1} is the min.
		err = pg.AllReduce(t, ReduceOpMin)
	}
	if err != nil {
		return false, errors.WithMessagef(err, "SyncBool(mode=%s)", mode)
	}

	var synced bool
	tensors.ConstFlatData(t, func(flat []int32) {
		synced = flat[0] != 0
	})
	return synced, nil
}
