// Copyright 2026 The TNT Authors. SPDX-License-Identifier: Apache-2.0

package distributed_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninginthecloud/tnt/pkg/core/distributed"
	"github.com/ninginthecloud/tnt/pkg/core/distributed/local"
)

func TestSyncBoolSingleProcess(t *testing.T) {
	// With no runtime initialized, SyncBool is a passthrough for every mode.
	for _, mode := range distributed.CoherenceModeValues() {
		for _, value := range []bool{false, true} {
			synced, err := distributed.SyncBool(nil, value, mode)
			require.NoError(t, err)
			assert.Equalf(t, value, synced, "mode %s, value %v", mode, value)
		}
	}
}

func TestSyncBoolInvalidMode(t *testing.T) {
	_, err := distributed.SyncBool(nil, true, distributed.CoherenceMode(42))
	require.ErrorContains(t, err, "invalid coherence mode")
}

// syncBoolAcrossWorkers runs SyncBool on a 2-worker job where rank 0 proposes
// true and rank 1 proposes false, and requires that both workers observe want.
func syncBoolAcrossWorkers(t *testing.T, mode distributed.CoherenceMode, want bool) {
	w, err := local.NewWorld(2)
	require.NoError(t, err)
	require.NoError(t, w.Run(func(g *local.Group) error {
		localValue := g.Rank() == 0
		synced, err := distributed.SyncBool(g, localValue, mode)
		if err != nil {
			return err
		}
		if synced != want {
			return fmt.Errorf("rank %d: got %v, want %v", g.Rank(), synced, want)
		}
		return nil
	}))
}

func TestSyncBoolCoherenceModeRankZero(t *testing.T) {
	// Rank 0 proposed true; every worker takes its value.
	syncBoolAcrossWorkers(t, distributed.CoherenceModeRankZero, true)
}

func TestSyncBoolCoherenceModeAny(t *testing.T) {
	// At least one worker proposed true.
	syncBoolAcrossWorkers(t, distributed.CoherenceModeAny, true)
}

func TestSyncBoolCoherenceModeAll(t *testing.T) {
	// Not every worker proposed true.
	syncBoolAcrossWorkers(t, distributed.CoherenceModeAll, false)
}

func TestSyncBoolAgreeingWorkers(t *testing.T) {
	for _, mode := range distributed.CoherenceModeValues() {
		t.Run(mode.String(), func(t *testing.T) {
			w, err := local.NewWorld(3)
			require.NoError(t, err)
			require.NoError(t, w.Run(func(g *local.Group) error {
				synced, err := distributed.SyncBool(g, true, mode)
				if err != nil {
					return err
				}
				if !synced {
					return fmt.Errorf("rank %d: all workers proposed true, got false", g.Rank())
				}
				return nil
			}))
		})
	}
}

func TestSyncBoolInvalidModeBeforeCollective(t *testing.T) {
	// An invalid mode must fail on every worker before any collective round, so
	// no worker is left blocked waiting for the others.
	w, err := local.NewWorld(2)
	require.NoError(t, err)
	err = w.Run(func(g *local.Group) error {
		_, err := distributed.SyncBool(g, true, distributed.CoherenceMode(-1))
		return err
	})
	require.ErrorContains(t, err, "invalid coherence mode")
}
