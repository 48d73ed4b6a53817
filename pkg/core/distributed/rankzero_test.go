// Copyright 2026 The TNT Authors. SPDX-License-Identifier: Apache-2.0

package distributed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ninginthecloud/tnt/pkg/core/distributed"
)

// fakeRank is a RankProvider with a fixed rank.
type fakeRank int

func (r fakeRank) Rank() int { return int(r) }

func TestRankZeroFnOnCoordinator(t *testing.T) {
	calls := 0
	fn := distributed.RankZeroFn(fakeRank(0), func() int {
		calls++
		return 1
	})
	value, ok := fn()
	assert.True(t, ok)
	assert.Equal(t, 1, value)
	assert.Equal(t, 1, calls)
}

func TestRankZeroFnOnOtherRank(t *testing.T) {
	calls := 0
	fn := distributed.RankZeroFn(fakeRank(1), func() int {
		calls++
		return 1
	})
	value, ok := fn()
	assert.False(t, ok)
	assert.Zero(t, value)
	assert.Zero(t, calls, "the wrapped body must not run off the coordinator")
}

func TestRankZeroFnNilProvider(t *testing.T) {
	// No distributed runtime: treated as rank 0.
	fn := distributed.RankZeroFn(nil, func() string { return "ran" })
	value, ok := fn()
	assert.True(t, ok)
	assert.Equal(t, "ran", value)
}

func TestRankZeroFnNested(t *testing.T) {
	inner := distributed.RankZeroFn(fakeRank(0), func() int { return 7 })
	outer := distributed.RankZeroFn(fakeRank(0), func() int {
		v, _ := inner()
		return v + 1
	})
	value, ok := outer()
	assert.True(t, ok)
	assert.Equal(t, 8, value)
}

func TestOnRank(t *testing.T) {
	fn := distributed.OnRank(fakeRank(2), 2, func() int { return 5 })
	value, ok := fn()
	assert.True(t, ok)
	assert.Equal(t, 5, value)

	fn = distributed.OnRank(fakeRank(1), 2, func() int { return 5 })
	_, ok = fn()
	assert.False(t, ok)
}
