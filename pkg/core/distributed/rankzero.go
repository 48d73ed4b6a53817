// Copyright 2026 The TNT Authors. SPDX-License-Identifier: Apache-2.0

package distributed

// RankZeroFn wraps a zero-argument function so that its body only runs on the
// coordinator worker (global rank 0).
//
// Calling the returned function on rank 0 executes fn and returns its result
// with ok == true. On every other rank, fn is not executed (none of its side
// effects happen) and the zero value is returned with ok == false.
//
// A nil RankProvider means "not running distributed" and is treated as rank 0.
//
// Wrappings are independent and compose by nesting. Whatever fn panics with is
// propagated unchanged, on rank 0 only.
func RankZeroFn[T any](rp RankProvider, fn func() T) func() (value T, ok bool) {
	return OnRank(rp, 0, fn)
}

// OnRank generalizes RankZeroFn to an arbitrary designated rank: the returned
// function executes fn only on the worker whose global rank equals rank.
//
// A nil RankProvider is treated as rank 0.
func OnRank[T any](rp RankProvider, rank int, fn func() T) func() (value T, ok bool) {
	return func() (value T, ok bool) {
		current := 0
		if rp != nil {
			current = rp.Rank()
		}
		if current != rank {
			return value, false
		}
		return fn(), true
	}
}
