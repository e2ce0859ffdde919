// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package apz

import "sync"

// Allocator is the façade through which an Int obtains and releases its
// limb storage. It mirrors the alloc/realloc/free triple of the C
// original (set_memory_func_ptrs in libapac.h), expressed over limb
// counts instead of raw byte pointers.
//
// Alloc must return a zero-filled slice of length n. Realloc must
// return a slice of length n whose first min(n, len(old)) elements
// equal old's, with any new tail zero-filled; it may reuse old's
// backing array. Free releases a slice previously returned by Alloc or
// Realloc; implementations that do not need an explicit release (such
// as the garbage-collected default) may treat it as a no-op.
//
// Alloc and Realloc may return a nil slice to signal out-of-memory;
// callers translate that into ErrOOM. Free has no way to report
// failure.
type Allocator interface {
	Alloc(n int) []uint64
	Realloc(old []uint64, n int) []uint64
	Free(limbs []uint64)
}

// heapAllocator binds the façade to the Go heap. It never reports
// out-of-memory itself (allocation failure in Go surfaces as a runtime
// panic, not a recoverable error), matching the "default maps to the
// process heap" clause of the façade contract.
type heapAllocator struct{}

func (heapAllocator) Alloc(n int) []uint64 {
	return make([]uint64, n)
}

func (heapAllocator) Realloc(old []uint64, n int) []uint64 {
	if n == cap(old) {
		// Same capacity already: reslicing is observationally identical
		// to a fresh allocation here, so avoid the copy.
		resliced := old[:n]
		for i := len(old); i < n; i++ {
			resliced[i] = 0
		}
		return resliced
	}
	// n < cap(old) (ShrinkFit's exact-fit request) or n > cap(old)
	// (Grow's over-allocation request): either way the caller expects
	// cap of the result to equal n exactly, which a reslice of old's
	// backing array can't deliver when n < cap(old), so allocate fresh.
	grown := make([]uint64, n)
	copy(grown, old)
	return grown
}

func (heapAllocator) Free([]uint64) {}

// DefaultAllocator is the process-wide default, installed until
// InstallAllocator replaces it.
var DefaultAllocator Allocator = heapAllocator{}

var (
	activeAllocator   Allocator = DefaultAllocator
	activeAllocatorMu sync.Mutex
)

// InstallAllocator installs a as the allocator used by package-level
// constructors (InitPos, InitNeg) for every Int created after this
// call returns. Passing nil restores DefaultAllocator. Each Int
// captures the allocator that was active at its own construction time
// and keeps using it for Grow/ShrinkFit/Release, so installing a new
// allocator never strands limbs acquired under a previous one — the
// lifetime-matching rule of §5 holds per instance rather than relying
// on global state at release time.
//
// Unlike the C original's set_memory_func_ptrs, the Go Allocator is a
// single interface value rather than three independent function
// pointers, so the "all three or none" precondition of the façade
// contract is unrepresentable rather than something InstallAllocator
// must validate and trap on.
func InstallAllocator(a Allocator) {
	activeAllocatorMu.Lock()
	defer activeAllocatorMu.Unlock()
	if a == nil {
		activeAllocator = DefaultAllocator
		return
	}
	activeAllocator = a
}

func currentAllocator() Allocator {
	activeAllocatorMu.Lock()
	defer activeAllocatorMu.Unlock()
	return activeAllocator
}
