// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package apz

import (
	"math/bits"
	"strconv"
)

// Int is an arbitrary-precision signed integer: a little-endian slice
// of limbs, trimmed of leading zero limbs, paired with a sign. Zero is
// always represented with length 0 and negative false, matching
// apz_t/apz_trim in the C original. The zero value of Int is ready to
// use (the value zero, bound on first growth to whichever allocator is
// installed at that moment); InitPos/InitNeg
// are provided for parity with the original's two-constructor split
// and for callers that want to pick an allocator up front.
type Int struct {
	limbs    []uint64
	length   int
	negative bool
	alloc    Allocator
}

// InitPos constructs a non-negative Int from a single 64-bit limb,
// mirroring apz_init_pos64. Fails with ErrOOM if the allocator cannot
// supply storage.
func InitPos(v uint64) (*Int, error) {
	return newSingleLimb(v, false)
}

// InitNeg constructs a negative Int from a single 64-bit magnitude,
// mirroring apz_init_neg64. A magnitude of 0 yields zero (which is
// never negative), matching apz_trim's zero-normalization. Fails with
// ErrOOM if the allocator cannot supply storage.
func InitNeg(v uint64) (*Int, error) {
	return newSingleLimb(v, true)
}

func newSingleLimb(v uint64, neg bool) (*Int, error) {
	x := &Int{alloc: currentAllocator()}
	if v == 0 {
		return x, nil
	}
	limbs := x.alloc.Alloc(1)
	if limbs == nil {
		return nil, ErrOOM
	}
	x.limbs = limbs
	x.limbs[0] = v
	x.length = 1
	x.negative = neg
	return x, nil
}

// allocator returns x's allocator, binding it to the process-wide
// current allocator on first use. This is what makes the zero value
// of Int actually usable as a destination (e.g. &Int{} as an Add/Mul
// result): struct literals constructed outside the package can't set
// the unexported alloc field, so every method that touches storage
// goes through this lazy binding instead of x.alloc directly.
func (x *Int) allocator() Allocator {
	if x.alloc == nil {
		x.alloc = currentAllocator()
	}
	return x.alloc
}

// Sign returns -1, 0, or +1 according to the sign of x.
func (x *Int) Sign() int {
	if x.length == 0 {
		return 0
	}
	if x.negative {
		return -1
	}
	return 1
}

// IsZero reports whether x is zero.
func (x *Int) IsZero() bool {
	return x.length == 0
}

// limbsView returns the trimmed limb slice in use, with no guarantee
// about capacity beyond it.
func (x *Int) limbsView() []uint64 {
	return x.limbs[:x.length]
}

// Grow ensures x has capacity for at least n limbs, reallocating via
// x's allocator if necessary. Grounded on apz_grow: when growth is
// needed it over-allocates to max(n, capacity*3/2 + 8) limbs so that
// repeated small increments don't reallocate on every call. On ErrOOM
// x is left in its prior valid state, unchanged.
func (x *Int) Grow(n int) error {
	if cap(x.limbs) >= n {
		return nil
	}
	target := cap(x.limbs)*3/2 + 8
	if target < n {
		target = n
	}
	grown := x.allocator().Realloc(x.limbs, target)
	if grown == nil {
		return ErrOOM
	}
	x.limbs = grown
	return nil
}

// ShrinkFit reallocates x's storage down to exactly its current
// length, releasing any unused capacity back to the allocator.
// Grounded on apz_shrink_fit. On ErrOOM x is left in its prior valid
// state, unchanged.
func (x *Int) ShrinkFit() error {
	if cap(x.limbs) == x.length {
		return nil
	}
	if x.length == 0 {
		if x.limbs != nil {
			x.allocator().Free(x.limbs)
		}
		x.limbs = nil
		return nil
	}
	shrunk := x.allocator().Realloc(x.limbs[:x.length], x.length)
	if shrunk == nil {
		return ErrOOM
	}
	x.limbs = shrunk
	return nil
}

// Reset zeroes x in place (length 0, non-negative) without releasing
// its backing storage, matching apz_reset. Use Release to actually
// give the storage back to the allocator.
func (x *Int) Reset() {
	x.length = 0
	x.negative = false
}

// Release returns x's limb storage to its allocator and resets x to
// zero. x may be reused afterward; Grow will re-acquire storage as
// needed. Matches apz_free followed by apz_reset.
func (x *Int) Release() {
	if x.limbs != nil {
		x.allocator().Free(x.limbs)
	}
	x.limbs = nil
	x.length = 0
	x.negative = false
}

// Copy returns a new Int with the same value as x, allocated through
// x's allocator. Fails with ErrOOM if the allocator cannot supply
// storage.
func (x *Int) Copy() (*Int, error) {
	y := &Int{alloc: x.allocator(), negative: x.negative, length: x.length}
	if x.length > 0 {
		limbs := y.allocator().Alloc(x.length)
		if limbs == nil {
			return nil, ErrOOM
		}
		y.limbs = limbs
		copy(y.limbs, x.limbsView())
	}
	return y, nil
}

// setMagnitude replaces x's magnitude and sign with mag (trimmed
// in place) and neg, normalizing the sign when the trimmed magnitude
// is zero. On ErrOOM x is left in its prior valid state, unchanged.
func (x *Int) setMagnitude(mag []uint64, neg bool) error {
	n := limbTrim(mag)
	if err := x.Grow(n); err != nil {
		return err
	}
	copy(x.limbs, mag[:n])
	x.length = n
	x.negative = neg && n > 0
	return nil
}

// String renders x in decimal using only the limb primitives defined
// here (repeated division by a large power of ten), independent of
// the optional TextDecoder seam, which covers parsing rather than
// formatting. Zero renders as "0".
func (x *Int) String() string {
	if x.length == 0 {
		return "0"
	}
	// 10^19 is the largest power of ten that still fits in a uint64,
	// so each division step peels off up to 19 decimal digits at a
	// time instead of one.
	const chunk = 10_000_000_000_000_000_000
	work := make([]uint64, x.length)
	copy(work, x.limbsView())
	n := x.length

	var groups []uint64
	for n > 0 {
		var rem uint64
		for i := n - 1; i >= 0; i-- {
			work[i], rem = bits.Div64(rem, work[i], chunk)
		}
		groups = append(groups, rem)
		n = limbTrim(work[:n])
	}

	buf := make([]byte, 0, len(groups)*19+1)
	if x.negative {
		buf = append(buf, '-')
	}
	last := len(groups) - 1
	buf = append(buf, strconv.FormatUint(groups[last], 10)...)
	for i := last - 1; i >= 0; i-- {
		s := strconv.FormatUint(groups[i], 10)
		for pad := len(s); pad < 19; pad++ {
			buf = append(buf, '0')
		}
		buf = append(buf, s...)
	}
	return string(buf)
}
