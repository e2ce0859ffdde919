// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package apz

import "math/bits"

// Multi-precision limb operations. These are pure functions over raw
// []uint64 slices in little-endian limb order; none of them retain the
// slices they are given. They assume already-trimmed inputs (no
// leading-zero limbs) except where noted.

// limbCmpAbs compares the magnitudes of a and b, returning -1, 0, or +1.
// Both slices are assumed trimmed: if they differ in length the longer
// one is greater. Otherwise it scans from the most significant limb
// down, matching apz_abs_cmp in the C original.
func limbCmpAbs(a, b []uint64) int {
	if len(a) != len(b) {
		if len(a) > len(b) {
			return 1
		}
		return -1
	}
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// limbAddN computes r = a + b over n limbs and returns the final carry
// (0 or 1). r may alias a or b.
func limbAddN(r, a, b []uint64) uint64 {
	var carry uint64
	for i := range a {
		r[i], carry = bits.Add64(a[i], b[i], carry)
	}
	return carry
}

// limbAddU64 adds the scalar v into a[0] and ripples the carry through
// the rest of a into r. r may alias a.
func limbAddU64(r, a []uint64, v uint64) uint64 {
	carry := v
	for i := range a {
		r[i], carry = bits.Add64(a[i], carry, 0)
	}
	return carry
}

// limbSubU64 subtracts the scalar v from a[0] and ripples the borrow
// through the rest of a into r (r may alias a). The final borrow must
// be 0 (a precondition violation otherwise): callers only use this
// where the scalar is already known not to exceed a's magnitude.
func limbSubU64(r, a []uint64, v uint64) {
	borrow := v
	for i := range a {
		r[i], borrow = bits.Sub64(a[i], borrow, 0)
	}
	if borrow != 0 {
		panic("apz: limbSubU64 underflow")
	}
}

// limbSubN computes r = a - b, where a has m limbs and b has n <= m
// limbs and |a| >= |b|. It subtracts with borrow over the common
// prefix, then ripples the borrow through the remainder of a. The
// final borrow must be 0 (a precondition violation otherwise, matching
// the original's apz_abs_sub_x64 assertion).
func limbSubN(r, a, b []uint64) {
	n := len(b)
	m := len(a)
	if m < n {
		panic("apz: limbSubN requires len(a) >= len(b)")
	}
	var borrow uint64
	for i := 0; i < n; i++ {
		r[i], borrow = bits.Sub64(a[i], b[i], borrow)
	}
	for i := n; i < m; i++ {
		r[i], borrow = bits.Sub64(a[i], 0, borrow)
	}
	if borrow != 0 {
		panic("apz: limbSubN underflow (|a| < |b|)")
	}
}

// limbNeg two's-complement negates x in place: bitwise-invert every
// limb, then add one and propagate the carry. Used only by Karatsuba
// to fold the signed middle term into uniform limb arithmetic modulo
// beta^len(x) (matches apz_base_compliment).
func limbNeg(x []uint64) {
	for i := range x {
		x[i] = ^x[i]
	}
	limbAddU64(x, x, 1)
}

// limbTrim returns the largest n' <= len(x) such that x[n'-1] != 0, or
// 0 if x is entirely zero.
func limbTrim(x []uint64) int {
	n := len(x)
	for n > 0 && x[n-1] == 0 {
		n--
	}
	return n
}

// limbAbsDiff computes r = |x - y| for len(x) >= len(y), given cmp,
// the already-computed limbCmpAbs result for x against y on their
// trimmed views. Numeric magnitude and physical slice length don't
// necessarily agree here (y can hold fewer limbs than x yet still be
// the larger value, if x's extra high limbs are zero), so when y is
// the larger operand it is first zero-extended into r to match x's
// length before subtracting; that keeps every limbSubN call operating
// on equal-length (or correctly-ordered) operands. Used by Karatsuba
// to form |a0-a1| and |b0-b1|. r must have length len(x) and must not
// alias x or y.
func limbAbsDiff(r, x, y []uint64, cmp int) {
	if cmp >= 0 {
		limbSubN(r, x, y)
		return
	}
	copy(r, y)
	for i := len(y); i < len(x); i++ {
		r[i] = 0
	}
	limbSubN(r, r, x)
}
