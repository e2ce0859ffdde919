// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package apz

import "math/bits"

// Recursive Karatsuba multiplication over equal-length limb slices.
//
// mpn_mul_karatsuba.go sketches the z0/z1/z2 decomposition but is
// unfinished scaffolding: for n >= 32 it returns without computing
// anything ("This is simplified - full implementation would handle
// carries properly"). The completed algorithm below is grounded
// instead on apz_mul_karatsuba_x64 in original_source/libapac.h, a
// finished, carry-propagating implementation, with two fixes applied:
//
//   - the original computes trim_b0/trim_b1 from op1 instead of op2
//     (a copy-paste bug); this implementation trims b0/b1 from b.
//   - the original's final carry ripple into result+low*3 assumes
//     room through 2n-3*low without checking it; this implementation
//     bounds-checks that tail explicitly.

// limbMulKaratsuba multiplies two n-limb slices a and b into
// r[0:2n] using Karatsuba recursion, lazily allocating and releasing
// its own scratch workspace at this (outermost) call. Fails with
// ErrOOM if that scratch allocation fails.
func limbMulKaratsuba(r, a, b []uint64, n int) error {
	return limbMulKaratsubaWS(r, a, b, nil, n)
}

// karatsubaScratchLen computes the exact scratch length a size-n call
// needs for its whole recursion tree, given the current threshold. The
// naive "8*ceil(n/2)" figure spec.md section 4.4 names as the scratch
// contract holds only while every L=ceil(n/2) encountered while
// recursing is even: each level reserves 4L limbs for xd/yd/m and
// hands the remainder, ws[4L:], down to the P1 recursion at size L, so
// that recursion needs room for its own worst case, 4*ceil(L/2) more
// than its own nested P1 call needs in turn. When some L along the
// way is odd, 4L falls 4 limbs short of the 8*ceil(L/2) the next level
// would otherwise demand if it were sized independently; computing
// the requirement recursively here (rather than trusting the flat
// bound) avoids that shortfall.
func karatsubaScratchLen(n, threshold int) int {
	if n <= threshold {
		return 0
	}
	L := (n + 1) / 2
	return 4*L + karatsubaScratchLen(L, threshold)
}

// limbMulKaratsubaWS is the scratch-carrying recursive kernel. ws, when
// non-nil, must have capacity >= karatsubaScratchLen(n, threshold)
// limbs for the threshold in effect; passing nil means "outermost
// call, allocate scratch here", and the scratch is released again
// before this call returns. r must not alias a, b, or ws; ws must not
// alias a or b.
func limbMulKaratsubaWS(r, a, b, ws []uint64, n int) error {
	threshold := Tuning().KaratsubaThreshold
	if n <= threshold {
		out := r[:2*n]
		for i := range out {
			out[i] = 0
		}
		limbMulBasecase(out, a[:n], b[:n])
		return nil
	}

	allocatedHere := false
	if ws == nil {
		ws = currentAllocator().Alloc(karatsubaScratchLen(n, threshold))
		if ws == nil {
			return ErrOOM
		}
		allocatedHere = true
	}

	L := (n + 1) / 2
	H := n - L

	a0, a1 := a[:L], a[L:n]
	b0, b1 := b[:L], b[L:n]

	p0 := r[0 : 2*L]
	p2 := r[2*L : 2*n]

	// P0 = a0*b0, P2 = a1*b1. Both sub-calls may reuse the full parent
	// workspace: they run to completion sequentially and each needs at
	// most karatsubaScratchLen(L) (resp. karatsubaScratchLen(H)) limbs,
	// which is less than len(ws).
	if err := limbMulKaratsubaWS(p0, a0, b0, ws, L); err != nil {
		if allocatedHere {
			currentAllocator().Free(ws)
		}
		return err
	}
	if err := limbMulKaratsubaWS(p2, a1, b1, ws, H); err != nil {
		if allocatedHere {
			currentAllocator().Free(ws)
		}
		return err
	}

	ta0 := limbTrim(a0)
	ta1 := limbTrim(a1)
	tb0 := limbTrim(b0)
	tb1 := limbTrim(b1)
	cmp1 := limbCmpAbs(a0[:ta0], a1[:ta1])
	cmp2 := limbCmpAbs(b0[:tb0], b1[:tb1])

	xd := ws[0:L]
	yd := ws[L : 2*L]
	limbAbsDiff(xd, a0, a1, cmp1)
	limbAbsDiff(yd, b0, b1, cmp2)

	// P1 = |a0-a1| * |b0-b1|, computed in place into ws[2L:4L]. Its own
	// recursion gets the reduced scratch ws[4L:], since xd/yd (living
	// in ws[0:2L]) must stay intact while this multiply runs.
	m := ws[2*L : 4*L]
	if err := limbMulKaratsubaWS(m, xd, yd, ws[4*L:], L); err != nil {
		if allocatedHere {
			currentAllocator().Free(ws)
		}
		return err
	}

	// Fold the sign: when a0-a1 and b0-b1 took the same direction
	// (both non-negative or both negative), the true middle term
	// (a0-a1)(b0-b1) equals +P1, so M = P0+P2-P1; otherwise it equals
	// -P1, so M = P0+P2+P1. M = a0*b1 + a1*b0 is never negative but can
	// reach 2*beta^(2L), one bit past m's 2L limbs: m ends up holding
	// M modulo beta^(2L) and mHigh holds the bit above it.
	sameDirection := (cmp1 >= 0 && cmp2 >= 0) || (cmp1 < 0 && cmp2 < 0)
	var mHigh uint64
	if sameDirection {
		// m may well be smaller than p0+p2 here, so this subtraction
		// must wrap modulo beta^(2L) rather than trap like the
		// absolute-subtract primitive does; limbNeg below recovers
		// M modulo beta^(2L) from that wrapped form, and the borrow
		// count (less one unless the wrapped value is zero) gives the
		// bit above it.
		mHigh = limbSubNWrap(m, m, p0) + limbSubTruncWrap(m, p2)
		if limbTrim(m) != 0 {
			mHigh--
		}
		limbNeg(m)
	} else {
		mHigh = limbAddTrunc(m, p0) + limbAddTrunc(m, p2)
	}

	// r currently holds P0 (r[0:2L]) followed by P2 (r[2L:2n]), i.e.
	// r = P0 + P2*beta^(2L). Adding M*beta^L turns that into the
	// canonical r = P0 + M*beta^L + P2*beta^(2L), the standard
	// Karatsuba recombination identity.
	carry := limbAddN(r[L:3*L], r[L:3*L], m) + mHigh
	tailLen := 2*n - 3*L
	switch {
	case tailLen > 0:
		if c := limbAddU64(r[3*L:2*n], r[3*L:2*n], carry); c != 0 {
			panic("apz: karatsuba carry overflowed result width")
		}
	case carry != 0:
		panic("apz: karatsuba carry overflowed result width")
	}

	if allocatedHere {
		currentAllocator().Free(ws)
	}
	return nil
}

// limbAddTrunc adds short into dst in place, where len(short) <=
// len(dst), propagating the carry through the remainder of dst, and
// returns the carry out of dst's top limb.
// Grounded on karatsubaAdd in
// _examples/other_examples/b1e7c18b_bford-go__src-math-big-nat.go.go
// ("fast version of add... w/o bounds checks").
func limbAddTrunc(dst, short []uint64) uint64 {
	n := len(short)
	c := limbAddN(dst[:n], dst[:n], short)
	if c != 0 && n < len(dst) {
		c = limbAddU64(dst[n:], dst[n:], c)
	}
	return c
}

// limbSubNWrap is limbSubN's modular twin: it runs the same
// subtract-with-borrow chain but never traps on a final nonzero
// borrow, since Karatsuba's middle-term folding deliberately produces
// a two's-complement (mod beta^len(a)) result when the subtrahend
// exceeds the minuend. Only limbNeg's caller (here) may rely on that
// wrapped form; every other consumer of subtraction uses the trapping
// limbSubN.
func limbSubNWrap(r, a, b []uint64) uint64 {
	n := len(b)
	m := len(a)
	var borrow uint64
	for i := 0; i < n; i++ {
		r[i], borrow = bits.Sub64(a[i], b[i], borrow)
	}
	for i := n; i < m; i++ {
		r[i], borrow = bits.Sub64(a[i], 0, borrow)
	}
	return borrow
}

// limbSubTruncWrap subtracts short from dst in place (wrapping, not
// trapping), where len(short) <= len(dst), propagating the borrow
// through the remainder of dst, and returns the borrow out of dst's
// top limb.
func limbSubTruncWrap(dst, short []uint64) uint64 {
	n := len(short)
	b := limbSubNWrap(dst[:n], dst[:n], short)
	if b != 0 && n < len(dst) {
		b = limbSubU64Wrap(dst[n:], dst[n:], b)
	}
	return b
}

// limbSubU64Wrap subtracts the scalar v from a[0], wrapping the borrow
// through the rest of a into r (r may alias a). Internal plumbing for
// the Karatsuba sign fold; the limb-primitive surface in limb.go has
// only the trapping limbSubU64.
func limbSubU64Wrap(r, a []uint64, v uint64) uint64 {
	borrow := v
	for i := range a {
		r[i], borrow = bits.Sub64(a[i], borrow, 0)
	}
	return borrow
}
