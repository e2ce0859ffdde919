// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package apz

import "math/bits"

// Size-hint functions: upper bounds on result limb counts, for
// callers that want to Grow a destination once before an operation
// rather than rely on the operation's own internal growth.

// LimitAdd returns the limb-count upper bound for Add or Sub of a, b.
func LimitAdd(a, b *Int) int {
	m := a.length
	if b.length > m {
		m = b.length
	}
	return m + 1
}

// LimitMul returns the limb-count upper bound for Mul(a, b).
func LimitMul(a, b *Int) int {
	return a.length + b.length
}

// LimitSqr returns the limb-count upper bound for Mul(a, a).
func LimitSqr(a *Int) int {
	return 2 * a.length
}

// LimitExp returns the limb-count upper bound for raising a to the
// given exponent, using the bit-length identity len(a^e) <=
// e*len_bits(a)/64 + 1: exponentiation itself is an external
// collaborator's concern (division and modexp are out of scope here),
// but callers driving one externally still need a capacity hint sized
// from the core's own limb width.
func LimitExp(a *Int, exponent uint64) int {
	if a.length == 0 {
		return 0
	}
	bitLen := (a.length-1)*64 + bits.Len64(a.limbs[a.length-1])
	totalBits := uint64(bitLen) * exponent
	return int(totalBits/64) + 1
}
