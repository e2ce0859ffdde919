// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package apz

import "math/bits"

// limbMulU64 computes r[0:n+1] = a[0:n] * v, where n = len(a). r is
// assumed zero-filled on entry unless the caller intends to accumulate
// into existing contents; the final high limb lands at r[n]. Grounded
// on apz_mul_ui_x64 in the C original: each iteration widens a[j]*v to
// (high, low) via the 64x64->128 multiply, folds in the high part and
// outgoing add-carry from the previous iteration, then adds the result
// into r[j], carrying that add's overflow into the next iteration.
func limbMulU64(r, a []uint64, v uint64) {
	n := len(a)
	var high, tempReg, aux1, aux2 uint64
	for j := 0; j < n; j++ {
		tempReg = high + aux2
		var lo uint64
		high, lo = bits.Mul64(a[j], v)
		tempReg, aux1 = bits.Add64(tempReg, lo, 0)
		high, _ = bits.Add64(high, 0, aux1)
		r[j], aux2 = bits.Add64(tempReg, r[j], 0)
	}
	r[n] += aux2 + high
}

// limbMulBasecase computes r[0:m+n] = a[0:m] * b[0:n] via schoolbook
// multiplication, m = len(a), n = len(b). r must be zero-initialized on
// entry and must not alias a or b. Grounded on apz_mul_basecase_x64:
// for each row i the inner loop over j runs the same three-carry-chain
// accumulation as limbMulU64, with the row's final high landing at
// r[i+n].
func limbMulBasecase(r, a, b []uint64) {
	m := len(a)
	n := len(b)
	for i := 0; i < m; i++ {
		var high, tempReg, aux1, aux2 uint64
		for j := 0; j < n; j++ {
			tempReg = high + aux2
			var lo uint64
			high, lo = bits.Mul64(a[i], b[j])
			tempReg, aux1 = bits.Add64(tempReg, lo, 0)
			high, _ = bits.Add64(high, 0, aux1)
			r[i+j], aux2 = bits.Add64(tempReg, r[i+j], 0)
		}
		r[i+n] += aux2 + high
	}
}
