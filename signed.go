// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package apz

// Signed-arithmetic dispatch: the layer that picks between the
// absolute (magnitude-only) limb primitives based on operand signs,
// routes multiplication to schoolbook or Karatsuba by operand size,
// and normalizes the destination's length and sign afterward.
// Grounded on apz_hl_add/apz_hl_sub in original_source/libapac.h,
// whose branches for the add/subtract case split are left as empty
// scaffolding in the C header; the logic below is the completed
// algorithm the surrounding comments there already describe.

// CmpAbs compares the magnitudes of a and b, per cmp_abs: -1, 0, or +1.
func CmpAbs(a, b *Int) int {
	return limbCmpAbs(a.limbsView(), b.limbsView())
}

// Add computes r = a + b. Fails with ErrOOM if r must grow and the
// allocator cannot supply storage, leaving r in its prior valid state.
func Add(r, a, b *Int) error {
	return signedAddSub(r, a, b, b.negative)
}

// Sub computes r = a - b: a signed add with b's sign flipped.
func Sub(r, a, b *Int) error {
	return signedAddSub(r, a, b, !b.negative)
}

// signedAddSub implements the signed add/subtract dispatch, taking
// b's effective sign (bNeg) separately from b.negative so that Sub can
// reuse it by flipping that one input. r may alias a or b; operand
// magnitudes are snapshotted up front so growing r in place (when r
// aliases a or b) can't clobber a value still needed below.
func signedAddSub(r, a, b *Int, bNeg bool) error {
	aMag := append([]uint64(nil), a.limbsView()...)
	bMag := append([]uint64(nil), b.limbsView()...)
	aNeg := a.negative

	big, small, bigNeg := aMag, bMag, aNeg
	if limbCmpAbs(aMag, bMag) < 0 {
		big, small, bigNeg = bMag, aMag, bNeg
	}

	if aNeg == bNeg {
		M := len(big)
		if err := r.Grow(M + 1); err != nil {
			return err
		}
		out := r.limbs[:M+1]
		for i := range out {
			out[i] = 0
		}
		copy(out[:M], big)
		carry := limbAddN(out[:len(small)], out[:len(small)], small)
		limbAddU64(out[len(small):], out[len(small):], carry)

		length := M
		if out[M] != 0 {
			length = M + 1
		}
		r.length = length
		r.negative = bigNeg
		return nil
	}

	M := len(big)
	if err := r.Grow(M); err != nil {
		return err
	}
	out := r.limbs[:M]
	limbSubN(out, big, small)

	length := limbTrim(out)
	r.length = length
	r.negative = bigNeg && length > 0
	return nil
}

// scalarAddMag implements the three-way case split of "signed scalar
// add" over a bare magnitude and sign, independent of which Int it
// ultimately lands in, so AddU64/SubU64/USub can all route through
// it. Returns the result magnitude (a fresh slice) and sign.
func scalarAddMag(mag []uint64, neg bool, v uint64) ([]uint64, bool) {
	if !neg {
		out := make([]uint64, len(mag)+1)
		copy(out, mag)
		limbAddU64(out, out, v)
		n := len(mag)
		if out[len(mag)] != 0 {
			n++
		}
		return out[:n], false
	}
	// mag represents 0 when empty, so the "magnitude < v" crossover
	// case must be checked against that implicit 0 too, not just an
	// actual single limb: a zero-length mag with v > 0 is exactly the
	// zero-minus-v case (e.g. SubU64/USub against a zero Int), which
	// otherwise falls through to the general subtract below and
	// underflows limbSubU64 on an empty slice.
	if len(mag) == 0 {
		return []uint64{v}, false
	}
	if len(mag) == 1 && mag[0] < v {
		return []uint64{v - mag[0]}, false
	}
	out := make([]uint64, len(mag))
	limbSubU64(out, mag, v)
	n := limbTrim(out)
	return out[:n], n > 0
}

// AddU64 computes r = a + v for a small unsigned v.
func AddU64(r, a *Int, v uint64) error {
	mag, neg := scalarAddMag(a.limbsView(), a.negative, v)
	return r.setMagnitude(mag, neg)
}

// SubU64 computes r = a - v for a small unsigned v: a + v computed
// against a's negated sign, then the result's sign is flipped back,
// since (a - v) = -((-a) + v).
func SubU64(r, a *Int, v uint64) error {
	mag, neg := scalarAddMag(a.limbsView(), !a.negative, v)
	return r.setMagnitude(mag, !neg)
}

// USub computes r = v - a for a small unsigned v: this is exactly
// (-a) + v, so it routes through the same scalarAddMag case split as
// SubU64 but keeps its sign unflipped.
func USub(r *Int, v uint64, a *Int) error {
	mag, neg := scalarAddMag(a.limbsView(), !a.negative, v)
	return r.setMagnitude(mag, neg)
}

// Mul computes r = a * b, routing to Karatsuba for equal-length
// operands above the tuned threshold and to schoolbook multiplication
// otherwise. r must not alias a or b.
func Mul(r, a, b *Int) error {
	if a.length == 0 || b.length == 0 {
		r.length = 0
		r.negative = false
		return nil
	}
	aMag := a.limbsView()
	bMag := b.limbsView()
	if err := r.Grow(len(aMag) + len(bMag)); err != nil {
		return err
	}
	out := r.limbs[:len(aMag)+len(bMag)]
	for i := range out {
		out[i] = 0
	}
	if len(aMag) == len(bMag) && len(aMag) > Tuning().KaratsubaThreshold {
		if err := limbMulKaratsuba(out, aMag, bMag, len(aMag)); err != nil {
			return err
		}
	} else {
		limbMulBasecase(out, aMag, bMag)
	}
	length := limbTrim(out)
	r.length = length
	r.negative = (a.negative != b.negative) && length > 0
	return nil
}

// MulU64Pos computes r = |a| * v with the result's sign forced
// positive, mirroring InitPos's unconditional sign regardless of what
// a's own sign was.
func MulU64Pos(r, a *Int, v uint64) error {
	return mulU64Signed(r, a, v, false)
}

// MulU64Neg computes r = |a| * v with the result's sign forced
// negative (unless the product is zero), mirroring InitNeg.
func MulU64Neg(r, a *Int, v uint64) error {
	return mulU64Signed(r, a, v, true)
}

func mulU64Signed(r, a *Int, v uint64, neg bool) error {
	aMag := a.limbsView()
	if len(aMag) == 0 || v == 0 {
		r.length = 0
		r.negative = false
		return nil
	}
	if err := r.Grow(len(aMag) + 1); err != nil {
		return err
	}
	out := r.limbs[:len(aMag)+1]
	for i := range out {
		out[i] = 0
	}
	limbMulU64(out, aMag, v)
	length := limbTrim(out)
	r.length = length
	r.negative = neg && length > 0
	return nil
}
