// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package apz

import "fmt"

// TextDecoder is the collaborator seam for assigning an Int from
// external text. Decimal and hexadecimal parsing are explicitly out
// of scope for the core (they belong to an external collaborator);
// this interface is only the contract the core exposes to one.
// Mirrors the allocator façade's pattern of a single pluggable
// interface value rather than a pair of bare function pointers.
type TextDecoder interface {
	DecodeHex(text []byte) (magnitude []uint64, negative bool, err error)
	DecodeDec(text []byte) (magnitude []uint64, negative bool, err error)
}

var activeTextDecoder TextDecoder

// InstallTextDecoder installs d as the decoder used by
// Int.SetFromHex/Int.SetFromDec. Passing nil uninstalls it.
func InstallTextDecoder(d TextDecoder) {
	activeTextDecoder = d
}

// SetFromHex assigns x from a hexadecimal byte string via the
// installed TextDecoder. Returns ErrMathErr-wrapped if no decoder is
// installed, since parsing itself lives outside the core.
func (x *Int) SetFromHex(text []byte) error {
	if activeTextDecoder == nil {
		return fmt.Errorf("apz: SetFromHex: %w: no TextDecoder installed", ErrMathErr)
	}
	mag, neg, err := activeTextDecoder.DecodeHex(text)
	if err != nil {
		return fmt.Errorf("apz: SetFromHex: %w", err)
	}
	return x.setMagnitude(mag, neg)
}

// SetFromDec assigns x from a decimal byte string via the installed
// TextDecoder. Returns ErrMathErr-wrapped if no decoder is installed.
func (x *Int) SetFromDec(text []byte) error {
	if activeTextDecoder == nil {
		return fmt.Errorf("apz: SetFromDec: %w: no TextDecoder installed", ErrMathErr)
	}
	mag, neg, err := activeTextDecoder.DecodeDec(text)
	if err != nil {
		return fmt.Errorf("apz: SetFromDec: %w", err)
	}
	return x.setMagnitude(mag, neg)
}
