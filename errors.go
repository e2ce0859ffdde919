// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package apz

import "errors"

// ErrOOM is returned by any operation that attempts to allocate or grow
// limb storage and fails. The destination is left either in its prior
// valid state or reset to zero with its original capacity, depending on
// whether the failure occurred before or after the reset step; each
// failing operation documents which applies.
var ErrOOM = errors.New("apz: out of memory")

// ErrMathErr is reserved for arithmetic-domain errors raised by
// collaborators built on top of this package (division by zero, an
// unparsable numeral, and so on). The core components never return it
// directly except from the text-decoder seam when no decoder has been
// installed.
var ErrMathErr = errors.New("apz: math error")
