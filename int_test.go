// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package apz

import "testing"

func TestInitPosNeg(t *testing.T) {
	x, err := InitPos(42)
	if err != nil {
		t.Fatalf("InitPos: %v", err)
	}
	if x.length != 1 || x.negative || x.limbs[0] != 42 {
		t.Fatalf("InitPos(42): length=%d negative=%v limbs=%v", x.length, x.negative, x.limbs)
	}

	y, err := InitNeg(7)
	if err != nil {
		t.Fatalf("InitNeg: %v", err)
	}
	if y.length != 1 || !y.negative || y.limbs[0] != 7 {
		t.Fatalf("InitNeg(7): length=%d negative=%v limbs=%v", y.length, y.negative, y.limbs)
	}
}

func TestInitZeroIsAlwaysPositive(t *testing.T) {
	// "length = 0 <=> negative = false" must hold even when the caller
	// asks for InitNeg(0).
	z, err := InitNeg(0)
	if err != nil {
		t.Fatalf("InitNeg(0): %v", err)
	}
	if z.length != 0 || z.negative {
		t.Fatalf("InitNeg(0) must normalize to positive zero, got length=%d negative=%v", z.length, z.negative)
	}
	if !z.IsZero() || z.Sign() != 0 {
		t.Fatalf("IsZero/Sign disagree with zero length")
	}
}

func TestGrowPreservesValue(t *testing.T) {
	x, _ := InitPos(0xdeadbeef)
	before := append([]uint64(nil), x.limbsView()...)
	beforeLen := x.length

	if err := x.Grow(64); err != nil {
		t.Fatalf("Grow: %v", err)
	}
	if x.length != beforeLen {
		t.Fatalf("Grow changed length: %d -> %d", beforeLen, x.length)
	}
	after := x.limbsView()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("Grow changed value at limb %d: %v -> %v", i, before, after)
		}
	}
	if cap(x.limbs) < 64 {
		t.Fatalf("Grow(64) left capacity %d < 64", cap(x.limbs))
	}
}

func TestGrowNoopWhenSufficient(t *testing.T) {
	x, _ := InitPos(1)
	if err := x.Grow(4); err != nil {
		t.Fatalf("Grow: %v", err)
	}
	capAfterFirst := cap(x.limbs)
	if err := x.Grow(2); err != nil {
		t.Fatalf("Grow: %v", err)
	}
	if cap(x.limbs) != capAfterFirst {
		t.Fatalf("Grow(2) reallocated even though capacity %d already sufficed", capAfterFirst)
	}
}

func TestShrinkFit(t *testing.T) {
	x, _ := InitPos(9)
	if err := x.Grow(100); err != nil {
		t.Fatalf("Grow: %v", err)
	}
	if err := x.ShrinkFit(); err != nil {
		t.Fatalf("ShrinkFit: %v", err)
	}
	if cap(x.limbs) != x.length {
		t.Fatalf("ShrinkFit left capacity %d != length %d", cap(x.limbs), x.length)
	}
	if x.limbs[0] != 9 {
		t.Fatalf("ShrinkFit lost value: %v", x.limbs)
	}
}

func TestShrinkFitOnZero(t *testing.T) {
	x, _ := InitPos(5)
	x.Reset()
	if err := x.ShrinkFit(); err != nil {
		t.Fatalf("ShrinkFit: %v", err)
	}
	if x.length != 0 || cap(x.limbs) != 0 {
		t.Fatalf("ShrinkFit on zero should release storage entirely, cap=%d", cap(x.limbs))
	}
}

func TestReset(t *testing.T) {
	x, _ := InitNeg(123)
	capBefore := cap(x.limbs)
	x.Reset()
	if x.length != 0 || x.negative {
		t.Fatalf("Reset did not zero the value: length=%d negative=%v", x.length, x.negative)
	}
	if cap(x.limbs) != capBefore {
		t.Fatalf("Reset must retain storage: cap %d -> %d", capBefore, cap(x.limbs))
	}
}

func TestRelease(t *testing.T) {
	x, _ := InitPos(1)
	x.Release()
	if x.limbs != nil || x.length != 0 || x.negative {
		t.Fatalf("Release left residue: limbs=%v length=%d negative=%v", x.limbs, x.length, x.negative)
	}
	// The handle must remain usable afterward (Grow reacquires storage).
	if err := x.Grow(2); err != nil {
		t.Fatalf("Grow after Release: %v", err)
	}
}

func TestCopyIsIndependent(t *testing.T) {
	x, _ := InitNeg(77)
	y, err := x.Copy()
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if y.length != x.length || y.negative != x.negative || y.limbs[0] != x.limbs[0] {
		t.Fatalf("Copy did not preserve value: x=%+v y=%+v", x, y)
	}
	y.limbs[0] = 999
	if x.limbs[0] == 999 {
		t.Fatal("Copy aliased the source's limb storage")
	}
}

func TestStringZero(t *testing.T) {
	x, _ := InitPos(0)
	if got := x.String(); got != "0" {
		t.Fatalf("String() of zero = %q, want \"0\"", got)
	}
}

func TestStringSingleLimb(t *testing.T) {
	x, _ := InitPos(12345)
	if got := x.String(); got != "12345" {
		t.Fatalf("String() = %q, want \"12345\"", got)
	}
	y, _ := InitNeg(12345)
	if got := y.String(); got != "-12345" {
		t.Fatalf("String() = %q, want \"-12345\"", got)
	}
}

func TestStringMultiLimb(t *testing.T) {
	// 2^64 = 18446744073709551616.
	x := &Int{alloc: currentAllocator(), limbs: []uint64{0, 1}, length: 2}
	if got := x.String(); got != "18446744073709551616" {
		t.Fatalf("String() = %q, want \"18446744073709551616\"", got)
	}
}

func TestZeroValueIntUsableAsDestination(t *testing.T) {
	// &Int{} (no InitPos/InitNeg call, no explicit allocator) must be
	// usable directly as a Grow/Add destination: that's how callers
	// are expected to create result handles.
	a, _ := InitPos(5)
	b, _ := InitPos(7)
	var r Int
	if err := Add(&r, a, b); err != nil {
		t.Fatalf("Add into zero-value Int: %v", err)
	}
	if r.String() != "12" {
		t.Fatalf("Add into zero-value Int = %q, want \"12\"", r.String())
	}

	var g Int
	if err := g.Grow(16); err != nil {
		t.Fatalf("Grow on zero-value Int: %v", err)
	}
	if cap(g.limbs) < 16 {
		t.Fatalf("Grow(16) on zero-value Int left capacity %d", cap(g.limbs))
	}
}

func TestStringSpansMultipleChunkGroups(t *testing.T) {
	// 2^128 = 340282366920938463463374607431768211456, which spans
	// three 10^19 decimal groups and exercises the zero-padding path
	// for every group but the most significant.
	x := &Int{alloc: currentAllocator(), limbs: []uint64{0, 0, 1}, length: 3}
	want := "340282366920938463463374607431768211456"
	if got := x.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
