package bitset

import (
	"testing"
)

func TestWords(t *testing.T) {
	testCases := []struct {
		bits  int
		words int
	}{
		{0, 0},
		{1, 1},
		{31, 1},
		{32, 1},
		{33, 2},
		{64, 2},
		{65, 3},
	}
	for _, tc := range testCases {
		if got := Words(tc.bits); got != tc.words {
			t.Errorf("Words(%d) = %d, want %d", tc.bits, got, tc.words)
		}
	}
}

func TestSetTestClear(t *testing.T) {
	b := New(100)
	for _, i := range []int{0, 1, 31, 32, 63, 64, 99} {
		if b.Test(i) {
			t.Errorf("bit %d set in fresh bitset", i)
		}
		b.Set(i)
		if !b.Test(i) {
			t.Errorf("bit %d not set after Set", i)
		}
	}
	if b.Count() != 7 {
		t.Errorf("Count() = %d, want 7", b.Count())
	}
	b.Clear(32)
	if b.Test(32) {
		t.Error("bit 32 still set after Clear")
	}
	if !b.Test(31) || b.Test(33) {
		t.Error("Clear touched neighboring bits")
	}
}

func TestZeroNone(t *testing.T) {
	b := New(70)
	if !b.None() {
		t.Error("fresh bitset not empty")
	}
	b.Set(69)
	if b.None() {
		t.Error("None() true with bit 69 set")
	}
	b.Zero()
	if !b.None() {
		t.Error("Zero() left bits behind")
	}
	if b.Count() != 0 {
		t.Errorf("Count() = %d after Zero, want 0", b.Count())
	}
}

func TestCopyIndependent(t *testing.T) {
	b := New(40)
	b.Set(3)
	c := b.Copy()
	c.Set(7)
	if b.Test(7) {
		t.Error("Copy shares storage with original")
	}
	if !c.Test(3) {
		t.Error("Copy lost bit 3")
	}
}
