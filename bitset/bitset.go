// Package bitset implements the chunked bitset type used for clause outputs
// and drop masks
package bitset

import "math/bits"

// ChunkBits is the width of one storage word.
const ChunkBits = 32

// Bits is a bitset backed by 32-bit chunks. Bit i lives at chunk i/32,
// position i%32, matching the packed input and state layout of the engines.
type Bits []uint32

// Words returns the number of chunks needed to hold n bits.
func Words(n int) int {
	return (n + ChunkBits - 1) / ChunkBits
}

// New returns a zeroed bitset holding n bits.
func New(n int) Bits {
	return make(Bits, Words(n))
}

// Set sets bit i.
func (b Bits) Set(i int) {
	b[i/ChunkBits] |= 1 << (i % ChunkBits)
}

// Clear clears bit i.
func (b Bits) Clear(i int) {
	b[i/ChunkBits] &^= 1 << (i % ChunkBits)
}

// Test reports whether bit i is set.
func (b Bits) Test(i int) bool {
	return b[i/ChunkBits]&(1<<(i%ChunkBits)) != 0
}

// Zero clears every bit.
func (b Bits) Zero() {
	for i := range b {
		b[i] = 0
	}
}

// None reports whether no bit is set.
func (b Bits) None() bool {
	for _, w := range b {
		if w != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of set bits.
func (b Bits) Count() (o int) {
	for _, w := range b {
		o += bits.OnesCount32(w)
	}
	return
}

// Copy returns an independent copy of the bitset.
func (b Bits) Copy() Bits {
	o := make(Bits, len(b))
	copy(o, b)
	return o
}
