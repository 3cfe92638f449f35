// Package datasets implements the packed example encoding shared by the
// bundled datasets.
package datasets

import "github.com/bitlearn/tsetlin/bitset"

// Encoder packs boolean feature vectors into the fixed-stride chunk layout
// the engines expect. Each feature contributes two literals: its original
// value at bit f and its negation at bit Features+f.
type Encoder struct {
	Features int // boolean input features per patch
	Patches  int // patches per example
}

// Literals returns the number of literals per patch, counting negations.
func (e Encoder) Literals() int {
	return 2 * e.Features
}

// Chunks returns the number of words one patch occupies.
func (e Encoder) Chunks() int {
	return bitset.Words(e.Literals())
}

// Stride returns the number of words one example occupies.
func (e Encoder) Stride() int {
	return e.Patches * e.Chunks()
}

// Pack encodes one example (patch-major, Features booleans per patch) into
// a fresh slice of Stride() words.
func (e Encoder) Pack(bits []bool) []uint32 {
	out := make([]uint32, e.Stride())
	e.PackInto(out, bits)
	return out
}

// PackInto encodes one example into dst, which must hold Stride() words.
func (e Encoder) PackInto(dst []uint32, bits []bool) {
	chunks := e.Chunks()
	for p := 0; p < e.Patches; p++ {
		w := dst[p*chunks : (p+1)*chunks]
		for i := range w {
			w[i] = 0
		}
		for f := 0; f < e.Features; f++ {
			literal := f
			if !bits[p*e.Features+f] {
				literal = e.Features + f
			}
			w[literal/bitset.ChunkBits] |= 1 << (literal % bitset.ChunkBits)
		}
	}
}

// Dataset is a packed set of labeled examples.
type Dataset struct {
	X        []uint32
	Labels   []int
	Examples int
	Encoder  Encoder
}

// Row returns the packed words of example l.
func (d Dataset) Row(l int) []uint32 {
	stride := d.Encoder.Stride()
	return d.X[l*stride : (l+1)*stride]
}
