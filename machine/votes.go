package machine

import "math/bits"

// Even bit positions hold positive-polarity clauses.
const positiveMask = 0x55555555

// countVotes sums clause polarities over an unweighted clause output bitset.
// Swapped for an unrolled variant at init time on capable CPUs.
var countVotes = countVotesGeneric

func countVotesGeneric(out []uint32) (sum int) {
	for _, w := range out {
		sum += bits.OnesCount32(w&positiveMask) - bits.OnesCount32(w&^positiveMask)
	}
	return
}

func countVotesUnrolled(out []uint32) (sum int) {
	n := len(out) &^ 3
	for i := 0; i < n; i += 4 {
		a, b, c, d := out[i], out[i+1], out[i+2], out[i+3]
		sum += bits.OnesCount32(a&positiveMask) + bits.OnesCount32(b&positiveMask) +
			bits.OnesCount32(c&positiveMask) + bits.OnesCount32(d&positiveMask)
		sum -= bits.OnesCount32(a&^positiveMask) + bits.OnesCount32(b&^positiveMask) +
			bits.OnesCount32(c&^positiveMask) + bits.OnesCount32(d&^positiveMask)
	}
	for _, w := range out[n:] {
		sum += bits.OnesCount32(w&positiveMask) - bits.OnesCount32(w&^positiveMask)
	}
	return
}
