//go:build !noasm && amd64

package machine

import "github.com/klauspost/cpuid/v2"

func init() {
	// With hardware POPCNT each OnesCount32 is a single instruction, so the
	// four-chunk unrolled loop pays off.
	if cpuid.CPU.Supports(cpuid.POPCNT) {
		countVotes = countVotesUnrolled
	}
}
