// Package patterns generates seeded synthetic noisy bit-pattern datasets.
//
// Each class gets a random prototype bit pattern; examples are prototypes
// with independent per-bit noise flips. With low noise the classes are
// close to linearly separable, which makes the datasets useful for demos
// and for end-to-end accuracy tests.
package patterns

import (
	"math/rand"

	"github.com/bitlearn/tsetlin/datasets"
)

// Config describes a synthetic dataset.
type Config struct {
	Classes  int     // number of classes
	Features int     // boolean features per example
	PerClass int     // examples generated per class
	NoiseP   float64 // per-bit flip probability
}

// Generate builds a shuffled dataset of Classes*PerClass examples from rng.
func Generate(cfg Config, rng *rand.Rand) datasets.Dataset {
	enc := datasets.Encoder{Features: cfg.Features, Patches: 1}

	prototypes := make([][]bool, cfg.Classes)
	for class := range prototypes {
		proto := make([]bool, cfg.Features)
		for f := range proto {
			proto[f] = rng.Intn(2) == 1
		}
		prototypes[class] = proto
	}

	n := cfg.Classes * cfg.PerClass
	d := datasets.Dataset{
		X:        make([]uint32, n*enc.Stride()),
		Labels:   make([]int, n),
		Examples: n,
		Encoder:  enc,
	}

	bits := make([]bool, cfg.Features)
	l := 0
	for class := 0; class < cfg.Classes; class++ {
		for e := 0; e < cfg.PerClass; e++ {
			copy(bits, prototypes[class])
			for f := range bits {
				if rng.Float64() < cfg.NoiseP {
					bits[f] = !bits[f]
				}
			}
			enc.PackInto(d.Row(l), bits)
			d.Labels[l] = class
			l++
		}
	}

	Shuffle(d, rng)
	return d
}

// Shuffle permutes examples and labels together.
func Shuffle(d datasets.Dataset, rng *rand.Rand) {
	stride := d.Encoder.Stride()
	tmp := make([]uint32, stride)
	rng.Shuffle(d.Examples, func(i, j int) {
		copy(tmp, d.Row(i))
		copy(d.Row(i), d.Row(j))
		copy(d.Row(j), tmp)
		d.Labels[i], d.Labels[j] = d.Labels[j], d.Labels[i]
	})
}

// ShuffleLabels permutes labels independently of the examples, destroying
// the pattern-label association while keeping the label distribution.
func ShuffleLabels(d datasets.Dataset, rng *rand.Rand) {
	rng.Shuffle(d.Examples, func(i, j int) {
		d.Labels[i], d.Labels[j] = d.Labels[j], d.Labels[i]
	})
}
