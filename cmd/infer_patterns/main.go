package main

import (
	"flag"
	"io"
	"log/slog"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bitlearn/tsetlin/datasets/patterns"
	"github.com/bitlearn/tsetlin/machine"
	"github.com/bitlearn/tsetlin/multiclass"
)

// Parameters mirrors the train_patterns parameter file; dataset and machine
// fields must match the training run for the state buffers to fit.
type Parameters struct {
	Classes  int     `yaml:"classes"`
	Features int     `yaml:"features"`
	PerClass int     `yaml:"per_class"`
	NoiseP   float64 `yaml:"noise_p"`

	Clauses   int     `yaml:"clauses"`
	Threshold int     `yaml:"threshold"`
	S         float64 `yaml:"s"`
	StateBits int     `yaml:"state_bits"`
	Weighted  bool    `yaml:"weighted_clauses"`

	ClauseDropP  float64 `yaml:"clause_drop_p"`
	LiteralDropP float64 `yaml:"literal_drop_p"`

	Seed int64 `yaml:"seed"`
}

func defaultParameters() Parameters {
	return Parameters{
		Classes:   4,
		Features:  64,
		PerClass:  250,
		NoiseP:    0.05,
		Clauses:   200,
		Threshold: 50,
		S:         5.0,
		StateBits: 8,
		Seed:      42,
	}
}

func main() {
	config := flag.String("config", "", "YAML parameter file overriding the defaults")
	state := flag.String("state", "", "state buffer file written by train_patterns -save")
	flag.Parse()

	if *state == "" {
		slog.Error("missing -state file")
		os.Exit(1)
	}

	p := defaultParameters()
	if *config != "" {
		data, err := os.ReadFile(*config)
		if err != nil {
			slog.Error("load parameters", "path", *config, "err", err)
			os.Exit(1)
		}
		if err := yaml.Unmarshal(data, &p); err != nil {
			slog.Error("parse parameters", "path", *config, "err", err)
			os.Exit(1)
		}
	}

	rng := rand.New(rand.NewSource(p.Seed))
	set := patterns.Generate(patterns.Config{
		Classes:  p.Classes,
		Features: p.Features,
		PerClass: p.PerClass,
		NoiseP:   p.NoiseP,
	}, rng)

	classifier, err := multiclass.New(multiclass.Config{
		Classes: p.Classes,
		Machine: machine.Config{
			Clauses:         p.Clauses,
			Features:        set.Encoder.Literals(),
			Patches:         1,
			StateBits:       p.StateBits,
			Threshold:       p.Threshold,
			S:               p.S,
			WeightedClauses: p.Weighted,
		},
	}, rng)
	if err != nil {
		slog.Error("build classifier", "err", err)
		os.Exit(1)
	}
	classifier.Initialize()

	if err := loadState(*state, classifier); err != nil {
		slog.Error("load state", "path", *state, "err", err)
		os.Exit(1)
	}

	predicted, err := classifier.Predict(set.X, set.Examples)
	if err != nil {
		slog.Error("predict", "err", err)
		os.Exit(1)
	}
	correct := 0
	for l, class := range predicted {
		if class == set.Labels[l] {
			correct++
		}
	}
	slog.Info("evaluated", "examples", set.Examples, "accuracy", float64(correct)/float64(set.Examples))
}

// loadState reads the raw per-class weight and TA state buffers in the
// order saveState wrote them.
func loadState(path string, c *multiclass.Classifier) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	for class := 0; class < c.Classes(); class++ {
		taLen, wLen, err := c.StateLen(class)
		if err != nil {
			return err
		}
		weights, err := readWords(f, wLen)
		if err != nil {
			return err
		}
		taState, err := readWords(f, taLen)
		if err != nil {
			return err
		}
		if err := c.SetState(class, weights, taState); err != nil {
			return err
		}
	}
	return nil
}

func readWords(f *os.File, n int) ([]uint32, error) {
	buf := make([]byte, 4*n)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, err
	}
	words := make([]uint32, n)
	for i := range words {
		words[i] = uint32(buf[4*i]) | uint32(buf[4*i+1])<<8 |
			uint32(buf[4*i+2])<<16 | uint32(buf[4*i+3])<<24
	}
	return words, nil
}
