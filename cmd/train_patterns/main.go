package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bitlearn/tsetlin/datasets/patterns"
	"github.com/bitlearn/tsetlin/machine"
	"github.com/bitlearn/tsetlin/multiclass"
)

// Parameters of the demo. Any field can be overridden from a YAML file.
type Parameters struct {
	Classes  int     `yaml:"classes"`   // classes in the synthetic dataset
	Features int     `yaml:"features"`  // boolean features per example
	PerClass int     `yaml:"per_class"` // examples generated per class
	NoiseP   float64 `yaml:"noise_p"`   // per-bit flip probability

	Clauses   int     `yaml:"clauses"`
	Threshold int     `yaml:"threshold"`
	S         float64 `yaml:"s"`
	StateBits int     `yaml:"state_bits"`
	Weighted  bool    `yaml:"weighted_clauses"`

	ClauseDropP  float64 `yaml:"clause_drop_p"`
	LiteralDropP float64 `yaml:"literal_drop_p"`

	Epochs int   `yaml:"epochs"`
	Seed   int64 `yaml:"seed"` // drives dataset generation and training
}

func defaultParameters() Parameters {
	return Parameters{
		Classes:      4,
		Features:     64,
		PerClass:     250,
		NoiseP:       0.05,
		Clauses:      200,
		Threshold:    50,
		S:            5.0,
		StateBits:    8,
		Weighted:     false,
		ClauseDropP:  0.1,
		LiteralDropP: 0.1,
		Epochs:       25,
		Seed:         42,
	}
}

func loadParameters(path string) (Parameters, error) {
	p := defaultParameters()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	err = yaml.Unmarshal(data, &p)
	return p, err
}

func main() {
	config := flag.String("config", "", "YAML parameter file overriding the defaults")
	save := flag.String("save", "", "write the trained state buffers to this file")
	flag.Parse()

	p, err := loadParameters(*config)
	if err != nil {
		slog.Error("load parameters", "path", *config, "err", err)
		os.Exit(1)
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
		ClauseDropP:  p.ClauseDropP,
		LiteralDropP: p.LiteralDropP,
	}, rng)
	if err != nil {
		slog.Error("build classifier", "err", err)
		os.Exit(1)
	}
	classifier.Initialize()

	slog.Info("training",
		"examples", set.Examples,
		"classes", p.Classes,
		"clauses", p.Clauses,
		"epochs", p.Epochs,
		"clause_drop_p", p.ClauseDropP,
		"literal_drop_p", p.LiteralDropP)

	if err := classifier.Fit(set.X, set.Labels, set.Examples, p.Epochs); err != nil {
		slog.Error("fit", "err", err)
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
	slog.Info("trained", "accuracy", float64(correct)/float64(set.Examples))

	if *save != "" {
		if err := saveState(*save, classifier); err != nil {
			slog.Error("save state", "path", *save, "err", err)
			os.Exit(1)
		}
		slog.Info("state saved", "path", *save)
	}
}

// saveState writes the raw per-class weight and TA state buffers back to
// back in class order.
func saveState(path string, c *multiclass.Classifier) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	for class := 0; class < c.Classes(); class++ {
		taLen, wLen, err := c.StateLen(class)
		if err != nil {
			return err
		}
		weights := make([]uint32, wLen)
		taState := make([]uint32, taLen)
		if err := c.GetState(class, weights, taState); err != nil {
			return err
		}
		if err := writeWords(f, weights); err != nil {
			return err
		}
		if err := writeWords(f, taState); err != nil {
			return err
		}
	}
	return nil
}

func writeWords(f *os.File, words []uint32) error {
	buf := make([]byte, 4*len(words))
	for i, w := range words {
		buf[4*i] = byte(w)
		buf[4*i+1] = byte(w >> 8)
		buf[4*i+2] = byte(w >> 16)
		buf[4*i+3] = byte(w >> 24)
	}
	_, err := f.Write(buf)
	return err
}
