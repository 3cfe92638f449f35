// Package multiclass implements a multiclass Tsetlin machine classifier as
// an ensemble of single-class engines, one per class.
//
// Training uses the one-vs-other pairwise scheme: each example trains its
// own class engine positively and one randomly sampled other class engine
// negatively, keeping per-example cost constant in the class count.
// Prediction scores every engine and takes the argmax, with ties going to
// the lowest class index. Fit shuffles the example order every epoch and
// regenerates per-engine clause and literal dropout masks; the masks are
// guaranteed inert outside an active epoch.
package multiclass

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/bitlearn/tsetlin/bitset"
	"github.com/bitlearn/tsetlin/machine"
)

// Engine is the capability set the classifier needs from a single-class
// engine. machine.Machine implements it; alternate engines (convolutional
// or otherwise) can be substituted through FromEngines.
type Engine interface {
	Initialize()
	Score(x []uint32) int
	Update(x []uint32, target bool, rng *rand.Rand)

	Clauses() int
	Features() int
	Stride() int

	ClauseOutput() bitset.Bits
	DropClause() bitset.Bits
	DropLiteral() bitset.Bits

	StateLen() (taState, weights int)
	GetState(weights, taState []uint32) error
	SetState(weights, taState []uint32) error
	TAState(clause, ta int) (int, error)
	TAAction(clause, ta int) (int, error)
	ClauseConfiguration(clause int) ([]uint32, error)
}

// Config holds the ensemble hyperparameters. The machine config is shared
// by every class engine.
type Config struct {
	Classes int            // number of classes, at least 2
	Machine machine.Config // applied identically to every engine

	ClauseDropP  float64 // per-epoch probability of dropping each clause
	LiteralDropP float64 // per-epoch probability of dropping each literal
}

// Classifier is a multiclass Tsetlin machine. The engine slice is owned
// exclusively by the classifier; class id equals engine index. Not safe for
// concurrent use: the random stream and engine state mutate on every
// training and scoring call.
type Classifier struct {
	engines []Engine
	stride  int
	rng     *rand.Rand

	clauseDropP  float64
	literalDropP float64
}

// New builds an ensemble of cfg.Classes identically configured machines.
// rng drives shuffling, negative-class sampling and dropout; pass a seeded
// generator for deterministic runs, or nil for a time-seeded one.
func New(cfg Config, rng *rand.Rand) (*Classifier, error) {
	if cfg.Classes < 2 {
		return nil, fmt.Errorf("%w: %d classes, pairwise training needs at least 2", ErrInvalidConfig, cfg.Classes)
	}
	if err := checkDropP(cfg.ClauseDropP, cfg.LiteralDropP); err != nil {
		return nil, err
	}
	engines := make([]Engine, cfg.Classes)
	for i := range engines {
		m, err := machine.New(cfg.Machine)
		if err != nil {
			return nil, fmt.Errorf("class %d: %w", i, err)
		}
		engines[i] = m
	}
	return &Classifier{
		engines:      engines,
		stride:       engines[0].Stride(),
		rng:          defaultRNG(rng),
		clauseDropP:  cfg.ClauseDropP,
		literalDropP: cfg.LiteralDropP,
	}, nil
}

// FromEngines builds a classifier over caller-supplied engines. All engines
// must share the same input stride and clause count; the classifier takes
// ownership of the slice.
func FromEngines(engines []Engine, clauseDropP, literalDropP float64, rng *rand.Rand) (*Classifier, error) {
	if len(engines) < 2 {
		return nil, fmt.Errorf("%w: %d engines, pairwise training needs at least 2", ErrInvalidConfig, len(engines))
	}
	if err := checkDropP(clauseDropP, literalDropP); err != nil {
		return nil, err
	}
	for i, e := range engines {
		if e.Stride() != engines[0].Stride() || e.Clauses() != engines[0].Clauses() {
			return nil, fmt.Errorf("%w: engine %d layout differs from engine 0", ErrInvalidConfig, i)
		}
	}
	return &Classifier{
		engines:      engines,
		stride:       engines[0].Stride(),
		rng:          defaultRNG(rng),
		clauseDropP:  clauseDropP,
		literalDropP: literalDropP,
	}, nil
}

func checkDropP(clauseDropP, literalDropP float64) error {
	if clauseDropP < 0 || clauseDropP > 1 || literalDropP < 0 || literalDropP > 1 {
		return fmt.Errorf("%w: drop probabilities %v/%v outside [0, 1]", ErrInvalidConfig, clauseDropP, literalDropP)
	}
	return nil
}

func defaultRNG(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Initialize delegates automaton-state initialization to every engine. Call
// exactly once after New.
func (c *Classifier) Initialize() {
	for _, e := range c.engines {
		e.Initialize()
	}
}

// Classes returns the number of classes.
func (c *Classifier) Classes() int {
	return len(c.engines)
}

// Stride returns the number of input words one example occupies.
func (c *Classifier) Stride() int {
	return c.stride
}

func (c *Classifier) checkInput(x []uint32, examples int) error {
	if need := examples * c.stride; len(x) < need {
		return fmt.Errorf("%w: %d words for %d examples, need %d", ErrInputSize, len(x), examples, need)
	}
	return nil
}

func (c *Classifier) checkClass(class int) error {
	if class < 0 || class >= len(c.engines) {
		return fmt.Errorf("%w: class %d of %d", ErrClassRange, class, len(c.engines))
	}
	return nil
}
