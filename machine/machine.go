// Package machine implements the single-class Tsetlin machine engine.
//
// One Machine owns the automaton state and clause weights for one class.
// Clauses alternate polarity (even-indexed clauses vote positive), literals
// are bit-packed 32 to a chunk, and each automaton counter is stored across
// StateBits bit planes so that feedback increments and decrements 32
// automata at a time with carry arithmetic.
package machine

import (
	"errors"
	"fmt"

	"github.com/bitlearn/tsetlin/bitset"
)

var (
	// ErrInvalidConfig is returned when a Config cannot describe a machine.
	ErrInvalidConfig = errors.New("invalid machine configuration")

	// ErrSizeMismatch is returned when a state buffer does not match the
	// machine's dimensions exactly.
	ErrSizeMismatch = errors.New("state buffer size mismatch")

	// ErrIndexRange is returned when a clause or automaton index is out of
	// range.
	ErrIndexRange = errors.New("clause or automaton index out of range")
)

// Config holds the hyperparameters of a single-class machine.
type Config struct {
	Clauses   int // number of clauses, alternating polarity
	Features  int // number of literals, counting original and negated
	Patches   int // patches evaluated per example
	StateBits int // bit planes per automaton counter, 1..32
	Threshold int // T, clamps the vote sum to [-T, T]

	S      float64 // specificity of the first clause
	SRange float64 // specificity of the last clause; 0 means S

	BoostTruePositiveFeedback bool // always reinforce true literals of firing clauses
	WeightedClauses           bool // learn an integer weight per clause
}

// Machine is the engine for one class.
type Machine struct {
	cfg      Config
	taChunks int
	filter   uint32 // valid literal bits in the last TA chunk

	state   []uint32 // (clause*taChunks+chunk)*StateBits planes, action plane last
	weights []uint32

	clauseOutput bitset.Bits
	dropClause   bitset.Bits
	dropLiteral  bitset.Bits

	clausePatch []int     // patch drawn per firing clause during update
	patchBuf    []int     // satisfying patches scratch
	streamBuf   []uint32  // Type I feedback literal mask scratch
	invS        []float64 // per-clause feedback probability 1/s_j
}

// New constructs a machine from cfg. The automaton state is undefined until
// Initialize is called.
func New(cfg Config) (*Machine, error) {
	if cfg.SRange == 0 {
		cfg.SRange = cfg.S
	}
	switch {
	case cfg.Clauses <= 0:
		return nil, fmt.Errorf("%w: clauses %d", ErrInvalidConfig, cfg.Clauses)
	case cfg.Features <= 0:
		return nil, fmt.Errorf("%w: features %d", ErrInvalidConfig, cfg.Features)
	case cfg.Patches <= 0:
		return nil, fmt.Errorf("%w: patches %d", ErrInvalidConfig, cfg.Patches)
	case cfg.StateBits < 1 || cfg.StateBits > 32:
		return nil, fmt.Errorf("%w: state bits %d", ErrInvalidConfig, cfg.StateBits)
	case cfg.Threshold <= 0:
		return nil, fmt.Errorf("%w: threshold %d", ErrInvalidConfig, cfg.Threshold)
	case cfg.S < 1:
		return nil, fmt.Errorf("%w: s %v", ErrInvalidConfig, cfg.S)
	case cfg.SRange < cfg.S:
		return nil, fmt.Errorf("%w: s range %v below s %v", ErrInvalidConfig, cfg.SRange, cfg.S)
	}

	m := &Machine{
		cfg:      cfg,
		taChunks: bitset.Words(cfg.Features),
		filter:   lastChunkFilter(cfg.Features),
	}
	m.state = make([]uint32, cfg.Clauses*m.taChunks*cfg.StateBits)
	m.weights = make([]uint32, cfg.Clauses)
	m.clauseOutput = bitset.New(cfg.Clauses)
	m.dropClause = bitset.New(cfg.Clauses)
	m.dropLiteral = bitset.New(cfg.Features)
	m.clausePatch = make([]int, cfg.Clauses)
	m.patchBuf = make([]int, 0, cfg.Patches)
	m.streamBuf = make([]uint32, m.taChunks)

	m.invS = make([]float64, cfg.Clauses)
	for j := range m.invS {
		m.invS[j] = 1 / clauseSpecificity(cfg, j)
	}
	return m, nil
}

// clauseSpecificity interpolates s linearly from S to SRange across clauses.
func clauseSpecificity(cfg Config, clause int) float64 {
	if cfg.Clauses < 2 {
		return cfg.S
	}
	return cfg.S + float64(clause)/float64(cfg.Clauses-1)*(cfg.SRange-cfg.S)
}

func lastChunkFilter(features int) uint32 {
	if features%bitset.ChunkBits == 0 {
		return ^uint32(0)
	}
	return ^uint32(0) >> (bitset.ChunkBits - features%bitset.ChunkBits)
}

// Initialize puts every automaton on the exclude side of the decision
// boundary and every clause weight at one. Call exactly once after New.
func (m *Machine) Initialize() {
	for j := 0; j < m.cfg.Clauses; j++ {
		for k := 0; k < m.taChunks; k++ {
			base := (j*m.taChunks + k) * m.cfg.StateBits
			for b := 0; b < m.cfg.StateBits-1; b++ {
				m.state[base+b] = ^uint32(0)
			}
			m.state[base+m.cfg.StateBits-1] = 0
		}
	}
	for j := range m.weights {
		m.weights[j] = 1
	}
	m.clauseOutput.Zero()
	m.dropClause.Zero()
	m.dropLiteral.Zero()
}

// Clauses returns the number of clauses.
func (m *Machine) Clauses() int {
	return m.cfg.Clauses
}

// Features returns the number of literals, counting both polarities.
func (m *Machine) Features() int {
	return m.cfg.Features
}

// Patches returns the number of patches per example.
func (m *Machine) Patches() int {
	return m.cfg.Patches
}

// Stride returns the number of input words one example occupies.
func (m *Machine) Stride() int {
	return m.cfg.Patches * m.taChunks
}

// ClauseOutput returns the clause output cache refreshed by the last Score
// or Update call.
func (m *Machine) ClauseOutput() bitset.Bits {
	return m.clauseOutput
}

// DropClause returns the mutable clause drop mask.
func (m *Machine) DropClause() bitset.Bits {
	return m.dropClause
}

// DropLiteral returns the mutable literal drop mask.
func (m *Machine) DropLiteral() bitset.Bits {
	return m.dropLiteral
}

// action returns the include-action plane of one TA chunk.
func (m *Machine) action(clause, chunk int) uint32 {
	return m.state[(clause*m.taChunks+chunk)*m.cfg.StateBits+m.cfg.StateBits-1]
}
