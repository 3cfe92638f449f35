package machine

import (
	"math/rand"

	"github.com/bitlearn/tsetlin/bitset"
)

// Update performs one online training step on example x. target true trains
// the class positively, false negatively. The feedback probability shrinks
// as the vote sum approaches the threshold band edge, so saturated classes
// stop moving. rng drives patch selection and all stochastic feedback.
func (m *Machine) Update(x []uint32, target bool, rng *rand.Rand) {
	m.evaluate(x, false, rng)
	sum := m.votes()

	var probability float64
	if target {
		probability = float64(m.cfg.Threshold-sum) / float64(2*m.cfg.Threshold)
	} else {
		probability = float64(m.cfg.Threshold+sum) / float64(2*m.cfg.Threshold)
	}

	for j := 0; j < m.cfg.Clauses; j++ {
		if m.dropClause.Test(j) {
			continue
		}
		if rng.Float64() > probability {
			continue
		}
		positive := j%2 == 0
		if target == positive {
			m.typeI(j, x, rng)
		} else {
			m.typeII(j, x)
		}
	}
}

// typeI reinforces pattern capture: a firing clause strengthens its true
// literals and forgets false ones, a silent clause decays toward exclude.
func (m *Machine) typeI(clause int, x []uint32, rng *rand.Rand) {
	m.randomStream(rng, m.invS[clause])

	if !m.clauseOutput.Test(clause) {
		for k := 0; k < m.taChunks; k++ {
			m.dec(clause, k, m.streamBuf[k]&^m.dropLiteral[k])
		}
		return
	}

	if m.cfg.WeightedClauses {
		m.weights[clause]++
	}
	p := m.clausePatch[clause]
	for k := 0; k < m.taChunks; k++ {
		xi := x[p*m.taChunks+k]
		drop := m.dropLiteral[k]
		if m.cfg.BoostTruePositiveFeedback {
			m.inc(clause, k, xi&^drop)
		} else {
			m.inc(clause, k, xi&^m.streamBuf[k]&^drop)
		}
		m.dec(clause, k, ^xi&m.streamBuf[k]&^drop)
	}
}

// typeII combats false positives: excluded false literals of a firing clause
// are pushed toward include so the clause stops matching this example.
func (m *Machine) typeII(clause int, x []uint32) {
	if !m.clauseOutput.Test(clause) {
		return
	}
	if m.cfg.WeightedClauses && m.weights[clause] > 1 {
		m.weights[clause]--
	}
	p := m.clausePatch[clause]
	last := m.taChunks - 1
	for k := 0; k <= last; k++ {
		active := ^x[p*m.taChunks+k] &^ m.action(clause, k) &^ m.dropLiteral[k]
		if k == last {
			active &= m.filter
		}
		m.inc(clause, k, active)
	}
}

// randomStream fills streamBuf with literal bits drawn independently at
// probability p. Bits past the last valid literal stay zero.
func (m *Machine) randomStream(rng *rand.Rand, p float64) {
	for k := range m.streamBuf {
		var w uint32
		for b := 0; b < bitset.ChunkBits; b++ {
			if rng.Float64() < p {
				w |= 1 << b
			}
		}
		m.streamBuf[k] = w
	}
	m.streamBuf[m.taChunks-1] &= m.filter
}

// inc adds one to the automaton counters selected by active, saturating at
// the top state.
func (m *Machine) inc(clause, chunk int, active uint32) {
	base := (clause*m.taChunks + chunk) * m.cfg.StateBits
	carry := active
	for b := 0; b < m.cfg.StateBits && carry != 0; b++ {
		next := m.state[base+b] & carry
		m.state[base+b] ^= carry
		carry = next
	}
	if carry != 0 {
		for b := 0; b < m.cfg.StateBits; b++ {
			m.state[base+b] |= carry
		}
	}
}

// dec subtracts one from the automaton counters selected by active,
// saturating at zero.
func (m *Machine) dec(clause, chunk int, active uint32) {
	base := (clause*m.taChunks + chunk) * m.cfg.StateBits
	borrow := active
	for b := 0; b < m.cfg.StateBits && borrow != 0; b++ {
		next := ^m.state[base+b] & borrow
		m.state[base+b] ^= borrow
		borrow = next
	}
	if borrow != 0 {
		for b := 0; b < m.cfg.StateBits; b++ {
			m.state[base+b] &^= borrow
		}
	}
}
