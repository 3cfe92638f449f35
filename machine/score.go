package machine

import "math/rand"

// Score evaluates every clause on example x and returns the vote sum clamped
// to [-Threshold, Threshold]. The clause output cache is left reflecting x.
// x must hold Stride() words.
func (m *Machine) Score(x []uint32) int {
	m.evaluate(x, true, nil)
	return m.votes()
}

// evaluate refreshes the clause output cache. In predict mode a clause with
// no included literals outputs 0 and patch search stops at the first match.
// In update mode dropped clauses are skipped, dropped literals are treated
// as satisfied, and one satisfying patch is drawn per firing clause for
// feedback.
func (m *Machine) evaluate(x []uint32, predict bool, rng *rand.Rand) {
	m.clauseOutput.Zero()
	last := m.taChunks - 1
	for j := 0; j < m.cfg.Clauses; j++ {
		if !predict && m.dropClause.Test(j) {
			continue
		}

		allExclude := true
		for k := 0; k <= last; k++ {
			a := m.action(j, k)
			if k == last {
				a &= m.filter
			}
			if !predict {
				a &^= m.dropLiteral[k]
			}
			if a != 0 {
				allExclude = false
				break
			}
		}
		if predict && allExclude {
			continue
		}

		matches := m.patchBuf[:0]
		for p := 0; p < m.cfg.Patches; p++ {
			ok := true
			for k := 0; k <= last; k++ {
				a := m.action(j, k)
				if k == last {
					a &= m.filter
				}
				if !predict {
					a &^= m.dropLiteral[k]
				}
				if a&x[p*m.taChunks+k] != a {
					ok = false
					break
				}
			}
			if ok {
				if predict {
					m.clauseOutput.Set(j)
					break
				}
				matches = append(matches, p)
			}
		}
		if !predict && len(matches) > 0 {
			m.clauseOutput.Set(j)
			m.clausePatch[j] = matches[rng.Intn(len(matches))]
		}
	}
}

// votes sums clause polarities over the output cache and clamps to the
// threshold band.
func (m *Machine) votes() int {
	var sum int
	if m.cfg.WeightedClauses {
		for j := 0; j < m.cfg.Clauses; j++ {
			if !m.clauseOutput.Test(j) {
				continue
			}
			if j%2 == 0 {
				sum += int(m.weights[j])
			} else {
				sum -= int(m.weights[j])
			}
		}
	} else {
		sum = countVotes(m.clauseOutput)
	}
	if sum > m.cfg.Threshold {
		sum = m.cfg.Threshold
	} else if sum < -m.cfg.Threshold {
		sum = -m.cfg.Threshold
	}
	return sum
}
