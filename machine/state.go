package machine

import "fmt"

// StateLen returns the exact buffer lengths for GetState and SetState: TA
// state words and clause weight words.
func (m *Machine) StateLen() (taState, weights int) {
	return m.cfg.Clauses * m.taChunks * m.cfg.StateBits, m.cfg.Clauses
}

// GetState bulk-copies the automaton state and clause weights into the
// caller's buffers, which must be sized exactly per StateLen.
func (m *Machine) GetState(weights, taState []uint32) error {
	if err := m.checkStateLen(weights, taState); err != nil {
		return err
	}
	copy(taState, m.state)
	copy(weights, m.weights)
	return nil
}

// SetState bulk-copies caller buffers into the automaton state and clause
// weights. Buffer contents are not validated beyond length.
func (m *Machine) SetState(weights, taState []uint32) error {
	if err := m.checkStateLen(weights, taState); err != nil {
		return err
	}
	copy(m.state, taState)
	copy(m.weights, weights)
	return nil
}

func (m *Machine) checkStateLen(weights, taState []uint32) error {
	ts, ws := m.StateLen()
	if len(taState) != ts || len(weights) != ws {
		return fmt.Errorf("%w: got %d weight and %d state words, want %d and %d",
			ErrSizeMismatch, len(weights), len(taState), ws, ts)
	}
	return nil
}

// TAState returns the integer counter of one automaton, reassembled from its
// bit planes.
func (m *Machine) TAState(clause, ta int) (int, error) {
	if err := m.checkIndex(clause, ta); err != nil {
		return 0, err
	}
	chunk, pos := ta/32, uint(ta%32)
	base := (clause*m.taChunks + chunk) * m.cfg.StateBits
	var state int
	for b := 0; b < m.cfg.StateBits; b++ {
		if m.state[base+b]&(1<<pos) != 0 {
			state |= 1 << b
		}
	}
	return state, nil
}

// TAAction reports whether one automaton currently includes its literal:
// 1 for include, 0 for exclude.
func (m *Machine) TAAction(clause, ta int) (int, error) {
	if err := m.checkIndex(clause, ta); err != nil {
		return 0, err
	}
	if m.action(clause, ta/32)&(1<<uint(ta%32)) != 0 {
		return 1, nil
	}
	return 0, nil
}

// ClauseConfiguration returns the include action of every literal in one
// clause, one 0/1 word per literal.
func (m *Machine) ClauseConfiguration(clause int) ([]uint32, error) {
	if err := m.checkIndex(clause, 0); err != nil {
		return nil, err
	}
	out := make([]uint32, m.cfg.Features)
	for ta := range out {
		if m.action(clause, ta/32)&(1<<uint(ta%32)) != 0 {
			out[ta] = 1
		}
	}
	return out, nil
}

func (m *Machine) checkIndex(clause, ta int) error {
	if clause < 0 || clause >= m.cfg.Clauses || ta < 0 || ta >= m.cfg.Features {
		return fmt.Errorf("%w: clause %d, automaton %d", ErrIndexRange, clause, ta)
	}
	return nil
}
