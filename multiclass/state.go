package multiclass

// StateLen returns the exact buffer lengths for GetState and SetState on
// one class engine: TA state words and clause weight words.
func (c *Classifier) StateLen(class int) (taState, weights int, err error) {
	if err := c.checkClass(class); err != nil {
		return 0, 0, err
	}
	taState, weights = c.engines[class].StateLen()
	return taState, weights, nil
}

// GetState bulk-copies one class engine's clause weights and automaton
// state into the caller's buffers, which must be sized exactly per
// StateLen.
func (c *Classifier) GetState(class int, weights, taState []uint32) error {
	if err := c.checkClass(class); err != nil {
		return err
	}
	return c.engines[class].GetState(weights, taState)
}

// SetState bulk-copies caller buffers into one class engine. Contents are
// not validated beyond length.
func (c *Classifier) SetState(class int, weights, taState []uint32) error {
	if err := c.checkClass(class); err != nil {
		return err
	}
	return c.engines[class].SetState(weights, taState)
}

// TAState returns the integer counter of one automaton in one class engine.
func (c *Classifier) TAState(class, clause, ta int) (int, error) {
	if err := c.checkClass(class); err != nil {
		return 0, err
	}
	return c.engines[class].TAState(clause, ta)
}

// TAAction reports the include action of one automaton: 1 or 0.
func (c *Classifier) TAAction(class, clause, ta int) (int, error) {
	if err := c.checkClass(class); err != nil {
		return 0, err
	}
	return c.engines[class].TAAction(clause, ta)
}

// ClauseConfiguration returns the include action of every literal in one
// clause of one class engine.
func (c *Classifier) ClauseConfiguration(class, clause int) ([]uint32, error) {
	if err := c.checkClass(class); err != nil {
		return nil, err
	}
	return c.engines[class].ClauseConfiguration(clause)
}
