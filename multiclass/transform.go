package multiclass

// Transform re-scores every engine on every example and emits each clause's
// binary output as one 0/1 word, for feeding a stacked second-stage
// learner. Output is example-major, then class-major, then clause-minor;
// the row length is Classes() * clauses per engine. invert complements
// every emitted bit. Beyond refreshing the clause output caches there are
// no training side effects.
func (c *Classifier) Transform(x []uint32, invert bool, examples int) ([]uint32, error) {
	if examples <= 0 {
		return nil, nil
	}
	if err := c.checkInput(x, examples); err != nil {
		return nil, err
	}

	row := 0
	for _, e := range c.engines {
		row += e.Clauses()
	}

	out := make([]uint32, examples*row)
	pos := 0
	for l := 0; l < examples; l++ {
		xi := x[l*c.stride : (l+1)*c.stride]
		for _, e := range c.engines {
			e.Score(xi)
			output := e.ClauseOutput()
			for j := 0; j < e.Clauses(); j++ {
				if output.Test(j) != invert {
					out[pos] = 1
				}
				pos++
			}
		}
	}
	return out, nil
}
