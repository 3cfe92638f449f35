package multiclass

import "fmt"

// Update performs one online one-vs-other training step: the target class
// engine is trained positively and one rejection-sampled other class engine
// negatively.
func (c *Classifier) Update(x []uint32, target int) error {
	if err := c.checkClass(target); err != nil {
		return err
	}
	if err := c.checkInput(x, 1); err != nil {
		return err
	}
	c.update(x[:c.stride], target)
	return nil
}

func (c *Classifier) update(xi []uint32, target int) {
	c.engines[target].Update(xi, true, c.rng)

	negative := c.rng.Intn(len(c.engines))
	for negative == target {
		negative = c.rng.Intn(len(c.engines))
	}
	c.engines[negative].Update(xi, false, c.rng)
}

// Fit trains on the first examples rows of x for the given number of
// epochs. Every epoch shuffles the processing order and redraws each
// engine's clause and literal dropout masks; the masks are cleared again
// when the epoch ends. Non-positive examples or epochs is a no-op success.
// Labels are validated up front so training never starts on bad input.
func (c *Classifier) Fit(x []uint32, y []int, examples, epochs int) error {
	if examples <= 0 || epochs <= 0 {
		return nil
	}
	if err := c.checkInput(x, examples); err != nil {
		return err
	}
	if len(y) < examples {
		return fmt.Errorf("%w: %d labels for %d examples", ErrInputSize, len(y), examples)
	}
	for l := 0; l < examples; l++ {
		if y[l] < 0 || y[l] >= len(c.engines) {
			return fmt.Errorf("%w: label %d at example %d", ErrClassRange, y[l], l)
		}
	}

	index := make([]int, examples)
	for i := range index {
		index[i] = i
	}

	// Dropout must be inert outside an active epoch. The deferred clear
	// keeps that true on every exit path, early termination included.
	defer c.clearDropMasks()

	for epoch := 0; epoch < epochs; epoch++ {
		c.rng.Shuffle(examples, func(i, j int) { index[i], index[j] = index[j], index[i] })

		c.drawDropMasks()

		// Sequential by design: automaton state carries across examples, so
		// the permuted order is part of the learning dynamics.
		for _, l := range index {
			c.update(x[l*c.stride:(l+1)*c.stride], y[l])
		}

		c.clearDropMasks()
	}
	return nil
}

// drawDropMasks clears and independently redraws every engine's clause and
// literal drop masks.
func (c *Classifier) drawDropMasks() {
	for _, e := range c.engines {
		dropClause := e.DropClause()
		dropClause.Zero()
		for j := 0; j < e.Clauses(); j++ {
			if c.rng.Float64() < c.clauseDropP {
				dropClause.Set(j)
			}
		}

		dropLiteral := e.DropLiteral()
		dropLiteral.Zero()
		for k := 0; k < e.Features(); k++ {
			if c.rng.Float64() < c.literalDropP {
				dropLiteral.Set(k)
			}
		}
	}
}

func (c *Classifier) clearDropMasks() {
	for _, e := range c.engines {
		e.DropClause().Zero()
		e.DropLiteral().Zero()
	}
}
