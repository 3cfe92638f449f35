package multiclass

// Predict returns the argmax class for each of the first examples rows of x.
// Engines are scored in class order with a strict greater-than comparison,
// so on ties the lowest class index wins. As a side effect each engine's
// clause output cache reflects the last example scored.
func (c *Classifier) Predict(x []uint32, examples int) ([]int, error) {
	if examples <= 0 {
		return nil, nil
	}
	if err := c.checkInput(x, examples); err != nil {
		return nil, err
	}
	y := make([]int, examples)
	for l := 0; l < examples; l++ {
		xi := x[l*c.stride : (l+1)*c.stride]
		best := c.engines[0].Score(xi)
		for i := 1; i < len(c.engines); i++ {
			if sum := c.engines[i].Score(xi); sum > best {
				best = sum
				y[l] = i
			}
		}
	}
	return y, nil
}
