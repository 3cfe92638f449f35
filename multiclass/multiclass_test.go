package multiclass

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitlearn/tsetlin/bitset"
	"github.com/bitlearn/tsetlin/machine"
)

// stubEngine is a fixed-score engine that records the updates it receives,
// for exercising the ensemble through the Engine interface alone.
type stubEngine struct {
	score    int
	clauses  int
	features int
	stride   int

	output      bitset.Bits
	dropClause  bitset.Bits
	dropLiteral bitset.Bits

	positives     []uint32 // first word of each positively trained example
	negatives     []uint32
	maskedUpdates int // updates arriving while the clause drop mask was live
}

func newStubEngine(score int) *stubEngine {
	return &stubEngine{
		score:       score,
		clauses:     8,
		features:    16,
		stride:      1,
		output:      bitset.New(8),
		dropClause:  bitset.New(8),
		dropLiteral: bitset.New(16),
	}
}

func (s *stubEngine) Initialize()               {}
func (s *stubEngine) Score(x []uint32) int      { return s.score }
func (s *stubEngine) Clauses() int              { return s.clauses }
func (s *stubEngine) Features() int             { return s.features }
func (s *stubEngine) Stride() int               { return s.stride }
func (s *stubEngine) ClauseOutput() bitset.Bits { return s.output }
func (s *stubEngine) DropClause() bitset.Bits   { return s.dropClause }
func (s *stubEngine) DropLiteral() bitset.Bits  { return s.dropLiteral }

func (s *stubEngine) Update(x []uint32, target bool, rng *rand.Rand) {
	if target {
		s.positives = append(s.positives, x[0])
	} else {
		s.negatives = append(s.negatives, x[0])
	}
	if !s.dropClause.None() {
		s.maskedUpdates++
	}
}

func (s *stubEngine) StateLen() (int, int)                     { return 0, 0 }
func (s *stubEngine) GetState(w, ts []uint32) error            { return nil }
func (s *stubEngine) SetState(w, ts []uint32) error            { return nil }
func (s *stubEngine) TAState(clause, ta int) (int, error)      { return 0, nil }
func (s *stubEngine) TAAction(clause, ta int) (int, error)     { return 0, nil }
func (s *stubEngine) ClauseConfiguration(clause int) ([]uint32, error) {
	return make([]uint32, s.features), nil
}

func stubClassifier(t *testing.T, scores []int, clauseDropP, literalDropP float64) (*Classifier, []*stubEngine) {
	t.Helper()
	stubs := make([]*stubEngine, len(scores))
	engines := make([]Engine, len(scores))
	for i, score := range scores {
		stubs[i] = newStubEngine(score)
		engines[i] = stubs[i]
	}
	c, err := FromEngines(engines, clauseDropP, literalDropP, rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	return c, stubs
}

func TestNewValidation(t *testing.T) {
	cfg := Config{
		Classes: 3,
		Machine: machine.Config{
			Clauses: 10, Features: 16, Patches: 1, StateBits: 8, Threshold: 10, S: 3.0,
		},
	}

	t.Run("valid", func(t *testing.T) {
		c, err := New(cfg, rand.New(rand.NewSource(1)))
		require.NoError(t, err)
		assert.Equal(t, 3, c.Classes())
		assert.Equal(t, 1, c.Stride())
	})

	t.Run("single_class", func(t *testing.T) {
		bad := cfg
		bad.Classes = 1
		_, err := New(bad, nil)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("bad_machine_config", func(t *testing.T) {
		bad := cfg
		bad.Machine.Threshold = 0
		_, err := New(bad, nil)
		assert.ErrorIs(t, err, machine.ErrInvalidConfig)
	})

	t.Run("bad_drop_probability", func(t *testing.T) {
		bad := cfg
		bad.ClauseDropP = 1.5
		_, err := New(bad, nil)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestFromEnginesValidation(t *testing.T) {
	a, b := newStubEngine(0), newStubEngine(0)

	t.Run("too_few", func(t *testing.T) {
		_, err := FromEngines([]Engine{a}, 0, 0, nil)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("layout_mismatch", func(t *testing.T) {
		odd := newStubEngine(0)
		odd.stride = 2
		_, err := FromEngines([]Engine{a, odd}, 0, 0, nil)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("valid", func(t *testing.T) {
		_, err := FromEngines([]Engine{a, b}, 0, 0, nil)
		assert.NoError(t, err)
	})
}

func TestPredictTieBreak(t *testing.T) {
	testCases := []struct {
		name   string
		scores []int
		want   int
	}{
		{"all_equal", []int{4, 4, 4}, 0},
		{"later_equal_keeps_incumbent", []int{7, 3, 7}, 0},
		{"strictly_greater_wins", []int{3, 5, 5}, 1},
		{"last_wins_when_greater", []int{3, 5, 6}, 2},
		{"negative_scores", []int{-2, -5, -2}, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := stubClassifier(t, tc.scores, 0, 0)
			y, err := c.Predict([]uint32{0}, 1)
			require.NoError(t, err)
			assert.Equal(t, []int{tc.want}, y)
		})
	}
}

func TestPredictValidation(t *testing.T) {
	c, _ := stubClassifier(t, []int{0, 0}, 0, 0)

	y, err := c.Predict([]uint32{1, 2}, 0)
	assert.NoError(t, err)
	assert.Nil(t, y)

	_, err = c.Predict([]uint32{1, 2}, 3)
	assert.ErrorIs(t, err, ErrInputSize)
}

func TestUpdateTrainsTargetAndOneNegative(t *testing.T) {
	c, stubs := stubClassifier(t, []int{0, 0, 0, 0}, 0, 0)
	require.NoError(t, c.Update([]uint32{9}, 2))

	assert.Equal(t, []uint32{9}, stubs[2].positives)
	assert.Empty(t, stubs[2].negatives, "target must never be trained negative")

	negatives := 0
	for i, s := range stubs {
		assert.Empty(t, s.positives[boolToInt(i == 2):], "only the target is trained positive")
		negatives += len(s.negatives)
	}
	assert.Equal(t, 1, negatives, "exactly one negative update per example")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestUpdateValidation(t *testing.T) {
	c, _ := stubClassifier(t, []int{0, 0}, 0, 0)
	assert.ErrorIs(t, c.Update([]uint32{0}, -1), ErrClassRange)
	assert.ErrorIs(t, c.Update([]uint32{0}, 2), ErrClassRange)
	assert.ErrorIs(t, c.Update(nil, 0), ErrInputSize)
}

func TestNegativeSamplingDistribution(t *testing.T) {
	const classes = 5
	const draws = 5000
	const target = 2

	scores := make([]int, classes)
	c, stubs := stubClassifier(t, scores, 0, 0)

	x := []uint32{0}
	for i := 0; i < draws; i++ {
		require.NoError(t, c.Update(x, target))
	}

	assert.Empty(t, stubs[target].negatives, "rejection sampling must never pick the target")
	for i, s := range stubs {
		if i == target {
			continue
		}
		// Uniform over the other classes: draws/(classes-1) each.
		assert.InDelta(t, draws/(classes-1), len(s.negatives), 150,
			"class %d negative frequency", i)
	}
}

func TestFitProcessesEveryExampleOncePerEpoch(t *testing.T) {
	const examples = 64
	c, stubs := stubClassifier(t, []int{0, 0}, 0, 0)

	x := make([]uint32, examples)
	y := make([]int, examples)
	for l := range x {
		x[l] = uint32(l) // first word identifies the example
		y[l] = l % 2
	}

	require.NoError(t, c.Fit(x, y, examples, 1))

	// One positive update per example, on its label engine, means the union
	// of positive marks is exactly the shuffled identity permutation.
	seen := make(map[uint32]int)
	for _, s := range stubs {
		for _, mark := range s.positives {
			seen[mark]++
		}
	}
	require.Len(t, seen, examples)
	for l := 0; l < examples; l++ {
		assert.Equal(t, 1, seen[uint32(l)], "example %d", l)
	}
}

func TestFitShufflesOrder(t *testing.T) {
	const examples = 128
	c, stubs := stubClassifier(t, []int{0, 0}, 0, 0)

	x := make([]uint32, examples)
	y := make([]int, examples)
	for l := range x {
		x[l] = uint32(l)
	}
	require.NoError(t, c.Fit(x, y, examples, 1))

	inOrder := true
	for l, mark := range stubs[0].positives {
		if mark != uint32(l) {
			inOrder = false
			break
		}
	}
	assert.False(t, inOrder, "epoch processed examples in unshuffled order")
}

func TestFitNoOp(t *testing.T) {
	c, stubs := stubClassifier(t, []int{0, 0}, 0.5, 0.5)

	assert.NoError(t, c.Fit(nil, nil, 0, 10))
	assert.NoError(t, c.Fit([]uint32{1}, []int{0}, 1, 0))
	assert.NoError(t, c.Fit([]uint32{1}, []int{0}, -3, 5))

	for _, s := range stubs {
		assert.Empty(t, s.positives)
		assert.Empty(t, s.negatives)
		assert.True(t, s.dropClause.None(), "masks must stay zero across no-op fits")
		assert.True(t, s.dropLiteral.None())
	}
}

func TestFitValidation(t *testing.T) {
	c, _ := stubClassifier(t, []int{0, 0}, 0, 0)

	assert.ErrorIs(t, c.Fit([]uint32{1}, []int{0}, 2, 1), ErrInputSize)
	assert.ErrorIs(t, c.Fit([]uint32{1, 2}, []int{0}, 2, 1), ErrInputSize)
	assert.ErrorIs(t, c.Fit([]uint32{1, 2}, []int{0, 2}, 2, 1), ErrClassRange)
}

func TestFitDropoutLiveInsideEpochInertOutside(t *testing.T) {
	c, stubs := stubClassifier(t, []int{0, 0}, 1.0, 1.0)

	x := make([]uint32, 16)
	y := make([]int, 16)
	require.NoError(t, c.Fit(x, y, 16, 2))

	for i, s := range stubs {
		assert.Greater(t, s.maskedUpdates, 0, "engine %d never saw a live drop mask", i)
		assert.True(t, s.dropClause.None(), "engine %d clause mask live after Fit", i)
		assert.True(t, s.dropLiteral.None(), "engine %d literal mask live after Fit", i)
	}
}

func TestTransformShapeAndValues(t *testing.T) {
	c, stubs := stubClassifier(t, []int{0, 0, 0}, 0, 0)
	stubs[1].output.Set(2)
	stubs[1].output.Set(5)

	out, err := c.Transform([]uint32{0, 0}, false, 2)
	require.NoError(t, err)
	require.Len(t, out, 2*3*8)

	for l := 0; l < 2; l++ {
		row := out[l*24 : (l+1)*24]
		for j, v := range row {
			want := uint32(0)
			if j == 8+2 || j == 8+5 { // class 1 clauses 2 and 5
				want = 1
			}
			assert.Equal(t, want, v, "example %d feature %d", l, j)
		}
	}
}

func TestTransformInvertComplement(t *testing.T) {
	c, stubs := stubClassifier(t, []int{0, 0}, 0, 0)
	stubs[0].output.Set(0)
	stubs[0].output.Set(7)
	stubs[1].output.Set(3)

	x := []uint32{0, 0, 0}
	plain, err := c.Transform(x, false, 3)
	require.NoError(t, err)
	inverted, err := c.Transform(x, true, 3)
	require.NoError(t, err)

	require.Len(t, inverted, len(plain))
	for i := range plain {
		assert.Equal(t, uint32(1), plain[i]^inverted[i], "feature %d not complemented", i)
	}
}

func TestTransformNoOpAndValidation(t *testing.T) {
	c, _ := stubClassifier(t, []int{0, 0}, 0, 0)

	out, err := c.Transform([]uint32{0}, false, 0)
	assert.NoError(t, err)
	assert.Nil(t, out)

	_, err = c.Transform([]uint32{0}, false, 2)
	assert.ErrorIs(t, err, ErrInputSize)
}

func TestStateAccessorValidation(t *testing.T) {
	cfg := Config{
		Classes: 2,
		Machine: machine.Config{
			Clauses: 10, Features: 16, Patches: 1, StateBits: 8, Threshold: 10, S: 3.0,
		},
	}
	c, err := New(cfg, rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	c.Initialize()

	_, _, err = c.StateLen(2)
	assert.ErrorIs(t, err, ErrClassRange)
	assert.ErrorIs(t, c.GetState(-1, nil, nil), ErrClassRange)
	assert.ErrorIs(t, c.SetState(5, nil, nil), ErrClassRange)

	taLen, wLen, err := c.StateLen(0)
	require.NoError(t, err)
	err = c.GetState(0, make([]uint32, wLen), make([]uint32, taLen-1))
	assert.ErrorIs(t, err, machine.ErrSizeMismatch)

	_, err = c.TAState(0, 99, 0)
	assert.ErrorIs(t, err, machine.ErrIndexRange)
}
