package gesture

import (
	"fmt"
)

// Strategy is how a multi-class linear classifier combines its rows.
type Strategy string

const (
	// StrategyOVR has one row per class; the highest decision value wins.
	StrategyOVR Strategy = "ovr"
	// StrategyOVO has one row per class pair (i<j, in order); each row votes
	// for i when positive and j otherwise.
	StrategyOVO Strategy = "ovo"
)

// Classifier is a fitted linear classifier over projected vectors.
// A binary classifier has a single row: positive selects Classes[1].
type Classifier struct {
	Classes   []string    `json:"classes" yaml:"classes"`
	Coef      [][]float64 `json:"coef" yaml:"coef"`
	Intercept []float64   `json:"intercept" yaml:"intercept"`
	Strategy  Strategy    `json:"strategy,omitempty" yaml:"strategy,omitempty"`
}

// Validate checks the classifier shape against the projected dimension.
func (c *Classifier) Validate(inputDim int) error {
	n := len(c.Classes)
	if n < 2 {
		return fmt.Errorf("%w: classifier needs at least 2 classes, got %d", ErrInvalidModel, n)
	}
	if len(c.Intercept) != len(c.Coef) {
		return fmt.Errorf("%w: classifier has %d coef rows but %d intercepts", ErrInvalidModel, len(c.Coef), len(c.Intercept))
	}
	for i, row := range c.Coef {
		if len(row) != inputDim {
			return fmt.Errorf("%w: coef row %d has %d values, want %d", ErrInvalidModel, i, len(row), inputDim)
		}
	}

	want := c.rows()
	if want < 0 {
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidModel, c.Strategy)
	}
	if len(c.Coef) != want {
		return fmt.Errorf("%w: %d classes with strategy %q need %d coef rows, got %d",
			ErrInvalidModel, n, c.strategy(), want, len(c.Coef))
	}
	return nil
}

func (c *Classifier) strategy() Strategy {
	if c.Strategy == "" {
		return StrategyOVR
	}
	return c.Strategy
}

// rows is the expected coef row count, or -1 for an unknown strategy.
func (c *Classifier) rows() int {
	n := len(c.Classes)
	if n == 2 {
		return 1
	}
	switch c.strategy() {
	case StrategyOVR:
		return n
	case StrategyOVO:
		return n * (n - 1) / 2
	default:
		return -1
	}
}

// decision returns w·x + b for every row.
func (c *Classifier) decision(x []float64) []float64 {
	out := make([]float64, len(c.Coef))
	for r, row := range c.Coef {
		sum := c.Intercept[r]
		for i, w := range row {
			sum += w * x[i]
		}
		out[r] = sum
	}
	return out
}

// Predict returns the label for a projected vector. The classifier must be valid.
func (c *Classifier) Predict(x []float64) string {
	d := c.decision(x)

	if len(c.Classes) == 2 {
		if d[0] > 0 {
			return c.Classes[1]
		}
		return c.Classes[0]
	}

	if c.strategy() == StrategyOVO {
		return c.Classes[c.vote(d)]
	}

	best := 0
	for i := 1; i < len(d); i++ {
		if d[i] > d[best] {
			best = i
		}
	}
	return c.Classes[best]
}

// vote tallies pairwise decisions. Ties go to the lowest class index.
func (c *Classifier) vote(d []float64) int {
	n := len(c.Classes)
	votes := make([]int, n)
	r := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if d[r] > 0 {
				votes[i]++
			} else {
				votes[j]++
			}
			r++
		}
	}

	best := 0
	for i := 1; i < n; i++ {
		if votes[i] > votes[best] {
			best = i
		}
	}
	return best
}
