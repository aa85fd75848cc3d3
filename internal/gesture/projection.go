package gesture

import (
	"fmt"
	"math"
)

// Projection is a fitted linear dimensionality reduction (PCA):
//
//	y = (x - Mean) · Componentsᵀ
//
// divided component-wise by sqrt(ExplainedVariance) when Whiten is set.
type Projection struct {
	Mean              []float64   `json:"mean" yaml:"mean"`
	Components        [][]float64 `json:"components" yaml:"components"`
	ExplainedVariance []float64   `json:"explained_variance,omitempty" yaml:"explained_variance,omitempty"`
	Whiten            bool        `json:"whiten,omitempty" yaml:"whiten,omitempty"`
}

// OutputDim is the number of projected dimensions.
func (p *Projection) OutputDim() int {
	return len(p.Components)
}

// Validate checks the projection shape against FeatureLen.
func (p *Projection) Validate() error {
	if len(p.Mean) != FeatureLen {
		return fmt.Errorf("%w: projection mean has %d values, want %d", ErrInvalidModel, len(p.Mean), FeatureLen)
	}
	if len(p.Components) == 0 {
		return fmt.Errorf("%w: projection has no components", ErrInvalidModel)
	}
	for i, row := range p.Components {
		if len(row) != FeatureLen {
			return fmt.Errorf("%w: projection component %d has %d values, want %d", ErrInvalidModel, i, len(row), FeatureLen)
		}
	}
	if p.Whiten {
		if len(p.ExplainedVariance) != len(p.Components) {
			return fmt.Errorf("%w: whitening needs %d explained variances, got %d",
				ErrInvalidModel, len(p.Components), len(p.ExplainedVariance))
		}
		for i, v := range p.ExplainedVariance {
			if v <= 0 {
				return fmt.Errorf("%w: explained variance %d is not positive", ErrInvalidModel, i)
			}
		}
	}
	return nil
}

// Transform projects a feature vector. The projection must be valid.
func (p *Projection) Transform(f Features) []float64 {
	out := make([]float64, len(p.Components))
	for k, row := range p.Components {
		var sum float64
		for i, w := range row {
			sum += (f[i] - p.Mean[i]) * w
		}
		if p.Whiten {
			sum /= math.Sqrt(p.ExplainedVariance[k])
		}
		out[k] = sum
	}
	return out
}
