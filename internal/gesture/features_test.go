package gesture

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayusman/mudra/internal/detector"
)

func TestFromLandmarks(t *testing.T) {
	hand := detector.PointingLandmarks()
	f := FromLandmarks(&hand)

	for i := 0; i < detector.NumLandmarks; i++ {
		assert.Equal(t, hand.Points[i].X, f[i], "x block index %d", i)
		assert.Equal(t, hand.Points[i].Y, f[detector.NumLandmarks+i], "y block index %d", i)
	}
}

func TestNormalize(t *testing.T) {
	t.Run("non-degenerate axes land in [0,1)", func(t *testing.T) {
		for _, hand := range []detector.HandLandmarks{
			detector.OpenPalmLandmarks(),
			detector.FistLandmarks(),
			detector.PointingLandmarks(),
		} {
			n := Normalize(FromLandmarks(&hand))
			for i, v := range n {
				assert.GreaterOrEqual(t, v, 0.0, "index %d", i)
				assert.Less(t, v, 1.0, "index %d", i)
			}
		}
	})

	t.Run("exact formula with epsilon", func(t *testing.T) {
		var f Features
		for i := 0; i < detector.NumLandmarks; i++ {
			f[i] = 0.2 + 0.01*float64(i)                         // x in [0.2, 0.4]
			f[detector.NumLandmarks+i] = 1.5 - 0.05*float64(i) // y in [0.5, 1.5]
		}

		n := Normalize(f)

		assert.Equal(t, 0.0, n[0])
		assert.InDelta(t, 0.2/(0.2+1e-5), n[detector.NumLandmarks-1], 1e-12)
		assert.InDelta(t, 1.0/(1.0+1e-5), n[detector.NumLandmarks], 1e-12)
		assert.Equal(t, 0.0, n[FeatureLen-1])
		assert.InDelta(t, 0.1/(0.2+1e-5), n[10], 1e-12)
	})

	t.Run("axes are scaled independently", func(t *testing.T) {
		var f Features
		for i := 0; i < detector.NumLandmarks; i++ {
			f[i] = float64(i)
			f[detector.NumLandmarks+i] = 1000 * float64(i)
		}

		n := Normalize(f)

		for i := 0; i < detector.NumLandmarks; i++ {
			assert.InDelta(t, n[i], n[detector.NumLandmarks+i], 1e-6)
		}
	})

	t.Run("equal x coordinates give zeros", func(t *testing.T) {
		var f Features
		for i := 0; i < detector.NumLandmarks; i++ {
			f[i] = 0.42
			f[detector.NumLandmarks+i] = float64(i) / 20
		}

		n := Normalize(f)

		for i := 0; i < detector.NumLandmarks; i++ {
			assert.Equal(t, 0.0, n[i])
			assert.False(t, math.IsNaN(n[detector.NumLandmarks+i]))
		}
	})

	t.Run("coordinates outside the unit square", func(t *testing.T) {
		var f Features
		for i := 0; i < detector.NumLandmarks; i++ {
			f[i] = -0.3 + 0.1*float64(i)
			f[detector.NumLandmarks+i] = 1.2
		}

		n := Normalize(f)

		assert.Equal(t, 0.0, n[0])
		assert.Less(t, n[detector.NumLandmarks-1], 1.0)
		assert.Equal(t, 0.0, n[detector.NumLandmarks])
	})

	t.Run("input is not modified", func(t *testing.T) {
		hand := detector.FistLandmarks()
		f := FromLandmarks(&hand)
		before := f

		Normalize(f)

		assert.Equal(t, before, f)
	})
}
