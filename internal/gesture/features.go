// Package gesture turns hand landmarks into sign labels using a
// pretrained linear projection and a linear classifier.
package gesture

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// FeatureLen is the length of a landmark feature vector: 21 x then 21 y.
const FeatureLen = 2 * detector.NumLandmarks

// Epsilon keeps the min-max denominator positive when every coordinate on
// an axis is equal. The trained models depend on this exact value.
const Epsilon = 1e-5

// Features is a landmark feature vector: x-block followed by y-block.
type Features [FeatureLen]float64

// FromLandmarks lays out a hand's x coordinates then its y coordinates.
// Z is not part of the feature vector.
func FromLandmarks(h *detector.HandLandmarks) Features {
	var f Features
	xs, ys := h.XS(), h.YS()
	copy(f[:detector.NumLandmarks], xs[:])
	copy(f[detector.NumLandmarks:], ys[:])
	return f
}

// Normalize min-max scales the x-block and the y-block independently:
//
//	v' = (v - min) / (max - min + Epsilon)
func Normalize(f Features) Features {
	var out Features
	minMaxScale(out[:detector.NumLandmarks], f[:detector.NumLandmarks])
	minMaxScale(out[detector.NumLandmarks:], f[detector.NumLandmarks:])
	return out
}

func minMaxScale(dst, src []float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range src {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo + Epsilon
	for i, v := range src {
		dst[i] = (v - lo) / span
	}
}
