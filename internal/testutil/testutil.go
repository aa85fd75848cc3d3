// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

// Labels are the classes of SignBundle, in class order.
var Labels = []string{"open_palm", "fist", "pointing"}

func unitRow(i int) []float64 {
	row := make([]float64, gesture.FeatureLen)
	row[i] = 1
	return row
}

// SignBundle separates detector.OpenPalmLandmarks, FistLandmarks and
// PointingLandmarks by the normalized heights of the index and middle
// fingertips.
func SignBundle() gesture.Bundle {
	return gesture.Bundle{
		Projection: gesture.Projection{
			Mean: make([]float64, gesture.FeatureLen),
			Components: [][]float64{
				unitRow(detector.NumLandmarks + detector.IndexTip),
				unitRow(detector.NumLandmarks + detector.MiddleTip),
			},
		},
		Classifier: gesture.Classifier{
			Classes:   Labels,
			Coef:      [][]float64{{-1, -1}, {1, 0}, {-1, 1}},
			Intercept: []float64{0.2, -0.2, -0.3},
			Strategy:  gesture.StrategyOVR,
		},
	}
}

// Model returns the model built from SignBundle.
func Model(t testing.TB) *gesture.Model {
	t.Helper()

	b := SignBundle()
	m, err := gesture.NewModel(b.Projection, b.Classifier)
	require.NoError(t, err)
	return m
}

// WriteBundle writes SignBundle as JSON into dir and returns its path.
func WriteBundle(t testing.TB, dir string) string {
	t.Helper()

	data, err := jsoniter.Marshal(SignBundle())
	require.NoError(t, err)

	path := filepath.Join(dir, "sign_model.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

// JPEG encodes a w x h gradient image.
func JPEG(t testing.TB, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 96, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}))
	return buf.Bytes()
}

// DataURL wraps image bytes the way a browser canvas does.
func DataURL(data []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data)
}
