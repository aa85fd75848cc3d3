package capture

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	data := encodeJPEG(t, 320, 200)

	t.Run("keeps size without resize", func(t *testing.T) {
		mat, err := Decode(data, false)
		require.NoError(t, err)
		defer mat.Close()

		assert.Equal(t, 320, mat.Cols())
		assert.Equal(t, 200, mat.Rows())
		assert.Equal(t, 3, mat.Channels())
	})

	t.Run("resizes to the fixed resolution", func(t *testing.T) {
		mat, err := Decode(data, true)
		require.NoError(t, err)
		defer mat.Close()

		assert.Equal(t, DefaultWidth, mat.Cols())
		assert.Equal(t, DefaultHeight, mat.Rows())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := Decode([]byte("definitely not an image"), true)
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := Decode(nil, false)
		assert.ErrorIs(t, err, ErrDecode)
	})
}
