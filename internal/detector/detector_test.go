package detector

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandLandmarks_Coordinates(t *testing.T) {
	hand := OpenPalmLandmarks()

	xs := hand.XS()
	ys := hand.YS()

	for i := 0; i < NumLandmarks; i++ {
		assert.Equal(t, hand.Points[i].X, xs[i], "x of landmark %d", i)
		assert.Equal(t, hand.Points[i].Y, ys[i], "y of landmark %d", i)
	}
}

func TestMockDetector(t *testing.T) {
	ctx := context.Background()

	t.Run("returns empty hands by default", func(t *testing.T) {
		mock := NewMockDetector()

		hands, err := mock.Detect(ctx, nil)

		require.NoError(t, err)
		assert.Empty(t, hands)
		assert.Equal(t, 1, mock.Calls())
	})

	t.Run("returns configured hands", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetHands([]HandLandmarks{OpenPalmLandmarks(), FistLandmarks()})

		hands, err := mock.Detect(ctx, nil)

		require.NoError(t, err)
		assert.Len(t, hands, 2)
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()
		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		hands, err := mock.Detect(ctx, nil)

		assert.ErrorIs(t, err, expectedErr)
		assert.Nil(t, hands)
	})

	t.Run("Close returns nil", func(t *testing.T) {
		assert.NoError(t, NewMockDetector().Close())
	})

	t.Run("implements Detector interface", func(t *testing.T) {
		var _ Detector = (*MockDetector)(nil)
		var _ Detector = (*MediaPipeDetector)(nil)
	})
}

func TestFixtures(t *testing.T) {
	t.Run("open palm has fingertips above knuckles", func(t *testing.T) {
		h := OpenPalmLandmarks()
		for _, f := range [][2]int{{IndexMCP, IndexTip}, {MiddleMCP, MiddleTip}, {RingMCP, RingTip}, {PinkyMCP, PinkyTip}} {
			assert.Greater(t, h.Points[f[0]].Y-h.Points[f[1]].Y, 0.2, "tip %d should be well above knuckle %d", f[1], f[0])
		}
	})

	t.Run("fist keeps fingertips near knuckles", func(t *testing.T) {
		h := FistLandmarks()
		for _, f := range [][2]int{{IndexMCP, IndexTip}, {MiddleMCP, MiddleTip}, {RingMCP, RingTip}, {PinkyMCP, PinkyTip}} {
			assert.Less(t, h.Points[f[0]].Y-h.Points[f[1]].Y, 0.05)
		}
	})

	t.Run("pointing raises only the index finger", func(t *testing.T) {
		h := PointingLandmarks()
		assert.Greater(t, h.Points[IndexMCP].Y-h.Points[IndexTip].Y, 0.2)
		assert.Less(t, h.Points[MiddleMCP].Y-h.Points[MiddleTip].Y, 0.05)
	})
}

func TestParseResponse(t *testing.T) {
	t.Run("no hands", func(t *testing.T) {
		hands, err := parseResponse([]byte(`{"hands":[]}` + "\n"))
		require.NoError(t, err)
		assert.Empty(t, hands)
	})

	t.Run("one hand", func(t *testing.T) {
		line := `{"hands":[{"handedness":"Left","score":0.88,"points":[`
		for i := 0; i < NumLandmarks; i++ {
			if i > 0 {
				line += ","
			}
			line += `{"x":0.5,"y":0.25,"z":-0.1}`
		}
		line += "]}]}\n"

		hands, err := parseResponse([]byte(line))
		require.NoError(t, err)
		require.Len(t, hands, 1)
		assert.Equal(t, "Left", hands[0].Handedness)
		assert.InDelta(t, 0.88, hands[0].Score, 1e-9)
		assert.Equal(t, Point3D{X: 0.5, Y: 0.25, Z: -0.1}, hands[0].Points[PinkyTip])
	})

	t.Run("short hand is rejected", func(t *testing.T) {
		_, err := parseResponse([]byte(`{"hands":[{"points":[{"x":1,"y":1,"z":0}]}]}`))
		assert.Error(t, err)
	})

	t.Run("service error", func(t *testing.T) {
		_, err := parseResponse([]byte(`{"error":"bad image"}`))
		assert.ErrorContains(t, err, "bad image")
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := parseResponse([]byte("Traceback (most recent call last):"))
		assert.Error(t, err)
	})
}

func TestNewMediaPipeDetector(t *testing.T) {
	t.Run("missing script", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ScriptPath = filepath.Join(t.TempDir(), "nope.py")

		_, err := NewMediaPipeDetector(cfg, nil)
		assert.ErrorIs(t, err, ErrScriptNotFound)
	})

	t.Run("explicit script", func(t *testing.T) {
		script := filepath.Join(t.TempDir(), scriptName)
		require.NoError(t, os.WriteFile(script, []byte("pass\n"), 0644))

		cfg := DefaultConfig()
		cfg.ScriptPath = script
		cfg.MaxHands = 0

		d, err := NewMediaPipeDetector(cfg, nil)
		require.NoError(t, err)
		defer d.Close()

		assert.Equal(t, []string{script, "--max-hands", "1", "--min-confidence", "0.7", "--static-image-mode"}, d.args())
	})
}
