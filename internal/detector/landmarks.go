// Package detector provides hand landmark detection for sign recognition.
package detector

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D is a landmark in normalized image coordinates.
// X and Y are roughly in [0,1] but the detector does not clamp them.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks holds the 21 keypoints of one detected hand.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// XS returns the x coordinates of all landmarks in index order.
func (h *HandLandmarks) XS() [NumLandmarks]float64 {
	var xs [NumLandmarks]float64
	for i, p := range h.Points {
		xs[i] = p.X
	}
	return xs
}

// YS returns the y coordinates of all landmarks in index order.
func (h *HandLandmarks) YS() [NumLandmarks]float64 {
	var ys [NumLandmarks]float64
	for i, p := range h.Points {
		ys[i] = p.Y
	}
	return ys
}
