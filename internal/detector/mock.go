package detector

import (
	"context"
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	mu    sync.Mutex
	hands []HandLandmarks
	err   error
	calls int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls reports how many times Detect ran.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(ctx context.Context, frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// fromXY builds a right hand from (x, y) pairs in landmark order.
func fromXY(score float64, xy [NumLandmarks][2]float64) HandLandmarks {
	h := HandLandmarks{Handedness: "Right", Score: score}
	for i, p := range xy {
		h.Points[i] = Point3D{X: p[0], Y: p[1]}
	}
	return h
}

// OpenPalmLandmarks returns a right hand with all five fingers spread upward.
func OpenPalmLandmarks() HandLandmarks {
	return fromXY(0.97, [NumLandmarks][2]float64{
		{0.50, 0.85},                                             // wrist
		{0.57, 0.80}, {0.63, 0.74}, {0.68, 0.68}, {0.72, 0.62}, // thumb
		{0.56, 0.62}, {0.58, 0.50}, {0.59, 0.42}, {0.60, 0.35}, // index
		{0.50, 0.60}, {0.50, 0.46}, {0.50, 0.37}, {0.50, 0.29}, // middle
		{0.44, 0.62}, {0.42, 0.50}, {0.41, 0.42}, {0.40, 0.36}, // ring
		{0.39, 0.66}, {0.36, 0.56}, {0.34, 0.49}, {0.33, 0.43}, // pinky
	})
}

// FistLandmarks returns a right hand with every finger folded into the palm.
func FistLandmarks() HandLandmarks {
	return fromXY(0.92, [NumLandmarks][2]float64{
		{0.50, 0.85},
		{0.56, 0.80}, {0.60, 0.74}, {0.58, 0.69}, {0.54, 0.67},
		{0.56, 0.64}, {0.57, 0.58}, {0.55, 0.63}, {0.54, 0.67},
		{0.50, 0.63}, {0.51, 0.57}, {0.50, 0.62}, {0.49, 0.66},
		{0.45, 0.64}, {0.45, 0.58}, {0.45, 0.63}, {0.45, 0.67},
		{0.40, 0.67}, {0.40, 0.62}, {0.41, 0.66}, {0.42, 0.69},
	})
}

// PointingLandmarks returns a right hand with only the index finger raised.
func PointingLandmarks() HandLandmarks {
	return fromXY(0.9, [NumLandmarks][2]float64{
		{0.50, 0.85},
		{0.56, 0.80}, {0.60, 0.74}, {0.58, 0.69}, {0.54, 0.67},
		{0.56, 0.62}, {0.57, 0.50}, {0.58, 0.41}, {0.58, 0.33},
		{0.50, 0.63}, {0.51, 0.57}, {0.50, 0.62}, {0.49, 0.66},
		{0.45, 0.64}, {0.45, 0.58}, {0.45, 0.63}, {0.45, 0.67},
		{0.40, 0.67}, {0.40, 0.62}, {0.41, 0.66}, {0.42, 0.69},
	})
}
