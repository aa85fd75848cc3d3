package detector

import (
	"context"
	"time"

	"gocv.io/x/gocv"
)

// Detector defines the interface for hand detection implementations.
type Detector interface {
	// Detect analyzes an image and returns detected hand landmarks.
	// Returns an empty slice if no hands are detected.
	Detect(ctx context.Context, frame *gocv.Mat) ([]HandLandmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 1).
	MaxHands int `yaml:"max_hands"`

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64 `yaml:"min_confidence"`

	// StaticImageMode treats every image as unrelated to the previous one,
	// disabling the tracker.
	StaticImageMode bool `yaml:"static_image_mode"`

	// ScriptPath points at mediapipe_service.py. Searched for when empty.
	ScriptPath string `yaml:"script_path"`

	// PythonPath is the interpreter used to run the script. A virtualenv
	// interpreter is preferred when empty, then python3.
	PythonPath string `yaml:"python_path"`

	// IdleTimeout stops the detector process after this long without use.
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// DefaultConfig returns a Config with the thresholds the classifier was trained with.
func DefaultConfig() Config {
	return Config{
		MaxHands:        1,
		MinConfidence:   0.7,
		StaticImageMode: true,
		IdleTimeout:     5 * time.Minute,
	}
}
