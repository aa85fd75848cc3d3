// Package app runs the recognition pipeline: validate, acquire, detect,
// normalize, classify.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/store"
)

// NoHandCaption is returned instead of a label when no hand is found.
const NoHandCaption = "No Hand Detected"

// Config holds the pipeline collaborators. Model, Detector and Source are
// required; Store and Logger are optional.
type Config struct {
	Model    *gesture.Model
	Detector detector.Detector
	Source   *capture.Source
	Store    *store.Store
	Logger   *logrus.Logger
}

// Request is one recognition request.
type Request struct {
	Image      string `json:"image" validate:"required"`
	CameraType string `json:"camera_type" validate:"required"`
	// RequestID correlates logs and history; generated when empty.
	RequestID string `json:"-"`
}

// Result is a successful recognition.
type Result struct {
	Caption      string        `json:"caption"`
	HandDetected bool          `json:"hand_detected"`
	Handedness   string        `json:"handedness,omitempty"`
	Score        float64       `json:"score,omitempty"`
	Latency      time.Duration `json:"-"`
}

// App recognizes hand signs. The model and detector are shared by all
// requests and never mutated.
type App struct {
	model    *gesture.Model
	detector detector.Detector
	source   *capture.Source
	store    *store.Store
	log      *logrus.Logger
	validate *validator.Validate
}

// New creates an App from config.
func New(config Config) (*App, error) {
	if config.Model == nil {
		return nil, fmt.Errorf("app: model is required")
	}
	if config.Detector == nil {
		return nil, fmt.Errorf("app: detector is required")
	}
	if config.Source == nil {
		config.Source = capture.NewSource(capture.DefaultConfig(), nil)
	}
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}

	return &App{
		model:    config.Model,
		detector: config.Detector,
		source:   config.Source,
		store:    config.Store,
		log:      config.Logger,
		validate: validator.New(),
	}, nil
}

// Labels returns the labels the classifier can produce.
func (a *App) Labels() []string {
	return a.model.Labels()
}

// Store returns the history store, or nil when history is disabled.
func (a *App) Store() *store.Store {
	return a.store
}

// Recognize runs one request through the pipeline. Errors can be mapped to
// responses with StatusOf.
func (a *App) Recognize(ctx context.Context, req Request) (*Result, error) {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	start := time.Now()
	result, err := a.recognize(ctx, req)
	latency := time.Since(start)

	entry := a.log.WithFields(logrus.Fields{
		"request_id":  req.RequestID,
		"camera_type": req.CameraType,
		"latency_ms":  latency.Milliseconds(),
	})
	if err != nil {
		status := StatusOf(err)
		if status.Code >= 500 {
			entry.WithError(err).Error("recognition failed")
		} else {
			entry.WithError(err).Warn("recognition rejected")
		}
	} else {
		result.Latency = latency
		entry.WithFields(logrus.Fields{
			"caption":       result.Caption,
			"hand_detected": result.HandDetected,
		}).Debug("recognition complete")
	}

	a.record(req, result, err, latency)

	return result, err
}

func (a *App) recognize(ctx context.Context, req Request) (*Result, error) {
	// Validate
	if err := a.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	// Acquire
	data, err := a.source.Acquire(ctx, req.Image, capture.CameraType(req.CameraType))
	if err != nil {
		return nil, err
	}

	// Detect
	frame, err := capture.Decode(data, a.source.Config().Resize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	hands, err := a.detector.Detect(ctx, frame)
	frame.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: detect: %v", ErrInternal, err)
	}
	if len(hands) == 0 {
		return &Result{Caption: NoHandCaption}, nil
	}
	hand := &hands[0]

	// Normalize + Classify
	label, err := a.model.Predict(gesture.FromLandmarks(hand))
	if err != nil {
		return nil, fmt.Errorf("%w: classify: %v", ErrInternal, err)
	}

	return &Result{
		Caption:      label,
		HandDetected: true,
		Handedness:   hand.Handedness,
		Score:        hand.Score,
	}, nil
}

// record writes the outcome to history. Failures are logged, not returned.
func (a *App) record(req Request, result *Result, err error, latency time.Duration) {
	if a.store == nil {
		return
	}

	p := &store.Prediction{
		ID:         uuid.NewString(),
		RequestID:  req.RequestID,
		CameraType: req.CameraType,
		LatencyMs:  latency.Milliseconds(),
	}
	if err != nil {
		p.Error = StatusOf(err).Message
	} else {
		p.Caption = result.Caption
		p.HandDetected = result.HandDetected
	}

	if err := a.store.Predictions().Create(p); err != nil {
		a.log.WithError(err).WithField("request_id", req.RequestID).Warn("failed to record prediction")
	}
}
