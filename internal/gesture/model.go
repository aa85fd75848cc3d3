package gesture

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidModel is returned when a model file has the wrong shape.
	ErrInvalidModel = errors.New("invalid model")
	// ErrNonFinite is returned when a prediction produced NaN or Inf.
	ErrNonFinite = errors.New("non-finite projected value")
)

// Model is a projection followed by a classifier. It is immutable once
// built and safe for concurrent use.
type Model struct {
	projection Projection
	classifier Classifier
}

// Bundle is the on-disk layout holding both artifacts in one file.
type Bundle struct {
	Projection Projection `json:"projection" yaml:"projection"`
	Classifier Classifier `json:"classifier" yaml:"classifier"`
}

// ModelPaths locates the model artifacts: either a single bundle file or
// separate projection and classifier files.
type ModelPaths struct {
	Bundle     string `yaml:"bundle"`
	Projection string `yaml:"projection"`
	Classifier string `yaml:"classifier"`
}

// Validate reports whether the paths describe exactly one layout.
func (p ModelPaths) Validate() error {
	switch {
	case p.Bundle != "" && (p.Projection != "" || p.Classifier != ""):
		return errors.New("model: set either a bundle or projection+classifier, not both")
	case p.Bundle != "":
		return nil
	case p.Projection != "" && p.Classifier != "":
		return nil
	default:
		return errors.New("model: a bundle or both projection and classifier paths are required")
	}
}

// NewModel validates the artifacts and returns a Model.
func NewModel(p Projection, c Classifier) (*Model, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := c.Validate(p.OutputDim()); err != nil {
		return nil, err
	}
	return &Model{projection: p, classifier: c}, nil
}

// LoadModel reads the artifacts named by paths. JSON and YAML files are
// accepted, chosen by extension.
func LoadModel(paths ModelPaths) (*Model, error) {
	if err := paths.Validate(); err != nil {
		return nil, err
	}

	if paths.Bundle != "" {
		var b Bundle
		if err := decodeFile(paths.Bundle, &b); err != nil {
			return nil, err
		}
		return NewModel(b.Projection, b.Classifier)
	}

	var p Projection
	if err := decodeFile(paths.Projection, &p); err != nil {
		return nil, err
	}
	var c Classifier
	if err := decodeFile(paths.Classifier, &c); err != nil {
		return nil, err
	}
	return NewModel(p, c)
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read model file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, v)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	default:
		return fmt.Errorf("model file %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return fmt.Errorf("decode model file %s: %w", path, err)
	}
	return nil
}

// Predict normalizes raw landmark features, projects them and returns the
// classifier's label.
func (m *Model) Predict(raw Features) (string, error) {
	projected := m.projection.Transform(Normalize(raw))
	for _, v := range projected {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", ErrNonFinite
		}
	}
	return m.classifier.Predict(projected), nil
}

// Labels returns the classifier's known labels in class order.
func (m *Model) Labels() []string {
	labels := make([]string, len(m.classifier.Classes))
	copy(labels, m.classifier.Classes)
	return labels
}

// Dim returns the projected dimension.
func (m *Model) Dim() int {
	return m.projection.OutputDim()
}
