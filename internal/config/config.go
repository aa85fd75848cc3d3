// Package config loads service configuration from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/logging"
)

// Server holds HTTP listener settings.
type Server struct {
	Addr           string   `yaml:"addr"`
	StaticDir      string   `yaml:"static_dir"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxBodyBytes   int64    `yaml:"max_body_bytes"`
}

// Store holds prediction history settings. An empty Path disables history.
type Store struct {
	Path string `yaml:"path"`
}

// Config is the full service configuration.
type Config struct {
	Server   Server             `yaml:"server"`
	Model    gesture.ModelPaths `yaml:"model"`
	Detector detector.Config    `yaml:"detector"`
	Capture  capture.Config     `yaml:"capture"`
	Store    Store              `yaml:"store"`
	Log      logging.Config     `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: Server{
			Addr:           ":5000",
			AllowedOrigins: []string{"*"},
			MaxBodyBytes:   10 << 20,
		},
		Detector: detector.DefaultConfig(),
		Capture:  capture.DefaultConfig(),
		Log:      logging.DefaultConfig(),
	}
}

// Load reads .env (if present), the YAML file at path (if non-empty) on top
// of the defaults, then applies MUDRA_* environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"MUDRA_ADDR":             &c.Server.Addr,
		"MUDRA_STATIC_DIR":       &c.Server.StaticDir,
		"MUDRA_MODEL_BUNDLE":     &c.Model.Bundle,
		"MUDRA_MODEL_PROJECTION": &c.Model.Projection,
		"MUDRA_MODEL_CLASSIFIER": &c.Model.Classifier,
		"MUDRA_DETECTOR_SCRIPT":  &c.Detector.ScriptPath,
		"MUDRA_PYTHON":           &c.Detector.PythonPath,
		"MUDRA_DB_PATH":          &c.Store.Path,
		"MUDRA_LOG_LEVEL":        &c.Log.Level,
		"MUDRA_LOG_FILE":         &c.Log.File,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv("MUDRA_RESIZE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MUDRA_RESIZE: %w", err)
		}
		c.Capture.Resize = b
	}

	return nil
}

// Validate checks settings that would otherwise fail at request time.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if err := c.Model.Validate(); err != nil {
		return err
	}
	if c.Detector.MinConfidence < 0 || c.Detector.MinConfidence > 1 {
		return fmt.Errorf("detector.min_confidence must be within [0,1], got %v", c.Detector.MinConfidence)
	}
	if c.Capture.FetchTimeout <= 0 {
		return errors.New("capture.fetch_timeout must be positive")
	}
	return nil
}
