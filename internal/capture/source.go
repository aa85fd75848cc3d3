// Package capture acquires image bytes from a request and decodes them
// into frames for detection.
package capture

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// CameraType says where the image of a request comes from.
type CameraType string

const (
	// CameraLocal carries the image inline as a base64 data URL.
	CameraLocal CameraType = "local"
	// CameraIP carries a URL to fetch the image from.
	CameraIP CameraType = "ip"
)

// Acquisition errors. Each maps to a distinct client-facing response.
var (
	ErrInvalidFormat     = errors.New("invalid base64 image format")
	ErrFetchFailed       = errors.New("failed to fetch image from IP camera")
	ErrTimeout           = errors.New("IP camera request timed out")
	ErrUnknownCameraType = errors.New("unknown camera type")
)

// Default acquisition settings.
const (
	DefaultFetchTimeout  = 3 * time.Second
	DefaultMaxImageBytes = 10 << 20
)

// Config holds acquisition settings.
type Config struct {
	// FetchTimeout bounds a whole IP camera fetch, body included.
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	// MaxImageBytes caps the size of a fetched image.
	MaxImageBytes int64 `yaml:"max_image_bytes"`
	// Resize scales decoded images to DefaultWidth x DefaultHeight.
	Resize bool `yaml:"resize"`
}

// DefaultConfig returns the acquisition defaults.
func DefaultConfig() Config {
	return Config{
		FetchTimeout:  DefaultFetchTimeout,
		MaxImageBytes: DefaultMaxImageBytes,
		Resize:        true,
	}
}

// Source turns request payloads into raw image bytes.
type Source struct {
	config Config
	client *http.Client
}

// NewSource creates a Source. A nil client uses a dedicated client with
// the configured timeout.
func NewSource(config Config, client *http.Client) *Source {
	if config.FetchTimeout <= 0 {
		config.FetchTimeout = DefaultFetchTimeout
	}
	if config.MaxImageBytes <= 0 {
		config.MaxImageBytes = DefaultMaxImageBytes
	}
	if client == nil {
		client = &http.Client{Timeout: config.FetchTimeout}
	}
	return &Source{config: config, client: client}
}

// Config returns the source settings.
func (s *Source) Config() Config {
	return s.config
}

// Acquire returns the image bytes named by image for the given camera type.
func (s *Source) Acquire(ctx context.Context, image string, cameraType CameraType) ([]byte, error) {
	switch cameraType {
	case CameraLocal:
		return DecodeDataURL(image)
	case CameraIP:
		return s.fetch(ctx, image)
	default:
		return nil, ErrUnknownCameraType
	}
}

// DecodeDataURL base64-decodes everything after the first comma of a data
// URL such as "data:image/jpeg;base64,/9j/4AAQ...".
func DecodeDataURL(image string) ([]byte, error) {
	_, payload, ok := strings.Cut(image, ",")
	if !ok {
		return nil, ErrInvalidFormat
	}

	// Browsers may wrap long payloads; whitespace is not part of the alphabet.
	payload = strings.Join(strings.Fields(payload), "")

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return data, nil
}

func (s *Source) fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, classifyFetchError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.config.MaxImageBytes+1))
	if err != nil {
		return nil, classifyFetchError(err)
	}
	if int64(len(data)) > s.config.MaxImageBytes {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", ErrFetchFailed, s.config.MaxImageBytes)
	}
	return data, nil
}

// classifyFetchError separates deadline expiry from other transport failures.
func classifyFetchError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrFetchFailed, err)
}
