package app

import (
	"errors"

	"github.com/ayusman/mudra/internal/capture"
)

// Pipeline errors that are not acquisition errors.
var (
	// ErrInvalidData is returned when the image or camera type is missing.
	ErrInvalidData = errors.New("invalid data")
	// ErrInternal wraps every decode, detection or classification failure.
	ErrInternal = errors.New("internal server error")
)

// Status is the client-facing outcome of a failed request.
type Status struct {
	Code    int
	Message string
}

var statuses = []struct {
	err    error
	status Status
}{
	{ErrInvalidData, Status{400, "Invalid data"}},
	{capture.ErrInvalidFormat, Status{400, "Invalid base64 image format"}},
	{capture.ErrFetchFailed, Status{400, "Failed to fetch image from IP camera"}},
	{capture.ErrUnknownCameraType, Status{400, "Unknown camera type"}},
	{capture.ErrTimeout, Status{408, "IP camera request timed out"}},
}

// StatusOf maps a pipeline error to its HTTP status and message. Anything
// not explicitly classified collapses to a generic 500.
func StatusOf(err error) Status {
	for _, s := range statuses {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return Status{500, "Internal server error"}
}
