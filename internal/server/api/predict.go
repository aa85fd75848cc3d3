package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/ayusman/mudra/internal/app"
)

// DefaultMaxBodyBytes caps /predict bodies when no limit is configured.
const DefaultMaxBodyBytes = 10 << 20

// PredictHandler serves POST /predict.
type PredictHandler struct {
	app     *app.App
	maxBody int64
}

// NewPredictHandler creates a PredictHandler. maxBody <= 0 uses DefaultMaxBodyBytes.
func NewPredictHandler(a *app.App, maxBody int64) *PredictHandler {
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	return &PredictHandler{app: a, maxBody: maxBody}
}

type predictRequest struct {
	Image      string `json:"image"`
	CameraType string `json:"camera_type"`
}

type predictResponse struct {
	Caption string `json:"caption"`
}

// ServeHTTP decodes the request, runs recognition and writes either
// {"caption": ...} or {"error": ...}.
func (h *PredictHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	var req predictRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	result, err := h.app.Recognize(r.Context(), app.Request{
		Image:      req.Image,
		CameraType: req.CameraType,
		RequestID:  middleware.GetReqID(r.Context()),
	})
	if err != nil {
		status := app.StatusOf(err)
		writeError(w, status.Code, status.Message)
		return
	}

	writeJSON(w, http.StatusOK, predictResponse{Caption: result.Caption})
}
