package api

import (
	"net/http"
	"strconv"

	"github.com/ayusman/mudra/internal/store"
)

// MaxHistoryLimit bounds the limit query parameter.
const MaxHistoryLimit = 500

// PredictionsHandler serves the prediction history.
type PredictionsHandler struct {
	store *store.Store
}

// NewPredictionsHandler creates a PredictionsHandler with the given store.
func NewPredictionsHandler(s *store.Store) *PredictionsHandler {
	return &PredictionsHandler{store: s}
}

type predictionResponse struct {
	ID           string `json:"id"`
	RequestID    string `json:"request_id"`
	CameraType   string `json:"camera_type"`
	Caption      string `json:"caption,omitempty"`
	HandDetected bool   `json:"hand_detected"`
	Error        string `json:"error,omitempty"`
	LatencyMs    int64  `json:"latency_ms"`
	CreatedAt    string `json:"created_at"`
}

type listPredictionsResponse struct {
	Predictions []predictionResponse `json:"predictions"`
}

type captionCountResponse struct {
	Caption string `json:"caption"`
	Count   int    `json:"count"`
}

type statsResponse struct {
	Captions []captionCountResponse `json:"captions"`
}

// List handles GET /api/predictions?limit=N, newest first.
func (h *PredictionsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := store.DefaultRecentLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, MaxHistoryLimit)
	}

	predictions, err := h.store.Predictions().Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list predictions")
		return
	}

	response := listPredictionsResponse{
		Predictions: make([]predictionResponse, 0, len(predictions)),
	}
	for _, p := range predictions {
		response.Predictions = append(response.Predictions, predictionResponse{
			ID:           p.ID,
			RequestID:    p.RequestID,
			CameraType:   p.CameraType,
			Caption:      p.Caption,
			HandDetected: p.HandDetected,
			Error:        p.Error,
			LatencyMs:    p.LatencyMs,
			CreatedAt:    p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// Stats handles GET /api/predictions/stats.
func (h *PredictionsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.store.Predictions().CountByCaption()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count predictions")
		return
	}

	response := statsResponse{Captions: make([]captionCountResponse, 0, len(counts))}
	for _, c := range counts {
		response.Captions = append(response.Captions, captionCountResponse{Caption: c.Caption, Count: c.Count})
	}

	writeJSON(w, http.StatusOK, response)
}
