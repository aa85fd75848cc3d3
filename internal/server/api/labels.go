package api

import (
	"net/http"

	"github.com/ayusman/mudra/internal/app"
)

// LabelsHandler serves GET /api/labels, the classifier's known labels.
type LabelsHandler struct {
	app *app.App
}

// NewLabelsHandler creates a LabelsHandler.
func NewLabelsHandler(a *app.App) *LabelsHandler {
	return &LabelsHandler{app: a}
}

type labelsResponse struct {
	Labels     []string `json:"labels"`
	NoHandText string   `json:"no_hand"`
}

func (h *LabelsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, labelsResponse{
		Labels:     h.app.Labels(),
		NoHandText: app.NoHandCaption,
	})
}
