package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/eldtechnologies/courier/internal/mailbox"
	"github.com/eldtechnologies/courier/internal/metrics"
)

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	box     *mailbox.Router
	started time.Time
}

// NewHandler creates a new Handler around the given mailbox router.
func NewHandler(box *mailbox.Router) *Handler {
	return &Handler{box: box, started: time.Now()}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}

// recordDepth refreshes the queue depth gauge for one participant.
func (h *Handler) recordDepth(participant string) {
	if pending, ok := h.box.Pending(participant); ok {
		metrics.QueueDepth.WithLabelValues(participant).Set(float64(pending))
	}
}
