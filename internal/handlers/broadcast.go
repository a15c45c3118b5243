package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/eldtechnologies/courier/internal/mailbox"
	"github.com/eldtechnologies/courier/internal/metrics"
)

// BroadcastRequest represents the broadcast request body.
type BroadcastRequest struct {
	From    string         `json:"from"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// BroadcastResponse represents the broadcast response.
type BroadcastResponse struct {
	BroadcastID string `json:"broadcast_id"`
	Delivered   int    `json:"delivered"`
}

// Broadcast handles fanning a message out to every participant except the
// sender. The sender's own inbox is never touched.
func (h *Handler) Broadcast(w http.ResponseWriter, r *http.Request) {
	var req BroadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.From == "" {
		h.Error(w, http.StatusBadRequest, "from is required")
		return
	}
	if !h.box.Known(req.From) {
		h.Error(w, http.StatusBadRequest, "unknown sender")
		return
	}

	typ, err := mailbox.ParseType(req.Type)
	if err != nil {
		h.Error(w, http.StatusBadRequest, "type must be one of: request_help, share_data, task_complete, error_report, broadcast")
		return
	}

	delivered := h.box.Broadcast(req.From, typ, req.Payload)

	metrics.Broadcasts.Inc()
	metrics.Deliveries.Add(float64(delivered))
	metrics.MessagesSent.WithLabelValues(typ.String()).Add(float64(delivered))
	for _, id := range h.box.Participants() {
		h.recordDepth(id)
	}

	h.JSON(w, http.StatusCreated, BroadcastResponse{
		BroadcastID: uuid.New().String(),
		Delivered:   delivered,
	})
}
