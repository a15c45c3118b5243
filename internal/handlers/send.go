package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eldtechnologies/courier/internal/mailbox"
	"github.com/eldtechnologies/courier/internal/metrics"
)

// SendRequest represents the point-to-point send request body.
type SendRequest struct {
	From    string         `json:"from"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// SendResponse represents the send response.
type SendResponse struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"ts"`
}

// Send handles routing a message to a single recipient's inbox.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	to := chi.URLParam(r, "id")

	var req SendRequest
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

	msg, ok := h.box.SendMessage(req.From, to, typ, req.Payload)
	if !ok {
		metrics.UnknownRecipients.Inc()
		h.Error(w, http.StatusNotFound, "unknown recipient")
		return
	}

	metrics.MessagesSent.WithLabelValues(typ.String()).Inc()
	metrics.Deliveries.Inc()
	h.recordDepth(to)

	h.JSON(w, http.StatusCreated, SendResponse{
		ID:        msg.ID,
		Timestamp: msg.Timestamp,
	})
}
