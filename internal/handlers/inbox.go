package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eldtechnologies/courier/internal/mailbox"
	"github.com/eldtechnologies/courier/internal/metrics"
)

// InboxResponse represents the non-destructive inbox view.
type InboxResponse struct {
	Participant string           `json:"participant"`
	Pending     int              `json:"pending"`
	Head        *mailbox.Message `json:"head,omitempty"`
}

// Next handles a destructive inbox poll: the oldest undelivered message is
// dequeued and returned, or 204 when the inbox is empty. Polling an empty
// inbox has no side effects.
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.box.Known(id) {
		h.Error(w, http.StatusNotFound, "unknown participant")
		return
	}

	msg, ok := h.box.Receive(id)
	if !ok {
		metrics.Receives.WithLabelValues("empty").Inc()
		w.WriteHeader(http.StatusNoContent)
		return
	}

	metrics.Receives.WithLabelValues("hit").Inc()
	h.recordDepth(id)

	h.JSON(w, http.StatusOK, msg)
}

// Inbox handles the non-destructive inbox view: queue depth plus a preview
// of the message a poll would return next.
func (h *Handler) Inbox(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	pending, ok := h.box.Pending(id)
	if !ok {
		h.Error(w, http.StatusNotFound, "unknown participant")
		return
	}

	resp := InboxResponse{Participant: id, Pending: pending}
	if head, ok := h.box.Peek(id); ok {
		resp.Head = &head
	}

	h.JSON(w, http.StatusOK, resp)
}
