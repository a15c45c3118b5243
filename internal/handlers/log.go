package handlers

import (
	"net/http"
	"strconv"

	"github.com/eldtechnologies/courier/internal/mailbox"
)

// LogResponse represents a window of the audit log.
type LogResponse struct {
	Messages []mailbox.Message `json:"messages"`
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// Log handles paginated reads of the append-only audit log, oldest first.
func (h *Handler) Log(w http.ResponseWriter, r *http.Request) {
	// Parse query params
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	limit := 50
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}
	if limit > 200 {
		limit = 200
	}

	offset := 0
	if offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	h.JSON(w, http.StatusOK, LogResponse{
		Messages: h.box.Log(limit, offset),
		Total:    h.box.LogLen(),
		Limit:    limit,
		Offset:   offset,
	})
}
