package handlers

import (
	"net/http"
)

// ParticipantInfo represents one participant in the list response.
type ParticipantInfo struct {
	ID      string `json:"id"`
	Pending int    `json:"pending"`
}

// ParticipantListResponse represents the participants list response.
type ParticipantListResponse struct {
	Participants []ParticipantInfo `json:"participants"`
	Total        int               `json:"total"`
}

// ListParticipants handles listing the router's fixed membership with
// current queue depths.
func (h *Handler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	ids := h.box.Participants()

	participants := make([]ParticipantInfo, len(ids))
	for i, id := range ids {
		pending, _ := h.box.Pending(id)
		participants[i] = ParticipantInfo{ID: id, Pending: pending}
	}

	h.JSON(w, http.StatusOK, ParticipantListResponse{
		Participants: participants,
		Total:        len(participants),
	})
}
