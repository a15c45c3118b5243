package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"time"
)

// QueueStats represents the depth of a single inbox.
type QueueStats struct {
	Participant string `json:"participant"`
	Pending     int    `json:"pending"`
}

// StatsResponse represents the response from the stats endpoint.
// BusiestQueues is capped at the five deepest inboxes; full per-participant
// depths are available from the participants endpoint.
type StatsResponse struct {
	TotalParticipants int            `json:"total_participants"`
	TotalMessages     int            `json:"total_messages"`
	TotalPending      int            `json:"total_pending"`
	MessagesByType    map[string]int `json:"messages_by_type"`
	LastActivity      string         `json:"last_activity"`
	BusiestQueues     []QueueStats   `json:"busiest_queues"`
}

// Stats returns routing statistics for dashboards and debugging.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ids := h.box.Participants()

	totalPending := 0
	queues := make([]QueueStats, 0, len(ids))
	for _, id := range ids {
		pending, _ := h.box.Pending(id)
		totalPending += pending
		queues = append(queues, QueueStats{Participant: id, Pending: pending})
	}

	// Deepest queues first; cap the list for the response.
	sort.Slice(queues, func(i, j int) bool { return queues[i].Pending > queues[j].Pending })
	if len(queues) > 5 {
		queues = queues[:5]
	}

	byType := make(map[string]int)
	lastActivity := "no activity yet"
	log := h.box.Log(0, 0)
	for _, msg := range log {
		byType[msg.Type.String()]++
	}
	if len(log) > 0 {
		lastActivity = formatTimeAgo(time.UnixMilli(log[len(log)-1].Timestamp))
	}

	h.JSON(w, http.StatusOK, StatsResponse{
		TotalParticipants: len(ids),
		TotalMessages:     h.box.LogLen(),
		TotalPending:      totalPending,
		MessagesByType:    byType,
		LastActivity:      lastActivity,
		BusiestQueues:     queues,
	})
}

// formatTimeAgo formats a time as a human-readable "X ago" string.
func formatTimeAgo(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	default:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	}
}
