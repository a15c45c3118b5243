package courier

import (
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldtechnologies/courier/internal/api"
	"github.com/eldtechnologies/courier/internal/mailbox"
)

func newTestClient(t *testing.T, from string, participants ...string) *Client {
	t.Helper()
	box, err := mailbox.NewRouter(participants)
	require.NoError(t, err)
	srv := httptest.NewServer(api.NewRouter(zerolog.Nop(), box))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, from)
}

func TestClient_SendAndNext(t *testing.T) {
	planner := newTestClient(t, "planner", "planner", "executor")
	executor := NewClient(planner.BaseURL, "executor")

	sent, err := planner.Send("executor", "request_help", map[string]any{"task": "review"})
	require.NoError(t, err)
	assert.NotEmpty(t, sent.ID)

	msg, err := executor.Next()
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, sent.ID, msg.ID)
	assert.Equal(t, "planner", msg.From)
	assert.Equal(t, "request_help", msg.Type)
	assert.Equal(t, map[string]any{"task": "review"}, msg.Payload)

	// Empty inbox is nil, not an error.
	msg, err = executor.Next()
	require.NoError(t, err)
	assert.Nil(t, msg)
}

func TestClient_SendErrors(t *testing.T) {
	planner := newTestClient(t, "planner", "planner", "executor")

	_, err := planner.Send("ghost", "share_data", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown recipient")

	_, err = planner.Send("executor", "gossip", nil)
	require.Error(t, err)
}

func TestClient_BroadcastAndInbox(t *testing.T) {
	planner := newTestClient(t, "planner", "planner", "executor", "reviewer")

	bc, err := planner.Broadcast("broadcast", map[string]any{"msg": "standup"})
	require.NoError(t, err)
	assert.Equal(t, 2, bc.Delivered)

	reviewer := NewClient(planner.BaseURL, "reviewer")
	inbox, err := reviewer.Inbox()
	require.NoError(t, err)
	assert.Equal(t, 1, inbox.Pending)
	require.NotNil(t, inbox.Head)
	assert.Equal(t, "planner", inbox.Head.From)

	// Inbox view does not consume.
	inbox, err = reviewer.Inbox()
	require.NoError(t, err)
	assert.Equal(t, 1, inbox.Pending)
}

func TestClient_LogStatsParticipantsHealth(t *testing.T) {
	planner := newTestClient(t, "planner", "planner", "executor")

	_, err := planner.Send("executor", "task_complete", nil)
	require.NoError(t, err)

	log, err := planner.Log(10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, log.Total)
	require.Len(t, log.Messages, 1)

	stats, err := planner.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalParticipants)
	assert.Equal(t, 1, stats.TotalMessages)

	list, err := planner.Participants()
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)

	health, err := planner.Health()
	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)
}
