package mailbox

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		participants []string
		wantErr      error
	}{
		{"single participant", []string{"worker-1"}, nil},
		{"multiple participants", []string{"worker-1", "worker-2", "worker-3"}, nil},
		{"empty set", nil, ErrNoParticipants},
		{"empty ID", []string{"worker-1", ""}, ErrEmptyParticipant},
		{"duplicate ID", []string{"worker-1", "worker-1"}, ErrDuplicateParticipant},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, err := NewRouter(tt.participants)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, r)
				return
			}
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.participants, r.Participants())
			for _, id := range tt.participants {
				pending, ok := r.Pending(id)
				assert.True(t, ok)
				assert.Zero(t, pending)
			}
		})
	}
}

func TestRouter_SendReceive(t *testing.T) {
	t.Parallel()
	r, err := NewRouter([]string{"alpha", "beta"})
	require.NoError(t, err)

	ok := r.Send("alpha", "beta", TypeShareData, map[string]any{"x": 1})
	require.True(t, ok)

	got, ok := r.Receive("beta")
	require.True(t, ok)
	assert.Equal(t, "alpha", got.From)
	assert.Equal(t, "beta", got.To)
	assert.Equal(t, TypeShareData, got.Type)
	assert.Equal(t, map[string]any{"x": 1}, got.Payload)
	assert.NotEmpty(t, got.ID)
	assert.NotZero(t, got.Timestamp)

	// Last log entry matches the delivered message.
	log := r.Log(0, 0)
	require.Len(t, log, 1)
	assert.Equal(t, got.ID, log[len(log)-1].ID)
}

func TestRouter_FIFOPerQueue(t *testing.T) {
	t.Parallel()
	r, err := NewRouter([]string{"alpha", "beta"})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.True(t, r.Send("alpha", "beta", TypeShareData, map[string]any{"seq": i}))
	}

	for i := 0; i < 5; i++ {
		got, ok := r.Receive("beta")
		require.True(t, ok)
		assert.Equal(t, map[string]any{"seq": i}, got.Payload)
	}

	_, ok := r.Receive("beta")
	assert.False(t, ok)
}

func TestRouter_SendUnknownRecipient(t *testing.T) {
	t.Parallel()
	r, err := NewRouter([]string{"alpha", "beta"})
	require.NoError(t, err)

	ok := r.Send("alpha", "ghost", TypeRequestHelp, nil)
	assert.False(t, ok)

	// No queue and no log entry was touched.
	assert.Zero(t, r.LogLen())
	for _, id := range r.Participants() {
		pending, _ := r.Pending(id)
		assert.Zero(t, pending)
	}
}

func TestRouter_Broadcast(t *testing.T) {
	t.Parallel()
	r, err := NewRouter([]string{"alpha", "beta", "gamma", "delta"})
	require.NoError(t, err)

	count := r.Broadcast("beta", TypeBroadcast, map[string]any{"msg": "hi"})
	assert.Equal(t, 3, count)

	// Sender's own queue stays empty.
	pending, _ := r.Pending("beta")
	assert.Zero(t, pending)

	for _, id := range []string{"alpha", "gamma", "delta"} {
		got, ok := r.Receive(id)
		require.True(t, ok, "participant %s should have one message", id)
		assert.Equal(t, "beta", got.From)
		assert.Equal(t, id, got.To)
		assert.Equal(t, TypeBroadcast, got.Type)
	}

	assert.Equal(t, 3, r.LogLen())
}

func TestRouter_ReceiveEmptyIdempotent(t *testing.T) {
	t.Parallel()
	r, err := NewRouter([]string{"alpha"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		msg, ok := r.Receive("alpha")
		assert.False(t, ok)
		assert.Zero(t, msg)
	}

	_, ok := r.Receive("ghost")
	assert.False(t, ok)
	assert.Zero(t, r.LogLen())
}

func TestRouter_Peek(t *testing.T) {
	t.Parallel()
	r, err := NewRouter([]string{"alpha", "beta"})
	require.NoError(t, err)

	_, ok := r.Peek("beta")
	assert.False(t, ok)

	require.True(t, r.Send("alpha", "beta", TypeTaskComplete, map[string]any{"task": "t1"}))

	head, ok := r.Peek("beta")
	require.True(t, ok)

	// Peek does not consume.
	pending, _ := r.Pending("beta")
	assert.Equal(t, 1, pending)

	got, ok := r.Receive("beta")
	require.True(t, ok)
	assert.Equal(t, head.ID, got.ID)
}

// Mirrors the three-participant exchange the router exists to serve.
func TestRouter_ThreeParticipantScenario(t *testing.T) {
	t.Parallel()
	r, err := NewRouter([]string{"1", "2", "3"})
	require.NoError(t, err)

	require.True(t, r.Send("1", "2", TypeShareData, map[string]any{"x": 1}))

	got, ok := r.Receive("2")
	require.True(t, ok)
	assert.Equal(t, "1", got.From)
	assert.Equal(t, map[string]any{"x": 1}, got.Payload)

	_, ok = r.Receive("1")
	assert.False(t, ok)
	_, ok = r.Receive("3")
	assert.False(t, ok)

	count := r.Broadcast("3", TypeBroadcast, map[string]any{"msg": "hi"})
	assert.Equal(t, 2, count)

	for _, id := range []string{"1", "2"} {
		got, ok := r.Receive(id)
		require.True(t, ok)
		assert.Equal(t, "3", got.From)
	}

	assert.Equal(t, 3, r.LogLen())
}

func TestRouter_PayloadIsolation(t *testing.T) {
	t.Parallel()
	r, err := NewRouter([]string{"alpha", "beta"})
	require.NoError(t, err)

	payload := map[string]any{"k": "v"}
	require.True(t, r.Send("alpha", "beta", TypeShareData, payload))

	// Mutating the sender's map after the fact must not leak into the router.
	payload["k"] = "mutated"

	got, _ := r.Receive("beta")
	assert.Equal(t, "v", got.Payload["k"])

	// Nor can a receiver rewrite the logged entry.
	got.Payload["k"] = "rewritten"
	log := r.Log(0, 0)
	require.Len(t, log, 1)
	assert.Equal(t, "v", log[0].Payload["k"])
}

func TestRouter_PayloadIsolationNested(t *testing.T) {
	t.Parallel()
	r, err := NewRouter([]string{"alpha", "beta"})
	require.NoError(t, err)

	inner := map[string]any{"k": "v"}
	items := []any{"first", map[string]any{"n": 1}}
	require.True(t, r.Send("alpha", "beta", TypeShareData, map[string]any{
		"nested": inner,
		"items":  items,
	}))

	// Mutating structures reachable from the sender's payload must not
	// show up in the log or in what the receiver gets.
	inner["k"] = "mutated"
	items[0] = "swapped"
	items[1].(map[string]any)["n"] = 99

	log := r.Log(0, 0)
	require.Len(t, log, 1)
	assert.Equal(t, "v", log[0].Payload["nested"].(map[string]any)["k"])

	got, ok := r.Receive("beta")
	require.True(t, ok)
	assert.Equal(t, "v", got.Payload["nested"].(map[string]any)["k"])
	gotItems := got.Payload["items"].([]any)
	assert.Equal(t, "first", gotItems[0])
	assert.Equal(t, 1, gotItems[1].(map[string]any)["n"])

	// A receiver digging into its copy cannot reach the logged entry either.
	got.Payload["nested"].(map[string]any)["k"] = "rewritten"
	assert.Equal(t, "v", r.Log(0, 0)[0].Payload["nested"].(map[string]any)["k"])
}

func TestRouter_LogPagination(t *testing.T) {
	t.Parallel()
	r, err := NewRouter([]string{"alpha", "beta"})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.True(t, r.Send("alpha", "beta", TypeShareData, map[string]any{"seq": i}))
	}

	tests := []struct {
		name          string
		limit, offset int
		wantLen       int
		wantFirstSeq  int
	}{
		{"full log", 0, 0, 10, 0},
		{"first page", 4, 0, 4, 0},
		{"middle page", 4, 4, 4, 4},
		{"trailing partial page", 4, 8, 2, 8},
		{"offset past end", 4, 100, 0, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			window := r.Log(tt.limit, tt.offset)
			require.Len(t, window, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, map[string]any{"seq": tt.wantFirstSeq}, window[0].Payload)
			}
		})
	}
}

func TestRouter_ConcurrentSenders(t *testing.T) {
	t.Parallel()

	const (
		senders        = 8
		msgsPerSender  = 50
		totalDelivered = senders * msgsPerSender
	)

	ids := make([]string, 0, senders+1)
	for i := 0; i < senders; i++ {
		ids = append(ids, fmt.Sprintf("sender-%d", i))
	}
	ids = append(ids, "sink")

	r, err := NewRouter(ids)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func(from string) {
			defer wg.Done()
			for seq := 0; seq < msgsPerSender; seq++ {
				r.Send(from, "sink", TypeShareData, map[string]any{"from": from, "seq": seq})
			}
		}(fmt.Sprintf("sender-%d", i))
	}
	wg.Wait()

	// Nothing dropped under contention.
	assert.Equal(t, totalDelivered, r.LogLen())
	pending, _ := r.Pending("sink")
	assert.Equal(t, totalDelivered, pending)

	// Per-sender FIFO order survives interleaving.
	lastSeq := make(map[string]int)
	for i := 0; i < totalDelivered; i++ {
		msg, ok := r.Receive("sink")
		require.True(t, ok)
		seq := msg.Payload["seq"].(int)
		if prev, seen := lastSeq[msg.From]; seen {
			assert.Greater(t, seq, prev, "messages from %s out of order", msg.From)
		}
		lastSeq[msg.From] = seq
	}
}
