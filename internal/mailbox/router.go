// Package mailbox implements an in-process task-routing mailbox: a fixed set
// of participants exchanging typed messages through per-participant FIFO
// inboxes, with a global append-only audit log.
package mailbox

import (
	"fmt"
	"slices"
	"sync"
)

// queue is one participant's inbox. Multiple senders may push concurrently;
// FIFO order is preserved per queue.
type queue struct {
	mu   sync.Mutex
	msgs []Message
}

func (q *queue) push(m Message) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.msgs = append(q.msgs, m)
}

func (q *queue) pop() (Message, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.msgs) == 0 {
		return Message{}, false
	}
	m := q.msgs[0]
	q.msgs = q.msgs[1:]
	return m, true
}

func (q *queue) peek() (Message, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.msgs) == 0 {
		return Message{}, false
	}
	return q.msgs[0], true
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.msgs)
}

// Router routes messages between a fixed set of participants. Membership is
// set at construction; queues live as long as the router. All synchronization
// is internal: the queue table is never mutated after NewRouter, each queue
// carries its own lock, and log appends are serialized separately.
type Router struct {
	participants []string // sorted
	queues       map[string]*queue

	logMu sync.Mutex
	log   []Message
}

// NewRouter creates a router for the given participants. IDs must be
// non-empty and unique.
func NewRouter(participants []string) (*Router, error) {
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}

	r := &Router{
		participants: make([]string, 0, len(participants)),
		queues:       make(map[string]*queue, len(participants)),
	}
	for _, id := range participants {
		if id == "" {
			return nil, ErrEmptyParticipant
		}
		if _, exists := r.queues[id]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateParticipant, id)
		}
		r.queues[id] = &queue{}
		r.participants = append(r.participants, id)
	}
	slices.Sort(r.participants)

	return r, nil
}

// Send routes one message to a single recipient's queue and appends it to
// the log. It returns false, mutating nothing, when the recipient is unknown;
// delivery into the queue counts as sent whether or not it is ever read.
func (r *Router) Send(from, to string, typ Type, payload map[string]any) bool {
	_, ok := r.SendMessage(from, to, typ, payload)
	return ok
}

// SendMessage is Send for callers that need the routed message back, for
// its ID and timestamp.
func (r *Router) SendMessage(from, to string, typ Type, payload map[string]any) (Message, bool) {
	q, ok := r.queues[to]
	if !ok {
		return Message{}, false
	}

	msg := newMessage(from, to, typ, payload)
	q.push(msg)

	r.logMu.Lock()
	r.log = append(r.log, msg)
	r.logMu.Unlock()

	return msg.clone(), true
}

// Broadcast sends to every participant except the sender and returns the
// number of deliveries. With fixed membership this is always N-1.
func (r *Router) Broadcast(from string, typ Type, payload map[string]any) int {
	count := 0
	for _, id := range r.participants {
		if id == from {
			continue
		}
		if r.Send(from, id, typ, payload) {
			count++
		}
	}
	return count
}

// Receive dequeues the oldest message for a participant. It never blocks:
// the second return is false when the inbox is empty or the participant is
// unknown, and repeated calls on an empty inbox have no side effects.
func (r *Router) Receive(participant string) (Message, bool) {
	q, ok := r.queues[participant]
	if !ok {
		return Message{}, false
	}
	m, ok := q.pop()
	if !ok {
		return Message{}, false
	}
	return m.clone(), true
}

// Peek returns the oldest message for a participant without removing it.
func (r *Router) Peek(participant string) (Message, bool) {
	q, ok := r.queues[participant]
	if !ok {
		return Message{}, false
	}
	m, ok := q.peek()
	if !ok {
		return Message{}, false
	}
	return m.clone(), true
}

// Known reports whether id is a registered participant.
func (r *Router) Known(id string) bool {
	_, ok := r.queues[id]
	return ok
}

// Participants returns the sorted participant IDs.
func (r *Router) Participants() []string {
	return slices.Clone(r.participants)
}

// Pending returns the number of undelivered messages in a participant's
// queue, and false if the participant is unknown.
func (r *Router) Pending(participant string) (int, bool) {
	q, ok := r.queues[participant]
	if !ok {
		return 0, false
	}
	return q.len(), true
}

// Log returns a window of the audit log in send order. A limit <= 0 returns
// everything from offset onward. Entries are copies; the log itself is
// append-only and never mutated.
func (r *Router) Log(limit, offset int) []Message {
	r.logMu.Lock()
	defer r.logMu.Unlock()

	if offset < 0 {
		offset = 0
	}
	if offset >= len(r.log) {
		return []Message{}
	}

	end := len(r.log)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	window := make([]Message, 0, end-offset)
	for _, m := range r.log[offset:end] {
		window = append(window, m.clone())
	}
	return window
}

// LogLen returns the total number of messages ever routed.
func (r *Router) LogLen() int {
	r.logMu.Lock()
	defer r.logMu.Unlock()
	return len(r.log)
}
