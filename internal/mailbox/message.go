package mailbox

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Type identifies the kind of a message. The set is closed: values outside
// the enumeration are rejected at the parsing boundary.
type Type int

const (
	// TypeRequestHelp asks another participant to take over a task.
	TypeRequestHelp Type = iota + 1
	// TypeShareData carries a data payload to a specific participant.
	TypeShareData
	// TypeTaskComplete reports that a previously routed task finished.
	TypeTaskComplete
	// TypeErrorReport reports a failure encountered while working a task.
	TypeErrorReport
	// TypeBroadcast marks a message fanned out to all other participants.
	TypeBroadcast
)

var typeNames = map[Type]string{
	TypeRequestHelp:  "request_help",
	TypeShareData:    "share_data",
	TypeTaskComplete: "task_complete",
	TypeErrorReport:  "error_report",
	TypeBroadcast:    "broadcast",
}

var typesByName = map[string]Type{
	"request_help":  TypeRequestHelp,
	"share_data":    TypeShareData,
	"task_complete": TypeTaskComplete,
	"error_report":  TypeErrorReport,
	"broadcast":     TypeBroadcast,
}

// ParseType converts a wire-format name into a Type.
func ParseType(name string) (Type, error) {
	t, ok := typesByName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return t, nil
}

// IsValid reports whether t is one of the enumerated message types.
func (t Type) IsValid() bool {
	_, ok := typeNames[t]
	return ok
}

// String returns the wire-format name of the type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("invalid(%d)", int(t))
}

// MarshalJSON encodes the type as its wire-format name.
func (t Type) MarshalJSON() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, int(t))
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a wire-format name, rejecting unknown values.
func (t *Type) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseType(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Message is a single routed message. Messages are immutable once created:
// the router clones the payload on construction and again on every read, so
// neither the sender nor a receiver can alter a logged entry.
type Message struct {
	ID        string         `json:"id"` // ULID
	From      string         `json:"from"`
	To        string         `json:"to"`
	Type      Type           `json:"type"`
	Payload   map[string]any `json:"payload,omitempty"`
	Timestamp int64          `json:"ts"` // Unix ms
}

// newMessage builds a message with a fresh ULID and the current timestamp.
func newMessage(from, to string, typ Type, payload map[string]any) Message {
	return Message{
		ID:        ulid.Make().String(),
		From:      from,
		To:        to,
		Type:      typ,
		Payload:   clonePayload(payload),
		Timestamp: time.Now().UnixMilli(),
	}
}

// clone returns a copy whose payload map is independent of the original.
func (m Message) clone() Message {
	c := m
	c.Payload = clonePayload(m.Payload)
	return c
}

// clonePayload deep-copies a payload, descending into nested maps and
// slices so no stored message shares structure with caller state.
func clonePayload(payload map[string]any) map[string]any {
	if payload == nil {
		return nil
	}
	cloned := make(map[string]any, len(payload))
	for k, v := range payload {
		cloned[k] = cloneValue(v)
	}
	return cloned
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return clonePayload(val)
	case []any:
		cloned := make([]any, len(val))
		for i, elem := range val {
			cloned[i] = cloneValue(elem)
		}
		return cloned
	default:
		return v
	}
}
