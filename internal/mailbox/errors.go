package mailbox

import "errors"

var (
	ErrUnknownType          = errors.New("unknown message type")
	ErrNoParticipants       = errors.New("router requires at least one participant")
	ErrEmptyParticipant     = errors.New("participant ID must not be empty")
	ErrDuplicateParticipant = errors.New("duplicate participant ID")
)
