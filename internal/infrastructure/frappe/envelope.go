package frappe

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Envelope is the outer JSON wrapper of every backend response. Resource
// endpoints put the payload in data, method endpoints in message.
type Envelope struct {
	Data      json.RawMessage `json:"data,omitempty"`
	Message   json.RawMessage `json:"message,omitempty"`
	Exc       string          `json:"exc,omitempty"`
	ExcType   string          `json:"exc_type,omitempty"`
	Exception string          `json:"exception,omitempty"`
}

type PayloadKind int

const (
	PayloadEmpty PayloadKind = iota
	PayloadData
	PayloadMessage
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadData:
		return "data"
	case PayloadMessage:
		return "message"
	default:
		return "empty"
	}
}

// Payload is the populated variant of an Envelope.
type Payload struct {
	Kind PayloadKind
	Raw  json.RawMessage
}

var ErrEmptyPayload = errors.New("frappe: response carried neither data nor message")

// Payload selects data when present and non-null, then message.
func (e *Envelope) Payload() Payload {
	if e == nil {
		return Payload{Kind: PayloadEmpty}
	}
	if present(e.Data) {
		return Payload{Kind: PayloadData, Raw: e.Data}
	}
	if present(e.Message) {
		return Payload{Kind: PayloadMessage, Raw: e.Message}
	}
	return Payload{Kind: PayloadEmpty}
}

// MessagePayload ignores data; used for /api/method responses.
func (e *Envelope) MessagePayload() Payload {
	if e != nil && present(e.Message) {
		return Payload{Kind: PayloadMessage, Raw: e.Message}
	}
	return Payload{Kind: PayloadEmpty}
}

// Decode unmarshals the payload into out. A nil out is a no-op.
func (p Payload) Decode(out any) error {
	if out == nil {
		return nil
	}
	if p.Kind == PayloadEmpty {
		return ErrEmptyPayload
	}
	return json.Unmarshal(p.Raw, out)
}

func (e *Envelope) errorMessage() string {
	if e.Exc != "" {
		return e.Exc
	}
	return e.Exception
}

func present(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && !bytes.Equal(t, []byte("null"))
}
