package provider

import (
	"context"

	"voice-connector/internal/domain/entities"
)

type ModelEventKind int

const (
	SessionReady ModelEventKind = iota
	AudioDelta
	UtteranceComplete
	SessionError
)

// ModelEvent is one event received from the realtime speech session,
// delivered in the order the underlying service produced it.
type ModelEvent struct {
	Kind    ModelEventKind
	Payload string
	Speaker entities.Speaker
	Text    string
	Detail  string
}

// SessionSettings carries the per-call configuration sent during the
// session-configuration handshake.
type SessionSettings struct {
	Voice        string
	Instructions string
}

type IModelSession interface {
	Open(ctx context.Context, settings SessionSettings) error
	SendAudio(payload string)
	SendConversationTurn(role, text string)
	TriggerResponse()
	Close()
	Events() <-chan ModelEvent
}
