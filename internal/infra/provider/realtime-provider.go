package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"voice-connector/internal/config"
	"voice-connector/internal/domain/dto"
	"voice-connector/internal/domain/entities"
	"voice-connector/internal/infra/logger"
)

const (
	audioFormat        = "g711_ulaw"
	transcriberModel   = "whisper-1"
	sessionTemperature = 0.8
)

// RealtimeProvider owns one WebSocket connection to the realtime speech
// service. Events are delivered on the Events channel in the order the
// service produced them; the channel is closed when the connection drops.
type RealtimeProvider struct {
	Logger *logger.Logger

	url    string
	apiKey string

	conn      *websocket.Conn
	events    chan ModelEvent
	done      chan struct{}
	closed    atomic.Bool
	closeOnce sync.Once
	writeMu   sync.Mutex
}

func NewRealtimeProvider(cfg config.Config, log *logger.Logger) *RealtimeProvider {
	return &RealtimeProvider{
		Logger: log,
		url:    cfg.RealtimeURL,
		apiKey: cfg.OpenAIAPIKey,
		events: make(chan ModelEvent, 64),
		done:   make(chan struct{}),
	}
}

// Open dials the realtime service and sends the session-configuration
// handshake. Audio must not be relayed until the service acknowledges the
// configuration with a SessionReady event.
func (p *RealtimeProvider) Open(ctx context.Context, settings SessionSettings) error {
	header := http.Header{}
	header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
	header.Set("OpenAI-Beta", "realtime=v1")

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, p.url, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("failed to dial realtime service (status %s): %w", resp.Status, err)
		}
		return fmt.Errorf("failed to dial realtime service: %w", err)
	}
	p.conn = conn

	update := dto.SessionUpdateEvent{
		Type: "session.update",
		Session: dto.SessionPayload{
			TurnDetection:           dto.TurnDetection{Type: "server_vad"},
			InputAudioFormat:        audioFormat,
			OutputAudioFormat:       audioFormat,
			Voice:                   settings.Voice,
			Instructions:            settings.Instructions,
			Modalities:              []string{"text", "audio"},
			Temperature:             sessionTemperature,
			InputAudioTranscription: dto.AudioTranscriber{Model: transcriberModel},
		},
	}
	if err := p.writeJSON(update); err != nil {
		p.Close()
		return fmt.Errorf("failed to send session configuration: %w", err)
	}

	go p.readLoop()
	return nil
}

// SendAudio forwards one base64 audio chunk. It is a no-op once the session
// is closed.
func (p *RealtimeProvider) SendAudio(payload string) {
	if p.closed.Load() {
		return
	}
	event := dto.AudioAppendEvent{Type: "input_audio_buffer.append", Audio: payload}
	if err := p.writeJSON(event); err != nil {
		p.Logger.Error(fmt.Sprintf("Failed to send audio chunk: %v", err))
	}
}

func (p *RealtimeProvider) SendConversationTurn(role, text string) {
	if p.closed.Load() {
		return
	}
	event := dto.ConversationItemCreateEvent{
		Type: "conversation.item.create",
		Item: dto.ConversationItem{
			Type:    "message",
			Role:    role,
			Content: []dto.ConversationContent{{Type: "input_text", Text: text}},
		},
	}
	if err := p.writeJSON(event); err != nil {
		p.Logger.Error(fmt.Sprintf("Failed to send conversation turn: %v", err))
	}
}

func (p *RealtimeProvider) TriggerResponse() {
	if p.closed.Load() {
		return
	}
	if err := p.writeJSON(dto.ResponseCreateEvent{Type: "response.create"}); err != nil {
		p.Logger.Error(fmt.Sprintf("Failed to trigger response: %v", err))
	}
}

// Close tears down the connection. Safe to call multiple times.
func (p *RealtimeProvider) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.done)
		if p.conn != nil {
			p.writeMu.Lock()
			_ = p.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			p.writeMu.Unlock()
			_ = p.conn.Close()
		}
	})
}

func (p *RealtimeProvider) Events() <-chan ModelEvent {
	return p.events
}

func (p *RealtimeProvider) writeJSON(v interface{}) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.conn.WriteJSON(v)
}

func (p *RealtimeProvider) readLoop() {
	defer close(p.events)
	for {
		_, msg, err := p.conn.ReadMessage()
		if err != nil {
			if !p.closed.Load() {
				p.Logger.Warn(fmt.Sprintf("Realtime connection closed: %v", err))
			}
			return
		}

		var event dto.RealtimeServerEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			p.Logger.Error(fmt.Sprintf("Failed to parse realtime event: %v", err))
			continue
		}

		modelEvent, ok := p.translate(event)
		if !ok {
			continue
		}

		select {
		case p.events <- modelEvent:
		case <-p.done:
			return
		}
	}
}

func (p *RealtimeProvider) translate(event dto.RealtimeServerEvent) (ModelEvent, bool) {
	switch event.Type {
	case "session.updated", "session.created":
		return ModelEvent{Kind: SessionReady}, true
	case "response.audio.delta":
		if event.Delta == "" {
			return ModelEvent{}, false
		}
		return ModelEvent{Kind: AudioDelta, Payload: event.Delta}, true
	case "response.audio_transcript.done":
		return ModelEvent{Kind: UtteranceComplete, Speaker: entities.SpeakerAssistant, Text: event.Transcript}, true
	case "conversation.item.input_audio_transcription.completed":
		return ModelEvent{Kind: UtteranceComplete, Speaker: entities.SpeakerCaller, Text: event.Transcript}, true
	case "error":
		detail := "unknown error"
		if event.Error != nil {
			detail = event.Error.Message
		}
		return ModelEvent{Kind: SessionError, Detail: detail}, true
	}
	return ModelEvent{}, false
}
