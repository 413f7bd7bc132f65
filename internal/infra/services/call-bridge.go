package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"voice-connector/internal/domain/dto"
	"voice-connector/internal/domain/entities"
	Iservices "voice-connector/internal/domain/interfaces/services"
	"voice-connector/internal/infra/logger"
	"voice-connector/internal/infra/provider"
)

// BridgeState is the explicit call-session state. Illegal transitions (a
// media frame before start, a duplicate start) are representable and simply
// ignored instead of silently tolerated.
type BridgeState int

const (
	StateAwaitingStart BridgeState = iota
	StateConfiguringAgent
	StateAwaitingModelReady
	StateActive
	StateClosing
	StateClosed
)

func (s BridgeState) String() string {
	switch s {
	case StateAwaitingStart:
		return "awaiting_start"
	case StateConfiguringAgent:
		return "configuring_agent"
	case StateAwaitingModelReady:
		return "awaiting_model_ready"
	case StateActive:
		return "active"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// StreamConn is the subset of the inbound media-stream websocket the bridge
// uses. *websocket.Conn satisfies it.
type StreamConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteJSON(v interface{}) error
	Close() error
}

const (
	collaboratorTimeout = 10 * time.Second
	defaultVoice        = "alloy"
	defaultInstructions = "You are a helpful assistant."
)

type eventKind int

const (
	eventStreamFrame eventKind = iota
	eventStreamClosed
	eventModel
)

type bridgeEvent struct {
	kind  eventKind
	frame []byte
	model provider.ModelEvent
}

// CallBridge owns one inbound media-stream connection and at most one model
// session, relays audio both ways, accumulates the transcript, and triggers
// lead extraction plus persistence exactly once at call end.
//
// Inbound frames and model events are funneled into a single event channel
// consumed by Run, so no two events for the same call are ever processed
// concurrently.
type CallBridge struct {
	Logger             *logger.Logger
	AgentConfigService Iservices.IAgentConfigService
	TranscriptService  Iservices.ITranscriptService
	ArchiveService     Iservices.IArchiveService
	NewModelSession    func() provider.IModelSession

	conn       StreamConn
	sessionID  string
	state      BridgeState
	streamSid  string
	agentID    string
	callSid    string
	agent      entities.AgentConfig
	model      provider.IModelSession
	transcript *entities.Transcript
	startedAt  time.Time

	events    chan bridgeEvent
	done      chan struct{}
	closeOnce sync.Once
}

func NewCallBridge(
	conn StreamConn,
	log *logger.Logger,
	agentConfigService Iservices.IAgentConfigService,
	transcriptService Iservices.ITranscriptService,
	archiveService Iservices.IArchiveService,
	newModelSession func() provider.IModelSession,
) *CallBridge {
	return &CallBridge{
		Logger:             log,
		AgentConfigService: agentConfigService,
		TranscriptService:  transcriptService,
		ArchiveService:     archiveService,
		NewModelSession:    newModelSession,
		conn:               conn,
		sessionID:          uuid.NewString(),
		state:              StateAwaitingStart,
		transcript:         entities.NewTranscript(),
		events:             make(chan bridgeEvent, 64),
		done:               make(chan struct{}),
	}
}

// Run drives the call until it closes. It is the only goroutine that touches
// session state.
func (cb *CallBridge) Run() {
	cb.Logger.Info("New media stream connection", cb.fields())

	go cb.readStream()

	for event := range cb.events {
		switch event.kind {
		case eventStreamFrame:
			cb.handleStreamFrame(event.frame)
		case eventStreamClosed:
			cb.Logger.Info("Media stream disconnected", cb.fields())
			cb.closeCall()
		case eventModel:
			cb.handleModelEvent(event.model)
		}

		if cb.state == StateClosed {
			return
		}
	}
}

// State reports the bridge state. Only meaningful once Run has returned.
func (cb *CallBridge) State() BridgeState {
	return cb.state
}

func (cb *CallBridge) readStream() {
	for {
		_, msg, err := cb.conn.ReadMessage()
		if err != nil {
			cb.post(bridgeEvent{kind: eventStreamClosed})
			return
		}
		cb.post(bridgeEvent{kind: eventStreamFrame, frame: msg})
	}
}

func (cb *CallBridge) pumpModelEvents(session provider.IModelSession) {
	for event := range session.Events() {
		cb.post(bridgeEvent{kind: eventModel, model: event})
	}
}

func (cb *CallBridge) post(event bridgeEvent) {
	select {
	case cb.events <- event:
	case <-cb.done:
	}
}

func (cb *CallBridge) handleStreamFrame(raw []byte) {
	var frame dto.StreamFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		cb.Logger.Error(fmt.Sprintf("Failed to parse media stream frame: %v", err), cb.fields())
		return
	}

	switch frame.Event {
	case "start":
		cb.handleStart(frame.Start)
	case "media":
		cb.handleMedia(frame.Media)
	case "stop":
		cb.Logger.Info("Call ended by stop event", cb.fields())
		cb.closeCall()
	default:
		cb.Logger.Debug(fmt.Sprintf("Ignoring media stream event %q", frame.Event), cb.fields())
	}
}

func (cb *CallBridge) handleStart(start *dto.StreamStart) {
	if cb.state != StateAwaitingStart {
		cb.Logger.Warn("Ignoring start event outside awaiting_start", cb.fields())
		return
	}
	if start == nil {
		cb.Logger.Error("Start event missing start block", cb.fields())
		return
	}

	cb.streamSid = start.StreamSid
	cb.agentID = start.CustomParameters.AgentID
	cb.callSid = start.CustomParameters.CallSid
	cb.startedAt = time.Now()
	cb.state = StateConfiguringAgent
	cb.Logger.Info("Call started", cb.fields())

	ctx, cancel := context.WithTimeout(context.Background(), collaboratorTimeout)
	defer cancel()

	agent, err := cb.AgentConfigService.FetchAgentConfig(ctx, cb.agentID)
	if err != nil {
		// Fatal for this call: no transcript exists yet, nothing to persist.
		cb.Logger.Error(fmt.Sprintf("Could not fetch agent config: %v", err), cb.fields())
		cb.abortCall()
		return
	}
	cb.agent = agent

	session := cb.NewModelSession()
	openCtx, openCancel := context.WithTimeout(context.Background(), collaboratorTimeout)
	defer openCancel()

	settings := provider.SessionSettings{
		Voice:        voiceOrDefault(agent.VoiceID),
		Instructions: composeInstructions(agent),
	}
	if err := session.Open(openCtx, settings); err != nil {
		cb.Logger.Error(fmt.Sprintf("Could not open model session: %v", err), cb.fields())
		cb.abortCall()
		return
	}

	cb.model = session
	cb.state = StateAwaitingModelReady
	go cb.pumpModelEvents(session)
}

func (cb *CallBridge) handleMedia(media *dto.StreamMedia) {
	if cb.state != StateActive || media == nil {
		// Chunks before readiness are dropped; the stream resends continuously.
		cb.Logger.Debug("Dropping media frame outside active state", cb.fields())
		return
	}
	cb.model.SendAudio(media.Payload)
}

func (cb *CallBridge) handleModelEvent(event provider.ModelEvent) {
	switch event.Kind {
	case provider.SessionReady:
		cb.handleModelReady()
	case provider.AudioDelta:
		if cb.state != StateActive {
			return
		}
		frame := dto.NewOutboundMediaFrame(cb.streamSid, event.Payload)
		if err := cb.conn.WriteJSON(frame); err != nil {
			cb.Logger.Error(fmt.Sprintf("Failed to relay audio to media stream: %v", err), cb.fields())
		}
	case provider.UtteranceComplete:
		if event.Text == "" {
			return
		}
		cb.transcript.Append(event.Speaker, event.Text)
	case provider.SessionError:
		// The model service may recover; the call continues audio-only.
		cb.Logger.Error(fmt.Sprintf("Model session error: %s", event.Detail), cb.fields())
	}
}

func (cb *CallBridge) handleModelReady() {
	if cb.state != StateAwaitingModelReady {
		return
	}
	cb.state = StateActive
	cb.Logger.Info("Model session ready", cb.fields())

	if cb.agent.VoiceGreeting != "" {
		cb.model.SendConversationTurn("user", fmt.Sprintf("Greet the caller by saying: %s", cb.agent.VoiceGreeting))
		cb.model.TriggerResponse()
	}
}

// abortCall handles the fatal path before any transcript exists: close the
// inbound connection without attempting persistence.
func (cb *CallBridge) abortCall() {
	cb.closeOnce.Do(func() {
		if cb.model != nil {
			cb.model.Close()
		}
		_ = cb.conn.Close()
		close(cb.done)
	})
	cb.state = StateClosed
}

// closeCall runs the closing sequence exactly once, no matter whether the
// stop event, the connection closure, or both triggered it.
func (cb *CallBridge) closeCall() {
	cb.closeOnce.Do(func() {
		cb.state = StateClosing
		cb.persist()
		if cb.model != nil {
			cb.model.Close()
		}
		_ = cb.conn.Close()
		close(cb.done)
	})
	cb.state = StateClosed
}

func (cb *CallBridge) persist() {
	if cb.transcript.Len() == 0 || cb.callSid == "" {
		return
	}

	lead := ExtractLead(cb.transcript.Utterances())

	ctx, cancel := context.WithTimeout(context.Background(), collaboratorTimeout)
	defer cancel()

	if err := cb.TranscriptService.SaveTranscript(ctx, cb.callSid, cb.transcript.Lines(), lead); err != nil {
		cb.Logger.Error(fmt.Sprintf("Failed to persist transcript: %v", err), cb.fields())
	}

	if cb.ArchiveService != nil {
		record := entities.CallRecord{
			CallSid:    cb.callSid,
			StreamSid:  cb.streamSid,
			AgentID:    cb.agentID,
			AgentName:  cb.agent.AgentName,
			Transcript: cb.transcript.Lines(),
			Lead:       lead,
			StartedAt:  cb.startedAt,
			EndedAt:    time.Now(),
		}
		if err := cb.ArchiveService.ArchiveCall(ctx, record); err != nil {
			cb.Logger.Error(fmt.Sprintf("Failed to archive call: %v", err), cb.fields())
		}
	}
}

func (cb *CallBridge) fields() logrus.Fields {
	return logrus.Fields{
		"session_id": cb.sessionID,
		"stream_sid": cb.streamSid,
		"call_sid":   cb.callSid,
		"agent_id":   cb.agentID,
		"state":      cb.state.String(),
	}
}

func composeInstructions(agent entities.AgentConfig) string {
	instructions := agent.SystemPrompt
	if instructions == "" {
		instructions = defaultInstructions
	}
	if agent.KnowledgeBase != "" {
		instructions = instructions + "\n\n" + agent.KnowledgeBase
	}
	return instructions
}

func voiceOrDefault(voice string) string {
	if voice == "" {
		return defaultVoice
	}
	return voice
}
