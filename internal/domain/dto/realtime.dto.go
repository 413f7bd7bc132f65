package dto

// Outbound events to the realtime speech service.

type SessionUpdateEvent struct {
	Type    string         `json:"type"`
	Session SessionPayload `json:"session"`
}

type SessionPayload struct {
	TurnDetection           TurnDetection     `json:"turn_detection"`
	InputAudioFormat        string            `json:"input_audio_format"`
	OutputAudioFormat       string            `json:"output_audio_format"`
	Voice                   string            `json:"voice"`
	Instructions            string            `json:"instructions"`
	Modalities              []string          `json:"modalities"`
	Temperature             float64           `json:"temperature"`
	InputAudioTranscription AudioTranscriber  `json:"input_audio_transcription"`
}

type TurnDetection struct {
	Type string `json:"type"`
}

type AudioTranscriber struct {
	Model string `json:"model"`
}

type AudioAppendEvent struct {
	Type  string `json:"type"`
	Audio string `json:"audio"`
}

type ConversationItemCreateEvent struct {
	Type string           `json:"type"`
	Item ConversationItem `json:"item"`
}

type ConversationItem struct {
	Type    string                `json:"type"`
	Role    string                `json:"role"`
	Content []ConversationContent `json:"content"`
}

type ConversationContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type ResponseCreateEvent struct {
	Type string `json:"type"`
}

// RealtimeServerEvent is the inbound envelope from the realtime speech
// service. Only the fields relevant to the bridge are decoded; everything
// else is ignored.
type RealtimeServerEvent struct {
	Type       string         `json:"type"`
	Delta      string         `json:"delta,omitempty"`
	Transcript string         `json:"transcript,omitempty"`
	Error      *RealtimeError `json:"error,omitempty"`
}

type RealtimeError struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
