package dto

// StreamFrame is one JSON frame on the inbound telephony media stream. The
// Start and Media blocks are only populated for their matching event type.
type StreamFrame struct {
	Event string       `json:"event"`
	Start *StreamStart `json:"start,omitempty"`
	Media *StreamMedia `json:"media,omitempty"`
}

type StreamStart struct {
	StreamSid        string           `json:"streamSid"`
	CustomParameters CustomParameters `json:"customParameters"`
}

type CustomParameters struct {
	AgentID string `json:"agent_id"`
	CallSid string `json:"call_sid"`
}

type StreamMedia struct {
	Payload string `json:"payload"`
}

// OutboundMediaFrame is the frame written back to the telephony connection.
// The payload is the model's base64 audio passed through verbatim.
type OutboundMediaFrame struct {
	Event     string      `json:"event"`
	StreamSid string      `json:"streamSid"`
	Media     StreamMedia `json:"media"`
}

func NewOutboundMediaFrame(streamSid, payload string) OutboundMediaFrame {
	return OutboundMediaFrame{
		Event:     "media",
		StreamSid: streamSid,
		Media:     StreamMedia{Payload: payload},
	}
}
