package entities

import (
	"fmt"
	"strings"
	"time"
)

type Speaker string

const (
	SpeakerCaller    Speaker = "caller"
	SpeakerAssistant Speaker = "assistant"
)

// Utterance is one transcribed turn of speech. Immutable once appended.
type Utterance struct {
	Speaker  Speaker `json:"speaker" bson:"speaker"`
	Text     string  `json:"text" bson:"text"`
	Sequence int     `json:"sequence" bson:"sequence"`
}

// Transcript is the append-only ordered list of utterances for one call. It
// is owned by a single call bridge and mutated only through Append.
type Transcript struct {
	utterances []Utterance
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

func (t *Transcript) Append(speaker Speaker, text string) {
	t.utterances = append(t.utterances, Utterance{
		Speaker:  speaker,
		Text:     text,
		Sequence: len(t.utterances),
	})
}

func (t *Transcript) Len() int {
	return len(t.utterances)
}

// Utterances returns a copy so callers cannot mutate the transcript.
func (t *Transcript) Utterances() []Utterance {
	out := make([]Utterance, len(t.utterances))
	copy(out, t.utterances)
	return out
}

// Lines renders the transcript as speaker-prefixed lines, the format the
// save-transcript collaborator expects.
func (t *Transcript) Lines() string {
	lines := make([]string, 0, len(t.utterances))
	for _, u := range t.utterances {
		lines = append(lines, fmt.Sprintf("%s: %s", u.Speaker, u.Text))
	}
	return strings.Join(lines, "\n")
}

// LeadRecord holds the contact fields heuristically mined from a transcript.
// Every field is optional; a field absent from the source stays empty and is
// omitted from serialized output.
type LeadRecord struct {
	FirstName string `json:"first_name,omitempty" bson:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty" bson:"last_name,omitempty"`
	Company   string `json:"company,omitempty" bson:"company,omitempty"`
	Phone     string `json:"phone,omitempty" bson:"phone,omitempty"`
	Email     string `json:"email,omitempty" bson:"email,omitempty"`
}

func (l LeadRecord) IsEmpty() bool {
	return l == LeadRecord{}
}

// AgentConfig is the per-agent configuration fetched once per call and
// read-only for the call's lifetime.
type AgentConfig struct {
	AgentName     string
	VoiceID       string
	SystemPrompt  string
	VoiceGreeting string
	KnowledgeBase string
}

// CallRecord is the archive document written to Mongo when archiving is
// enabled. It is assembled once, after the call has closed.
type CallRecord struct {
	CallSid    string     `json:"call_sid" bson:"call_sid"`
	StreamSid  string     `json:"stream_sid" bson:"stream_sid"`
	AgentID    string     `json:"agent_id" bson:"agent_id"`
	AgentName  string     `json:"agent_name" bson:"agent_name"`
	Transcript string     `json:"transcript" bson:"transcript"`
	Lead       LeadRecord `json:"lead" bson:"lead"`
	StartedAt  time.Time  `json:"startedAt" bson:"startedAt"`
	EndedAt    time.Time  `json:"endedAt" bson:"endedAt"`
}
