package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptAppendKeepsInsertionOrder(t *testing.T) {
	transcript := NewTranscript()
	transcript.Append(SpeakerAssistant, "Hello!")
	transcript.Append(SpeakerCaller, "Hi, I'm John.")
	transcript.Append(SpeakerAssistant, "How can I help?")

	utterances := transcript.Utterances()
	require.Len(t, utterances, 3)
	for i, u := range utterances {
		assert.Equal(t, i, u.Sequence)
	}
	assert.Equal(t, SpeakerCaller, utterances[1].Speaker)
	assert.Equal(t, "Hi, I'm John.", utterances[1].Text)
}

func TestTranscriptUtterancesReturnsCopy(t *testing.T) {
	transcript := NewTranscript()
	transcript.Append(SpeakerCaller, "original")

	snapshot := transcript.Utterances()
	snapshot[0].Text = "mutated"

	assert.Equal(t, "original", transcript.Utterances()[0].Text)
}

func TestTranscriptLines(t *testing.T) {
	transcript := NewTranscript()
	assert.Equal(t, "", transcript.Lines())

	transcript.Append(SpeakerAssistant, "Who am I speaking with?")
	transcript.Append(SpeakerCaller, "I'm John Smith.")

	assert.Equal(t, "assistant: Who am I speaking with?\ncaller: I'm John Smith.", transcript.Lines())
}

func TestLeadRecordOmitsUnsetFields(t *testing.T) {
	raw, err := json.Marshal(LeadRecord{Phone: "5551234567"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"phone":"5551234567"}`, string(raw))

	assert.True(t, LeadRecord{}.IsEmpty())
	assert.False(t, LeadRecord{Email: "a@b.com"}.IsEmpty())
}
