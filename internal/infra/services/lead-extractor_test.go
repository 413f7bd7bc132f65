package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-connector/internal/domain/entities"
)

func utterances(pairs ...[2]string) []entities.Utterance {
	out := make([]entities.Utterance, 0, len(pairs))
	for i, p := range pairs {
		out = append(out, entities.Utterance{
			Speaker:  entities.Speaker(p[0]),
			Text:     p[1],
			Sequence: i,
		})
	}
	return out
}

func TestExtractLeadNameRequiresHint(t *testing.T) {
	withHint := utterances(
		[2]string{"assistant", "Who am I speaking with?"},
		[2]string{"caller", "I'm John Smith."},
	)
	lead := ExtractLead(withHint)
	assert.Equal(t, "John", lead.FirstName)
	assert.Equal(t, "Smith", lead.LastName)

	withoutHint := utterances(
		[2]string{"assistant", "How can I help you today?"},
		[2]string{"caller", "I'm John Smith."},
	)
	lead = ExtractLead(withoutHint)
	assert.Empty(t, lead.FirstName)
	assert.Empty(t, lead.LastName)
}

func TestExtractLeadNameHintVariants(t *testing.T) {
	lead := ExtractLead(utterances(
		[2]string{"assistant", "May I ask who is calling?"},
		[2]string{"caller", "My name is JANE DOE"},
	))
	assert.Equal(t, "Jane", lead.FirstName)
	assert.Equal(t, "Doe", lead.LastName)

	lead = ExtractLead(utterances(
		[2]string{"assistant", "What's your name?"},
		[2]string{"caller", "It's Bob."},
	))
	assert.Equal(t, "Bob", lead.FirstName)
	assert.Empty(t, lead.LastName)
}

func TestExtractLeadNameRejectsSingleLetterToken(t *testing.T) {
	lead := ExtractLead(utterances(
		[2]string{"assistant", "Who am I speaking with?"},
		[2]string{"caller", "I'm X."},
	))
	assert.Empty(t, lead.FirstName)
}

func TestExtractLeadCompanyRegex(t *testing.T) {
	lead := ExtractLead(utterances(
		[2]string{"caller", "I work for Acme Corp and I need help"},
	))
	assert.Equal(t, "Acme Corp", lead.Company)
}

func TestExtractLeadCompanyRejectsLongCapture(t *testing.T) {
	lead := ExtractLead(utterances(
		[2]string{"caller", "I work for " + strings.Repeat("A", 60)},
	))
	assert.Empty(t, lead.Company)
}

func TestExtractLeadCompanyFallbackFromHint(t *testing.T) {
	lead := ExtractLead(utterances(
		[2]string{"assistant", "What company are you with?"},
		[2]string{"caller", "Acme Rockets"},
	))
	assert.Equal(t, "Acme Rockets", lead.Company)

	refusal := ExtractLead(utterances(
		[2]string{"assistant", "Do you have a business name?"},
		[2]string{"caller", "no I don't"},
	))
	assert.Empty(t, refusal.Company)
}

func TestExtractLeadPhone(t *testing.T) {
	lead := ExtractLead(utterances(
		[2]string{"caller", "call me at 555-123-4567"},
	))
	assert.Equal(t, "5551234567", lead.Phone)

	lead = ExtractLead(utterances(
		[2]string{"caller", "my number is +1 (555) 123-4567 thanks"},
	))
	assert.Equal(t, "+15551234567", lead.Phone)
}

func TestExtractLeadEmailCaseFolded(t *testing.T) {
	lead := ExtractLead(utterances(
		[2]string{"caller", "reach me at a.b@example.com"},
	))
	assert.Equal(t, "a.b@example.com", lead.Email)

	lead = ExtractLead(utterances(
		[2]string{"caller", "it is A.B@Example.COM"},
	))
	assert.Equal(t, "a.b@example.com", lead.Email)
}

func TestExtractLeadFirstQualifyingMatchWins(t *testing.T) {
	lead := ExtractLead(utterances(
		[2]string{"caller", "I work for Acme Corp."},
		[2]string{"caller", "I work for Globex Inc."},
	))
	assert.Equal(t, "Acme Corp", lead.Company)
}

func TestExtractLeadIgnoresAssistantUtterances(t *testing.T) {
	lead := ExtractLead(utterances(
		[2]string{"assistant", "You can reach us at 555-123-4567 or sales@acme.com"},
	))
	assert.Empty(t, lead.Phone)
	assert.Empty(t, lead.Email)
}

func TestExtractLeadIsPureAndDeterministic(t *testing.T) {
	input := utterances(
		[2]string{"assistant", "Who am I speaking with?"},
		[2]string{"caller", "This is Jane Doe."},
		[2]string{"assistant", "Thanks Jane, how can we reach you?"},
		[2]string{"caller", "call me at 555-123-4567"},
	)
	snapshot := make([]entities.Utterance, len(input))
	copy(snapshot, input)

	first := ExtractLead(input)
	second := ExtractLead(input)

	require.Equal(t, first, second)
	assert.Equal(t, snapshot, input)
	assert.Equal(t, "Jane", first.FirstName)
	assert.Equal(t, "Doe", first.LastName)
	assert.Equal(t, "5551234567", first.Phone)
}

func TestExtractLeadEmptyTranscript(t *testing.T) {
	lead := ExtractLead(nil)
	assert.True(t, lead.IsEmpty())
}
