package services

import (
	"regexp"
	"strings"
	"unicode"

	"voice-connector/internal/domain/entities"
)

var (
	companyPattern = regexp.MustCompile(`(?i)(?:i'm with|i am with|from|at|work for)\s+(.+?)\s*(?:\.|,|\band\b|$)`)
	phonePattern   = regexp.MustCompile(`\+?1?[\s.-]?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`)
	emailPattern   = regexp.MustCompile(`(?i)[\w.-]+@[\w.-]+\.\w+`)
	introPattern   = regexp.MustCompile(`(?i)^(?:my name is |i'm |this is |i am |it's )`)
	punctPattern   = regexp.MustCompile(`[.,!?]`)
	nonPhoneRune   = regexp.MustCompile(`[^\d+]`)
)

// nameHintPhrases gate name extraction: a caller utterance is only read as a
// name when the assistant just asked for one.
var nameHintPhrases = []string{"speaking with", "your name", "may i ask who"}

// ExtractLead runs a single linear pass over the transcript and mines
// best-effort contact fields from caller utterances. For each field the first
// qualifying match wins; later matches are ignored. The input never gets
// mutated and identical input always yields identical output.
func ExtractLead(utterances []entities.Utterance) entities.LeadRecord {
	var lead entities.LeadRecord

	for i, utterance := range utterances {
		if utterance.Speaker != entities.SpeakerCaller {
			continue
		}

		text := strings.TrimSpace(utterance.Text)
		prevAssistant := ""
		if i > 0 && utterances[i-1].Speaker == entities.SpeakerAssistant {
			prevAssistant = strings.ToLower(utterances[i-1].Text)
		}

		if lead.FirstName == "" && containsAny(prevAssistant, nameHintPhrases) {
			first, last := extractName(text)
			if first != "" {
				lead.FirstName = first
				lead.LastName = last
			}
		}

		if lead.Company == "" {
			if company := extractCompany(text); company != "" {
				lead.Company = company
			}
		}
		if lead.Company == "" {
			if company := companyFromHint(prevAssistant, text); company != "" {
				lead.Company = company
			}
		}

		if lead.Phone == "" {
			if match := phonePattern.FindString(text); match != "" {
				lead.Phone = nonPhoneRune.ReplaceAllString(match, "")
			}
		}

		if lead.Email == "" {
			if match := emailPattern.FindString(text); match != "" {
				lead.Email = strings.ToLower(match)
			}
		}
	}

	return lead
}

func extractName(text string) (string, string) {
	cleaned := introPattern.ReplaceAllString(text, "")
	cleaned = punctPattern.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	parts := strings.Fields(cleaned)
	if len(parts) == 0 || len(parts[0]) <= 1 {
		return "", ""
	}

	first := capitalize(parts[0])
	if len(parts) == 1 {
		return first, ""
	}

	rest := make([]string, 0, len(parts)-1)
	for _, part := range parts[1:] {
		rest = append(rest, capitalize(part))
	}
	return first, strings.Join(rest, " ")
}

func extractCompany(text string) string {
	match := companyPattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	company := strings.TrimSpace(match[1])
	if len(company) <= 1 || len(company) >= 50 {
		return ""
	}
	return company
}

// companyFromHint falls back to the whole caller reply when the assistant
// just asked about the company and the reply is not a refusal.
func companyFromHint(prevAssistant, text string) string {
	if !strings.Contains(prevAssistant, "company") && !strings.Contains(prevAssistant, "business") {
		return ""
	}
	if strings.Contains(strings.ToLower(text), "no ") {
		return ""
	}
	cleaned := strings.TrimSpace(punctPattern.ReplaceAllString(text, ""))
	if len(cleaned) <= 1 || len(cleaned) >= 50 {
		return ""
	}
	return cleaned
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

func capitalize(token string) string {
	if token == "" {
		return token
	}
	runes := []rune(strings.ToLower(token))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
