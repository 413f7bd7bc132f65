package dto

import "voice-connector/internal/domain/entities"

// AgentConfigResponse is the body of the agent-config collaborator response.
type AgentConfigResponse struct {
	Agent         *AgentPayload `json:"agent"`
	KnowledgeBase string        `json:"knowledge_base,omitempty"`
}

type AgentPayload struct {
	AgentName     string `json:"agent_name"`
	VoiceID       string `json:"voice_id"`
	SystemPrompt  string `json:"system_prompt"`
	VoiceGreeting string `json:"voice_greeting"`
}

// SaveTranscriptRequest is the body posted to the save-transcript
// collaborator when a call closes.
type SaveTranscriptRequest struct {
	Key        string              `json:"key"`
	CallSid    string              `json:"call_sid"`
	Transcript string              `json:"transcript"`
	LeadData   entities.LeadRecord `json:"lead_data"`
}
