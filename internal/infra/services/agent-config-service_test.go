package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-connector/internal/config"
	"voice-connector/internal/infra/logger"
)

func newAgentConfigService(baseURL string) *AgentConfigService {
	cfg := config.Config{APIBaseURL: baseURL, VoiceAPIKey: "shared-secret"}
	log := logger.NewLogger(context.Background(), false)
	return NewAgentConfigService(cfg, log, &http.Client{})
}

func TestFetchAgentConfig(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/agent-config", r.URL.Path)
		assert.Equal(t, "agent-1", r.URL.Query().Get("agent_id"))
		assert.Equal(t, "shared-secret", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"agent": {
				"agent_name": "Support Bot",
				"voice_id": "verse",
				"system_prompt": "Be helpful.",
				"voice_greeting": "Hi there!"
			},
			"knowledge_base": "FAQ text"
		}`))
	}))
	defer server.Close()

	svc := newAgentConfigService(server.URL)
	agent, err := svc.FetchAgentConfig(context.Background(), "agent-1")
	require.NoError(t, err)
	assert.Equal(t, "Support Bot", agent.AgentName)
	assert.Equal(t, "verse", agent.VoiceID)
	assert.Equal(t, "Be helpful.", agent.SystemPrompt)
	assert.Equal(t, "Hi there!", agent.VoiceGreeting)
	assert.Equal(t, "FAQ text", agent.KnowledgeBase)
}

func TestFetchAgentConfigNotFoundStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such agent", http.StatusNotFound)
	}))
	defer server.Close()

	svc := newAgentConfigService(server.URL)
	_, err := svc.FetchAgentConfig(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "agent not found")
}

func TestFetchAgentConfigMissingAgentBlock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"agent": null}`))
	}))
	defer server.Close()

	svc := newAgentConfigService(server.URL)
	_, err := svc.FetchAgentConfig(context.Background(), "agent-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "agent not found")
}

func TestFetchAgentConfigNetworkError(t *testing.T) {
	svc := newAgentConfigService("http://127.0.0.1:1")
	_, err := svc.FetchAgentConfig(context.Background(), "agent-1")
	require.Error(t, err)
}
