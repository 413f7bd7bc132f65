package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"voice-connector/internal/config"
	"voice-connector/internal/domain/dto"
	"voice-connector/internal/domain/entities"
	"voice-connector/internal/infra/logger"
)

// AgentConfigService fetches agent configuration from the collaborator. A
// non-success status or a missing agent block is treated as "agent not
// found"; no retries are performed.
type AgentConfigService struct {
	Logger     *logger.Logger
	BaseURL    string
	APIKey     string
	HttpClient *http.Client
}

func NewAgentConfigService(cfg config.Config, log *logger.Logger, httpClient *http.Client) *AgentConfigService {
	return &AgentConfigService{
		Logger:     log,
		BaseURL:    cfg.APIBaseURL,
		APIKey:     cfg.VoiceAPIKey,
		HttpClient: httpClient,
	}
}

func (s *AgentConfigService) FetchAgentConfig(ctx context.Context, agentID string) (entities.AgentConfig, error) {
	query := url.Values{}
	query.Set("agent_id", agentID)
	query.Set("key", s.APIKey)
	requestURL := fmt.Sprintf("%s/agent-config?%s", s.BaseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		s.Logger.Error(fmt.Sprintf("Failed to create HTTP request %v", err))
		return entities.AgentConfig{}, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := s.HttpClient.Do(req)
	if err != nil {
		s.Logger.Error(fmt.Sprintf("Agent config request failed %v", err))
		return entities.AgentConfig{}, fmt.Errorf("agent config request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		s.Logger.Error(fmt.Sprintf("Agent config unexpected HTTP status %s for agent %s", res.Status, agentID))
		return entities.AgentConfig{}, fmt.Errorf("agent not found: unexpected HTTP status %s", res.Status)
	}

	var body dto.AgentConfigResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		s.Logger.Error(fmt.Sprintf("Failed to decode agent config response %v", err))
		return entities.AgentConfig{}, fmt.Errorf("failed to decode agent config response: %w", err)
	}

	if body.Agent == nil {
		return entities.AgentConfig{}, fmt.Errorf("agent not found: empty agent block for %s", agentID)
	}

	return entities.AgentConfig{
		AgentName:     body.Agent.AgentName,
		VoiceID:       body.Agent.VoiceID,
		SystemPrompt:  body.Agent.SystemPrompt,
		VoiceGreeting: body.Agent.VoiceGreeting,
		KnowledgeBase: body.KnowledgeBase,
	}, nil
}
