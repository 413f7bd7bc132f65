package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"voice-connector/internal/config"
	"voice-connector/internal/domain/dto"
	"voice-connector/internal/domain/entities"
	"voice-connector/internal/infra/logger"
)

// TranscriptService submits the final transcript and lead record for a call.
// Failures are reported to the caller, which logs and moves on; the call has
// already ended and nothing is retried.
type TranscriptService struct {
	Logger     *logger.Logger
	BaseURL    string
	APIKey     string
	HttpClient *http.Client
}

func NewTranscriptService(cfg config.Config, log *logger.Logger, httpClient *http.Client) *TranscriptService {
	return &TranscriptService{
		Logger:     log,
		BaseURL:    cfg.APIBaseURL,
		APIKey:     cfg.VoiceAPIKey,
		HttpClient: httpClient,
	}
}

func (s *TranscriptService) SaveTranscript(ctx context.Context, callSid string, transcript string, lead entities.LeadRecord) error {
	payload := dto.SaveTranscriptRequest{
		Key:        s.APIKey,
		CallSid:    callSid,
		Transcript: transcript,
		LeadData:   lead,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		s.Logger.Error(fmt.Sprintf("Failed to marshal transcript payload %v", err))
		return fmt.Errorf("failed to marshal transcript payload: %w", err)
	}

	requestURL := fmt.Sprintf("%s/save-transcript", s.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewBuffer(payloadBytes))
	if err != nil {
		s.Logger.Error(fmt.Sprintf("Failed to create HTTP request %v", err))
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.HttpClient.Do(req)
	if err != nil {
		s.Logger.Error(fmt.Sprintf("Save transcript request failed %v", err))
		return fmt.Errorf("save transcript request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(res.Body)
		s.Logger.Error(fmt.Sprintf("Save transcript unexpected HTTP status %s response_body %s", res.Status, string(body)))
		return fmt.Errorf("unexpected HTTP status: %s", res.Status)
	}

	s.Logger.Info(fmt.Sprintf("Transcript saved for call %s", callSid))
	return nil
}
