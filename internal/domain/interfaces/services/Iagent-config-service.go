package Iservices

import (
	"context"

	"voice-connector/internal/domain/entities"
)

type IAgentConfigService interface {
	FetchAgentConfig(ctx context.Context, agentID string) (entities.AgentConfig, error)
}
