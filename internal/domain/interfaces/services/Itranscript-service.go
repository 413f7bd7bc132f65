package Iservices

import (
	"context"

	"voice-connector/internal/domain/entities"
)

type ITranscriptService interface {
	SaveTranscript(ctx context.Context, callSid string, transcript string, lead entities.LeadRecord) error
}
