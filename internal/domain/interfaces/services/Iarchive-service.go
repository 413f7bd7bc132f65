package Iservices

import (
	"context"

	"voice-connector/internal/domain/entities"
)

// IArchiveService stores completed call records locally, in addition to the
// save-transcript collaborator. Implementations may be absent entirely when
// archiving is disabled.
type IArchiveService interface {
	ArchiveCall(ctx context.Context, record entities.CallRecord) error
}
