package services

import (
	"context"
	"fmt"

	"voice-connector/internal/domain/entities"
	"voice-connector/internal/domain/interfaces/repository"
	repocontants "voice-connector/internal/domain/interfaces/repository/contants"
	"voice-connector/internal/infra/logger"
)

// ArchiveService writes completed call records into Mongo. It is optional
// infrastructure: when archiving is disabled the bridge simply receives a nil
// archive and skips it.
type ArchiveService struct {
	CallRecordRepository repository.Repository[entities.CallRecord]
	Logger               *logger.Logger
}

func NewArchiveService(callRecordRepository repository.Repository[entities.CallRecord], log *logger.Logger) *ArchiveService {
	return &ArchiveService{
		CallRecordRepository: callRecordRepository,
		Logger:               log,
	}
}

func (as *ArchiveService) ArchiveCall(ctx context.Context, record entities.CallRecord) error {
	_, err := as.CallRecordRepository.Create(ctx, repocontants.CALL_RECORDS_COLLECTION, record)
	if err != nil {
		as.Logger.Error(fmt.Sprintf("Failed to archive call %s: %v", record.CallSid, err))
		return err
	}
	return nil
}
