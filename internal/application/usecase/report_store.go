package usecase

import (
	"context"
	"fmt"

	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
	"github.com/diillson/aws-carbon-emissions-go/internal/domain/repository"
)

// SaveResult describes what the report store did with a report.
type SaveResult struct {
	Key             string
	Written         bool
	IsDataAvailable bool
	Message         string
}

// ReportStore persists reports that carry data under collision-free keys.
type ReportStore struct {
	store  repository.ObjectStore
	bucket string
	dryRun bool
}

// NewReportStore creates a new report store. With dryRun set, reports are
// classified as usual but never written.
func NewReportStore(store repository.ObjectStore, bucket string, dryRun bool) *ReportStore {
	return &ReportStore{store: store, bucket: bucket, dryRun: dryRun}
}

// Save writes report under {account}/{requestID}_{start}carbon_emissions.json.
// Reports without entries are not written.
func (s *ReportStore) Save(ctx context.Context, report *entity.EmissionsReport, requestID string, skipWrite bool) (SaveResult, error) {
	if !report.IsDataAvailable() {
		return SaveResult{Message: "No new data is available"}, nil
	}

	result := SaveResult{
		Key:             entity.ObjectKey(report.AccountID, requestID, report.Timeframe.StartDate),
		IsDataAvailable: true,
	}

	if s.dryRun || skipWrite {
		result.Message = fmt.Sprintf("Skipped saving data for account %s", report.AccountID)
		return result, nil
	}

	body, err := report.Marshal()
	if err != nil {
		return SaveResult{}, fmt.Errorf("error encoding report for account %s: %w", report.AccountID, err)
	}

	if err := s.store.PutObject(ctx, s.bucket, result.Key, body); err != nil {
		return SaveResult{}, fmt.Errorf("error saving report to s3://%s/%s: %w", s.bucket, result.Key, err)
	}

	result.Written = true
	result.Message = fmt.Sprintf("Successfully saved data to S3 bucket for account %s", report.AccountID)
	return result, nil
}
