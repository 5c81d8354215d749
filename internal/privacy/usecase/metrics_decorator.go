package usecase

import (
	"context"
	"time"

	"github.com/jdai-ca/atticus-privacy/internal/metrics"
	privacyDomain "github.com/jdai-ca/atticus-privacy/internal/privacy/domain"
)

// useCaseWithMetrics decorates UseCase with metrics instrumentation.
type useCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &useCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *useCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	u.metrics.RecordOperation(ctx, "privacy", operation, status)
	u.metrics.RecordDuration(ctx, "privacy", operation, time.Since(start), status)
}

// Scan records metrics for detection runs.
func (u *useCaseWithMetrics) Scan(ctx context.Context, text string) (*privacyDomain.ScanResult, error) {
	start := time.Now()
	result, err := u.next.Scan(ctx, text)
	u.record(ctx, "scan", start, err)
	return result, err
}

// Anonymize records metrics for anonymization runs.
func (u *useCaseWithMetrics) Anonymize(
	ctx context.Context,
	text string,
	result *privacyDomain.ScanResult,
) (string, error) {
	start := time.Now()
	anonymized, err := u.next.Anonymize(ctx, text, result)
	u.record(ctx, "anonymize", start, err)
	return anonymized, err
}

// RecordDecision records metrics for decision recording.
func (u *useCaseWithMetrics) RecordDecision(
	ctx context.Context,
	input *RecordDecisionInput,
) (*privacyDomain.ScanLogEntry, error) {
	start := time.Now()
	entry, err := u.next.RecordDecision(ctx, input)
	u.record(ctx, "record_decision", start, err)
	return entry, err
}

// GetScanLog records metrics for scan log reads.
func (u *useCaseWithMetrics) GetScanLog(
	ctx context.Context,
	conversationID string,
) ([]*privacyDomain.ScanLogEntry, error) {
	start := time.Now()
	entries, err := u.next.GetScanLog(ctx, conversationID)
	u.record(ctx, "get_scan_log", start, err)
	return entries, err
}
