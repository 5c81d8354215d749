package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/jdai-ca/atticus-privacy/internal/errors"
	privacyDomain "github.com/jdai-ca/atticus-privacy/internal/privacy/domain"
	privacyService "github.com/jdai-ca/atticus-privacy/internal/privacy/service"
)

// privacyUseCase implements UseCase. The scanner is pure; the orchestration
// here adds persistence and the audit mirror.
type privacyUseCase struct {
	scanner       *privacyService.Scanner
	jurisdictions []privacyDomain.Jurisdiction
	scanLogRepo   ScanLogRepository
	auditRecorder AuditRecorder
	locks         *conversationLocks
	logger        *slog.Logger
}

// NewPrivacyUseCase creates a new UseCase with the provided dependencies.
func NewPrivacyUseCase(
	scanner *privacyService.Scanner,
	jurisdictions []privacyDomain.Jurisdiction,
	scanLogRepo ScanLogRepository,
	auditRecorder AuditRecorder,
	logger *slog.Logger,
) UseCase {
	return &privacyUseCase{
		scanner:       scanner,
		jurisdictions: jurisdictions,
		scanLogRepo:   scanLogRepo,
		auditRecorder: auditRecorder,
		locks:         newConversationLocks(),
		logger:        logger,
	}
}

// Scan runs the detection registry against text.
func (p *privacyUseCase) Scan(ctx context.Context, text string) (*privacyDomain.ScanResult, error) {
	if text == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "text is required")
	}
	return p.scanner.Scan(text, p.jurisdictions), nil
}

// Anonymize replaces every finding's matched span with its redacted form.
func (p *privacyUseCase) Anonymize(ctx context.Context, text string, result *privacyDomain.ScanResult) (string, error) {
	if result == nil {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "scan result is required")
	}
	return privacyService.Anonymize(text, result), nil
}

// RecordDecision persists the scan outcome with the user's decision, then
// mirrors it into the audit trail. A degraded audit append is logged and
// surfaced on the returned entry's conversation flow, never as an error:
// the user's send proceeds regardless of compliance bookkeeping.
func (p *privacyUseCase) RecordDecision(ctx context.Context, input *RecordDecisionInput) (*privacyDomain.ScanLogEntry, error) {
	if input == nil || input.ScanResult == nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "scan result is required")
	}
	if input.Decision == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "decision is required")
	}

	entry := &privacyDomain.ScanLogEntry{
		ID:                  uuid.Must(uuid.NewV7()),
		Timestamp:           time.Now().UTC(),
		ConversationID:      input.ConversationID,
		MessageID:           input.MessageID,
		ScanResult:          input.ScanResult,
		UserDecision:        input.Decision,
		TextPreview:         privacyDomain.Preview(input.Text),
		ActiveJurisdictions: p.jurisdictions,
	}

	// The repository's append is read-modify-write; serialize it per
	// conversation so concurrent decisions cannot drop each other's entries.
	unlock := p.locks.acquire(input.ConversationID)
	err := p.scanLogRepo.Append(ctx, input.ConversationID, entry)
	unlock()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to store scan log entry")
	}

	result := p.auditRecorder.LogPIIScan(ctx, entry)
	if result.Degraded {
		p.logger.Error("scan decision recorded without audit mirror",
			slog.String("conversation_id", input.ConversationID),
			slog.String("scan_log_id", entry.ID.String()),
			slog.String("error", result.Err.Error()),
		)
	}

	return entry, nil
}

// GetScanLog returns the conversation's recorded scan decisions.
func (p *privacyUseCase) GetScanLog(ctx context.Context, conversationID string) ([]*privacyDomain.ScanLogEntry, error) {
	entries, err := p.scanLogRepo.List(ctx, conversationID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load scan log")
	}
	return entries, nil
}
