// Package usecase implements business logic orchestration for privacy
// scanning: detection, anonymization, and decision recording.
package usecase

import (
	"context"

	auditDomain "github.com/jdai-ca/atticus-privacy/internal/audit/domain"
	privacyDomain "github.com/jdai-ca/atticus-privacy/internal/privacy/domain"
)

// ScanLogRepository defines persistence for per-conversation scan logs.
type ScanLogRepository interface {
	// List returns the conversation's scan log entries in stored order. An
	// unknown conversation yields an empty list, not an error.
	List(ctx context.Context, conversationID string) ([]*privacyDomain.ScanLogEntry, error)

	// Append adds one entry to the conversation's stored scan log.
	Append(ctx context.Context, conversationID string, entry *privacyDomain.ScanLogEntry) error

	// DeleteConversation removes the conversation's scan log.
	DeleteConversation(ctx context.Context, conversationID string) error
}

// AuditRecorder mirrors scan outcomes into the tamper-evident audit trail.
// Implementations never return an error; failures degrade into the result.
type AuditRecorder interface {
	LogPIIScan(ctx context.Context, entry *privacyDomain.ScanLogEntry) *auditDomain.LogResult
}

// RecordDecisionInput carries the outcome of one scan-and-decide flow.
type RecordDecisionInput struct {
	ConversationID string
	MessageID      string
	Text           string
	ScanResult     *privacyDomain.ScanResult
	Decision       privacyDomain.UserDecision
}

// UseCase defines the privacy operations exposed to the rest of the
// application.
type UseCase interface {
	// Scan runs the detection registry against text under the configured
	// jurisdictions and sensitivity threshold.
	Scan(ctx context.Context, text string) (*privacyDomain.ScanResult, error)

	// Anonymize replaces every finding's matched span with its redacted form.
	Anonymize(ctx context.Context, text string, result *privacyDomain.ScanResult) (string, error)

	// RecordDecision persists the user's decision about a scan outcome and
	// mirrors it into the audit trail.
	RecordDecision(ctx context.Context, input *RecordDecisionInput) (*privacyDomain.ScanLogEntry, error)

	// GetScanLog returns the conversation's recorded scan decisions.
	GetScanLog(ctx context.Context, conversationID string) ([]*privacyDomain.ScanLogEntry, error)
}
