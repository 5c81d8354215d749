// Package usecase implements business logic orchestration for the audit
// trail: chained appends, verification, export, and clearing.
package usecase

import (
	"context"

	auditDomain "github.com/jdai-ca/atticus-privacy/internal/audit/domain"
	privacyDomain "github.com/jdai-ca/atticus-privacy/internal/privacy/domain"
)

// EntryRepository defines persistence operations for audit entries. Append
// order must be preserved; callers serialize appends per conversation.
type EntryRepository interface {
	// List returns the conversation's entries in stored order. An unknown
	// conversation yields an empty list, not an error.
	List(ctx context.Context, conversationID string) ([]*auditDomain.AuditEntry, error)

	// Append adds one entry to the conversation's stored list.
	Append(ctx context.Context, conversationID string, entry *auditDomain.AuditEntry) error

	// DeleteConversation removes the conversation's entry list.
	DeleteConversation(ctx context.Context, conversationID string) error

	// ListConversationIDs returns every conversation with stored entries.
	ListConversationIDs(ctx context.Context) ([]string, error)
}

// ChainStateRepository defines persistence for the per-conversation chain
// head. Returns ErrNotFound for a conversation with no entries yet.
type ChainStateRepository interface {
	Get(ctx context.Context, conversationID string) (*auditDomain.ChainState, error)
	Set(ctx context.Context, conversationID string, state *auditDomain.ChainState) error
	Delete(ctx context.Context, conversationID string) error
}

// LogEventInput carries everything needed to append one audit entry.
// ConversationID and MessageID are optional; events without a conversation
// are chained under a reserved global conversation.
type LogEventInput struct {
	EventType      auditDomain.EventType
	Severity       auditDomain.Severity
	Actor          auditDomain.Actor
	Action         string
	Details        map[string]any
	ConversationID string
	MessageID      string
	Tags           []string
}

// UseCase defines the audit trail operations exposed to the rest of the
// application. LogEvent and its convenience wrappers never return an error:
// a failed append degrades into the LogResult so the user's primary action is
// never blocked by compliance logging.
type UseCase interface {
	// LogEvent appends one entry to the conversation's chain.
	LogEvent(ctx context.Context, input *LogEventInput) *auditDomain.LogResult

	// LogPIIScan records the outcome of a privacy scan and the user's
	// decision. The scanned text itself is never stored here.
	LogPIIScan(ctx context.Context, entry *privacyDomain.ScanLogEntry) *auditDomain.LogResult

	// LogAPIRequest records an outgoing provider request.
	LogAPIRequest(ctx context.Context, conversationID, messageID, provider string, details map[string]any) *auditDomain.LogResult

	// LogAPIResponse records a provider response.
	LogAPIResponse(ctx context.Context, conversationID, messageID, provider string, details map[string]any) *auditDomain.LogResult

	// LogUserDecision records a privacy decision taken outside a scan flow.
	LogUserDecision(ctx context.Context, conversationID, messageID string, decision privacyDomain.UserDecision) *auditDomain.LogResult

	// GetConversationAuditLog loads the conversation's entries sorted by
	// timestamp, verifying chain integrity on the way. Integrity failures
	// are logged, never returned as errors.
	GetConversationAuditLog(ctx context.Context, conversationID string) ([]*auditDomain.AuditEntry, error)

	// VerifyConversation re-validates the conversation's stored chain and
	// returns the full diagnostic report.
	VerifyConversation(ctx context.Context, conversationID string) (*auditDomain.IntegrityReport, error)

	// VerifyChainIntegrity validates an already-loaded entry list.
	VerifyChainIntegrity(ctx context.Context, entries []*auditDomain.AuditEntry) *auditDomain.IntegrityReport

	// ExportForEDiscovery flattens one conversation's entries (or every
	// conversation's, when conversationID is empty) into line-delimited
	// self-describing records for legal production.
	ExportForEDiscovery(ctx context.Context, conversationID string) (string, error)

	// ClearAuditLog appends a final entry recording the reason, then deletes
	// the conversation's entries and chain state.
	ClearAuditLog(ctx context.Context, conversationID, reason string) error
}
