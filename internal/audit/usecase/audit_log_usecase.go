package usecase

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	auditDomain "github.com/jdai-ca/atticus-privacy/internal/audit/domain"
	auditService "github.com/jdai-ca/atticus-privacy/internal/audit/service"
	apperrors "github.com/jdai-ca/atticus-privacy/internal/errors"
	privacyDomain "github.com/jdai-ca/atticus-privacy/internal/privacy/domain"
)

// globalConversationKey chains events that have no conversation of their own.
const globalConversationKey = "_global"

// auditLogUseCase implements UseCase. Appends for one conversation are
// serialized: the chain state read, the entry append, and the chain state
// write happen as one unit under the conversation's lock.
type auditLogUseCase struct {
	entryRepo EntryRepository
	chainRepo ChainStateRepository
	signer    auditService.Signer
	verifier  *auditService.ChainVerifier
	logger    *slog.Logger
	locks     *conversationLocks
}

// NewAuditLogUseCase creates a new UseCase with the provided dependencies.
func NewAuditLogUseCase(
	entryRepo EntryRepository,
	chainRepo ChainStateRepository,
	signer auditService.Signer,
	verifier *auditService.ChainVerifier,
	logger *slog.Logger,
) UseCase {
	return &auditLogUseCase{
		entryRepo: entryRepo,
		chainRepo: chainRepo,
		signer:    signer,
		verifier:  verifier,
		logger:    logger,
		locks:     newConversationLocks(),
	}
}

func validateInput(input *LogEventInput) error {
	return validation.ValidateStruct(input,
		validation.Field(&input.EventType, validation.Required),
		validation.Field(&input.Severity, validation.Required, validation.In(
			auditDomain.SeverityInfo,
			auditDomain.SeverityWarning,
			auditDomain.SeverityError,
			auditDomain.SeverityCritical,
		)),
		validation.Field(&input.Actor, validation.Required, validation.In(
			auditDomain.ActorUser,
			auditDomain.ActorSystem,
			auditDomain.ActorProvider,
		)),
		validation.Field(&input.Action, validation.Required),
	)
}

// LogEvent appends one entry to the conversation's chain. Every failure path
// degrades: the result carries a sentinel id and the diagnostic error, and
// the caller's primary action proceeds regardless.
func (a *auditLogUseCase) LogEvent(ctx context.Context, input *LogEventInput) *auditDomain.LogResult {
	if err := validateInput(input); err != nil {
		return a.degrade(apperrors.Wrap(apperrors.ErrInvalidInput, err.Error()), input)
	}

	chainID := input.ConversationID
	if chainID == "" {
		chainID = globalConversationKey
	}

	unlock := a.locks.acquire(chainID)
	defer unlock()

	return a.appendLocked(ctx, chainID, input)
}

// appendLocked performs the chained append. The caller must hold the
// conversation's lock: the chain state read, the entry append, and the chain
// state write are one unit.
func (a *auditLogUseCase) appendLocked(ctx context.Context, chainID string, input *LogEventInput) *auditDomain.LogResult {
	// Read the chain head; absence means this append creates entry 0.
	var sequence int64
	var previousEntryID, previousHash string
	state, err := a.chainRepo.Get(ctx, chainID)
	switch {
	case err == nil:
		sequence = state.NextSequence
		previousEntryID = state.HeadEntryID
		previousHash = state.HeadHash
	case apperrors.Is(err, apperrors.ErrNotFound):
		// empty chain
	default:
		return a.degrade(err, input)
	}

	// Sanitize before anything is hashed or stored: the trail must not
	// itself leak message bodies or credentials.
	entry := &auditDomain.AuditEntry{
		ID:              uuid.Must(uuid.NewV7()),
		Timestamp:       time.Now().UTC(),
		EventType:       input.EventType,
		Severity:        input.Severity,
		ConversationID:  input.ConversationID,
		MessageID:       input.MessageID,
		Actor:           input.Actor,
		Action:          input.Action,
		Details:         auditService.SanitizeDetails(input.Details),
		SequenceNumber:  sequence,
		PreviousEntryID: previousEntryID,
		PreviousHash:    previousHash,
		Tags:            input.Tags,
	}

	hash, err := auditService.ComputeContentHash(entry)
	if err != nil {
		return a.degrade(err, input)
	}
	entry.ContentHash = hash

	// Signing failure degrades to an unsigned entry, never a blocked append.
	signed := true
	signature, err := a.signer.Sign(ctx, hash)
	if err != nil {
		signed = false
		a.logger.Warn("audit entry will be stored unsigned",
			slog.String("conversation_id", chainID),
			slog.String("error", err.Error()),
		)
	} else {
		entry.Signature = signature
	}

	if err := a.entryRepo.Append(ctx, chainID, entry); err != nil {
		return a.degrade(err, input)
	}

	newState := &auditDomain.ChainState{
		HeadEntryID:  entry.ID.String(),
		HeadHash:     entry.ContentHash,
		NextSequence: sequence + 1,
	}
	if err := a.chainRepo.Set(ctx, chainID, newState); err != nil {
		// The entry is stored but the head was not advanced; the next append
		// would fork the chain. Surface loudly and degrade.
		a.logger.Error("chain state write failed after append",
			slog.String("conversation_id", chainID),
			slog.String("entry_id", entry.ID.String()),
			slog.String("error", err.Error()),
		)
		return auditDomain.DegradedLogResult(err)
	}

	return &auditDomain.LogResult{EntryID: entry.ID, Signed: signed}
}

func (a *auditLogUseCase) degrade(err error, input *LogEventInput) *auditDomain.LogResult {
	a.logger.Error("audit append degraded",
		slog.String("event_type", string(input.EventType)),
		slog.String("conversation_id", input.ConversationID),
		slog.String("error", err.Error()),
	)
	return auditDomain.DegradedLogResult(err)
}

// LogPIIScan records a scan outcome and decision. Only aggregate facts reach
// the details map; the scanned text never does.
func (a *auditLogUseCase) LogPIIScan(ctx context.Context, entry *privacyDomain.ScanLogEntry) *auditDomain.LogResult {
	severity := auditDomain.SeverityInfo
	if entry.ScanResult != nil && entry.ScanResult.AggregateRisk >= privacyDomain.RiskHigh {
		severity = auditDomain.SeverityWarning
	}

	details := map[string]any{
		"user_decision": string(entry.UserDecision),
		"scan_log_id":   entry.ID.String(),
	}
	if entry.ScanResult != nil {
		details["finding_count"] = len(entry.ScanResult.Findings)
		details["aggregate_risk"] = entry.ScanResult.AggregateRisk.String()
		details["summary"] = entry.ScanResult.Summary
		categories := make([]string, len(entry.ScanResult.DistinctCategories))
		for i, c := range entry.ScanResult.DistinctCategories {
			categories[i] = string(c)
		}
		details["categories"] = categories
	}
	if len(entry.ActiveJurisdictions) > 0 {
		regions := make([]string, len(entry.ActiveJurisdictions))
		for i, j := range entry.ActiveJurisdictions {
			regions[i] = string(j)
		}
		details["jurisdictions"] = regions
	}

	return a.LogEvent(ctx, &LogEventInput{
		EventType:      auditDomain.EventPIIScan,
		Severity:       severity,
		Actor:          auditDomain.ActorUser,
		Action:         "scanned outgoing message for sensitive information",
		Details:        details,
		ConversationID: entry.ConversationID,
		MessageID:      entry.MessageID,
		Tags:           []string{"privacy", "pii-scan"},
	})
}

// LogAPIRequest records an outgoing provider request.
func (a *auditLogUseCase) LogAPIRequest(
	ctx context.Context,
	conversationID, messageID, provider string,
	details map[string]any,
) *auditDomain.LogResult {
	merged := map[string]any{"provider": provider}
	for k, v := range details {
		merged[k] = v
	}
	return a.LogEvent(ctx, &LogEventInput{
		EventType:      auditDomain.EventAPIRequest,
		Severity:       auditDomain.SeverityInfo,
		Actor:          auditDomain.ActorSystem,
		Action:         "sent request to provider",
		Details:        merged,
		ConversationID: conversationID,
		MessageID:      messageID,
		Tags:           []string{"provider"},
	})
}

// LogAPIResponse records a provider response.
func (a *auditLogUseCase) LogAPIResponse(
	ctx context.Context,
	conversationID, messageID, provider string,
	details map[string]any,
) *auditDomain.LogResult {
	merged := map[string]any{"provider": provider}
	for k, v := range details {
		merged[k] = v
	}
	return a.LogEvent(ctx, &LogEventInput{
		EventType:      auditDomain.EventAPIResponse,
		Severity:       auditDomain.SeverityInfo,
		Actor:          auditDomain.ActorProvider,
		Action:         "received response from provider",
		Details:        merged,
		ConversationID: conversationID,
		MessageID:      messageID,
		Tags:           []string{"provider"},
	})
}

// LogUserDecision records a privacy decision taken outside a scan flow.
func (a *auditLogUseCase) LogUserDecision(
	ctx context.Context,
	conversationID, messageID string,
	decision privacyDomain.UserDecision,
) *auditDomain.LogResult {
	return a.LogEvent(ctx, &LogEventInput{
		EventType:      auditDomain.EventUserDecision,
		Severity:       auditDomain.SeverityInfo,
		Actor:          auditDomain.ActorUser,
		Action:         "recorded privacy decision",
		Details:        map[string]any{"user_decision": string(decision)},
		ConversationID: conversationID,
		MessageID:      messageID,
		Tags:           []string{"privacy"},
	})
}

// GetConversationAuditLog loads entries sorted by timestamp. A chain that
// fails verification is logged as a warning and still returned: surfacing
// the record matters more than hiding a tampered one, and the verifier's
// report is available separately via VerifyConversation.
func (a *auditLogUseCase) GetConversationAuditLog(ctx context.Context, conversationID string) ([]*auditDomain.AuditEntry, error) {
	entries, err := a.entryRepo.List(ctx, conversationID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load conversation audit log")
	}

	report := a.verifier.Verify(ctx, entries)
	if !report.Valid {
		a.logger.Warn("audit chain failed integrity verification",
			slog.String("conversation_id", conversationID),
			slog.Int("error_count", len(report.Errors)),
		)
	}

	sorted := make([]*auditDomain.AuditEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted, nil
}

// VerifyConversation re-validates the conversation's stored chain.
func (a *auditLogUseCase) VerifyConversation(ctx context.Context, conversationID string) (*auditDomain.IntegrityReport, error) {
	entries, err := a.entryRepo.List(ctx, conversationID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load conversation audit log")
	}
	return a.verifier.Verify(ctx, entries), nil
}

// VerifyChainIntegrity validates an already-loaded entry list.
func (a *auditLogUseCase) VerifyChainIntegrity(ctx context.Context, entries []*auditDomain.AuditEntry) *auditDomain.IntegrityReport {
	return a.verifier.Verify(ctx, entries)
}

// ClearAuditLog first appends a final entry evidencing the clear, then
// deletes the stored entries and chain state. This is the one documented
// exception to append-only semantics. If the final entry cannot be appended
// the clear is aborted: evidence of the clearing must precede the deletion.
// The final append and both deletes run under one hold of the conversation's
// lock so a concurrent append cannot land after the cleared entry and vanish
// without evidence of its own.
func (a *auditLogUseCase) ClearAuditLog(ctx context.Context, conversationID, reason string) error {
	if conversationID == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "conversation id is required")
	}

	input := &LogEventInput{
		EventType:      auditDomain.EventAuditLogCleared,
		Severity:       auditDomain.SeverityWarning,
		Actor:          auditDomain.ActorUser,
		Action:         "cleared conversation audit log",
		Details:        map[string]any{"reason": reason},
		ConversationID: conversationID,
		Tags:           []string{"audit-admin"},
	}
	if err := validateInput(input); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
	}

	unlock := a.locks.acquire(conversationID)
	defer unlock()

	result := a.appendLocked(ctx, conversationID, input)
	if result.Degraded {
		return apperrors.Wrap(result.Err, "refusing to clear audit log without recording the clearing")
	}

	if err := a.entryRepo.DeleteConversation(ctx, conversationID); err != nil {
		return apperrors.Wrap(err, "failed to delete audit entries")
	}
	if err := a.chainRepo.Delete(ctx, conversationID); err != nil {
		return apperrors.Wrap(err, "failed to delete chain state")
	}

	a.logger.Info("audit log cleared",
		slog.String("conversation_id", conversationID),
		slog.String("reason", reason),
	)
	return nil
}
