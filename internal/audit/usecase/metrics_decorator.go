package usecase

import (
	"context"
	"time"

	auditDomain "github.com/jdai-ca/atticus-privacy/internal/audit/domain"
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

// logResultStatus maps a LogResult onto a metric status label. Degraded
// appends are a distinct status so silent audit loss shows up on dashboards.
func logResultStatus(result *auditDomain.LogResult) string {
	if result.Degraded {
		return "degraded"
	}
	return "success"
}

func (u *useCaseWithMetrics) recordLog(ctx context.Context, operation string, start time.Time, result *auditDomain.LogResult) {
	status := logResultStatus(result)
	u.metrics.RecordOperation(ctx, "audit", operation, status)
	u.metrics.RecordDuration(ctx, "audit", operation, time.Since(start), status)
}

func (u *useCaseWithMetrics) recordErr(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	u.metrics.RecordOperation(ctx, "audit", operation, status)
	u.metrics.RecordDuration(ctx, "audit", operation, time.Since(start), status)
}

// LogEvent records metrics for generic audit appends.
func (u *useCaseWithMetrics) LogEvent(ctx context.Context, input *LogEventInput) *auditDomain.LogResult {
	start := time.Now()
	result := u.next.LogEvent(ctx, input)
	u.recordLog(ctx, "log_event", start, result)
	return result
}

// LogPIIScan records metrics for scan outcome appends.
func (u *useCaseWithMetrics) LogPIIScan(ctx context.Context, entry *privacyDomain.ScanLogEntry) *auditDomain.LogResult {
	start := time.Now()
	result := u.next.LogPIIScan(ctx, entry)
	u.recordLog(ctx, "log_pii_scan", start, result)
	return result
}

// LogAPIRequest records metrics for provider request appends.
func (u *useCaseWithMetrics) LogAPIRequest(
	ctx context.Context,
	conversationID, messageID, provider string,
	details map[string]any,
) *auditDomain.LogResult {
	start := time.Now()
	result := u.next.LogAPIRequest(ctx, conversationID, messageID, provider, details)
	u.recordLog(ctx, "log_api_request", start, result)
	return result
}

// LogAPIResponse records metrics for provider response appends.
func (u *useCaseWithMetrics) LogAPIResponse(
	ctx context.Context,
	conversationID, messageID, provider string,
	details map[string]any,
) *auditDomain.LogResult {
	start := time.Now()
	result := u.next.LogAPIResponse(ctx, conversationID, messageID, provider, details)
	u.recordLog(ctx, "log_api_response", start, result)
	return result
}

// LogUserDecision records metrics for user decision appends.
func (u *useCaseWithMetrics) LogUserDecision(
	ctx context.Context,
	conversationID, messageID string,
	decision privacyDomain.UserDecision,
) *auditDomain.LogResult {
	start := time.Now()
	result := u.next.LogUserDecision(ctx, conversationID, messageID, decision)
	u.recordLog(ctx, "log_user_decision", start, result)
	return result
}

// GetConversationAuditLog records metrics for audit log reads.
func (u *useCaseWithMetrics) GetConversationAuditLog(
	ctx context.Context,
	conversationID string,
) ([]*auditDomain.AuditEntry, error) {
	start := time.Now()
	entries, err := u.next.GetConversationAuditLog(ctx, conversationID)
	u.recordErr(ctx, "get_audit_log", start, err)
	return entries, err
}

// VerifyConversation records metrics for stored chain verification.
func (u *useCaseWithMetrics) VerifyConversation(
	ctx context.Context,
	conversationID string,
) (*auditDomain.IntegrityReport, error) {
	start := time.Now()
	report, err := u.next.VerifyConversation(ctx, conversationID)
	u.recordErr(ctx, "verify_conversation", start, err)
	return report, err
}

// VerifyChainIntegrity records metrics for in-memory chain verification.
func (u *useCaseWithMetrics) VerifyChainIntegrity(
	ctx context.Context,
	entries []*auditDomain.AuditEntry,
) *auditDomain.IntegrityReport {
	start := time.Now()
	report := u.next.VerifyChainIntegrity(ctx, entries)

	status := "success"
	if !report.Valid {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "audit", "verify_chain", status)
	u.metrics.RecordDuration(ctx, "audit", "verify_chain", time.Since(start), status)

	return report
}

// ExportForEDiscovery records metrics for e-discovery exports.
func (u *useCaseWithMetrics) ExportForEDiscovery(ctx context.Context, conversationID string) (string, error) {
	start := time.Now()
	export, err := u.next.ExportForEDiscovery(ctx, conversationID)
	u.recordErr(ctx, "export_ediscovery", start, err)
	return export, err
}

// ClearAuditLog records metrics for audit log clearing.
func (u *useCaseWithMetrics) ClearAuditLog(ctx context.Context, conversationID, reason string) error {
	start := time.Now()
	err := u.next.ClearAuditLog(ctx, conversationID, reason)
	u.recordErr(ctx, "clear_audit_log", start, err)
	return err
}
