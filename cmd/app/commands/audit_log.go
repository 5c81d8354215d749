package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	auditUseCase "github.com/jdai-ca/atticus-privacy/internal/audit/usecase"
)

// RunAuditLog prints the audit trail for a conversation.
func RunAuditLog(
	ctx context.Context,
	useCase auditUseCase.UseCase,
	io IOTuple,
	conversationID string,
	format string,
) error {
	entries, err := useCase.GetConversationAuditLog(ctx, conversationID)
	if err != nil {
		return fmt.Errorf("failed to load audit log: %w", err)
	}

	if format == "json" {
		encoder := json.NewEncoder(io.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(io.Writer, "No audit entries for this conversation.")
		return nil
	}

	for _, entry := range entries {
		signed := "signed"
		if entry.Signature == "" {
			signed = "UNSIGNED"
		}
		_, _ = fmt.Fprintf(io.Writer, "#%-4d %s  %-17s %-8s %-8s %s\n",
			entry.SequenceNumber,
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.EventType,
			entry.Severity,
			signed,
			entry.Action,
		)
		if len(entry.Tags) > 0 {
			_, _ = fmt.Fprintf(io.Writer, "      tags: %s\n", strings.Join(entry.Tags, ", "))
		}
	}
	return nil
}
