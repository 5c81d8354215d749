package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	auditUseCase "github.com/jdai-ca/atticus-privacy/internal/audit/usecase"
)

// RunClearAuditLog deletes a conversation's audit trail. A final entry
// recording the reason is appended before anything is deleted; if that entry
// cannot be written the clear is refused.
func RunClearAuditLog(
	ctx context.Context,
	useCase auditUseCase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	conversationID string,
	reason string,
) error {
	logger.Info("clearing audit log",
		slog.String("conversation_id", conversationID),
		slog.String("reason", reason),
	)

	if err := useCase.ClearAuditLog(ctx, conversationID, reason); err != nil {
		return fmt.Errorf("failed to clear audit log: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Audit log cleared for conversation %s.\n", conversationID)
	return nil
}
