package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	auditUseCase "github.com/jdai-ca/atticus-privacy/internal/audit/usecase"
)

// RunExportEDiscovery exports audit records as line-delimited JSON, either to
// stdout or to a file. An empty conversation ID exports every conversation.
func RunExportEDiscovery(
	ctx context.Context,
	useCase auditUseCase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	conversationID string,
	outputPath string,
) error {
	export, err := useCase.ExportForEDiscovery(ctx, conversationID)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(export), 0o600); err != nil {
			return fmt.Errorf("failed to write export file: %w", err)
		}
		logger.Info("e-discovery export written",
			slog.String("path", outputPath),
		)
		return nil
	}

	_, _ = fmt.Fprint(writer, export)
	return nil
}
