package commands

import (
	"context"
	"encoding/json"
	"fmt"

	privacyUseCase "github.com/jdai-ca/atticus-privacy/internal/privacy/usecase"
)

// RunScanLog prints the recorded scan decisions for a conversation.
func RunScanLog(
	ctx context.Context,
	useCase privacyUseCase.UseCase,
	io IOTuple,
	conversationID string,
	format string,
) error {
	entries, err := useCase.GetScanLog(ctx, conversationID)
	if err != nil {
		return fmt.Errorf("failed to load scan log: %w", err)
	}

	if format == "json" {
		encoder := json.NewEncoder(io.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(io.Writer, "No scan decisions recorded for this conversation.")
		return nil
	}

	for _, entry := range entries {
		risk := "none"
		findings := 0
		if entry.ScanResult != nil {
			risk = entry.ScanResult.AggregateRisk.String()
			findings = len(entry.ScanResult.Findings)
		}
		_, _ = fmt.Fprintf(io.Writer, "%s  %-9s  findings=%d  risk=%s\n",
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.UserDecision,
			findings,
			risk,
		)
	}
	return nil
}
