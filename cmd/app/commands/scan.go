package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	privacyDomain "github.com/jdai-ca/atticus-privacy/internal/privacy/domain"
	privacyUseCase "github.com/jdai-ca/atticus-privacy/internal/privacy/usecase"
)

// ScanOptions carries the scan command's parameters.
type ScanOptions struct {
	Text           string
	ConversationID string
	MessageID      string
	Decision       string
	Format         string
}

// RunScan scans text for sensitive information and prints the findings.
// When a decision is given the scan outcome is persisted to the scan log and
// mirrored into the audit trail.
func RunScan(
	ctx context.Context,
	useCase privacyUseCase.UseCase,
	logger *slog.Logger,
	io IOTuple,
	opts ScanOptions,
) error {
	text, err := readText(opts.Text, io.Reader)
	if err != nil {
		return err
	}

	result, err := useCase.Scan(ctx, text)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if opts.Decision != "" {
		decision, err := parseDecision(opts.Decision)
		if err != nil {
			return err
		}
		entry, err := useCase.RecordDecision(ctx, &privacyUseCase.RecordDecisionInput{
			ConversationID: opts.ConversationID,
			MessageID:      opts.MessageID,
			Text:           text,
			ScanResult:     result,
			Decision:       decision,
		})
		if err != nil {
			return fmt.Errorf("failed to record decision: %w", err)
		}
		logger.Info("scan decision recorded",
			slog.String("scan_log_id", entry.ID.String()),
			slog.String("decision", string(decision)),
		)
	}

	if opts.Format == "json" {
		encoder := json.NewEncoder(io.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	outputScanText(io.Writer, result)
	return nil
}

// outputScanText outputs the scan result in human-readable text format.
func outputScanText(writer io.Writer, result *privacyDomain.ScanResult) {
	if !result.HasFindings {
		_, _ = fmt.Fprintln(writer, "No sensitive information detected.")
		return
	}

	_, _ = fmt.Fprintf(writer, "%s\n\n", result.Summary)
	for i, finding := range result.Findings {
		_, _ = fmt.Fprintf(writer, "%d. %s [%s]\n", i+1, finding.Category, finding.RiskLevel)
		_, _ = fmt.Fprintf(writer, "   Value:          %s\n", finding.RedactedValue)
		_, _ = fmt.Fprintf(writer, "   Position:       %d-%d\n", finding.StartIndex, finding.EndIndex)
		if finding.MatchedJurisdiction != "" {
			_, _ = fmt.Fprintf(writer, "   Jurisdiction:   %s\n", finding.MatchedJurisdiction)
		}
		_, _ = fmt.Fprintf(writer, "   Recommendation: %s\n", finding.Recommendation)
	}
	_, _ = fmt.Fprintf(writer, "\nAggregate risk: %s\n", result.AggregateRisk)
}
