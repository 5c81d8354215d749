package commands

import (
	"context"
	"fmt"

	privacyUseCase "github.com/jdai-ca/atticus-privacy/internal/privacy/usecase"
)

// RunAnonymize scans text and prints it with every detected value redacted.
func RunAnonymize(
	ctx context.Context,
	useCase privacyUseCase.UseCase,
	io IOTuple,
	textArg string,
) error {
	text, err := readText(textArg, io.Reader)
	if err != nil {
		return err
	}

	result, err := useCase.Scan(ctx, text)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	anonymized, err := useCase.Anonymize(ctx, text, result)
	if err != nil {
		return fmt.Errorf("anonymization failed: %w", err)
	}

	_, _ = fmt.Fprintln(io.Writer, anonymized)
	return nil
}
