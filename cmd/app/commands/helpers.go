// Package commands contains CLI command implementations for the application.
package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	privacyDomain "github.com/jdai-ca/atticus-privacy/internal/privacy/domain"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// readText returns the command's input text: the argument when given,
// otherwise everything available on the reader.
func readText(arg string, reader io.Reader) (string, error) {
	if arg != "" {
		return arg, nil
	}

	var sb strings.Builder
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		sb.WriteString(scanner.Text())
		sb.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// parseDecision converts a decision string to privacyDomain.UserDecision.
// Returns an error if the decision string is invalid.
func parseDecision(decision string) (privacyDomain.UserDecision, error) {
	switch decision {
	case "proceed":
		return privacyDomain.DecisionProceed, nil
	case "cancel":
		return privacyDomain.DecisionCancel, nil
	case "anonymize":
		return privacyDomain.DecisionAnonymize, nil
	default:
		return "", fmt.Errorf(
			"invalid decision: %s (valid options: proceed, cancel, anonymize)",
			decision,
		)
	}
}
