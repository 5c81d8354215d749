package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunVerifyAuditLog(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("valid-chain-text", func(t *testing.T) {
		_, auditUC := newTestUseCases(t)
		result := auditUC.LogAPIRequest(ctx, "conv-1", "msg-1", "anthropic", nil)
		require.False(t, result.Degraded)

		var out bytes.Buffer
		err := RunVerifyAuditLog(ctx, auditUC, logger, &out, "conv-1", "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Result: VALID")
	})

	t.Run("valid-chain-json", func(t *testing.T) {
		_, auditUC := newTestUseCases(t)
		result := auditUC.LogAPIRequest(ctx, "conv-1", "msg-1", "anthropic", nil)
		require.False(t, result.Degraded)

		var out bytes.Buffer
		err := RunVerifyAuditLog(ctx, auditUC, logger, &out, "conv-1", "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"valid": true`)
	})

	t.Run("empty-conversation-is-valid", func(t *testing.T) {
		_, auditUC := newTestUseCases(t)

		var out bytes.Buffer
		err := RunVerifyAuditLog(ctx, auditUC, logger, &out, "missing", "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Result: VALID")
	})
}
