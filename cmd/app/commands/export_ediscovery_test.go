package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunExportEDiscovery(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("writes-to-writer", func(t *testing.T) {
		_, auditUC := newTestUseCases(t)
		result := auditUC.LogAPIRequest(ctx, "conv-1", "msg-1", "anthropic", nil)
		require.False(t, result.Degraded)

		var out bytes.Buffer
		err := RunExportEDiscovery(ctx, auditUC, logger, &out, "conv-1", "")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"production_id":"ATT-`)
		require.Contains(t, out.String(), `"conversation_id":"conv-1"`)
	})

	t.Run("writes-to-file", func(t *testing.T) {
		_, auditUC := newTestUseCases(t)
		result := auditUC.LogAPIRequest(ctx, "conv-1", "msg-1", "anthropic", nil)
		require.False(t, result.Degraded)

		path := filepath.Join(t.TempDir(), "export.jsonl")
		var out bytes.Buffer
		err := RunExportEDiscovery(ctx, auditUC, logger, &out, "conv-1", path)

		require.NoError(t, err)
		require.Empty(t, out.String())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(data), `"production_id":"ATT-`)
	})
}
