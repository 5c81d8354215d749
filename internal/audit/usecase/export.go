package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/jdai-ca/atticus-privacy/internal/audit/domain"
	apperrors "github.com/jdai-ca/atticus-privacy/internal/errors"
)

// exportRecord is one line of an e-discovery production: the full entry plus
// the export provenance a reviewer needs to cite it.
type exportRecord struct {
	ProductionID   string                  `json:"production_id"`
	ExportedAt     time.Time               `json:"exported_at"`
	ConversationID string                  `json:"conversation_id"`
	Entry          *auditDomain.AuditEntry `json:"entry"`
}

// ExportForEDiscovery flattens stored entries into one self-describing JSON
// record per line. An empty conversationID exports every conversation. Each
// line carries the export timestamp and a synthetic production identifier
// ("ATT-<run>-<seq>") so records remain independently citable after the file
// is split apart for review.
func (a *auditLogUseCase) ExportForEDiscovery(ctx context.Context, conversationID string) (string, error) {
	var ids []string
	if conversationID != "" {
		ids = []string{conversationID}
	} else {
		var err error
		ids, err = a.entryRepo.ListConversationIDs(ctx)
		if err != nil {
			return "", apperrors.Wrap(err, "failed to enumerate conversations for export")
		}
	}

	runID := strings.ToUpper(uuid.Must(uuid.NewV7()).String()[:8])
	exportedAt := time.Now().UTC()

	var lines []string
	seq := 0
	for _, id := range ids {
		entries, err := a.entryRepo.List(ctx, id)
		if err != nil {
			return "", apperrors.Wrapf(err, "failed to load conversation %s for export", id)
		}
		for _, entry := range entries {
			seq++
			record := exportRecord{
				ProductionID:   fmt.Sprintf("ATT-%s-%06d", runID, seq),
				ExportedAt:     exportedAt,
				ConversationID: id,
				Entry:          entry,
			}
			line, err := json.Marshal(record)
			if err != nil {
				return "", apperrors.Wrap(err, "failed to encode export record")
			}
			lines = append(lines, string(line))
		}
	}

	if len(lines) == 0 {
		return "", nil
	}
	return strings.Join(lines, "\n") + "\n", nil
}
