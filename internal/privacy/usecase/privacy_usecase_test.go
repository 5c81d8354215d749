package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/jdai-ca/atticus-privacy/internal/audit/domain"
	apperrors "github.com/jdai-ca/atticus-privacy/internal/errors"
	"github.com/jdai-ca/atticus-privacy/internal/kv"
	privacyDomain "github.com/jdai-ca/atticus-privacy/internal/privacy/domain"
	privacyRepository "github.com/jdai-ca/atticus-privacy/internal/privacy/repository"
	privacyService "github.com/jdai-ca/atticus-privacy/internal/privacy/service"
)

// recordingAuditRecorder captures LogPIIScan calls.
type recordingAuditRecorder struct {
	mu      sync.Mutex
	entries []*privacyDomain.ScanLogEntry
	result  *auditDomain.LogResult
}

func (r *recordingAuditRecorder) LogPIIScan(ctx context.Context, entry *privacyDomain.ScanLogEntry) *auditDomain.LogResult {
	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()
	if r.result != nil {
		return r.result
	}
	return &auditDomain.LogResult{EntryID: uuid.Must(uuid.NewV7()), Signed: true}
}

func newPrivacyUseCase(t *testing.T, recorder AuditRecorder) UseCase {
	t.Helper()
	scanner := privacyService.NewScanner(privacyService.DefaultRegistry(), privacyDomain.ThresholdModerate)
	repo := privacyRepository.NewScanLogRepository(kv.NewMemStore())
	return NewPrivacyUseCase(
		scanner,
		[]privacyDomain.Jurisdiction{privacyDomain.JurisdictionUS, privacyDomain.JurisdictionCA},
		repo,
		recorder,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestPrivacyUseCase_Scan(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_DetectsCreditCard", func(t *testing.T) {
		uc := newPrivacyUseCase(t, &recordingAuditRecorder{})

		result, err := uc.Scan(ctx, "my card is 4111111111111111 thanks")

		require.NoError(t, err)
		assert.True(t, result.HasFindings)
		require.Len(t, result.Findings, 1)
		assert.Equal(t, privacyDomain.CategoryCreditCard, result.Findings[0].Category)
	})

	t.Run("Success_CleanTextHasNoFindings", func(t *testing.T) {
		uc := newPrivacyUseCase(t, &recordingAuditRecorder{})

		result, err := uc.Scan(ctx, "see you tomorrow at the office")

		require.NoError(t, err)
		assert.False(t, result.HasFindings)
		assert.Empty(t, result.Findings)
	})

	t.Run("Error_EmptyText", func(t *testing.T) {
		uc := newPrivacyUseCase(t, &recordingAuditRecorder{})

		_, err := uc.Scan(ctx, "")

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestPrivacyUseCase_Anonymize(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ReplacesFindingsInPlace", func(t *testing.T) {
		uc := newPrivacyUseCase(t, &recordingAuditRecorder{})
		text := "my card is 4111111111111111 thanks"

		result, err := uc.Scan(ctx, text)
		require.NoError(t, err)

		anonymized, err := uc.Anonymize(ctx, text, result)

		require.NoError(t, err)
		assert.NotContains(t, anonymized, "4111111111111111")
		assert.Contains(t, anonymized, "1111")
		assert.Contains(t, anonymized, "thanks")
	})

	t.Run("Error_NilScanResult", func(t *testing.T) {
		uc := newPrivacyUseCase(t, &recordingAuditRecorder{})

		_, err := uc.Anonymize(ctx, "text", nil)

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestPrivacyUseCase_RecordDecision(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_PersistsAndMirrorsToAudit", func(t *testing.T) {
		recorder := &recordingAuditRecorder{}
		uc := newPrivacyUseCase(t, recorder)
		text := "my ssn is 078-05-1120"

		result, err := uc.Scan(ctx, text)
		require.NoError(t, err)
		require.True(t, result.HasFindings)

		entry, err := uc.RecordDecision(ctx, &RecordDecisionInput{
			ConversationID: "conv-1",
			MessageID:      "msg-1",
			Text:           text,
			ScanResult:     result,
			Decision:       privacyDomain.DecisionAnonymize,
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, entry.ID)
		assert.Equal(t, privacyDomain.DecisionAnonymize, entry.UserDecision)
		assert.Contains(t, entry.ActiveJurisdictions, privacyDomain.JurisdictionUS)

		// Persisted.
		stored, err := uc.GetScanLog(ctx, "conv-1")
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, entry.ID, stored[0].ID)

		// Mirrored.
		require.Len(t, recorder.entries, 1)
		assert.Equal(t, entry.ID, recorder.entries[0].ID)
	})

	t.Run("Success_DegradedAuditMirrorDoesNotFailTheRecord", func(t *testing.T) {
		recorder := &recordingAuditRecorder{
			result: auditDomain.DegradedLogResult(apperrors.ErrStorageUnavailable),
		}
		uc := newPrivacyUseCase(t, recorder)

		result, err := uc.Scan(ctx, "my ssn is 078-05-1120")
		require.NoError(t, err)

		entry, err := uc.RecordDecision(ctx, &RecordDecisionInput{
			ConversationID: "conv-1",
			ScanResult:     result,
			Decision:       privacyDomain.DecisionProceed,
		})

		require.NoError(t, err)
		assert.NotNil(t, entry)
	})

	t.Run("Success_ConcurrentDecisionsAllPersist", func(t *testing.T) {
		recorder := &recordingAuditRecorder{}
		uc := newPrivacyUseCase(t, recorder)

		result, err := uc.Scan(ctx, "my ssn is 078-05-1120")
		require.NoError(t, err)

		const decisions = 16
		var wg sync.WaitGroup
		errs := make([]error, decisions)
		for i := 0; i < decisions; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = uc.RecordDecision(ctx, &RecordDecisionInput{
					ConversationID: "conv-1",
					MessageID:      fmt.Sprintf("msg-%d", i),
					ScanResult:     result,
					Decision:       privacyDomain.DecisionProceed,
				})
			}(i)
		}
		wg.Wait()

		for i, err := range errs {
			require.NoErrorf(t, err, "decision %d", i)
		}

		// Every decision survived the read-modify-write append.
		stored, err := uc.GetScanLog(ctx, "conv-1")
		require.NoError(t, err)
		assert.Len(t, stored, decisions)
		assert.Len(t, recorder.entries, decisions)
	})

	t.Run("Error_MissingScanResult", func(t *testing.T) {
		uc := newPrivacyUseCase(t, &recordingAuditRecorder{})

		_, err := uc.RecordDecision(ctx, &RecordDecisionInput{
			ConversationID: "conv-1",
			Decision:       privacyDomain.DecisionProceed,
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_MissingDecision", func(t *testing.T) {
		uc := newPrivacyUseCase(t, &recordingAuditRecorder{})

		result, err := uc.Scan(ctx, "hello world, nothing sensitive")
		require.NoError(t, err)

		_, err = uc.RecordDecision(ctx, &RecordDecisionInput{
			ConversationID: "conv-1",
			ScanResult:     result,
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestPrivacyUseCase_GetScanLog(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_EmptyForUnknownConversation", func(t *testing.T) {
		uc := newPrivacyUseCase(t, &recordingAuditRecorder{})

		entries, err := uc.GetScanLog(ctx, "missing")

		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
