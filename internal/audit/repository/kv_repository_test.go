package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/jdai-ca/atticus-privacy/internal/audit/domain"
	apperrors "github.com/jdai-ca/atticus-privacy/internal/errors"
	"github.com/jdai-ca/atticus-privacy/internal/kv"
)

func testEntry(seq int64) *auditDomain.AuditEntry {
	return &auditDomain.AuditEntry{
		ID:             uuid.Must(uuid.NewV7()),
		Timestamp:      time.Date(2026, 3, 1, 12, 0, int(seq), 0, time.UTC),
		EventType:      auditDomain.EventAPIRequest,
		Severity:       auditDomain.SeverityInfo,
		ConversationID: "conv-1",
		Actor:          auditDomain.ActorSystem,
		Action:         "sent provider request",
		SequenceNumber: seq,
		ContentHash:    "hash",
	}
}

func TestEntryRepository(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemStore()
	defer func() { _ = store.Close() }()
	repo := NewEntryRepository(store)

	t.Run("List_EmptyConversationReturnsNil", func(t *testing.T) {
		entries, err := repo.List(ctx, "conv-1")
		require.NoError(t, err)
		assert.Nil(t, entries)
	})

	t.Run("Append_PreservesStoredOrder", func(t *testing.T) {
		first, second := testEntry(0), testEntry(1)
		require.NoError(t, repo.Append(ctx, "conv-1", first))
		require.NoError(t, repo.Append(ctx, "conv-1", second))

		entries, err := repo.List(ctx, "conv-1")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, first.ID, entries[0].ID)
		assert.Equal(t, second.ID, entries[1].ID)
	})

	t.Run("ListConversationIDs", func(t *testing.T) {
		require.NoError(t, repo.Append(ctx, "conv-2", testEntry(0)))

		ids, err := repo.ListConversationIDs(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"conv-1", "conv-2"}, ids)
	})

	t.Run("DeleteConversation", func(t *testing.T) {
		require.NoError(t, repo.DeleteConversation(ctx, "conv-1"))

		entries, err := repo.List(ctx, "conv-1")
		require.NoError(t, err)
		assert.Nil(t, entries)
	})
}

func TestChainStateRepository(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemStore()
	defer func() { _ = store.Close() }()
	repo := NewChainStateRepository(store)

	t.Run("Get_MissingStateReturnsNotFound", func(t *testing.T) {
		_, err := repo.Get(ctx, "conv-1")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("SetThenGet_RoundTrips", func(t *testing.T) {
		state := &auditDomain.ChainState{
			HeadEntryID:  "entry-1",
			HeadHash:     "hash-1",
			NextSequence: 1,
		}
		require.NoError(t, repo.Set(ctx, "conv-1", state))

		loaded, err := repo.Get(ctx, "conv-1")
		require.NoError(t, err)
		assert.Equal(t, state, loaded)
	})

	t.Run("Delete_ResetsToNotFound", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "conv-1"))

		_, err := repo.Get(ctx, "conv-1")
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})
}
