package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/jdai-ca/atticus-privacy/internal/audit/domain"
	"github.com/jdai-ca/atticus-privacy/internal/kv"
)

// buildChain constructs a well-formed signed chain of n entries.
func buildChain(t *testing.T, signer Signer, n int) []*auditDomain.AuditEntry {
	t.Helper()
	ctx := context.Background()

	entries := make([]*auditDomain.AuditEntry, 0, n)
	prevID, prevHash := "", ""
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < n; i++ {
		entry := &auditDomain.AuditEntry{
			ID:              uuid.Must(uuid.NewV7()),
			Timestamp:       base.Add(time.Duration(i) * time.Second),
			EventType:       auditDomain.EventAPIRequest,
			Severity:        auditDomain.SeverityInfo,
			ConversationID:  "conv-1",
			Actor:           auditDomain.ActorSystem,
			Action:          "sent provider request",
			Details:         map[string]any{"sequence_note": i},
			SequenceNumber:  int64(i),
			PreviousEntryID: prevID,
			PreviousHash:    prevHash,
		}

		hash, err := ComputeContentHash(entry)
		require.NoError(t, err)
		entry.ContentHash = hash

		sig, err := signer.Sign(ctx, hash)
		require.NoError(t, err)
		entry.Signature = sig

		entries = append(entries, entry)
		prevID, prevHash = entry.ID.String(), entry.ContentHash
	}
	return entries
}

func newTestVerifier(t *testing.T) (*ChainVerifier, Signer) {
	t.Helper()
	store := kv.NewMemStore()
	t.Cleanup(func() { _ = store.Close() })
	signer := NewSigner(store)
	return NewChainVerifier(signer), signer
}

func TestChainVerifier_ValidChain(t *testing.T) {
	verifier, signer := newTestVerifier(t)
	entries := buildChain(t, signer, 5)

	report := verifier.Verify(context.Background(), entries)

	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
}

func TestChainVerifier_EmptyChainIsValid(t *testing.T) {
	verifier, _ := newTestVerifier(t)
	report := verifier.Verify(context.Background(), nil)
	assert.True(t, report.Valid)
}

func TestChainVerifier_TamperedDetails(t *testing.T) {
	verifier, signer := newTestVerifier(t)
	entries := buildChain(t, signer, 4)

	// Post-hoc edit without recomputing the hash.
	entries[2].Details["sequence_note"] = "edited"

	report := verifier.Verify(context.Background(), entries)

	require.False(t, report.Valid)
	contentErrors := report.ErrorsForCheck(auditDomain.CheckContent)
	require.Len(t, contentErrors, 1)
	assert.Equal(t, 2, contentErrors[0].Index)
	assert.Equal(t, entries[2].ID.String(), contentErrors[0].EntryID)

	// The other independent checks still pass: the stored hash is unchanged,
	// so linkage, sequence, and signature remain internally consistent.
	assert.Empty(t, report.ErrorsForCheck(auditDomain.CheckSequence))
	assert.Empty(t, report.ErrorsForCheck(auditDomain.CheckLinkage))
	assert.Empty(t, report.ErrorsForCheck(auditDomain.CheckSignature))
}

func TestChainVerifier_ReorderedEntries(t *testing.T) {
	verifier, signer := newTestVerifier(t)
	entries := buildChain(t, signer, 4)

	entries[1], entries[2] = entries[2], entries[1]

	report := verifier.Verify(context.Background(), entries)

	require.False(t, report.Valid)

	sequenceErrors := report.ErrorsForCheck(auditDomain.CheckSequence)
	indices := make([]int, 0, len(sequenceErrors))
	for _, e := range sequenceErrors {
		indices = append(indices, e.Index)
	}
	assert.ElementsMatch(t, []int{1, 2}, indices)

	linkageErrors := report.ErrorsForCheck(auditDomain.CheckLinkage)
	assert.NotEmpty(t, linkageErrors)
	for _, e := range linkageErrors {
		assert.Contains(t, []int{1, 2, 3}, e.Index)
	}
}

func TestChainVerifier_ForgedButInternallyConsistentEntry(t *testing.T) {
	verifier, signer := newTestVerifier(t)
	entries := buildChain(t, signer, 3)

	// An attacker edits an entry and recomputes its hash, but cannot produce
	// a signature without the private key.
	entries[1].Details["sequence_note"] = "forged"
	hash, err := ComputeContentHash(entries[1])
	require.NoError(t, err)
	entries[1].ContentHash = hash

	report := verifier.Verify(context.Background(), entries)

	require.False(t, report.Valid)
	assert.Empty(t, report.ErrorsForCheck(auditDomain.CheckContent))
	assert.NotEmpty(t, report.ErrorsForCheck(auditDomain.CheckSignature))
	// The successor's stored PreviousHash no longer matches.
	assert.NotEmpty(t, report.ErrorsForCheck(auditDomain.CheckLinkage))
}

func TestChainVerifier_UnsignedEntriesAreNotForgeries(t *testing.T) {
	verifier, signer := newTestVerifier(t)
	entries := buildChain(t, signer, 2)

	// A degraded append stores the entry without a signature.
	entries[1].Signature = ""

	report := verifier.Verify(context.Background(), entries)

	assert.True(t, report.Valid)
}

func TestChainVerifier_FirstEntryMustNotReferenceAPredecessor(t *testing.T) {
	verifier, signer := newTestVerifier(t)
	entries := buildChain(t, signer, 2)

	// Dropping the genuine first entry leaves a head that claims a
	// predecessor.
	report := verifier.Verify(context.Background(), entries[1:])

	require.False(t, report.Valid)
	assert.NotEmpty(t, report.ErrorsForCheck(auditDomain.CheckLinkage))
	assert.NotEmpty(t, report.ErrorsForCheck(auditDomain.CheckSequence))
}
