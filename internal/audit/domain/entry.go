package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry is one record in a conversation's hash-chained audit trail.
// Entries are never mutated after creation: ContentHash covers every field
// except itself and Signature, and each entry carries the hash of its
// predecessor, so any post-hoc edit or reorder is detectable.
type AuditEntry struct {
	ID             uuid.UUID      `json:"id"`
	Timestamp      time.Time      `json:"timestamp"`
	EventType      EventType      `json:"event_type"`
	Severity       Severity       `json:"severity"`
	ConversationID string         `json:"conversation_id,omitempty"`
	MessageID      string         `json:"message_id,omitempty"`
	Actor          Actor          `json:"actor"`
	Action         string         `json:"action"`
	Details        map[string]any `json:"details,omitempty"`

	// SequenceNumber is 0-based and strictly increases by 1 within a
	// conversation.
	SequenceNumber int64 `json:"sequence_number"`

	// PreviousEntryID and PreviousHash link this entry to its predecessor.
	// Both are empty on the first entry of a chain.
	PreviousEntryID string `json:"previous_entry_id,omitempty"`
	PreviousHash    string `json:"previous_hash,omitempty"`

	// ContentHash is a deterministic digest over the entry excluding
	// ContentHash and Signature.
	ContentHash string `json:"content_hash"`

	// Signature is the Ed25519 signature over ContentHash. Empty when signing
	// was unavailable at append time; the entry is still chained.
	Signature string `json:"signature,omitempty"`

	Tags []string `json:"tags,omitempty"`
}

// ChainState is the per-conversation chain head. It is read and rewritten
// atomically with each append, under the conversation's append lock.
type ChainState struct {
	HeadEntryID  string `json:"head_entry_id"`
	HeadHash     string `json:"head_hash"`
	NextSequence int64  `json:"next_sequence"`
}
