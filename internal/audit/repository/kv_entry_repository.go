// Package repository implements audit persistence over the key-value store.
// Each conversation owns two records: its entry list and its chain state.
package repository

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	auditDomain "github.com/jdai-ca/atticus-privacy/internal/audit/domain"
	apperrors "github.com/jdai-ca/atticus-privacy/internal/errors"
	"github.com/jdai-ca/atticus-privacy/internal/kv"
)

const entryKeyPrefix = "audit/entries/"

// kvEntryRepository stores each conversation's entries as one JSON list.
// Append is read-modify-write; callers serialize appends per conversation.
type kvEntryRepository struct {
	store kv.Store
}

// NewEntryRepository creates an entry repository backed by the given store.
func NewEntryRepository(store kv.Store) *kvEntryRepository {
	return &kvEntryRepository{store: store}
}

func entryKey(conversationID string) string {
	return entryKeyPrefix + url.PathEscape(conversationID)
}

// List returns the conversation's entries in stored (append) order. A missing
// record means an empty chain, not an error.
func (r *kvEntryRepository) List(ctx context.Context, conversationID string) ([]*auditDomain.AuditEntry, error) {
	data, err := r.store.Get(ctx, entryKey(conversationID))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "failed to load audit entries")
	}

	var entries []*auditDomain.AuditEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode audit entries")
	}
	return entries, nil
}

// Append adds one entry to the conversation's stored list.
func (r *kvEntryRepository) Append(ctx context.Context, conversationID string, entry *auditDomain.AuditEntry) error {
	entries, err := r.List(ctx, conversationID)
	if err != nil {
		return err
	}
	entries = append(entries, entry)

	data, err := json.Marshal(entries)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode audit entries")
	}
	if err := r.store.Set(ctx, entryKey(conversationID), data); err != nil {
		return apperrors.Wrap(err, "failed to store audit entries")
	}
	return nil
}

// DeleteConversation removes the conversation's entry list.
func (r *kvEntryRepository) DeleteConversation(ctx context.Context, conversationID string) error {
	if err := r.store.Delete(ctx, entryKey(conversationID)); err != nil {
		return apperrors.Wrap(err, "failed to delete audit entries")
	}
	return nil
}

// ListConversationIDs returns every conversation with stored entries.
func (r *kvEntryRepository) ListConversationIDs(ctx context.Context) ([]string, error) {
	keys, err := r.store.ListKeys(ctx, entryKeyPrefix)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit conversations")
	}

	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		escaped := strings.TrimPrefix(key, entryKeyPrefix)
		id, err := url.PathUnescape(escaped)
		if err != nil {
			id = escaped
		}
		ids = append(ids, id)
	}
	return ids, nil
}
