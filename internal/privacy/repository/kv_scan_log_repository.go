// Package repository implements privacy persistence over the key-value
// store. Scan log entries are grouped per conversation.
package repository

import (
	"context"
	"encoding/json"
	"net/url"

	apperrors "github.com/jdai-ca/atticus-privacy/internal/errors"
	"github.com/jdai-ca/atticus-privacy/internal/kv"
	privacyDomain "github.com/jdai-ca/atticus-privacy/internal/privacy/domain"
)

const scanLogKeyPrefix = "privacy/scanlog/"

// kvScanLogRepository stores each conversation's scan log as one JSON list.
// Append is read-modify-write; callers serialize appends per conversation.
type kvScanLogRepository struct {
	store kv.Store
}

// NewScanLogRepository creates a scan log repository backed by the given store.
func NewScanLogRepository(store kv.Store) *kvScanLogRepository {
	return &kvScanLogRepository{store: store}
}

func scanLogKey(conversationID string) string {
	return scanLogKeyPrefix + url.PathEscape(conversationID)
}

// List returns the conversation's scan log entries in stored order. A missing
// record means an empty log, not an error.
func (r *kvScanLogRepository) List(ctx context.Context, conversationID string) ([]*privacyDomain.ScanLogEntry, error) {
	data, err := r.store.Get(ctx, scanLogKey(conversationID))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "failed to load scan log")
	}

	var entries []*privacyDomain.ScanLogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode scan log")
	}
	return entries, nil
}

// Append adds one entry to the conversation's stored scan log.
func (r *kvScanLogRepository) Append(ctx context.Context, conversationID string, entry *privacyDomain.ScanLogEntry) error {
	entries, err := r.List(ctx, conversationID)
	if err != nil {
		return err
	}
	entries = append(entries, entry)

	data, err := json.Marshal(entries)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode scan log")
	}
	if err := r.store.Set(ctx, scanLogKey(conversationID), data); err != nil {
		return apperrors.Wrap(err, "failed to store scan log")
	}
	return nil
}

// DeleteConversation removes the conversation's scan log.
func (r *kvScanLogRepository) DeleteConversation(ctx context.Context, conversationID string) error {
	if err := r.store.Delete(ctx, scanLogKey(conversationID)); err != nil {
		return apperrors.Wrap(err, "failed to delete scan log")
	}
	return nil
}
