package repository

import (
	"context"
	"encoding/json"
	"net/url"

	auditDomain "github.com/jdai-ca/atticus-privacy/internal/audit/domain"
	apperrors "github.com/jdai-ca/atticus-privacy/internal/errors"
	"github.com/jdai-ca/atticus-privacy/internal/kv"
)

const chainKeyPrefix = "audit/chain/"

// kvChainStateRepository stores one ChainState record per conversation,
// rewritten atomically with each append under the conversation lock.
type kvChainStateRepository struct {
	store kv.Store
}

// NewChainStateRepository creates a chain state repository backed by the
// given store.
func NewChainStateRepository(store kv.Store) *kvChainStateRepository {
	return &kvChainStateRepository{store: store}
}

func chainKey(conversationID string) string {
	return chainKeyPrefix + url.PathEscape(conversationID)
}

// Get returns the conversation's chain head. Returns ErrNotFound when the
// chain is empty (the next append is entry 0).
func (r *kvChainStateRepository) Get(ctx context.Context, conversationID string) (*auditDomain.ChainState, error) {
	data, err := r.store.Get(ctx, chainKey(conversationID))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "failed to load chain state")
	}

	var state auditDomain.ChainState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode chain state")
	}
	return &state, nil
}

// Set replaces the conversation's chain head.
func (r *kvChainStateRepository) Set(ctx context.Context, conversationID string, state *auditDomain.ChainState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode chain state")
	}
	if err := r.store.Set(ctx, chainKey(conversationID), data); err != nil {
		return apperrors.Wrap(err, "failed to store chain state")
	}
	return nil
}

// Delete removes the conversation's chain head.
func (r *kvChainStateRepository) Delete(ctx context.Context, conversationID string) error {
	if err := r.store.Delete(ctx, chainKey(conversationID)); err != nil {
		return apperrors.Wrap(err, "failed to delete chain state")
	}
	return nil
}
