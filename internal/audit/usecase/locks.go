package usecase

import "sync"

// conversationLocks hands out one mutex per conversation so appends to the
// same chain are serialized while different conversations proceed in
// parallel. Locks are never removed; the population is bounded by the number
// of conversations this installation has touched.
type conversationLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newConversationLocks() *conversationLocks {
	return &conversationLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the conversation's mutex and returns the unlock func.
func (c *conversationLocks) acquire(conversationID string) func() {
	c.mu.Lock()
	lock, ok := c.locks[conversationID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[conversationID] = lock
	}
	c.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
