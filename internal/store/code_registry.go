package store

import (
	"sync"
	"time"
)

// PendingCode is a one-time login code awaiting verification.
// Exactly one entry may be outstanding per username; issuing a new code
// replaces any prior entry.
type PendingCode struct {
	Code      string
	ChatID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// CodeRegistry is the process-wide in-memory registry of pending
// one-time codes, keyed by username.
//
// Entries are never persisted: a restart discards all pending
// second-factor flows and callers retry login from the first step.
// The mutex makes the consume-exactly-once invariant hold under
// concurrent verification attempts and the background sweep.
type CodeRegistry struct {
	mu    sync.Mutex
	codes map[string]PendingCode
}

func NewCodeRegistry() *CodeRegistry {
	return &CodeRegistry{
		codes: make(map[string]PendingCode),
	}
}

// Put stores entry under username, silently replacing any prior entry.
func (r *CodeRegistry) Put(username string, entry PendingCode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codes[username] = entry
}

// Get returns the pending entry for username, if any.
func (r *CodeRegistry) Get(username string) (PendingCode, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.codes[username]
	return entry, ok
}

// Delete removes the pending entry for username. Removing a missing
// entry is a no-op.
func (r *CodeRegistry) Delete(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.codes, username)
}

// Sweep removes every entry whose expiry has passed at the given moment
// and returns the number of removed entries. It bounds memory growth
// from abandoned login attempts.
func (r *CodeRegistry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for username, entry := range r.codes {
		if now.After(entry.ExpiresAt) {
			delete(r.codes, username)
			removed++
		}
	}

	return removed
}

// Len reports the number of outstanding entries.
func (r *CodeRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.codes)
}

// ResetEntry is an outstanding password-reset token.
type ResetEntry struct {
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ResetRegistry is the in-memory registry of password-reset tokens,
// keyed by the token value. Same lifecycle contract as [CodeRegistry]:
// single use, swept on expiry, not persisted.
type ResetRegistry struct {
	mu     sync.Mutex
	tokens map[string]ResetEntry
}

func NewResetRegistry() *ResetRegistry {
	return &ResetRegistry{
		tokens: make(map[string]ResetEntry),
	}
}

// Put stores entry under token. A fresh request for the same user does
// not invalidate earlier tokens; each expires on its own schedule.
func (r *ResetRegistry) Put(token string, entry ResetEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[token] = entry
}

// Get returns the entry for token, if any.
func (r *ResetRegistry) Get(token string) (ResetEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.tokens[token]
	return entry, ok
}

// Delete removes the entry for token. Removing a missing entry is a no-op.
func (r *ResetRegistry) Delete(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tokens, token)
}

// Sweep removes every token whose expiry has passed at the given moment
// and returns the number of removed entries.
func (r *ResetRegistry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for token, entry := range r.tokens {
		if now.After(entry.ExpiresAt) {
			delete(r.tokens, token)
			removed++
		}
	}

	return removed
}
