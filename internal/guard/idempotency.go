package guard

import (
	"context"
	"sync"

	"github.com/easycod/platform/internal/domain"
)

// IdempotencyGuard deduplicates order submissions by client idempotency key.
// Protects against double-clicked submit buttons and storefront retries.
type IdempotencyGuard struct {
	mu   sync.Mutex
	seen map[string]string
}

// NewIdempotencyGuard creates a new in-memory idempotency guard.
func NewIdempotencyGuard() *IdempotencyGuard {
	return &IdempotencyGuard{
		seen: make(map[string]string),
	}
}

// Check returns whether the given key has already been processed. An empty
// key disables the check for that request.
func (ig *IdempotencyGuard) Check(_ context.Context, key string) domain.GuardResult {
	if key == "" {
		return domain.GuardResult{Allowed: true}
	}

	ig.mu.Lock()
	defer ig.mu.Unlock()

	if _, ok := ig.seen[key]; ok {
		return domain.GuardResult{
			Allowed: false,
			Reason:  "duplicate request: idempotency key already processed",
			Guard:   "idempotency",
		}
	}

	ig.seen[key] = ""
	return domain.GuardResult{Allowed: true}
}

// Record associates a result (e.g. the created order ID) with a key so
// duplicate submissions can report what they duplicated.
func (ig *IdempotencyGuard) Record(key, orderID string) {
	if key == "" {
		return
	}
	ig.mu.Lock()
	defer ig.mu.Unlock()
	ig.seen[key] = orderID
}

// Result returns the recorded order ID for a key, if any.
func (ig *IdempotencyGuard) Result(key string) (string, bool) {
	ig.mu.Lock()
	defer ig.mu.Unlock()
	id, ok := ig.seen[key]
	return id, ok
}

// Remove deletes a key from the seen set so a failed submission can retry.
func (ig *IdempotencyGuard) Remove(key string) {
	ig.mu.Lock()
	defer ig.mu.Unlock()
	delete(ig.seen, key)
}
