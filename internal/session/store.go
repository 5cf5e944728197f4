// Package session provides the per-browsing-session state the event triggers
// depend on: one-shot idempotency flags and the last observed cart snapshot.
// Triggers receive a Store by injection, keeping them free of storage
// globals and testable without a database.
package session

import (
	"context"
	"sync"

	"github.com/easycod/platform/internal/domain"
	"github.com/google/uuid"
)

// Well-known flag names.
const (
	FlagAddPaymentInfo   = "addPaymentInfoTracked"
	FlagInitiateCheckout = "initiateCheckoutTracked"
)

// Store persists per-session trigger state. Flag reads and writes are
// independent operations: two near-simultaneous field edits can both observe
// an unset flag and double-fire. That race is accepted - a duplicate ad
// event is an over-count, not a correctness failure.
type Store interface {
	// Flag reports whether a one-shot flag has been set for the session.
	Flag(ctx context.Context, sessionID, name string) (bool, error)

	// SetFlag marks a one-shot flag for the session.
	SetFlag(ctx context.Context, sessionID, name string) error

	// Cart returns the last saved cart snapshot, or nil if none exists.
	Cart(ctx context.Context, sessionID string) (*domain.CartSnapshot, error)

	// SaveCart stores the latest cart snapshot for the session.
	SaveCart(ctx context.Context, sessionID string, snap domain.CartSnapshot) error
}

// NewSessionID generates a free-form session correlation ID. Not a security
// token.
func NewSessionID() string {
	return uuid.NewString()
}

// MemoryStore is an in-process Store for tests and single-instance dev runs.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionState
}

type sessionState struct {
	flags map[string]bool
	cart  *domain.CartSnapshot
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*sessionState)}
}

func (s *MemoryStore) state(sessionID string) *sessionState {
	st, ok := s.sessions[sessionID]
	if !ok {
		st = &sessionState{flags: make(map[string]bool)}
		s.sessions[sessionID] = st
	}
	return st
}

func (s *MemoryStore) Flag(_ context.Context, sessionID, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state(sessionID).flags[name], nil
}

func (s *MemoryStore) SetFlag(_ context.Context, sessionID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state(sessionID).flags[name] = true
	return nil
}

func (s *MemoryStore) Cart(_ context.Context, sessionID string) (*domain.CartSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.state(sessionID).cart
	if cart == nil {
		return nil, nil
	}
	cp := *cart
	return &cp, nil
}

func (s *MemoryStore) SaveCart(_ context.Context, sessionID string, snap domain.CartSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state(sessionID).cart = &snap
	return nil
}
