// Package quota implements the per-identity contact usage counter: a fixed
// free allowance of owner-contact actions, read without side effects and
// consumed one at a time, never below zero.
package quota

import (
	"context"
	"sync"
)

// DefaultAllowance is the initial number of free contact actions per identity.
const DefaultAllowance = 3

// Status is the result of a side-effect-free quota read.
type Status struct {
	CanContact    bool `json:"can_contact"`
	RemainingUses int  `json:"remaining_uses"`
}

// ConsumeResult is the post-decrement state of a consume attempt.
type ConsumeResult struct {
	Success       bool `json:"success"`
	RemainingUses int  `json:"remaining_uses"`
}

// Store defines the contact usage counter operations. Check must be safe to
// call repeatedly without affecting the counter. Consume atomically decrements
// by one only when remaining > 0; an exhausted counter yields Success=false
// and RemainingUses=0. Atomicity of the check-and-decrement belongs to the
// backing store.
type Store interface {
	Check(ctx context.Context, identity string) (Status, error)
	Consume(ctx context.Context, identity string) (ConsumeResult, error)
	Reset(ctx context.Context, identity string) error
}

// MemoryStore is an in-memory implementation of Store for development and
// tests. Counters for unseen identities start at the configured allowance.
type MemoryStore struct {
	mu        sync.Mutex
	remaining map[string]int
	allowance int
}

// NewMemoryStore creates a memory store with the given allowance. A
// non-positive allowance falls back to DefaultAllowance.
func NewMemoryStore(allowance int) *MemoryStore {
	if allowance <= 0 {
		allowance = DefaultAllowance
	}
	return &MemoryStore{
		remaining: make(map[string]int),
		allowance: allowance,
	}
}

// Check returns the current counter state without mutating it.
func (s *MemoryStore) Check(ctx context.Context, identity string) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := s.allowance
	if v, ok := s.remaining[identity]; ok {
		remaining = v
	}
	return Status{CanContact: remaining > 0, RemainingUses: remaining}, nil
}

// Consume decrements the counter by one if any uses remain.
func (s *MemoryStore) Consume(ctx context.Context, identity string) (ConsumeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining, ok := s.remaining[identity]
	if !ok {
		remaining = s.allowance
	}
	if remaining <= 0 {
		return ConsumeResult{Success: false, RemainingUses: 0}, nil
	}
	remaining--
	s.remaining[identity] = remaining
	return ConsumeResult{Success: true, RemainingUses: remaining}, nil
}

// Reset restores the full allowance for an identity.
func (s *MemoryStore) Reset(ctx context.Context, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remaining[identity] = s.allowance
	return nil
}
