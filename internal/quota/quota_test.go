package quota

import (
	"context"
	"testing"
)

func TestMemoryStore_CheckIsSideEffectFree(t *testing.T) {
	store := NewMemoryStore(3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		st, err := store.Check(ctx, "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !st.CanContact || st.RemainingUses != 3 {
			t.Fatalf("check %d mutated the counter: %+v", i, st)
		}
	}
}

func TestMemoryStore_ConsumeNeverGoesNegative(t *testing.T) {
	store := NewMemoryStore(3)
	ctx := context.Background()

	// First three consumes succeed, counting down to zero.
	for want := 2; want >= 0; want-- {
		res, err := store.Consume(ctx, "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Success || res.RemainingUses != want {
			t.Fatalf("expected success with %d remaining, got %+v", want, res)
		}
	}

	// Every further consume is a no-op at zero.
	for i := 0; i < 3; i++ {
		res, err := store.Consume(ctx, "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Success || res.RemainingUses != 0 {
			t.Fatalf("exhausted consume must fail at zero, got %+v", res)
		}
	}

	st, err := store.Check(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.CanContact || st.RemainingUses != 0 {
		t.Fatalf("expected exhausted status, got %+v", st)
	}
}

func TestMemoryStore_IdentitiesAreIndependent(t *testing.T) {
	store := NewMemoryStore(2)
	ctx := context.Background()

	if _, err := store.Consume(ctx, "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st, err := store.Check(ctx, "user-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.RemainingUses != 2 {
		t.Fatalf("expected untouched counter for user-2, got %+v", st)
	}
}

func TestMemoryStore_Reset(t *testing.T) {
	store := NewMemoryStore(1)
	ctx := context.Background()

	if _, err := store.Consume(ctx, "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Reset(ctx, "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st, err := store.Check(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !st.CanContact || st.RemainingUses != 1 {
		t.Fatalf("expected refilled counter, got %+v", st)
	}
}

func TestMemoryStore_DefaultAllowance(t *testing.T) {
	store := NewMemoryStore(0)

	st, err := store.Check(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.RemainingUses != DefaultAllowance {
		t.Fatalf("expected default allowance %d, got %d", DefaultAllowance, st.RemainingUses)
	}
}
