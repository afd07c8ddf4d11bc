package identity

import (
	"context"
	"testing"
)

func TestWithIDAndFromContext(t *testing.T) {
	ctx := context.Background()
	ctx = WithID(ctx, "user-123")

	got, ok := FromContext(ctx)
	if !ok {
		t.Fatalf("expected identity to be present")
	}
	if got != "user-123" {
		t.Fatalf("expected user-123, got %s", got)
	}
}

func TestFromContext_EmptyOrMissing(t *testing.T) {
	ctx := context.Background()
	if _, ok := FromContext(ctx); ok {
		t.Fatalf("expected missing identity to return false")
	}

	ctx = context.WithValue(ctx, identityKey, 42)
	if _, ok := FromContext(ctx); ok {
		t.Fatalf("expected non-string identity to return false")
	}

	ctx = WithID(context.Background(), "")
	if _, ok := FromContext(ctx); ok {
		t.Fatalf("expected empty identity to return false")
	}
}
