package leads

import (
	"context"
	"fmt"
	"testing"
)

func TestRepository_Create(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	req := &CreateLeadRequest{
		PropertyID: "prop-1",
		Identity:   "user-9",
		Name:       "Jane Smith",
		Email:      "jane@example.com",
		Phone:      "+1987654321",
		Message:    "Looking for a viewing this week",
	}

	lead, err := repo.Create(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if lead.ID == "" {
		t.Error("expected lead ID to be set")
	}
	if lead.Name != req.Name {
		t.Errorf("expected name %s, got %s", req.Name, lead.Name)
	}
	if lead.Identity != req.Identity {
		t.Errorf("expected identity %s, got %s", req.Identity, lead.Identity)
	}
	if lead.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestRepository_Create_Invalid(t *testing.T) {
	repo := NewInMemoryRepository()

	_, err := repo.Create(context.Background(), &CreateLeadRequest{Name: "A"})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestRepository_GetByID(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &CreateLeadRequest{
		PropertyID: "prop-1",
		Name:       "Test User",
		Email:      "test@example.com",
		Phone:      "1234567890",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("expected ID %s, got %s", created.ID, found.ID)
	}
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo := NewInMemoryRepository()

	_, err := repo.GetByID(context.Background(), "nonexistent")
	if err != ErrLeadNotFound {
		t.Errorf("expected ErrLeadNotFound, got %v", err)
	}
}

func TestRepository_ListByProperty(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := repo.Create(ctx, &CreateLeadRequest{
			PropertyID: "prop-1",
			Name:       "Requester Name",
			Email:      fmt.Sprintf("requester%d@example.com", i),
			Phone:      "1234567890",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := repo.Create(ctx, &CreateLeadRequest{
		PropertyID: "prop-2",
		Name:       "Other Requester",
		Email:      "other@example.com",
		Phone:      "1234567890",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := repo.ListByProperty(ctx, "prop-1", ListLeadsFilter{Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("expected 3 leads, got %d", len(result))
	}

	page, err := repo.ListByProperty(ctx, "prop-1", ListLeadsFilter{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != 1 {
		t.Fatalf("expected 1 lead on last page, got %d", len(page))
	}
}
