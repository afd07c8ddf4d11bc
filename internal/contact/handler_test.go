package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/propline/propline/internal/identity"
	"github.com/propline/propline/internal/leads"
	"github.com/propline/propline/internal/properties"
	"github.com/propline/propline/internal/quota"
)

var testRedirects = RedirectURLs{
	Upsell:     "/plans/upgrade",
	RenterPlan: "/plans/renter",
	BuyerPlan:  "/plans/buyer",
}

func newTestHandler(t *testing.T, allowance int) (*Handler, map[properties.ListingType]string) {
	t.Helper()

	propsRepo := properties.NewInMemoryRepository()
	ids := map[properties.ListingType]string{}
	for _, lt := range []properties.ListingType{properties.ListingSale, properties.ListingRent, properties.ListingOther} {
		prop, err := propsRepo.Create(context.Background(), &properties.CreatePropertyRequest{
			Title:       "Listing " + string(lt),
			ListingType: lt,
			PriceCents:  250_000,
			City:        "Porto",
		})
		if err != nil {
			t.Fatalf("seed property: %v", err)
		}
		ids[lt] = prop.ID
	}

	gate := NewGate(
		leads.NewInMemoryRepository(),
		propsRepo,
		quota.NewMemoryStore(allowance),
		nil, nil, nil,
	)
	return NewHandler(gate, nil, testRedirects, nil), ids
}

func attemptRequest(t *testing.T, identityID string, body any) *http.Request {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/contact/attempts", bytes.NewReader(payload))
	if identityID != "" {
		req = req.WithContext(identity.WithID(req.Context(), identityID))
	}
	return req
}

func TestAttemptContactHandler_Created(t *testing.T) {
	handler, ids := newTestHandler(t, 3)

	rec := httptest.NewRecorder()
	handler.AttemptContact(rec, attemptRequest(t, "user-1", AttemptRequest{
		PropertyID: ids[properties.ListingSale],
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		Phone:      "9876543210",
	}))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp AttemptResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.LeadID == "" {
		t.Fatal("expected lead id in response")
	}
	if resp.RemainingUses != 2 || !resp.RemainingKnown {
		t.Fatalf("unexpected remaining: %+v", resp)
	}
	if resp.RedirectURL != "/plans/buyer" {
		t.Fatalf("expected buyer plan redirect, got %q", resp.RedirectURL)
	}
}

func TestAttemptContactHandler_MissingIdentity(t *testing.T) {
	handler, ids := newTestHandler(t, 3)

	rec := httptest.NewRecorder()
	handler.AttemptContact(rec, attemptRequest(t, "", AttemptRequest{PropertyID: ids[properties.ListingSale]}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAttemptContactHandler_InvalidBody(t *testing.T) {
	handler, _ := newTestHandler(t, 3)

	req := httptest.NewRequest(http.MethodPost, "/contact/attempts", bytes.NewReader([]byte("{not json")))
	req = req.WithContext(identity.WithID(req.Context(), "user-1"))
	rec := httptest.NewRecorder()
	handler.AttemptContact(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAttemptContactHandler_ValidationViolations(t *testing.T) {
	handler, ids := newTestHandler(t, 3)

	rec := httptest.NewRecorder()
	handler.AttemptContact(rec, attemptRequest(t, "user-1", AttemptRequest{
		PropertyID: ids[properties.ListingSale],
		Name:       "J",
		Email:      "nope",
		Phone:      "123",
	}))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Violations) != 3 {
		t.Fatalf("expected 3 violations in response, got %d: %+v", len(resp.Violations), resp.Violations)
	}
}

func TestAttemptContactHandler_QuotaExhausted(t *testing.T) {
	handler, ids := newTestHandler(t, 1)

	body := AttemptRequest{
		PropertyID: ids[properties.ListingRent],
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		Phone:      "9876543210",
	}

	rec := httptest.NewRecorder()
	handler.AttemptContact(rec, attemptRequest(t, "user-1", body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("first attempt: expected 201, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.AttemptContact(rec, attemptRequest(t, "user-1", body))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("second attempt: expected 403, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RedirectURL != "/plans/upgrade" {
		t.Fatalf("expected upsell redirect, got %q", resp.RedirectURL)
	}
}

func TestAttemptContactHandler_PropertyNotFound(t *testing.T) {
	handler, _ := newTestHandler(t, 3)

	rec := httptest.NewRecorder()
	handler.AttemptContact(rec, attemptRequest(t, "user-1", AttemptRequest{
		PropertyID: "missing",
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		Phone:      "9876543210",
	}))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAttemptContactHandler_VelocityLimited(t *testing.T) {
	handler, ids := newTestHandler(t, 10)
	handler.velocity = NewVelocityChecker(setupTestRedis(t), 1, time.Hour, nil)

	body := AttemptRequest{
		PropertyID: ids[properties.ListingSale],
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		Phone:      "9876543210",
	}

	rec := httptest.NewRecorder()
	handler.AttemptContact(rec, attemptRequest(t, "user-1", body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("first attempt: expected 201, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.AttemptContact(rec, attemptRequest(t, "user-1", body))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second attempt: expected 429, got %d", rec.Code)
	}
}

func TestCheckUsageHandler(t *testing.T) {
	handler, _ := newTestHandler(t, 3)

	req := httptest.NewRequest(http.MethodGet, "/contact/usage", nil)
	req = req.WithContext(identity.WithID(req.Context(), "user-1"))
	rec := httptest.NewRecorder()
	handler.CheckUsage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var status quota.Status
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !status.CanContact || status.RemainingUses != 3 {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestCheckUsageHandler_MissingIdentity(t *testing.T) {
	handler, _ := newTestHandler(t, 3)

	rec := httptest.NewRecorder()
	handler.CheckUsage(rec, httptest.NewRequest(http.MethodGet, "/contact/usage", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
