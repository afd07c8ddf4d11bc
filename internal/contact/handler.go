package contact

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/propline/propline/internal/identity"
	"github.com/propline/propline/internal/leads"
	"github.com/propline/propline/internal/properties"
	"github.com/propline/propline/pkg/logging"
)

// RedirectURLs maps logical destinations to configured URLs.
type RedirectURLs struct {
	Upsell     string
	RenterPlan string
	BuyerPlan  string
}

// URLFor resolves a destination to its configured URL. DestinationNone maps
// to the empty string: the client stays on the listing.
func (u RedirectURLs) URLFor(d Destination) string {
	switch d {
	case DestinationUpsell:
		return u.Upsell
	case DestinationRenterPlan:
		return u.RenterPlan
	case DestinationBuyerPlan:
		return u.BuyerPlan
	}
	return ""
}

// Handler handles HTTP requests for the contact workflow
type Handler struct {
	gate      *Gate
	velocity  *VelocityChecker
	redirects RedirectURLs
	logger    *logging.Logger
}

// NewHandler creates a new contact handler. The velocity checker may be nil.
func NewHandler(gate *Gate, velocity *VelocityChecker, redirects RedirectURLs, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		gate:      gate,
		velocity:  velocity,
		redirects: redirects,
		logger:    logger,
	}
}

// CheckUsage handles GET /contact/usage requests. Reading never consumes a
// use: only a successful contact attempt does.
func (h *Handler) CheckUsage(w http.ResponseWriter, r *http.Request) {
	identityID, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "missing identity context", http.StatusBadRequest)
		return
	}

	status, err := h.gate.CheckUsage(r.Context(), identityID)
	if err != nil {
		h.logger.Error("failed to check contact usage", "error", err, "identity", identityID)
		http.Error(w, "failed to check contact usage", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

// AttemptResponse is the response for a successful contact attempt.
type AttemptResponse struct {
	LeadID         string `json:"lead_id"`
	RemainingUses  int    `json:"remaining_uses"`
	RemainingKnown bool   `json:"remaining_known"`
	RedirectURL    string `json:"redirect_url,omitempty"`
}

type errorResponse struct {
	Error       string             `json:"error"`
	Violations  []leads.FieldError `json:"violations,omitempty"`
	RedirectURL string             `json:"redirect_url,omitempty"`
}

// AttemptContact handles POST /contact/attempts requests
func (h *Handler) AttemptContact(w http.ResponseWriter, r *http.Request) {
	identityID, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "missing identity context", http.StatusBadRequest)
		return
	}

	var req AttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !h.velocity.Allow(r.Context(), identityID) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many contact attempts, slow down"})
		return
	}

	result, err := h.gate.AttemptContact(r.Context(), identityID, req)
	if err != nil {
		h.writeAttemptError(w, identityID, err)
		return
	}

	writeJSON(w, http.StatusCreated, AttemptResponse{
		LeadID:         result.Lead.ID,
		RemainingUses:  result.RemainingUses,
		RemainingKnown: result.RemainingKnown,
		RedirectURL:    h.redirects.URLFor(result.Redirect),
	})
}

func (h *Handler) writeAttemptError(w http.ResponseWriter, identityID string, err error) {
	var violations leads.ValidationErrors
	switch {
	case errors.Is(err, ErrQuotaExhausted):
		// Not a hard error: the client is routed to the upsell page.
		writeJSON(w, http.StatusForbidden, errorResponse{
			Error:       "contact quota exhausted",
			RedirectURL: h.redirects.Upsell,
		})
	case errors.As(err, &violations):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:      "validation failed",
			Violations: violations,
		})
	case errors.Is(err, properties.ErrPropertyNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "property not found"})
	case errors.Is(err, ErrLeadCreationFailed):
		h.logger.Error("lead creation failed", "error", err, "identity", identityID)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to create lead, please try again"})
	default:
		h.logger.Error("contact attempt failed", "error", err, "identity", identityID)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "contact attempt failed"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
