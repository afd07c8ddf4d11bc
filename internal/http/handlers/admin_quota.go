package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/propline/propline/internal/quota"
	"github.com/propline/propline/pkg/logging"
)

// AdminQuotaHandler exposes support operations on contact quotas.
type AdminQuotaHandler struct {
	store  quota.Store
	logger *logging.Logger
}

// NewAdminQuotaHandler creates a new admin quota handler.
func NewAdminQuotaHandler(store quota.Store, logger *logging.Logger) *AdminQuotaHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminQuotaHandler{
		store:  store,
		logger: logger,
	}
}

// GetQuota returns the quota state for one identity.
// GET /admin/quotas/{identityID}
func (h *AdminQuotaHandler) GetQuota(w http.ResponseWriter, r *http.Request) {
	identityID := chi.URLParam(r, "identityID")
	if identityID == "" {
		http.Error(w, "missing identityID", http.StatusBadRequest)
		return
	}

	status, err := h.store.Check(r.Context(), identityID)
	if err != nil {
		h.logger.Error("admin quota lookup failed", "error", err, "identity", identityID)
		http.Error(w, "failed to look up quota", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

// ResetQuota restores an identity's full allowance, typically after a support
// escalation.
// POST /admin/quotas/{identityID}/reset
func (h *AdminQuotaHandler) ResetQuota(w http.ResponseWriter, r *http.Request) {
	identityID := chi.URLParam(r, "identityID")
	if identityID == "" {
		http.Error(w, "missing identityID", http.StatusBadRequest)
		return
	}

	if err := h.store.Reset(r.Context(), identityID); err != nil {
		h.logger.Error("admin quota reset failed", "error", err, "identity", identityID)
		http.Error(w, "failed to reset quota", http.StatusInternalServerError)
		return
	}

	h.logger.Info("contact quota reset", "identity", identityID)

	status, err := h.store.Check(r.Context(), identityID)
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}
