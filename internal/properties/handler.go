package properties

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/propline/propline/pkg/logging"
)

// Handler handles HTTP requests for properties
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new properties handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// ListPropertiesResponse is the response for listing properties
type ListPropertiesResponse struct {
	Properties []*Property `json:"properties"`
	Count      int         `json:"count"`
	Offset     int         `json:"offset"`
	Limit      int         `json:"limit"`
}

// ListProperties handles GET /properties requests. Filters: city,
// listing_type, min_price_cents, max_price_cents, limit, offset.
func (h *Handler) ListProperties(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Limit:  50,
		Offset: 0,
	}

	q := r.URL.Query()
	filter.City = q.Get("city")
	if lt := q.Get("listing_type"); lt != "" {
		listingType := ListingType(lt)
		if !listingType.Valid() {
			http.Error(w, "invalid listing_type", http.StatusBadRequest)
			return
		}
		filter.ListingType = listingType
	}
	if minStr := q.Get("min_price_cents"); minStr != "" {
		if v, err := strconv.ParseInt(minStr, 10, 64); err == nil && v > 0 {
			filter.MinPriceCents = v
		}
	}
	if maxStr := q.Get("max_price_cents"); maxStr != "" {
		if v, err := strconv.ParseInt(maxStr, 10, 64); err == nil && v > 0 {
			filter.MaxPriceCents = v
		}
	}
	if limitStr := q.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}
	if offsetStr := q.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}

	props, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list properties", "error", err)
		http.Error(w, "failed to list properties", http.StatusInternalServerError)
		return
	}

	response := ListPropertiesResponse{
		Properties: props,
		Count:      len(props),
		Offset:     filter.Offset,
		Limit:      filter.Limit,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetProperty handles GET /properties/{propertyID} requests
func (h *Handler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "propertyID")
	if id == "" {
		http.Error(w, "missing property id", http.StatusBadRequest)
		return
	}

	prop, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPropertyNotFound) {
			http.Error(w, "property not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get property", "error", err, "property_id", id)
		http.Error(w, "failed to get property", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(prop)
}

// CreateProperty handles POST /admin/properties requests
func (h *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var req CreatePropertyRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	prop, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create property", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.logger.Info("property created", "id", prop.ID, "listing_type", prop.ListingType)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(prop)
}
