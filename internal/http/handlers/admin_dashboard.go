// Package handlers holds the admin HTTP handlers that sit behind the JWT
// route group.
package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/propline/propline/pkg/logging"
)

// AdminDashboardHandler serves the marketplace overview endpoint.
type AdminDashboardHandler struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewAdminDashboardHandler creates a new admin dashboard handler.
func NewAdminDashboardHandler(db *sql.DB, logger *logging.Logger) *AdminDashboardHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminDashboardHandler{
		db:     db,
		logger: logger,
	}
}

// DashboardOverviewResponse contains the main dashboard metrics.
type DashboardOverviewResponse struct {
	Period     string           `json:"period"`
	Properties PropertyMetrics  `json:"properties"`
	Leads      LeadMetrics      `json:"leads"`
	Quotas     QuotaMetrics     `json:"quotas"`
	TopCities  []CityLeadVolume `json:"top_cities,omitempty"`
}

// PropertyMetrics contains listing-related dashboard metrics.
type PropertyMetrics struct {
	Total       int `json:"total"`
	ForSale     int `json:"for_sale"`
	ForRent     int `json:"for_rent"`
	NewThisWeek int `json:"new_this_week"`
}

// LeadMetrics contains lead-related dashboard metrics.
type LeadMetrics struct {
	Total       int     `json:"total"`
	Today       int     `json:"today"`
	ThisWeek    int     `json:"this_week"`
	PerProperty float64 `json:"avg_per_property"`
}

// QuotaMetrics contains contact-quota dashboard metrics.
type QuotaMetrics struct {
	TrackedIdentities   int `json:"tracked_identities"`
	ExhaustedIdentities int `json:"exhausted_identities"`
}

// CityLeadVolume is one row of the leads-by-city breakdown.
type CityLeadVolume struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

// GetDashboardOverview returns the marketplace overview.
// GET /admin/dashboard
func (h *AdminDashboardHandler) GetDashboardOverview(w http.ResponseWriter, r *http.Request) {
	dashboard := DashboardOverviewResponse{Period: "week"}

	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)
	today := now.Truncate(24 * time.Hour)

	// Property metrics. Individual scan failures leave the zero value; a
	// partially populated dashboard beats a hard error here.
	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM properties`,
	).Scan(&dashboard.Properties.Total)

	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM properties WHERE listing_type = 'sale'`,
	).Scan(&dashboard.Properties.ForSale)

	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM properties WHERE listing_type = 'rent'`,
	).Scan(&dashboard.Properties.ForRent)

	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM properties WHERE created_at >= $1`, weekAgo,
	).Scan(&dashboard.Properties.NewThisWeek)

	// Lead metrics
	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM leads`,
	).Scan(&dashboard.Leads.Total)

	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM leads WHERE created_at >= $1`, today,
	).Scan(&dashboard.Leads.Today)

	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM leads WHERE created_at >= $1`, weekAgo,
	).Scan(&dashboard.Leads.ThisWeek)

	if dashboard.Properties.Total > 0 {
		dashboard.Leads.PerProperty = float64(dashboard.Leads.Total) / float64(dashboard.Properties.Total)
	}

	// Quota metrics
	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM contact_quotas`,
	).Scan(&dashboard.Quotas.TrackedIdentities)

	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM contact_quotas WHERE remaining = 0`,
	).Scan(&dashboard.Quotas.ExhaustedIdentities)

	dashboard.TopCities = h.topCities(r)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dashboard)
}

func (h *AdminDashboardHandler) topCities(r *http.Request) []CityLeadVolume {
	rows, err := h.db.QueryContext(r.Context(),
		`SELECT p.city, COUNT(l.id) AS lead_count
		 FROM leads l
		 JOIN properties p ON p.id = l.property_id
		 GROUP BY p.city
		 ORDER BY lead_count DESC
		 LIMIT 5`,
	)
	if err != nil {
		h.logger.Error("dashboard city breakdown failed", "error", err)
		return nil
	}
	defer rows.Close()

	var cities []CityLeadVolume
	for rows.Next() {
		var c CityLeadVolume
		if err := rows.Scan(&c.City, &c.Count); err != nil {
			h.logger.Error("dashboard city scan failed", "error", err)
			return cities
		}
		cities = append(cities, c)
	}
	return cities
}
