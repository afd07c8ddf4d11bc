package properties

import (
	"strings"
	"time"
)

// ListingType classifies how a property is offered.
type ListingType string

const (
	ListingSale  ListingType = "sale"
	ListingRent  ListingType = "rent"
	ListingOther ListingType = "other"
)

// Valid reports whether the listing type is one of the known values.
func (lt ListingType) Valid() bool {
	switch lt {
	case ListingSale, ListingRent, ListingOther:
		return true
	}
	return false
}

// Property represents a marketplace listing. Owner contact fields are never
// serialized: leads reach the owner through the notification service only.
type Property struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	ListingType ListingType `json:"listing_type"`
	PriceCents  int64       `json:"price_cents"`
	City        string      `json:"city"`
	Bedrooms    int         `json:"bedrooms"`
	OwnerName   string      `json:"-"`
	OwnerEmail  string      `json:"-"`
	CreatedAt   time.Time   `json:"created_at"`
}

// CreatePropertyRequest represents the request body for creating a listing.
type CreatePropertyRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	ListingType ListingType `json:"listing_type"`
	PriceCents  int64       `json:"price_cents"`
	City        string      `json:"city"`
	Bedrooms    int         `json:"bedrooms"`
	OwnerName   string      `json:"owner_name"`
	OwnerEmail  string      `json:"owner_email"`
}

// Validate validates the create property request
func (r *CreatePropertyRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrInvalidTitle
	}
	if !r.ListingType.Valid() {
		return ErrInvalidListingType
	}
	if r.PriceCents < 0 {
		return ErrInvalidPrice
	}
	return nil
}

// ListFilter constrains property search results.
type ListFilter struct {
	City          string
	ListingType   ListingType
	MinPriceCents int64
	MaxPriceCents int64
	Limit         int
	Offset        int
}
