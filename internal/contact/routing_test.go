package contact

import (
	"testing"

	"github.com/propline/propline/internal/properties"
)

func TestRedirectFor(t *testing.T) {
	tests := []struct {
		name         string
		hasRemaining bool
		listingType  properties.ListingType
		want         Destination
	}{
		{"exhausted sale goes to upsell", false, properties.ListingSale, DestinationUpsell},
		{"exhausted rent goes to upsell", false, properties.ListingRent, DestinationUpsell},
		{"exhausted other goes to upsell", false, properties.ListingOther, DestinationUpsell},
		{"remaining sale goes to buyer plan", true, properties.ListingSale, DestinationBuyerPlan},
		{"remaining rent goes to renter plan", true, properties.ListingRent, DestinationRenterPlan},
		{"remaining other has no redirect", true, properties.ListingOther, DestinationNone},
		{"exhausted unknown type goes to upsell", false, properties.ListingType("weird"), DestinationUpsell},
		{"remaining unknown type has no redirect", true, properties.ListingType("weird"), DestinationNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := redirectFor(tt.hasRemaining, tt.listingType); got != tt.want {
				t.Errorf("redirectFor(%v, %q) = %q, want %q", tt.hasRemaining, tt.listingType, got, tt.want)
			}
		})
	}
}

func TestRedirectURLs_URLFor(t *testing.T) {
	urls := RedirectURLs{
		Upsell:     "/plans/upgrade",
		RenterPlan: "/plans/renter",
		BuyerPlan:  "/plans/buyer",
	}

	if got := urls.URLFor(DestinationUpsell); got != "/plans/upgrade" {
		t.Errorf("upsell URL = %q", got)
	}
	if got := urls.URLFor(DestinationRenterPlan); got != "/plans/renter" {
		t.Errorf("renter plan URL = %q", got)
	}
	if got := urls.URLFor(DestinationBuyerPlan); got != "/plans/buyer" {
		t.Errorf("buyer plan URL = %q", got)
	}
	if got := urls.URLFor(DestinationNone); got != "" {
		t.Errorf("none should map to empty URL, got %q", got)
	}
}
