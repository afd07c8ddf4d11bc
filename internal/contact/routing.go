package contact

import "github.com/propline/propline/internal/properties"

// Destination is the logical post-attempt redirect target. The HTTP layer
// maps destinations to configured URLs.
type Destination string

const (
	// DestinationNone sends the user back to the listing.
	DestinationNone Destination = ""
	// DestinationUpsell is the generic subscription page, used whenever the
	// quota is exhausted.
	DestinationUpsell Destination = "upsell"
	// DestinationRenterPlan is the rental subscription page.
	DestinationRenterPlan Destination = "renter_plan"
	// DestinationBuyerPlan is the buyer subscription page.
	DestinationBuyerPlan Destination = "buyer_plan"
)

type routeKey struct {
	hasRemaining bool
	listingType  properties.ListingType
}

// redirectTable keys the redirect decision on (remaining uses, listing type)
// so the zero-remaining-overrides-listing-type rule is an explicit entry
// rather than conditional fallthrough.
var redirectTable = map[routeKey]Destination{
	{hasRemaining: false, listingType: properties.ListingSale}:  DestinationUpsell,
	{hasRemaining: false, listingType: properties.ListingRent}:  DestinationUpsell,
	{hasRemaining: false, listingType: properties.ListingOther}: DestinationUpsell,
	{hasRemaining: true, listingType: properties.ListingSale}:   DestinationBuyerPlan,
	{hasRemaining: true, listingType: properties.ListingRent}:   DestinationRenterPlan,
	{hasRemaining: true, listingType: properties.ListingOther}:  DestinationNone,
}

func redirectFor(hasRemaining bool, listingType properties.ListingType) Destination {
	if dest, ok := redirectTable[routeKey{hasRemaining: hasRemaining, listingType: listingType}]; ok {
		return dest
	}
	// Unknown listing types follow the same rule as "other".
	if !hasRemaining {
		return DestinationUpsell
	}
	return DestinationNone
}
