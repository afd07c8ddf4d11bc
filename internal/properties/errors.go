package properties

import "errors"

var (
	// ErrInvalidTitle is returned when the title is missing
	ErrInvalidTitle = errors.New("title is required")

	// ErrInvalidListingType is returned when the listing type is not sale, rent or other
	ErrInvalidListingType = errors.New("listing type must be sale, rent or other")

	// ErrInvalidPrice is returned when the price is negative
	ErrInvalidPrice = errors.New("price must not be negative")

	// ErrPropertyNotFound is returned when a property is not found
	ErrPropertyNotFound = errors.New("property not found")
)
