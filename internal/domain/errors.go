package domain

import "errors"

// Offer evaluation failures. Every evaluator operation returns either a
// success value or exactly one of these (possibly wrapped with detail).
var (
	ErrInvalidConfiguration = errors.New("invalid marketing configuration")
	ErrModeNotAllowed       = errors.New("action not allowed for this product")
	ErrNoVariantSelected    = errors.New("no variant selected")
	ErrOutOfStock           = errors.New("variant is out of stock")
	ErrInvalidDate          = errors.New("invalid date")
	ErrStartDateInPast      = errors.New("rental start date is in the past")
	ErrInvalidWindow        = errors.New("rental end date must be after start date")
	ErrUnsupportedCurrency  = errors.New("no rental rate for currency")
)

var (
	ErrNotFound       = errors.New("not found")
	ErrRegionNotFound = errors.New("no region for country")
	ErrCartService    = errors.New("cart service failure")
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrInvalidConfiguration, "invalid_configuration"},
	{ErrModeNotAllowed, "mode_not_allowed"},
	{ErrNoVariantSelected, "no_variant_selected"},
	{ErrOutOfStock, "out_of_stock"},
	{ErrInvalidDate, "invalid_date"},
	{ErrStartDateInPast, "start_date_in_past"},
	{ErrInvalidWindow, "invalid_window"},
	{ErrUnsupportedCurrency, "unsupported_currency"},
	{ErrRegionNotFound, "region_not_found"},
	{ErrNotFound, "not_found"},
	{ErrCartService, "cart_service_error"},
}

// ErrorCode returns the stable snake_case code of a known error kind, or
// "internal" when err matches none of them.
func ErrorCode(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return "internal"
}

// IsOfferError reports whether err is one of the offer evaluation failures.
func IsOfferError(err error) bool {
	for _, ec := range errorCodes[:8] {
		if errors.Is(err, ec.err) {
			return true
		}
	}
	return false
}
