package domain

import "github.com/shopspring/decimal"

// CartLine is the subset of a cart line item needed to price it for display.
type CartLine struct {
	ID            string                `json:"id"`
	VariantID     string                `json:"variant_id"`
	Quantity      int                   `json:"quantity"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	Total         decimal.Decimal       `json:"total"`
	OriginalTotal decimal.Decimal       `json:"original_total"`
	Metadata      *LineItemAugmentation `json:"metadata,omitempty"`
}

// IsRental reports whether the line carries rental terms.
func (l CartLine) IsRental() bool {
	return l.Metadata != nil && l.Metadata.RentalSummary != ""
}
