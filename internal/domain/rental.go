package domain

import "github.com/shopspring/decimal"

// RentalRequest carries the raw calendar dates (YYYY-MM-DD) as entered.
type RentalRequest struct {
	StartDate    string       `json:"start_date"`
	EndDate      string       `json:"end_date"`
	CurrencyCode CurrencyCode `json:"currency_code"`
	Locale       Locale       `json:"locale"`
}

// RentalQuote is derived and never stored.
type RentalQuote struct {
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	DurationDays int             `json:"duration_days"`
	UnitRate     decimal.Decimal `json:"unit_rate"`
	Total        decimal.Decimal `json:"total"`
	CurrencyCode CurrencyCode    `json:"currency_code"`
	Summary      string          `json:"summary"`
}

// LineItemAugmentation is the metadata attached to a rental cart line. It is
// owned by the cart once submitted.
type LineItemAugmentation struct {
	RentalStartDate       string                           `json:"rental_start_date"`
	RentalEndDate         string                           `json:"rental_end_date"`
	RentalSummary         string                           `json:"rental_summary"`
	RentalTotal           decimal.Decimal                  `json:"rental_total"`
	RentalPriceByCurrency map[CurrencyCode]decimal.Decimal `json:"rental_price_by_currency"`
	RentalDurationDays    int                              `json:"rental_duration_days"`
	Locale                Locale                           `json:"locale"`
}
