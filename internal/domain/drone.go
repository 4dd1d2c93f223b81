package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

type MarketingMethod string

const (
	MarketingMethodSale        MarketingMethod = "sale"
	MarketingMethodRent        MarketingMethod = "rent"
	MarketingMethodSaleAndRent MarketingMethod = "sale_and_rent"
)

// CurrencyCode is a lowercase ISO 4217 code, e.g. "eur".
type CurrencyCode string

// Locale is a lowercase base language tag, e.g. "fr".
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleFR Locale = "fr"
)

type Translation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Drone is the drone extension record linked 1:1 to a catalog product.
type Drone struct {
	ID               string                           `json:"id"`
	ProductID        string                           `json:"product_id,omitempty"`
	MarketingMethod  MarketingMethod                  `json:"marketing_method"`
	RentalDailyRates map[CurrencyCode]decimal.Decimal `json:"rental_per_day_prices,omitempty"`
	Translations     map[Locale]Translation           `json:"translations,omitempty"`
	CreatedAt        time.Time                        `json:"created_at"`
}

// RentalRate returns the daily rate for the given currency.
func (d *Drone) RentalRate(code CurrencyCode) (decimal.Decimal, bool) {
	if d == nil || d.RentalDailyRates == nil {
		return decimal.Zero, false
	}
	rate, ok := d.RentalDailyRates[code]
	return rate, ok
}

// ParseCurrencyCode validates s as an ISO 4217 code and returns it lowercased.
func ParseCurrencyCode(s string) (CurrencyCode, error) {
	unit, err := currency.ParseISO(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCurrency, s)
	}
	return CurrencyCode(strings.ToLower(unit.String())), nil
}

// ParseLocale validates s as a language tag and returns its lowercase base language.
func ParseLocale(s string) (Locale, error) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid locale %q: %w", s, err)
	}
	base, _ := tag.Base()
	return Locale(base.String()), nil
}
