package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"dronehub-backend/internal/domain"
)

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// ParseRentalRates turns the stored rental_per_day_prices blob into a typed
// map. Amounts may be JSON numbers or numeric strings; negative amounts and
// unknown currency codes are rejected. A null or empty blob yields nil.
func ParseRentalRates(raw json.RawMessage) (map[domain.CurrencyCode]decimal.Decimal, error) {
	if isNull(raw) {
		return nil, nil
	}

	var untyped map[string]decimal.Decimal
	if err := json.Unmarshal(raw, &untyped); err != nil {
		return nil, fmt.Errorf("%w: rental rates: %v", domain.ErrInvalidConfiguration, err)
	}

	rates := make(map[domain.CurrencyCode]decimal.Decimal, len(untyped))
	for k, amount := range untyped {
		code, err := domain.ParseCurrencyCode(k)
		if err != nil {
			return nil, fmt.Errorf("%w: rental rates: %v", domain.ErrInvalidConfiguration, err)
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("%w: rental rate for %s is negative", domain.ErrInvalidConfiguration, code)
		}
		rates[code] = amount
	}
	return rates, nil
}

// ParseTranslations turns the stored translations blob into a map keyed by
// validated locale.
func ParseTranslations(raw json.RawMessage) (map[domain.Locale]domain.Translation, error) {
	if isNull(raw) {
		return nil, nil
	}

	var untyped map[string]domain.Translation
	if err := json.Unmarshal(raw, &untyped); err != nil {
		return nil, fmt.Errorf("%w: translations: %v", domain.ErrInvalidConfiguration, err)
	}

	out := make(map[domain.Locale]domain.Translation, len(untyped))
	for k, tr := range untyped {
		locale, err := domain.ParseLocale(k)
		if err != nil {
			return nil, fmt.Errorf("%w: translations: %v", domain.ErrInvalidConfiguration, err)
		}
		out[locale] = tr
	}
	return out, nil
}

// ParseMarketingMethod validates a stored marketing method. Records created
// without one are sale-only.
func ParseMarketingMethod(s string) (domain.MarketingMethod, error) {
	switch m := domain.MarketingMethod(s); m {
	case "":
		return domain.MarketingMethodSale, nil
	case domain.MarketingMethodSale, domain.MarketingMethodRent, domain.MarketingMethodSaleAndRent:
		return m, nil
	default:
		return "", fmt.Errorf("%w: marketing method %q", domain.ErrInvalidConfiguration, s)
	}
}

// MarshalRentalRates encodes rates for storage; nil stays SQL-null friendly.
func MarshalRentalRates(rates map[domain.CurrencyCode]decimal.Decimal) ([]byte, error) {
	if rates == nil {
		return nil, nil
	}
	return json.Marshal(rates)
}

func MarshalTranslations(tr map[domain.Locale]domain.Translation) ([]byte, error) {
	if tr == nil {
		return nil, nil
	}
	return json.Marshal(tr)
}
