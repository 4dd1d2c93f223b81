package i18n

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"dronehub-backend/internal/domain"
)

// Formatter renders money amounts for a locale.
type Formatter struct{}

func NewFormatter() Formatter {
	return Formatter{}
}

// Format renders amount in the given currency using the locale's number
// conventions. Unknown currencies degrade to "<amount> <CODE>".
func (Formatter) Format(amount decimal.Decimal, code domain.CurrencyCode, locale domain.Locale) string {
	unit, err := currency.ParseISO(string(code))
	if err != nil {
		return amount.StringFixed(2) + " " + strings.ToUpper(string(code))
	}
	tag, err := language.Parse(string(locale))
	if err != nil {
		tag = language.English
	}
	f, _ := amount.Float64()
	return message.NewPrinter(tag).Sprint(currency.Symbol(unit.Amount(f)))
}
