package offer

import (
	"github.com/shopspring/decimal"

	"dronehub-backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// LinePricing is the display view of one cart line in the cart currency.
type LinePricing struct {
	LineID        string          `json:"line_id"`
	Rental        bool            `json:"rental"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Total         decimal.Decimal `json:"total"`
	OriginalTotal decimal.Decimal `json:"original_total"`
	Reduced       bool            `json:"reduced"`
	PercentOff    int64           `json:"percent_off,omitempty"`
	Summary       string          `json:"summary,omitempty"`
}

// LinePrice prices a cart line. Rental lines are priced from their recorded
// daily rate and duration; other lines use the cart's own totals.
func LinePrice(line domain.CartLine, code domain.CurrencyCode) LinePricing {
	out := LinePricing{LineID: line.ID}

	if line.IsRental() {
		meta := line.Metadata
		out.Rental = true
		out.Summary = meta.RentalSummary
		qty := decimal.NewFromInt(int64(max(line.Quantity, 1)))
		if rate, ok := meta.RentalPriceByCurrency[code]; ok && meta.RentalDurationDays > 0 {
			out.UnitPrice = rate.Mul(decimal.NewFromInt(int64(meta.RentalDurationDays)))
			out.Total = out.UnitPrice.Mul(qty)
		} else {
			out.Total = meta.RentalTotal
			out.UnitPrice = meta.RentalTotal.Div(qty)
		}
		out.OriginalTotal = out.Total
		return out
	}

	out.Total = line.Total
	out.OriginalTotal = line.OriginalTotal
	if line.Quantity > 0 {
		out.UnitPrice = line.Subtotal.Div(decimal.NewFromInt(int64(line.Quantity)))
	}
	if line.OriginalTotal.IsPositive() && line.Total.LessThan(line.OriginalTotal) {
		out.Reduced = true
		off := line.OriginalTotal.Sub(line.Total).Div(line.OriginalTotal).Mul(hundred)
		out.PercentOff = off.Round(0).IntPart()
	}
	return out
}

// CartSubtotal sums rental totals and regular line subtotals.
func CartSubtotal(lines []domain.CartLine, code domain.CurrencyCode) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		if line.IsRental() {
			sum = sum.Add(LinePrice(line, code).Total)
			continue
		}
		sum = sum.Add(line.Subtotal)
	}
	return sum
}
