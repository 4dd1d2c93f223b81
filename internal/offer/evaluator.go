package offer

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"dronehub-backend/internal/domain"
	"dronehub-backend/internal/utils"
)

// Formatter renders a money amount for display.
type Formatter interface {
	Format(amount decimal.Decimal, code domain.CurrencyCode, locale domain.Locale) string
}

// DayCounter renders a day count with its localized unit, e.g. "3 days".
type DayCounter interface {
	DayCount(locale domain.Locale, n int) string
}

type plainFormatter struct{}

func (plainFormatter) Format(amount decimal.Decimal, code domain.CurrencyCode, _ domain.Locale) string {
	return amount.StringFixed(2) + " " + strings.ToUpper(string(code))
}

type plainDayCounter struct{}

func (plainDayCounter) DayCount(_ domain.Locale, n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

type ActionKind string

const (
	ActionBuy  ActionKind = "buy"
	ActionRent ActionKind = "rent"
)

type Action struct {
	Kind   ActionKind
	Rental *domain.RentalRequest
}

func Buy() Action {
	return Action{Kind: ActionBuy}
}

func Rent(req domain.RentalRequest) Action {
	return Action{Kind: ActionRent, Rental: &req}
}

// Decision is the outcome of a successful evaluation. Quote and Augmentation
// are set only for rentals.
type Decision struct {
	Action       ActionKind                   `json:"action"`
	VariantID    string                       `json:"variant_id"`
	Quantity     int                          `json:"quantity"`
	Quote        *domain.RentalQuote          `json:"quote,omitempty"`
	Augmentation *domain.LineItemAugmentation `json:"metadata,omitempty"`
}

// Evaluator decides buy/rent actions for drone offers. It holds no mutable
// state and is safe for concurrent use.
type Evaluator struct {
	now      func() time.Time
	location *time.Location
	format   Formatter
	days     DayCounter
}

type Option func(*Evaluator)

// WithClock sets the time source used for the "no retroactive rentals" check.
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) { e.now = now }
}

// WithLocation sets the zone whose calendar day counts as "today".
func WithLocation(loc *time.Location) Option {
	return func(e *Evaluator) { e.location = loc }
}

func WithFormatter(f Formatter) Option {
	return func(e *Evaluator) { e.format = f }
}

func WithDayCounter(d DayCounter) Option {
	return func(e *Evaluator) { e.days = d }
}

func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		now:      time.Now,
		location: time.UTC,
		format:   plainFormatter{},
		days:     plainDayCounter{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Today returns the evaluator's current calendar day.
func (e *Evaluator) Today() utils.Date {
	return utils.Today(e.now(), e.location)
}

// QuoteRental validates the rental window and prices it at the drone's daily
// rate for the requested currency.
func (e *Evaluator) QuoteRental(req domain.RentalRequest, d *domain.Drone) (*domain.RentalQuote, error) {
	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start date %q: %v", domain.ErrInvalidDate, req.StartDate, err)
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end date %q: %v", domain.ErrInvalidDate, req.EndDate, err)
	}

	if start.Before(e.Today()) {
		return nil, fmt.Errorf("%w: %s", domain.ErrStartDateInPast, start)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidWindow, start, end)
	}

	days := utils.DaysBetween(start, end)
	if days <= 0 {
		return nil, fmt.Errorf("%w: %d days", domain.ErrInvalidWindow, days)
	}

	code, err := domain.ParseCurrencyCode(string(req.CurrencyCode))
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("%w: no drone record", domain.ErrInvalidConfiguration)
	}
	rate, ok := d.RentalRate(code)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedCurrency, code)
	}

	total := rate.Mul(decimal.NewFromInt(int64(days)))
	return &domain.RentalQuote{
		StartDate:    start.String(),
		EndDate:      end.String(),
		DurationDays: days,
		UnitRate:     rate,
		Total:        total,
		CurrencyCode: code,
		Summary:      e.format.Format(total, code, req.Locale) + " · " + e.days.DayCount(req.Locale, days),
	}, nil
}

// Evaluate checks the preconditions of action in order and, for rentals,
// builds the line-item augmentation. The first unmet precondition is returned.
func (e *Evaluator) Evaluate(d *domain.Drone, variants []domain.Variant, chosen map[string]string, action Action) (*Decision, error) {
	mode, err := ResolveMode(d)
	if err != nil {
		return nil, err
	}

	switch action.Kind {
	case ActionBuy:
		if !mode.CanSell {
			return nil, fmt.Errorf("%w: %s cannot be bought", domain.ErrModeNotAllowed, d.MarketingMethod)
		}
	case ActionRent:
		if !mode.CanRent {
			return nil, fmt.Errorf("%w: %s cannot be rented", domain.ErrModeNotAllowed, d.MarketingMethod)
		}
	default:
		return nil, fmt.Errorf("%w: unknown action %q", domain.ErrModeNotAllowed, action.Kind)
	}

	variant, ok := SelectVariant(variants, chosen)
	if !ok {
		return nil, domain.ErrNoVariantSelected
	}
	if !IsAvailable(variant) {
		return nil, fmt.Errorf("%w: %s", domain.ErrOutOfStock, variant.ID)
	}

	decision := &Decision{Action: action.Kind, VariantID: variant.ID, Quantity: 1}
	if action.Kind == ActionBuy {
		return decision, nil
	}

	if action.Rental == nil {
		return nil, fmt.Errorf("%w: rental dates missing", domain.ErrInvalidDate)
	}
	quote, err := e.QuoteRental(*action.Rental, d)
	if err != nil {
		return nil, err
	}

	rates := make(map[domain.CurrencyCode]decimal.Decimal, len(d.RentalDailyRates))
	for k, v := range d.RentalDailyRates {
		rates[k] = v
	}
	decision.Quote = quote
	decision.Augmentation = &domain.LineItemAugmentation{
		RentalStartDate:       quote.StartDate,
		RentalEndDate:         quote.EndDate,
		RentalSummary:         quote.Summary,
		RentalTotal:           quote.Total,
		RentalPriceByCurrency: rates,
		RentalDurationDays:    quote.DurationDays,
		Locale:                action.Rental.Locale,
	}
	return decision, nil
}
