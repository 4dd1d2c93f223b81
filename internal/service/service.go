package service

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"dronehub-backend/internal/cartgateway"
	"dronehub-backend/internal/catalog"
	"dronehub-backend/internal/domain"
	"dronehub-backend/internal/i18n"
	"dronehub-backend/internal/offer"
)

// DroneInput is the drone data supplied alongside a product, as received.
// The JSON documents are validated before anything is stored.
type DroneInput struct {
	MarketingMethod    string          `json:"marketing_method"`
	RentalPerDayPrices json.RawMessage `json:"rental_per_day_prices,omitempty"`
	Translations       json.RawMessage `json:"translations,omitempty"`
}

type DroneService interface {
	CreateDroneFromProduct(ctx context.Context, productID string, in *DroneInput) (*domain.Drone, error)
	HandleProductsCreated(ctx context.Context, productIDs []string, additional *DroneInput) ([]domain.Drone, error)
	DeleteDrone(ctx context.Context, id string) error
}

// ListParams are the storefront listing query parameters.
type ListParams struct {
	Sort       catalog.SortOption
	Page       int
	CategoryID string
}

// ProductCard is one localized entry of a product listing.
type ProductCard struct {
	ID            string                 `json:"id"`
	Handle        string                 `json:"handle"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	CheapestPrice *decimal.Decimal       `json:"cheapest_price,omitempty"`
	CurrencyCode  domain.CurrencyCode    `json:"currency_code"`
	Method        domain.MarketingMethod `json:"marketing_method"`
}

// ProductPage is a page of localized product cards.
type ProductPage struct {
	Items      []ProductCard `json:"items"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	Count      int           `json:"count"`
}

// VariantView is a variant as shown on the product page.
type VariantView struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Options   map[string]string `json:"options"`
	Price     *decimal.Decimal  `json:"price,omitempty"`
	Available bool              `json:"available"`
}

// ProductDetail is the localized product page model.
type ProductDetail struct {
	ID              string                 `json:"id"`
	Handle          string                 `json:"handle"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	Locale          domain.Locale          `json:"locale"`
	CurrencyCode    domain.CurrencyCode    `json:"currency_code"`
	Method          domain.MarketingMethod `json:"marketing_method"`
	Mode            offer.Mode             `json:"mode"`
	DailyRate       *decimal.Decimal       `json:"daily_rate,omitempty"`
	DailyRateLabel  string                 `json:"daily_rate_label,omitempty"`
	Options         []domain.ProductOption `json:"options"`
	DefaultOptions  map[string]string      `json:"default_options"`
	Variants        []VariantView          `json:"variants"`
	EarliestStartOn string                 `json:"earliest_start_date"`
}

// OfferInput is a buy or rent request from the product page.
type OfferInput struct {
	Action    offer.ActionKind  `json:"action"`
	Options   map[string]string `json:"options"`
	StartDate string            `json:"start_date,omitempty"`
	EndDate   string            `json:"end_date,omitempty"`
}

// CartTotalsResult is the display pricing of a cart.
type CartTotalsResult struct {
	Lines        []offer.LinePricing `json:"lines"`
	Subtotal     decimal.Decimal     `json:"subtotal"`
	CurrencyCode domain.CurrencyCode `json:"currency_code"`
}

type StorefrontService interface {
	Copy(countryCode string) (domain.Locale, map[string]string, []i18n.LanguageOption)
	ListProducts(ctx context.Context, countryCode string, params ListParams) (*ProductPage, error)
	GetProduct(ctx context.Context, countryCode, handle string) (*ProductDetail, error)
	EvaluateOffer(ctx context.Context, countryCode, handle string, in OfferInput) (*offer.Decision, error)
	AddToCart(ctx context.Context, countryCode, cartID, handle string, in OfferInput) (*offer.Decision, json.RawMessage, error)
	CartTotals(lines []domain.CartLine, currency domain.CurrencyCode) CartTotalsResult
	WarmProductCache(ctx context.Context) (int, error)
}

type SeedService interface {
	Seed(ctx context.Context) (*SeedReport, error)
}

// CartGateway forwards evaluated line items to the cart service.
type CartGateway interface {
	AddLineItem(ctx context.Context, cartID string, item cartgateway.LineItem) (json.RawMessage, error)
}

// ProductCache is the product-detail cache used by the storefront.
type ProductCache interface {
	Get(ctx context.Context, handle string) (*domain.Product, error)
	Set(ctx context.Context, p *domain.Product) error
	Invalidate(ctx context.Context, handles ...string) error
}
