package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"dronehub-backend/internal/cache"
	"dronehub-backend/internal/cartgateway"
	"dronehub-backend/internal/catalog"
	"dronehub-backend/internal/domain"
	"dronehub-backend/internal/i18n"
	"dronehub-backend/internal/logger"
	"dronehub-backend/internal/offer"
	"dronehub-backend/internal/repository"
)

type storefrontService struct {
	productRepo repository.ProductRepository
	regionRepo  repository.RegionRepository
	cache       ProductCache
	cart        CartGateway
	evaluator   *offer.Evaluator
	texts       *i18n.Catalog
	formatter   offer.Formatter
	pageSize    int
}

// NewStorefrontService wires the storefront read and cart paths. cache may be nil.
func NewStorefrontService(
	productRepo repository.ProductRepository,
	regionRepo repository.RegionRepository,
	cache ProductCache,
	cart CartGateway,
	evaluator *offer.Evaluator,
	texts *i18n.Catalog,
	formatter offer.Formatter,
	pageSize int,
) StorefrontService {
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}
	return &storefrontService{
		productRepo: productRepo,
		regionRepo:  regionRepo,
		cache:       cache,
		cart:        cart,
		evaluator:   evaluator,
		texts:       texts,
		formatter:   formatter,
		pageSize:    pageSize,
	}
}

func (s *storefrontService) Copy(countryCode string) (domain.Locale, map[string]string, []i18n.LanguageOption) {
	locale := i18n.LocaleFromCountry(countryCode)
	return locale, s.texts.Copy(locale), i18n.LanguageOptions()
}

func (s *storefrontService) region(ctx context.Context, countryCode string) (*domain.Region, error) {
	region, err := s.regionRepo.GetByCountry(ctx, countryCode)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", domain.ErrRegionNotFound, countryCode)
	}
	return region, err
}

// loadProduct reads a published product through the cache. Cache errors are
// logged and the database is used instead.
func (s *storefrontService) loadProduct(ctx context.Context, handle string) (*domain.Product, error) {
	if s.cache != nil {
		p, err := s.cache.Get(ctx, handle)
		if err == nil {
			logger.CacheResult("get", handle, true, nil)
			return p, nil
		}
		if errors.Is(err, cache.ErrCacheMiss) {
			logger.CacheResult("get", handle, false, nil)
		} else {
			logger.CacheResult("get", handle, false, err)
		}
	}

	p, err := s.readProduct(ctx, handle)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, p); err != nil {
			logger.CacheResult("set", handle, false, err)
		}
	}
	return p, nil
}

// readProduct reads a published product from the database. Offer
// evaluation uses it so stock is never taken from a cached copy.
func (s *storefrontService) readProduct(ctx context.Context, handle string) (*domain.Product, error) {
	p, err := s.productRepo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.ProductStatusPublished {
		return nil, fmt.Errorf("product %q: %w", handle, domain.ErrNotFound)
	}
	return p, nil
}

// droneOf returns the product's drone record. Products without one are
// sold like any other catalog item.
func droneOf(p *domain.Product) *domain.Drone {
	if p.Drone != nil {
		return p.Drone
	}
	return &domain.Drone{ProductID: p.ID, MarketingMethod: domain.MarketingMethodSale}
}

func (s *storefrontService) ListProducts(ctx context.Context, countryCode string, params ListParams) (*ProductPage, error) {
	logger.EnterMethod("storefrontService.ListProducts", "country", countryCode, "sort", params.Sort, "page", params.Page)

	region, err := s.region(ctx, countryCode)
	if err != nil {
		logger.ExitMethodWithError("storefrontService.ListProducts", err, "country", countryCode)
		return nil, err
	}
	locale := i18n.LocaleFromCountry(countryCode)

	products, err := s.productRepo.List(ctx, repository.ProductFilter{
		CategoryID: params.CategoryID,
		Status:     domain.ProductStatusPublished,
	})
	if err != nil {
		logger.ExitMethodWithError("storefrontService.ListProducts", err, "country", countryCode)
		return nil, err
	}

	catalog.SortProducts(products, params.Sort, region.CurrencyCode)
	page := catalog.Paginate(len(products), params.Page, s.pageSize)
	start, end := page.Window(len(products))

	items := make([]ProductCard, 0, end-start)
	for i := start; i < end; i++ {
		p := &products[i]
		tr := catalog.Localize(p, locale)
		card := ProductCard{
			ID:           p.ID,
			Handle:       p.Handle,
			Title:        tr.Title,
			Description:  tr.Description,
			CurrencyCode: region.CurrencyCode,
			Method:       droneOf(p).MarketingMethod,
		}
		if price, ok := p.CheapestPrice(region.CurrencyCode); ok {
			card.CheapestPrice = &price
		}
		items = append(items, card)
	}

	logger.ExitMethod("storefrontService.ListProducts", "count", len(products), "page", page.Number)
	return &ProductPage{
		Items:      items,
		Page:       page.Number,
		TotalPages: page.TotalPages,
		Count:      len(products),
	}, nil
}

func (s *storefrontService) GetProduct(ctx context.Context, countryCode, handle string) (*ProductDetail, error) {
	logger.EnterMethod("storefrontService.GetProduct", "country", countryCode, "handle", handle)

	region, err := s.region(ctx, countryCode)
	if err != nil {
		logger.ExitMethodWithError("storefrontService.GetProduct", err, "country", countryCode)
		return nil, err
	}
	p, err := s.loadProduct(ctx, handle)
	if err != nil {
		logger.ExitMethodWithError("storefrontService.GetProduct", err, "handle", handle)
		return nil, err
	}

	locale := i18n.LocaleFromCountry(countryCode)
	drone := droneOf(p)
	mode, err := offer.ResolveMode(drone)
	if err != nil {
		logger.ExitMethodWithError("storefrontService.GetProduct", err, "handle", handle)
		return nil, err
	}

	tr := catalog.Localize(p, locale)
	detail := &ProductDetail{
		ID:              p.ID,
		Handle:          p.Handle,
		Title:           tr.Title,
		Description:     tr.Description,
		Locale:          locale,
		CurrencyCode:    region.CurrencyCode,
		Method:          drone.MarketingMethod,
		Mode:            mode,
		Options:         p.Options,
		DefaultOptions:  offer.DefaultOptions(p.Variants),
		Variants:        make([]VariantView, 0, len(p.Variants)),
		EarliestStartOn: s.evaluator.Today().String(),
	}
	if mode.CanRent {
		if rate, ok := drone.RentalRate(region.CurrencyCode); ok {
			detail.DailyRate = &rate
			detail.DailyRateLabel = s.formatter.Format(rate, region.CurrencyCode, locale)
		}
	}
	for i := range p.Variants {
		v := &p.Variants[i]
		view := VariantView{
			ID:        v.ID,
			Title:     v.Title,
			Options:   v.Options,
			Available: offer.IsAvailable(v),
		}
		if price, ok := v.Prices[region.CurrencyCode]; ok {
			view.Price = &price
		}
		detail.Variants = append(detail.Variants, view)
	}

	logger.ExitMethod("storefrontService.GetProduct", "handle", handle, "method", drone.MarketingMethod)
	return detail, nil
}

func (s *storefrontService) EvaluateOffer(ctx context.Context, countryCode, handle string, in OfferInput) (*offer.Decision, error) {
	logger.EnterMethod("storefrontService.EvaluateOffer", "country", countryCode, "handle", handle, "action", in.Action)

	region, err := s.region(ctx, countryCode)
	if err != nil {
		logger.ExitMethodWithError("storefrontService.EvaluateOffer", err, "country", countryCode)
		return nil, err
	}
	p, err := s.readProduct(ctx, handle)
	if err != nil {
		logger.ExitMethodWithError("storefrontService.EvaluateOffer", err, "handle", handle)
		return nil, err
	}

	action := offer.Action{Kind: in.Action}
	if in.Action == offer.ActionRent {
		action = offer.Rent(domain.RentalRequest{
			StartDate:    in.StartDate,
			EndDate:      in.EndDate,
			CurrencyCode: region.CurrencyCode,
			Locale:       i18n.LocaleFromCountry(countryCode),
		})
	}

	decision, err := s.evaluator.Evaluate(droneOf(p), p.Variants, in.Options, action)
	if err != nil {
		logger.ExitMethodRejected("storefrontService.EvaluateOffer", err, "handle", handle, "code", domain.ErrorCode(err))
		return nil, err
	}

	logger.ExitMethod("storefrontService.EvaluateOffer", "handle", handle, "variantID", decision.VariantID)
	return decision, nil
}

func (s *storefrontService) AddToCart(ctx context.Context, countryCode, cartID, handle string, in OfferInput) (*offer.Decision, json.RawMessage, error) {
	decision, err := s.EvaluateOffer(ctx, countryCode, handle, in)
	if err != nil {
		return nil, nil, err
	}

	cart, err := s.cart.AddLineItem(ctx, cartID, cartgateway.LineItem{
		VariantID: decision.VariantID,
		Quantity:  decision.Quantity,
		Metadata:  decision.Augmentation,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrCartService, err)
	}
	return decision, cart, nil
}

func (s *storefrontService) CartTotals(lines []domain.CartLine, currency domain.CurrencyCode) CartTotalsResult {
	out := CartTotalsResult{
		Lines:        make([]offer.LinePricing, 0, len(lines)),
		Subtotal:     offer.CartSubtotal(lines, currency),
		CurrencyCode: currency,
	}
	for _, line := range lines {
		out.Lines = append(out.Lines, offer.LinePrice(line, currency))
	}
	return out
}

// WarmProductCache loads every published product into the cache.
func (s *storefrontService) WarmProductCache(ctx context.Context) (int, error) {
	if s.cache == nil {
		return 0, nil
	}
	products, err := s.productRepo.List(ctx, repository.ProductFilter{Status: domain.ProductStatusPublished})
	if err != nil {
		return 0, err
	}
	warmed := 0
	for i := range products {
		if err := s.cache.Set(ctx, &products[i]); err != nil {
			logger.CacheResult("set", products[i].Handle, false, err)
			continue
		}
		warmed++
	}
	return warmed, nil
}
