package catalog

import (
	"fmt"
	"sort"

	"dronehub-backend/internal/domain"
)

const DefaultPageSize = 12

type SortOption string

const (
	SortCreatedAt SortOption = "created_at"
	SortPriceAsc  SortOption = "price_asc"
	SortPriceDesc SortOption = "price_desc"
)

// ParseSortOption accepts the storefront sort keys; empty means newest first.
func ParseSortOption(s string) (SortOption, error) {
	switch opt := SortOption(s); opt {
	case "":
		return SortCreatedAt, nil
	case SortCreatedAt, SortPriceAsc, SortPriceDesc:
		return opt, nil
	default:
		return "", fmt.Errorf("unknown sort option %q", s)
	}
}

// Localize returns the product's title and description in locale, falling
// back field by field to the product's own copy.
func Localize(p *domain.Product, locale domain.Locale) domain.Translation {
	out := domain.Translation{Title: p.Title, Description: p.Description}
	if p.Drone == nil {
		return out
	}
	tr, ok := p.Drone.Translations[locale]
	if !ok {
		return out
	}
	if tr.Title != "" {
		out.Title = tr.Title
	}
	if tr.Description != "" {
		out.Description = tr.Description
	}
	return out
}

// SortProducts orders products in place. Price sorts use the cheapest variant
// price in code and put unpriced products last.
func SortProducts(products []domain.Product, opt SortOption, code domain.CurrencyCode) {
	switch opt {
	case SortPriceAsc, SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			pi, okI := products[i].CheapestPrice(code)
			pj, okJ := products[j].CheapestPrice(code)
			if okI != okJ {
				return okI
			}
			if !okI {
				return false
			}
			if opt == SortPriceAsc {
				return pi.LessThan(pj)
			}
			return pi.GreaterThan(pj)
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}

// Page describes one page of a listing.
type Page struct {
	Number     int `json:"page"`
	TotalPages int `json:"total_pages"`
	Offset     int `json:"-"`
	Limit      int `json:"limit"`
}

// Paginate clamps page into range for n items. An empty listing has one page.
func Paginate(n, page, limit int) Page {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	total := (n + limit - 1) / limit
	if total < 1 {
		total = 1
	}
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	return Page{Number: page, TotalPages: total, Offset: (page - 1) * limit, Limit: limit}
}

// Window returns the slice bounds of p within n items.
func (p Page) Window(n int) (start, end int) {
	start = min(p.Offset, n)
	end = min(p.Offset+p.Limit, n)
	return start, end
}
