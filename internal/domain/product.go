package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductStatusDraft     ProductStatus = "draft"
	ProductStatusPublished ProductStatus = "published"
)

type ProductOption struct {
	Title  string   `json:"title"`
	Values []string `json:"values"`
}

type Variant struct {
	ID                string                           `json:"id" db:"id"`
	ProductID         string                           `json:"product_id" db:"product_id"`
	Title             string                           `json:"title" db:"title"`
	SKU               string                           `json:"sku" db:"sku"`
	Options           map[string]string                `json:"options" db:"-"`
	ManageInventory   bool                             `json:"manage_inventory" db:"manage_inventory"`
	AllowBackorder    bool                             `json:"allow_backorder" db:"allow_backorder"`
	InventoryQuantity int                              `json:"inventory_quantity" db:"inventory_quantity"`
	Prices            map[CurrencyCode]decimal.Decimal `json:"prices,omitempty" db:"-"`
}

type Product struct {
	ID          string          `json:"id"`
	Handle      string          `json:"handle"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      ProductStatus   `json:"status"`
	WeightGrams int             `json:"weight"`
	CategoryIDs []string        `json:"category_ids"`
	Options     []ProductOption `json:"options"`
	Variants    []Variant       `json:"variants"`
	Drone       *Drone          `json:"drone,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CheapestPrice returns the lowest variant price in the given currency.
func (p *Product) CheapestPrice(code CurrencyCode) (decimal.Decimal, bool) {
	var best decimal.Decimal
	found := false
	for _, v := range p.Variants {
		price, ok := v.Prices[code]
		if !ok {
			continue
		}
		if !found || price.LessThan(best) {
			best = price
			found = true
		}
	}
	return best, found
}

type Category struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	IsActive bool   `json:"is_active" db:"is_active"`
}
