package offer

import (
	"fmt"

	"dronehub-backend/internal/domain"
)

// Mode says which actions a product's marketing method permits.
type Mode struct {
	CanSell bool `json:"can_sell"`
	CanRent bool `json:"can_rent"`
}

// ResolveMode maps a drone's marketing method to the actions it allows.
func ResolveMode(d *domain.Drone) (Mode, error) {
	if d == nil {
		return Mode{}, fmt.Errorf("%w: no drone record", domain.ErrInvalidConfiguration)
	}
	switch d.MarketingMethod {
	case domain.MarketingMethodSale:
		return Mode{CanSell: true}, nil
	case domain.MarketingMethodRent:
		return Mode{CanRent: true}, nil
	case domain.MarketingMethodSaleAndRent:
		return Mode{CanSell: true, CanRent: true}, nil
	default:
		return Mode{}, fmt.Errorf("%w: marketing method %q", domain.ErrInvalidConfiguration, d.MarketingMethod)
	}
}
