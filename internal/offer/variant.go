package offer

import (
	"sort"

	"dronehub-backend/internal/domain"
)

type optionPair struct {
	key   string
	value string
}

// canonicalOptions returns the option map as key-sorted pairs. ok is false
// when any option is unset (empty value).
func canonicalOptions(opts map[string]string) (pairs []optionPair, ok bool) {
	pairs = make([]optionPair, 0, len(opts))
	for k, v := range opts {
		if v == "" {
			return nil, false
		}
		pairs = append(pairs, optionPair{key: k, value: v})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })
	return pairs, true
}

func sameOptions(a, b []optionPair) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SelectVariant returns the single variant whose option values equal chosen
// exactly. Partial selections, unset options and ambiguous matches yield
// no variant.
func SelectVariant(variants []domain.Variant, chosen map[string]string) (*domain.Variant, bool) {
	want, ok := canonicalOptions(chosen)
	if !ok || len(want) == 0 {
		return nil, false
	}

	var match *domain.Variant
	for i := range variants {
		have, ok := canonicalOptions(variants[i].Options)
		if !ok || !sameOptions(have, want) {
			continue
		}
		if match != nil {
			return nil, false
		}
		match = &variants[i]
	}
	return match, match != nil
}

// IsAvailable applies the inventory policy; the first matching rule wins.
func IsAvailable(v *domain.Variant) bool {
	switch {
	case v == nil:
		return false
	case !v.ManageInventory:
		return true
	case v.AllowBackorder:
		return true
	case v.InventoryQuantity > 0:
		return true
	default:
		return false
	}
}

// DefaultOptions preselects the options of a single-variant product.
func DefaultOptions(variants []domain.Variant) map[string]string {
	if len(variants) != 1 {
		return map[string]string{}
	}
	out := make(map[string]string, len(variants[0].Options))
	for k, v := range variants[0].Options {
		out[k] = v
	}
	return out
}
