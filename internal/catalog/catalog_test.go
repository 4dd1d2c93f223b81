package catalog

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dronehub-backend/internal/domain"
)

func TestParseRentalRates(t *testing.T) {
	t.Run("Numbers and numeric strings", func(t *testing.T) {
		rates, err := ParseRentalRates(json.RawMessage(`{"eur": 50, "USD": "75.5"}`))
		require.NoError(t, err)
		assert.Len(t, rates, 2)
		assert.True(t, rates["eur"].Equal(decimal.NewFromInt(50)))
		assert.True(t, rates["usd"].Equal(decimal.RequireFromString("75.5")))
	})

	t.Run("Null and empty", func(t *testing.T) {
		for _, raw := range []string{"", "null", "  "} {
			rates, err := ParseRentalRates(json.RawMessage(raw))
			require.NoError(t, err)
			assert.Nil(t, rates)
		}
	})

	t.Run("Rejected blobs", func(t *testing.T) {
		for _, raw := range []string{
			`[50, 75]`,
			`{"eur": "fifty"}`,
			`{"eur": true}`,
			`{"eur": -1}`,
			`{"euro": 50}`,
		} {
			_, err := ParseRentalRates(json.RawMessage(raw))
			assert.ErrorIs(t, err, domain.ErrInvalidConfiguration, raw)
		}
	})

	t.Run("Round trip through storage encoding", func(t *testing.T) {
		in := map[domain.CurrencyCode]decimal.Decimal{"eur": decimal.NewFromInt(50)}
		b, err := MarshalRentalRates(in)
		require.NoError(t, err)
		out, err := ParseRentalRates(b)
		require.NoError(t, err)
		assert.True(t, out["eur"].Equal(decimal.NewFromInt(50)))
	})
}

func TestParseTranslations(t *testing.T) {
	tr, err := ParseTranslations(json.RawMessage(`{"en": {"title": "Drone"}, "FR": {"title": "Drone FR", "description": "Un drone"}}`))
	require.NoError(t, err)
	assert.Equal(t, "Drone", tr[domain.LocaleEN].Title)
	assert.Equal(t, "Un drone", tr[domain.LocaleFR].Description)

	tr, err = ParseTranslations(nil)
	require.NoError(t, err)
	assert.Nil(t, tr)

	_, err = ParseTranslations(json.RawMessage(`{"not a locale!": {}}`))
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)

	_, err = ParseTranslations(json.RawMessage(`"text"`))
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestParseMarketingMethod(t *testing.T) {
	m, err := ParseMarketingMethod("")
	require.NoError(t, err)
	assert.Equal(t, domain.MarketingMethodSale, m)

	m, err = ParseMarketingMethod("sale_and_rent")
	require.NoError(t, err)
	assert.Equal(t, domain.MarketingMethodSaleAndRent, m)

	_, err = ParseMarketingMethod("lease")
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestLocalize(t *testing.T) {
	p := &domain.Product{
		Title:       "Drone Pro X1",
		Description: "Base description",
		Drone: &domain.Drone{Translations: map[domain.Locale]domain.Translation{
			domain.LocaleFR: {Title: "Drone Pro X1 (FR)"},
		}},
	}

	fr := Localize(p, domain.LocaleFR)
	assert.Equal(t, "Drone Pro X1 (FR)", fr.Title)
	assert.Equal(t, "Base description", fr.Description)

	en := Localize(p, domain.LocaleEN)
	assert.Equal(t, "Drone Pro X1", en.Title)

	plain := Localize(&domain.Product{Title: "No drone"}, domain.LocaleFR)
	assert.Equal(t, "No drone", plain.Title)
}

func priced(id string, created time.Time, amounts ...int64) domain.Product {
	p := domain.Product{ID: id, CreatedAt: created}
	for _, a := range amounts {
		p.Variants = append(p.Variants, domain.Variant{Prices: map[domain.CurrencyCode]decimal.Decimal{"eur": decimal.NewFromInt(a)}})
	}
	return p
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestSortProducts(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fixture := func() []domain.Product {
		return []domain.Product{
			priced("a", base, 3000),
			priced("b", base.Add(time.Hour), 1000, 5000),
			priced("none", base.Add(2*time.Hour)),
			priced("c", base.Add(3*time.Hour), 2000),
		}
	}

	products := fixture()
	SortProducts(products, SortPriceAsc, "eur")
	assert.Equal(t, []string{"b", "c", "a", "none"}, ids(products))

	products = fixture()
	SortProducts(products, SortPriceDesc, "eur")
	assert.Equal(t, []string{"a", "c", "b", "none"}, ids(products))

	products = fixture()
	SortProducts(products, SortCreatedAt, "eur")
	assert.Equal(t, []string{"c", "none", "b", "a"}, ids(products))

	products = fixture()
	SortProducts(products, SortPriceAsc, "usd")
	assert.Equal(t, []string{"a", "b", "none", "c"}, ids(products))
}

func TestParseSortOption(t *testing.T) {
	opt, err := ParseSortOption("")
	require.NoError(t, err)
	assert.Equal(t, SortCreatedAt, opt)

	opt, err = ParseSortOption("price_desc")
	require.NoError(t, err)
	assert.Equal(t, SortPriceDesc, opt)

	_, err = ParseSortOption("name")
	assert.Error(t, err)
}

func TestPaginate(t *testing.T) {
	p := Paginate(30, 2, 0)
	assert.Equal(t, Page{Number: 2, TotalPages: 3, Offset: 12, Limit: 12}, p)

	start, end := Paginate(30, 3, 12).Window(30)
	assert.Equal(t, 24, start)
	assert.Equal(t, 30, end)

	assert.Equal(t, 3, Paginate(30, 99, 12).Number)
	assert.Equal(t, 1, Paginate(30, -4, 12).Number)

	empty := Paginate(0, 5, 12)
	assert.Equal(t, 1, empty.Number)
	assert.Equal(t, 1, empty.TotalPages)
	start, end = empty.Window(0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)

	assert.Equal(t, 1, Paginate(12, 1, 12).TotalPages)
	assert.Equal(t, 2, Paginate(13, 1, 12).TotalPages)
}
