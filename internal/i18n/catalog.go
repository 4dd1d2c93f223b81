package i18n

import (
	"embed"
	"fmt"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"dronehub-backend/internal/domain"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// copyKeys are the plain storefront strings resolved for every locale.
var copyKeys = []string{
	"heading", "subheading", "sortBy", "sortPriceAsc", "sortPriceDesc",
	"viewDetails", "emptyStateTitle", "emptyStateDescription", "selectVariant",
	"addToCart", "outOfStock", "rental", "dailyRate", "startRental",
	"addRentalToCart", "cancel", "startDate", "endDate", "cart", "item",
	"quantity", "price", "days", "summary", "subTotal", "shipping", "discount",
	"taxes", "total", "goToCheckout", "bagEmpty",
}

// Catalog holds the storefront copy, resolved once per locale when built.
type Catalog struct {
	localizers map[domain.Locale]*goi18n.Localizer
	copy       map[domain.Locale]map[string]string
}

// NewCatalog loads the embedded message files and resolves every copy key for
// each supported locale. A key missing from a locale file is an error.
func NewCatalog() (*Catalog, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	c := &Catalog{
		localizers: make(map[domain.Locale]*goi18n.Localizer),
		copy:       make(map[domain.Locale]map[string]string),
	}

	for _, locale := range SupportedLocales() {
		path := fmt.Sprintf("locales/active.%s.yaml", locale)
		if _, err := bundle.LoadMessageFileFS(localeFS, path); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	for _, locale := range SupportedLocales() {
		loc := goi18n.NewLocalizer(bundle, string(locale))
		strs := make(map[string]string, len(copyKeys))
		for _, key := range copyKeys {
			s, tag, err := loc.LocalizeWithTag(&goi18n.LocalizeConfig{MessageID: key})
			if err != nil {
				return nil, fmt.Errorf("locale %s: %w", locale, err)
			}
			if base, _ := tag.Base(); base.String() != string(locale) {
				return nil, fmt.Errorf("locale %s: message %q missing", locale, key)
			}
			strs[key] = s
		}
		c.localizers[locale] = loc
		c.copy[locale] = strs
	}

	return c, nil
}

func (c *Catalog) resolve(locale domain.Locale) domain.Locale {
	if _, ok := c.copy[locale]; ok {
		return locale
	}
	return domain.LocaleEN
}

// Copy returns all plain strings for locale, falling back to English.
func (c *Catalog) Copy(locale domain.Locale) map[string]string {
	src := c.copy[c.resolve(locale)]
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Text returns one string; unknown keys come back as the key itself.
func (c *Catalog) Text(locale domain.Locale, key string) string {
	if s, ok := c.copy[c.resolve(locale)][key]; ok {
		return s
	}
	return key
}

// DayCount renders n with the correctly pluralized day word, e.g. "3 days".
func (c *Catalog) DayCount(locale domain.Locale, n int) string {
	loc := c.localizers[c.resolve(locale)]
	s, err := loc.Localize(&goi18n.LocalizeConfig{
		MessageID:    "dayCount",
		PluralCount:  n,
		TemplateData: map[string]any{"Count": n},
	})
	if err != nil {
		return fmt.Sprintf("%d %s", n, c.Text(locale, "days"))
	}
	return s
}
