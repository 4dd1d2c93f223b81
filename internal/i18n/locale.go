package i18n

import (
	"strings"

	"dronehub-backend/internal/domain"
)

// LanguageOption ties a storefront locale to the country code used in URLs.
type LanguageOption struct {
	Locale      domain.Locale `json:"locale"`
	Label       string        `json:"label"`
	CountryCode string        `json:"country_code"`
}

var languageOptions = []LanguageOption{
	{Locale: domain.LocaleFR, Label: "FR", CountryCode: "fr"},
	{Locale: domain.LocaleEN, Label: "EN", CountryCode: "us"},
}

// SupportedLocales lists the locales the copy catalog is built for.
func SupportedLocales() []domain.Locale {
	return []domain.Locale{domain.LocaleEN, domain.LocaleFR}
}

// LanguageOptions returns a copy of the language switcher options.
func LanguageOptions() []LanguageOption {
	out := make([]LanguageOption, len(languageOptions))
	copy(out, languageOptions)
	return out
}

// LocaleFromCountry maps a storefront country code to its locale.
// Only France gets French; every other country falls back to English.
func LocaleFromCountry(countryCode string) domain.Locale {
	if strings.ToLower(strings.TrimSpace(countryCode)) == "fr" {
		return domain.LocaleFR
	}
	return domain.LocaleEN
}

func LanguageOptionByLocale(locale domain.Locale) (LanguageOption, bool) {
	for _, opt := range languageOptions {
		if opt.Locale == locale {
			return opt, true
		}
	}
	return LanguageOption{}, false
}

func LanguageOptionByCountry(countryCode string) (LanguageOption, bool) {
	cc := strings.ToLower(strings.TrimSpace(countryCode))
	for _, opt := range languageOptions {
		if opt.CountryCode == cc {
			return opt, true
		}
	}
	return LanguageOption{}, false
}
