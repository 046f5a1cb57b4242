// Package locale maps countries to default language and currency settings
// and defines the persisted preference enums.
package locale

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// Language is a persisted UI language code.
type Language string

const (
	English Language = "en"
	Bengali Language = "bn"
)

// DefaultLanguage is used for unsupported regions and empty input.
const DefaultLanguage = English

// IsValid reports whether l is a supported language code.
func (l Language) IsValid() bool {
	switch l {
	case English, Bengali:
		return true
	default:
		return false
	}
}

// Tag returns the BCP 47 tag for a supported language.
func (l Language) Tag() language.Tag {
	tag, err := language.Parse(string(l))
	if err != nil {
		return language.English
	}
	return tag
}

// ThemeMode is a persisted theme preference.
type ThemeMode string

const (
	ThemeAuto  ThemeMode = "auto"
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// DefaultTheme follows the system appearance.
const DefaultTheme = ThemeAuto

// IsValid reports whether m is a known theme mode.
func (m ThemeMode) IsValid() bool {
	switch m {
	case ThemeAuto, ThemeLight, ThemeDark:
		return true
	default:
		return false
	}
}

// DefaultCurrency is the fallback ISO 4217 code.
const DefaultCurrency = "USD"

// CountryDefaults is the preferred language and currency for a country.
type CountryDefaults struct {
	Language Language `json:"language"`
	Currency string   `json:"currency"`
}

var fallbackDefaults = CountryDefaults{Language: DefaultLanguage, Currency: DefaultCurrency}

// Keyed by ISO alpha-2 code and by normalized country name, both of which
// reverse geocoding may hand us.
var countryDefaults = map[string]CountryDefaults{
	// Asia
	"BD": {Bengali, "BDT"}, "BANGLADESH": {Bengali, "BDT"},
	"IN": {English, "INR"}, "INDIA": {English, "INR"},
	"PK": {English, "PKR"}, "PAKISTAN": {English, "PKR"},
	"LK": {English, "LKR"}, "SRI_LANKA": {English, "LKR"},
	"SG": {English, "SGD"}, "SINGAPORE": {English, "SGD"},
	"MY": {English, "MYR"}, "MALAYSIA": {English, "MYR"},
	"ID": {English, "IDR"}, "INDONESIA": {English, "IDR"},
	"TH": {English, "THB"}, "THAILAND": {English, "THB"},
	"VN": {English, "VND"}, "VIETNAM": {English, "VND"},
	"PH": {English, "PHP"}, "PHILIPPINES": {English, "PHP"},

	// Americas
	"US": {English, "USD"}, "USA": {English, "USD"}, "UNITED_STATES": {English, "USD"},
	"CA": {English, "CAD"}, "CANADA": {English, "CAD"},
	"BR": {English, "BRL"}, "BRAZIL": {English, "BRL"},
	"MX": {English, "MXN"}, "MEXICO": {English, "MXN"},

	// Europe
	"GB": {English, "GBP"}, "UK": {English, "GBP"}, "UNITED_KINGDOM": {English, "GBP"},
	"DE": {English, "EUR"}, "GERMANY": {English, "EUR"},
	"FR": {English, "EUR"}, "FRANCE": {English, "EUR"},
	"IT": {English, "EUR"}, "ITALY": {English, "EUR"},
	"ES": {English, "EUR"}, "SPAIN": {English, "EUR"},
	"NL": {English, "EUR"}, "NETHERLANDS": {English, "EUR"},
	"CH": {English, "CHF"}, "SWITZERLAND": {English, "CHF"},

	// Oceania
	"AU": {English, "AUD"}, "AUSTRALIA": {English, "AUD"},
	"NZ": {English, "NZD"}, "NEW_ZEALAND": {English, "NZD"},

	// Africa
	"ZA": {English, "ZAR"}, "SOUTH_AFRICA": {English, "ZAR"},
	"NG": {English, "NGN"}, "NIGERIA": {English, "NGN"},
	"KE": {English, "KES"}, "KENYA": {English, "KES"},
	"EG": {English, "EGP"}, "EGYPT": {English, "EGP"},

	// Middle East
	"AE": {English, "AED"}, "UNITED_ARAB_EMIRATES": {English, "AED"},
	"SA": {English, "SAR"}, "SAUDI_ARABIA": {English, "SAR"},
	"TR": {English, "TRY"}, "TURKEY": {English, "TRY"},
}

// DefaultsForCountry resolves a country code or name to its preferred
// language and currency. Unknown or empty input yields the en/USD fallback.
func DefaultsForCountry(identifier string) CountryDefaults {
	key := strings.Join(strings.Fields(strings.ToUpper(strings.TrimSpace(identifier))), "_")
	if key == "" {
		return fallbackDefaults
	}
	if d, ok := countryDefaults[key]; ok {
		return d
	}
	return fallbackDefaults
}

// ValidCurrency reports whether code is a well-formed ISO 4217 code.
func ValidCurrency(code string) bool {
	_, err := currency.ParseISO(code)
	return err == nil
}

// NormalizeCurrency upper-cases and validates a currency code, falling back
// to DefaultCurrency for anything unparseable.
func NormalizeCurrency(code string) string {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return DefaultCurrency
	}
	return unit.String()
}
