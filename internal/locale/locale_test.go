package locale

import "testing"

func TestDefaultsForCountry(t *testing.T) {
	cases := []struct {
		in       string
		language Language
		currency string
	}{
		{"BD", Bengali, "BDT"},
		{"bangladesh", Bengali, "BDT"},
		{"US", English, "USD"},
		{"United States", English, "USD"},
		{"united  kingdom", English, "GBP"},
		{"DE", English, "EUR"},
		{"", English, "USD"},
		{"Atlantis", English, "USD"},
	}
	for _, tc := range cases {
		got := DefaultsForCountry(tc.in)
		if got.Language != tc.language || got.Currency != tc.currency {
			t.Fatalf("DefaultsForCountry(%q) = %+v, want {%s %s}", tc.in, got, tc.language, tc.currency)
		}
	}
}

func TestLanguageIsValid(t *testing.T) {
	if !English.IsValid() || !Bengali.IsValid() {
		t.Fatal("supported languages must validate")
	}
	if Language("fr").IsValid() || Language("").IsValid() {
		t.Fatal("unsupported languages must not validate")
	}
}

func TestThemeModeIsValid(t *testing.T) {
	for _, m := range []ThemeMode{ThemeAuto, ThemeLight, ThemeDark} {
		if !m.IsValid() {
			t.Fatalf("theme %q should be valid", m)
		}
	}
	if ThemeMode("neon").IsValid() || ThemeMode("").IsValid() {
		t.Fatal("unknown theme modes must not validate")
	}
}

func TestNormalizeCurrency(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"usd", "USD"},
		{" EUR ", "EUR"},
		{"BDT", "BDT"},
		{"???", "USD"},
		{"", "USD"},
	}
	for _, tc := range cases {
		if got := NormalizeCurrency(tc.in); got != tc.out {
			t.Fatalf("NormalizeCurrency(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
	if !ValidCurrency("GBP") || ValidCurrency("NOPE!") {
		t.Fatal("ValidCurrency misclassified a code")
	}
}
