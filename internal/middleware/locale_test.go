package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func localeFor(t *testing.T, defaultLocale string, lookup CountryLookup, headers map[string]string) (string, string) {
	t.Helper()
	var gotLocale, gotCountry string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLocale = LocaleFromContext(r.Context())
		gotCountry = CountryFromContext(r.Context())
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	Locale(defaultLocale, lookup)(next).ServeHTTP(rec, req)
	return gotLocale, gotCountry
}

func TestLocaleExplicitHeaderWins(t *testing.T) {
	locale, _ := localeFor(t, "fr", nil, map[string]string{
		"X-Locale":        "en",
		"Accept-Language": "fr-FR,fr;q=0.9",
	})
	if locale != "en" {
		t.Fatalf("locale = %q, want en", locale)
	}
}

func TestLocaleAcceptLanguage(t *testing.T) {
	locale, country := localeFor(t, "en", nil, map[string]string{
		"Accept-Language": "fr-CA,fr;q=0.9,en;q=0.5",
	})
	if locale != "fr" {
		t.Fatalf("locale = %q, want fr", locale)
	}
	if country != "CA" {
		t.Fatalf("country = %q, want CA", country)
	}
}

func TestLocaleFrancophoneCountry(t *testing.T) {
	lookup := func(ip string) (string, error) { return "BE", nil }
	locale, country := localeFor(t, "en", lookup, nil)
	if locale != "fr" {
		t.Fatalf("locale = %q, want fr for a francophone country", locale)
	}
	if country != "BE" {
		t.Fatalf("country = %q, want BE", country)
	}
}

func TestLocaleNonFrancophoneCountry(t *testing.T) {
	lookup := func(ip string) (string, error) { return "DE", nil }
	locale, _ := localeFor(t, "fr", lookup, nil)
	if locale != "en" {
		t.Fatalf("locale = %q, want en for a non-francophone country", locale)
	}
}

func TestLocaleProxyCountryHeader(t *testing.T) {
	_, country := localeFor(t, "fr", nil, map[string]string{"CF-IPCountry": "ch"})
	if country != "CH" {
		t.Fatalf("country = %q, want CH", country)
	}
}

func TestLocaleDefaultsToFrench(t *testing.T) {
	locale, country := localeFor(t, "", nil, nil)
	if locale != "fr" {
		t.Fatalf("locale = %q, want fr", locale)
	}
	if country != "" {
		t.Fatalf("country = %q, want empty", country)
	}
}

func TestNormalizeLocale(t *testing.T) {
	cases := map[string]string{
		"fr":    "fr",
		"fr-FR": "fr",
		"FR-ca": "fr",
		"en":    "en",
		"en-US": "en",
		"de":    "en",
		"":      "en",
	}
	for in, want := range cases {
		if got := normalizeLocale(in); got != want {
			t.Fatalf("normalizeLocale(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	if got := ClientIP(req); got != "203.0.113.7" {
		t.Fatalf("ClientIP() = %q, want 203.0.113.7", got)
	}
	req.Header.Set("X-Forwarded-For", "198.51.100.2, 10.0.0.1")
	if got := ClientIP(req); got != "198.51.100.2" {
		t.Fatalf("ClientIP() with X-Forwarded-For = %q, want 198.51.100.2", got)
	}
}
