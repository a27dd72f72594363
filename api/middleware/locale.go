package middleware

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/Mostafa3001hamdy/ELEX-Main/internal/cart"
)

const localeQueryParam = "lang"

var localeMatcher = language.NewMatcher([]language.Tag{
	language.Arabic,
	language.English,
})

// Locale resolves the message locale from ?lang=, then Accept-Language, then fallback.
func Locale(fallback string) func(http.Handler) http.Handler {
	fallback = cart.NormalizeLocale(fallback)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Accept-Language")
			locale := ResolveLocale(r, fallback)
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), locale)))
		})
	}
}

// ResolveLocale picks ar or en for the request.
func ResolveLocale(r *http.Request, fallback string) string {
	if q := strings.TrimSpace(r.URL.Query().Get(localeQueryParam)); q != "" {
		if tag, err := language.Parse(q); err == nil {
			if locale, ok := matchLocale(tag); ok {
				return locale
			}
		}
	}

	if header := r.Header.Get("Accept-Language"); header != "" {
		tags, _, err := language.ParseAcceptLanguage(header)
		if err == nil && len(tags) > 0 {
			if locale, ok := matchLocale(tags...); ok {
				return locale
			}
		}
	}
	return fallback
}

func matchLocale(tags ...language.Tag) (string, bool) {
	_, index, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return "", false
	}
	if index == 1 {
		return cart.LocaleEnglish, true
	}
	return cart.LocaleArabic, true
}
