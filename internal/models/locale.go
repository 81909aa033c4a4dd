package models

import (
	"strings"

	"github.com/jakoblorz/create-ai-project/internal/errors"
)

// Locale is a language code naming one variant of every localized artifact.
type Locale string

const (
	LocaleJA Locale = "ja"
	LocaleEN Locale = "en"
)

// SupportedLocales lists every locale in resolution order.
var SupportedLocales = []Locale{LocaleJA, LocaleEN}

// IsValid checks if the locale is supported
func (l Locale) IsValid() bool {
	for _, s := range SupportedLocales {
		if l == s {
			return true
		}
	}
	return false
}

// String returns the string representation of Locale
func (l Locale) String() string {
	return string(l)
}

// ParseLocale parses a string into a supported Locale
func ParseLocale(s string) (Locale, error) {
	l := Locale(strings.TrimSpace(s))
	if !l.IsValid() {
		return "", errors.Newf(errors.ErrUnsupportedLocale, "unsupported locale: %q", s).
			WithHint("supported locales: " + supportedLocaleList())
	}
	return l, nil
}

func supportedLocaleList() string {
	names := make([]string, len(SupportedLocales))
	for i, l := range SupportedLocales {
		names[i] = string(l)
	}
	return strings.Join(names, ", ")
}
