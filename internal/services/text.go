package services

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.BrazilianPortuguese)

// ValidName accepts free text as a customer name: at least two
// characters and no digits.
func ValidName(name string) bool {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < 2 {
		return false
	}
	for _, r := range name {
		if unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// TitleCase normalizes a name to title case ("maria silva" → "Maria Silva").
func TitleCase(name string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(name)))
}

// FormatPrice renders a value in BRL ("R$ 59.90").
func FormatPrice(value float64) string {
	return fmt.Sprintf("R$ %.2f", value)
}

// Truncate caps a string at max bytes without splitting a rune
// (interaction logs cap stored replies).
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
