package utils

import "strings"

// NormalizePhone cleans a WhatsApp sender into a bare digit string:
// strips the "whatsapp:" prefix, drops non-digits and a leading zero,
// and prefixes the Brazilian country code when none is present.
func NormalizePhone(phone string) string {
	phone = strings.TrimPrefix(phone, "whatsapp:")

	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	cleaned := digits.String()

	cleaned = strings.TrimPrefix(cleaned, "0")

	// National numbers have at most 11 digits (DDD + 9 digits)
	if cleaned != "" && len(cleaned) <= 11 {
		cleaned = "55" + cleaned
	}

	return cleaned
}
