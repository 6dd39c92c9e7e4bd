package auth

import "strings"

// CleanContactNumber normalizes a phone number the way the mobile clients
// send it: strip everything that is not a digit, then drop the leading "91"
// country prefix when the remainder is a 12 digit number.
func CleanContactNumber(raw string) string {
	var sb strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	cleaned := sb.String()
	if len(cleaned) == 12 && strings.HasPrefix(cleaned, "91") {
		cleaned = cleaned[2:]
	}
	return cleaned
}
