package formatter

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// FormatPhone formats a phone number to E164 format
func FormatPhone(phone, countryCode string) (string, error) {
	num, err := phonenumbers.Parse(phone, strings.ToUpper(countryCode))
	if err != nil {
		return "", err
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", phonenumbers.ErrNotANumber
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// NormalizeEmail lower-cases and trims an address used as a lookup key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
