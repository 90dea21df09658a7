// Package instrument validates payment instruments (UPI handles and cards)
// and classifies card networks. All functions are pure.
package instrument

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// Network is the card scheme derived from the card number prefix.
type Network string

const (
	NetworkVisa       Network = "visa"
	NetworkMastercard Network = "mastercard"
	NetworkAmex       Network = "amex"
	NetworkRupay      Network = "rupay"
	NetworkUnknown    Network = "unknown"
)

var (
	vpaPattern        = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9]+$`)
	cardNumberPattern = regexp.MustCompile(`^\d{13,19}$`)
)

// ValidateVPA reports whether handle has the name@bank shape.
func ValidateVPA(handle string) bool {
	return vpaPattern.MatchString(handle)
}

// Normalize strips whitespace (including Unicode spaces) and hyphens from a card number.
func Normalize(number string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, number)
}

// ValidateLuhn reports whether number is 13-19 digits with a valid Luhn checksum.
func ValidateLuhn(number string) bool {
	cleaned := Normalize(number)
	if !cardNumberPattern.MatchString(cleaned) {
		return false
	}

	sum := 0
	double := false
	for i := len(cleaned) - 1; i >= 0; i-- {
		digit := int(cleaned[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}

	return sum%10 == 0
}

// ClassifyNetwork maps a card number to its network by prefix.
func ClassifyNetwork(number string) Network {
	cleaned := Normalize(number)
	if cleaned == "" {
		return NetworkUnknown
	}

	if cleaned[0] == '4' {
		return NetworkVisa
	}
	if len(cleaned) < 2 {
		return NetworkUnknown
	}

	switch prefix := cleaned[:2]; {
	case prefix >= "51" && prefix <= "55":
		return NetworkMastercard
	case prefix == "34" || prefix == "37":
		return NetworkAmex
	case prefix == "60" || prefix == "65" || (prefix >= "81" && prefix <= "89"):
		return NetworkRupay
	default:
		return NetworkUnknown
	}
}

// ValidateExpiry reports whether month/year is not before now's calendar month.
// Two-digit years are read as 20xx.
func ValidateExpiry(month, year int, now time.Time) bool {
	if month < 1 || month > 12 {
		return false
	}
	if year < 100 {
		year += 2000
	}

	currentYear, currentMonth := now.Year(), int(now.Month())
	if year != currentYear {
		return year > currentYear
	}
	return month >= currentMonth
}

// ExtractLast4 returns the trailing four characters of the normalized number.
func ExtractLast4(number string) string {
	cleaned := Normalize(number)
	if len(cleaned) <= 4 {
		return cleaned
	}
	return cleaned[len(cleaned)-4:]
}
