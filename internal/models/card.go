// internal/models/card.go
package models

import "strings"

// CardSummary describes a card without exposing its number.
type CardSummary struct {
	Last4     string `json:"last4"`
	Network   string `json:"network"`
	LuhnValid bool   `json:"luhn_valid"`
}

// SummarizeCard builds a CardSummary from a raw card number. Spaces and
// dashes are ignored. The Luhn result is informational only; the oracle's
// is_valid_card stays authoritative.
func SummarizeCard(cardNumber string) CardSummary {
	digits := normalizeDigits(cardNumber)

	summary := CardSummary{
		Network:   DetectCardNetwork(digits),
		LuhnValid: ValidateLuhnChecksum(digits),
	}
	if len(digits) >= 4 {
		summary.Last4 = digits[len(digits)-4:]
	}
	if summary.Network == "" {
		summary.Network = "unknown"
	}

	return summary
}

// ValidateLuhnChecksum validates a card number using Luhn algorithm
func ValidateLuhnChecksum(cardNumber string) bool {
	if cardNumber == "" {
		return false
	}

	var sum int
	parity := len(cardNumber) % 2

	for i, digit := range cardNumber {
		if digit < '0' || digit > '9' {
			return false
		}
		d := int(digit - '0')
		if i%2 == parity {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}

	return sum%10 == 0
}

// DetectCardNetwork detects the card network based on IIN
func DetectCardNetwork(cardNumber string) string {
	if len(cardNumber) < 2 {
		return ""
	}

	prefix := cardNumber[:2]

	switch {
	case prefix == "34" || prefix == "37":
		return "amex"
	case prefix >= "40" && prefix <= "49":
		return "visa"
	case prefix >= "51" && prefix <= "55":
		return "mastercard"
	case prefix >= "22" && prefix <= "27":
		return "mastercard"
	case prefix >= "60" && prefix <= "65":
		return "discover"
	default:
		return ""
	}
}

func normalizeDigits(cardNumber string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, strings.TrimSpace(cardNumber))
}
