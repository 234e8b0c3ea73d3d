// internal/models/card_test.go
package models

import (
	"testing"
)

func TestValidateLuhnChecksum(t *testing.T) {
	tests := []struct {
		name       string
		cardNumber string
		want       bool
	}{
		{
			name:       "Valid Visa",
			cardNumber: "4111111111111111",
			want:       true,
		},
		{
			name:       "Valid Mastercard",
			cardNumber: "5555555555554444",
			want:       true,
		},
		{
			name:       "Valid Amex",
			cardNumber: "378282246310005",
			want:       true,
		},
		{
			name:       "Invalid card",
			cardNumber: "1234567890123456",
			want:       false,
		},
		{
			name:       "Non-digit characters",
			cardNumber: "4111abcd11111111",
			want:       false,
		},
		{
			name:       "Empty string",
			cardNumber: "",
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateLuhnChecksum(tt.cardNumber)
			if got != tt.want {
				t.Errorf("ValidateLuhnChecksum() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectCardNetwork(t *testing.T) {
	tests := []struct {
		name       string
		cardNumber string
		want       string
	}{
		{name: "Visa", cardNumber: "4111111111111111", want: "visa"},
		{name: "Mastercard", cardNumber: "5555555555554444", want: "mastercard"},
		{name: "Mastercard 2-series", cardNumber: "2223003122003222", want: "mastercard"},
		{name: "Amex", cardNumber: "378282246310005", want: "amex"},
		{name: "Discover", cardNumber: "6011111111111117", want: "discover"},
		{name: "Unknown", cardNumber: "1234567890123456", want: ""},
		{name: "Too short", cardNumber: "4", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectCardNetwork(tt.cardNumber)
			if got != tt.want {
				t.Errorf("DetectCardNetwork() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSummarizeCard(t *testing.T) {
	got := SummarizeCard(" 4111-1111 1111-1111 ")
	want := CardSummary{Last4: "1111", Network: "visa", LuhnValid: true}
	if got != want {
		t.Errorf("SummarizeCard() = %+v, want %+v", got, want)
	}

	short := SummarizeCard("12")
	if short.Last4 != "" {
		t.Errorf("expected empty last4 for short input, got %q", short.Last4)
	}
	if short.Network != "unknown" {
		t.Errorf("expected unknown network, got %q", short.Network)
	}
}
