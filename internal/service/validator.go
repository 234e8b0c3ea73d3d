// internal/service/validator.go
package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"fraud-check/internal/models"
)

// ValidationError reports a malformed operator entry. It never reaches the network.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

var (
	ErrEmptyCardNumber = &ValidationError{Field: "card_number", Reason: "card number is required"}
	ErrInvalidAmount   = &ValidationError{Field: "amount", Reason: "amount must be a finite, non-negative number"}
)

// Validate checks raw input before any network call.
func Validate(raw models.TransactionInput) (models.ValidatedTransaction, error) {
	cardNumber := strings.TrimSpace(raw.CardNumber)
	if cardNumber == "" {
		return models.ValidatedTransaction{}, ErrEmptyCardNumber
	}

	amountStr := strings.TrimSpace(raw.Amount)
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return models.ValidatedTransaction{}, fmt.Errorf("%w (got %q)", ErrInvalidAmount, raw.Amount)
	}
	if amount == 0 {
		// folds -0 into 0
		amount = 0
	}

	return models.ValidatedTransaction{
		CardNumber: cardNumber,
		Amount:     amount,
	}, nil
}
