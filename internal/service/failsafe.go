// internal/service/failsafe.go
package service

import (
	"errors"
	"fmt"
	"strings"

	"fraud-check/internal/models"
)

type FailSafeMode string

const (
	// FailOpen reports "not fraudulent" with an error message so the operator
	// knows the verdict is not authoritative.
	FailOpen FailSafeMode = "fail-open"
	// FailClosed treats an unavailable verdict as maximal risk.
	FailClosed FailSafeMode = "fail-closed"
)

const genericFailureMessage = "An error occurred while processing your request."

// ParseFailSafeMode accepts "open", "fail-open", "closed" and "fail-closed".
func ParseFailSafeMode(s string) (FailSafeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open", "fail-open", "fail_open":
		return FailOpen, nil
	case "closed", "fail-closed", "fail_closed":
		return FailClosed, nil
	default:
		return "", fmt.Errorf("unknown fail-safe policy %q", s)
	}
}

// FailSafePolicy produces the result shown when no oracle verdict is available.
// The mode is fixed for the lifetime of the policy.
type FailSafePolicy struct {
	mode FailSafeMode
}

func NewFailSafePolicy(mode FailSafeMode) *FailSafePolicy {
	return &FailSafePolicy{mode: mode}
}

func (p *FailSafePolicy) Mode() FailSafeMode {
	return p.mode
}

// OnFailure maps a validation, transport or normalization error to a complete result.
func (p *FailSafePolicy) OnFailure(err error) models.PredictionResult {
	if p.mode == FailOpen {
		msg := failureMessage(err)
		return models.PredictionResult{
			IsFraudulent:     false,
			FraudProbability: 0,
			IsValidCard:      true,
			ErrorMessage:     &msg,
		}
	}

	return models.PredictionResult{
		IsFraudulent:     true,
		FraudProbability: 1,
		IsValidCard:      false,
		ErrorMessage:     nil,
	}
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, ErrEmptyCardNumber):
		return "Card number is required."
	case errors.Is(err, ErrInvalidAmount):
		return "Amount must be a non-negative number."
	default:
		return genericFailureMessage
	}
}
