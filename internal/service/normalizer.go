// internal/service/normalizer.go
package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"fraud-check/internal/models"
)

// NormalizationError means the oracle answered but the answer lacks a usable
// fraud determination. It is handled like a transport failure.
type NormalizationError struct {
	Field string
	Cause error
}

func (e *NormalizationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("unusable oracle response: %v", e.Cause)
	}
	if e.Cause != nil {
		return fmt.Sprintf("unusable oracle response field %q: %v", e.Field, e.Cause)
	}
	return fmt.Sprintf("oracle response is missing %q", e.Field)
}

func (e *NormalizationError) Unwrap() error {
	return e.Cause
}

type oracleResponse struct {
	IsFraudulent     *bool    `json:"is_fraudulent"`
	FraudProbability *float64 `json:"fraud_probability"`
	IsValidCard      *bool    `json:"is_valid_card"`
}

// Normalize maps an oracle body into a PredictionResult.
//
// is_fraudulent and fraud_probability are required; a null counts as missing.
// fraud_probability is clamped to [0,1]. A missing is_valid_card defaults to true.
func Normalize(body []byte) (models.PredictionResult, error) {
	var resp oracleResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return models.PredictionResult{}, &NormalizationError{Field: typeErr.Field, Cause: err}
		}
		return models.PredictionResult{}, &NormalizationError{Cause: err}
	}

	if resp.IsFraudulent == nil {
		return models.PredictionResult{}, &NormalizationError{Field: "is_fraudulent"}
	}
	if resp.FraudProbability == nil {
		return models.PredictionResult{}, &NormalizationError{Field: "fraud_probability"}
	}

	result := models.PredictionResult{
		IsFraudulent:     *resp.IsFraudulent,
		FraudProbability: clampProbability(*resp.FraudProbability),
		IsValidCard:      true,
	}
	if resp.IsValidCard != nil {
		result.IsValidCard = *resp.IsValidCard
	}

	return result, nil
}

func clampProbability(p float64) float64 {
	return math.Max(0, math.Min(1, p))
}
