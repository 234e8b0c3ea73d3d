package service

import (
	"errors"
	"testing"

	"fraud-check/internal/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		body string
		want models.PredictionResult
	}{
		{
			name: "missing is_valid_card defaults to true",
			body: `{"is_fraudulent": false, "fraud_probability": 0.0123}`,
			want: models.PredictionResult{IsFraudulent: false, FraudProbability: 0.0123, IsValidCard: true},
		},
		{
			name: "is_valid_card copied",
			body: `{"is_fraudulent": true, "fraud_probability": 0.31, "is_valid_card": false}`,
			want: models.PredictionResult{IsFraudulent: true, FraudProbability: 0.31, IsValidCard: false},
		},
		{
			name: "null is_valid_card defaults to true",
			body: `{"is_fraudulent": false, "fraud_probability": 0.5, "is_valid_card": null}`,
			want: models.PredictionResult{IsFraudulent: false, FraudProbability: 0.5, IsValidCard: true},
		},
		{
			name: "probability above one clamped",
			body: `{"fraud_probability": 1.4, "is_fraudulent": true}`,
			want: models.PredictionResult{IsFraudulent: true, FraudProbability: 1, IsValidCard: true},
		},
		{
			name: "probability below zero clamped",
			body: `{"fraud_probability": -0.2, "is_fraudulent": false}`,
			want: models.PredictionResult{IsFraudulent: false, FraudProbability: 0, IsValidCard: true},
		},
		{
			name: "extra fields ignored",
			body: `{"is_fraudulent": false, "fraud_probability": 0.2, "model": "rf-v2"}`,
			want: models.PredictionResult{IsFraudulent: false, FraudProbability: 0.2, IsValidCard: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize([]byte(tt.body))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ErrorMessage != nil {
				t.Errorf("ErrorMessage should be nil, got %q", *got.ErrorMessage)
			}
			if got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalize_Unusable(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{name: "missing is_fraudulent", body: `{"fraud_probability": 0.2}`, wantField: "is_fraudulent"},
		{name: "missing fraud_probability", body: `{"is_fraudulent": true}`, wantField: "fraud_probability"},
		{name: "null is_fraudulent", body: `{"is_fraudulent": null, "fraud_probability": 0.2}`, wantField: "is_fraudulent"},
		{name: "empty object", body: `{}`, wantField: "is_fraudulent"},
		{name: "string probability", body: `{"is_fraudulent": true, "fraud_probability": "0.9"}`, wantField: "fraud_probability"},
		{name: "numeric verdict", body: `{"is_fraudulent": 1, "fraud_probability": 0.9}`, wantField: "is_fraudulent"},
		{name: "array body", body: `[{"is_fraudulent": true}]`, wantField: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize([]byte(tt.body))

			var nerr *NormalizationError
			if !errors.As(err, &nerr) {
				t.Fatalf("expected *NormalizationError, got %v", err)
			}
			if nerr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", nerr.Field, tt.wantField)
			}
			if nerr.Error() == "" {
				t.Error("expected a message")
			}
		})
	}
}
