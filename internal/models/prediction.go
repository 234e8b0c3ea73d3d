// internal/models/prediction.go
package models

import (
	"encoding/json"
	"errors"
)

type SubmissionStatus string

const (
	StatusIdle     SubmissionStatus = "idle"
	StatusPending  SubmissionStatus = "pending"
	StatusResolved SubmissionStatus = "resolved"
)

// TransactionInput is the raw operator entry, unvalidated.
type TransactionInput struct {
	CardNumber string `json:"card_number"`
	Amount     string `json:"amount"`
}

// UnmarshalJSON accepts amount either as a string or as a JSON number, the
// latter kept verbatim so validation sees exactly what the operator sent.
func (t *TransactionInput) UnmarshalJSON(data []byte) error {
	var raw struct {
		CardNumber string          `json:"card_number"`
		Amount     json.RawMessage `json:"amount"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	t.CardNumber = raw.CardNumber
	t.Amount = ""

	switch {
	case len(raw.Amount) == 0 || string(raw.Amount) == "null":
		return nil
	case raw.Amount[0] == '"':
		return json.Unmarshal(raw.Amount, &t.Amount)
	case raw.Amount[0] == '-' || (raw.Amount[0] >= '0' && raw.Amount[0] <= '9'):
		t.Amount = string(raw.Amount)
		return nil
	default:
		return errors.New("amount must be a string or a number")
	}
}

// ValidatedTransaction is only produced by the input validator.
// Amount is finite and >= 0, CardNumber is non-empty.
type ValidatedTransaction struct {
	CardNumber string
	Amount     float64
}

// DerivedContext holds features computed at submission time.
type DerivedContext struct {
	SecondsSinceMidnight int
}

// PredictionRequest is the body sent to POST {base}/predict/.
type PredictionRequest struct {
	CardNumber string  `json:"card_number"`
	Amount     float64 `json:"amount"`
	Time       *int    `json:"time,omitempty"`
}

// PredictionResult is the canonical verdict shown to the operator.
//
// FraudProbability is always within [0,1]. IsValidCard defaults to true when
// the oracle does not report it: absence of evidence of invalidity, not
// evidence of validity.
type PredictionResult struct {
	IsFraudulent     bool    `json:"is_fraudulent"`
	FraudProbability float64 `json:"fraud_probability"`
	IsValidCard      bool    `json:"is_valid_card"`
	ErrorMessage     *string `json:"error_message"`
}

// SubmissionState is the controller's visible state. Result is set only
// when Status is StatusResolved.
type SubmissionState struct {
	Status       SubmissionStatus  `json:"status"`
	SubmissionID uint64            `json:"submission_id"`
	Result       *PredictionResult `json:"result,omitempty"`
}

// Resolution is delivered to whoever issued a particular submission.
// Stale is set when a newer submission superseded it, in which case Result
// was not published to the visible state.
type Resolution struct {
	SubmissionID uint64
	Result       PredictionResult
	Stale        bool
}
