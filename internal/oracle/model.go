// internal/oracle/model.go
package oracle

import (
	"math"

	"fraud-check/internal/models"
)

const (
	// Amounts above this saturate the amount feature.
	maxTypicalAmount = 10000.0
	unusualHourEnd   = 5 * 3600
)

// Model is a linear scorer with a sigmoid output. It stands in for the
// remote fraud oracle during local development.
type Model struct {
	weights   map[string]float64
	bias      float64
	threshold float64
}

// NewModel returns a model with fixed weights.
func NewModel(threshold float64) *Model {
	return &Model{
		weights: map[string]float64{
			"amount":          2.5,
			"unusual_hour":    1.0,
			"invalid_card":    3.0,
			"unknown_network": 0.5,
		},
		bias:      -2.0,
		threshold: threshold,
	}
}

// Prediction is the body returned by POST /predict/.
type Prediction struct {
	IsFraudulent     bool    `json:"is_fraudulent"`
	FraudProbability float64 `json:"fraud_probability"`
	IsValidCard      bool    `json:"is_valid_card"`
}

// Predict scores a request. A card failing the Luhn check is always
// reported as fraudulent.
func (m *Model) Predict(req models.PredictionRequest) Prediction {
	card := models.SummarizeCard(req.CardNumber)
	probability := m.Probability(ExtractFeatures(req, card))

	return Prediction{
		IsFraudulent:     probability >= m.threshold || !card.LuhnValid,
		FraudProbability: probability,
		IsValidCard:      card.LuhnValid,
	}
}

// Probability applies the weights to a feature set.
func (m *Model) Probability(features map[string]float64) float64 {
	score := m.bias
	for feature, value := range features {
		if weight, exists := m.weights[feature]; exists {
			score += weight * value
		}
	}
	return sigmoid(score)
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// ExtractFeatures maps a request onto the model's inputs, each in [0, 1].
func ExtractFeatures(req models.PredictionRequest, card models.CardSummary) map[string]float64 {
	features := map[string]float64{
		"amount":          math.Min(math.Max(req.Amount, 0)/maxTypicalAmount, 1.0),
		"unusual_hour":    0,
		"invalid_card":    0,
		"unknown_network": 0,
	}

	if req.Time != nil && *req.Time >= 0 && *req.Time < unusualHourEnd {
		features["unusual_hour"] = 1
	}
	if !card.LuhnValid {
		features["invalid_card"] = 1
	}
	if card.Network == "unknown" {
		features["unknown_network"] = 1
	}

	return features
}
