// internal/oracle/handler.go
package oracle

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"fraud-check/internal/models"
)

type Handler struct {
	model       *Model
	logger      *zap.Logger
	predictions *prometheus.CounterVec
}

func NewHandler(model *Model, reg prometheus.Registerer, logger *zap.Logger) *Handler {
	return &Handler{
		model:  model,
		logger: logger,
		predictions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "fraud_oracle_stub",
			Name:      "predictions_total",
			Help:      "Predictions served, by verdict.",
		}, []string{"verdict"}),
	}
}

// Predict handles POST /predict/.
func (h *Handler) Predict(c *gin.Context) {
	var req models.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.CardNumber) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "card_number is required"})
		return
	}

	prediction := h.model.Predict(req)

	verdict := "legitimate"
	if prediction.IsFraudulent {
		verdict = "fraudulent"
	}
	h.predictions.WithLabelValues(verdict).Inc()

	card := models.SummarizeCard(req.CardNumber)
	h.logger.Debug("prediction served",
		zap.String("card_last4", card.Last4),
		zap.String("card_network", card.Network),
		zap.Float64("fraud_probability", prediction.FraudProbability),
		zap.String("verdict", verdict))

	c.JSON(http.StatusOK, prediction)
}
