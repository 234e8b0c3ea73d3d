package oracle

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"fraud-check/internal/client"
	"fraud-check/internal/models"
	"fraud-check/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter() (*gin.Engine, *Handler) {
	h := NewHandler(NewModel(0.5), prometheus.NewRegistry(), zap.NewNop())
	router := gin.New()
	router.POST("/predict/", h.Predict)
	return router, h
}

func TestPredict_BadRequest(t *testing.T) {
	router, _ := setupRouter()

	for _, body := range []string{`{invalid-json}`, `{"amount": 10}`, `{"card_number": "  ", "amount": 10}`} {
		req := httptest.NewRequest(http.MethodPost, "/predict/", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, w.Code)
		}
	}
}

// The stub must satisfy the same contract the service expects from the real oracle.
func TestPredict_ServesOracleContract(t *testing.T) {
	router, h := setupRouter()
	srv := httptest.NewServer(router)
	defer srv.Close()

	oracle := client.NewOracleClient(srv.URL, time.Second, zap.NewNop())
	body, err := oracle.Send(context.Background(), models.PredictionRequest{
		CardNumber: "1234567890123456",
		Amount:     10,
	})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	result, err := service.Normalize(body)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if !result.IsFraudulent || result.IsValidCard || result.ErrorMessage != nil {
		t.Errorf("unexpected result %+v", result)
	}
	if got := testutil.ToFloat64(h.predictions.WithLabelValues("fraudulent")); got != 1 {
		t.Errorf("expected 1 fraudulent prediction counted, got %v", got)
	}
}
