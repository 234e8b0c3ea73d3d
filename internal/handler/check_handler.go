// internal/handler/check_handler.go
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fraud-check/internal/models"
	"fraud-check/internal/service"
	"fraud-check/pkg/middleware"
)

// Controller is the narrow surface of the submission controller the handler needs.
type Controller interface {
	Submit(ctx context.Context, raw models.TransactionInput) <-chan models.Resolution
	CurrentState() models.SubmissionState
	Policy() service.FailSafeMode
}

type CheckHandler struct {
	controller Controller
	logger     *zap.Logger
}

func NewCheckHandler(controller Controller, logger *zap.Logger) *CheckHandler {
	return &CheckHandler{
		controller: controller,
		logger:     logger,
	}
}

type CheckResponse struct {
	SubmissionID uint64                  `json:"submission_id"`
	Stale        bool                    `json:"stale"`
	Result       models.PredictionResult `json:"result"`
	Card         models.CardSummary      `json:"card"`
	Policy       service.FailSafeMode    `json:"policy"`
}

type StateResponse struct {
	models.SubmissionState
	Pending bool `json:"pending"`
}

// SubmitCheck handles POST /api/v1/checks
func (h *CheckHandler) SubmitCheck(c *gin.Context) {
	var req models.TransactionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	select {
	case res := <-h.controller.Submit(c.Request.Context(), req):
		c.JSON(http.StatusOK, CheckResponse{
			SubmissionID: res.SubmissionID,
			Stale:        res.Stale,
			Result:       res.Result,
			Card:         models.SummarizeCard(req.CardNumber),
			Policy:       h.controller.Policy(),
		})
	case <-c.Request.Context().Done():
		h.logger.Info("client went away before the check resolved",
			zap.String("request_id", middleware.GetRequestID(c)))
	}
}

// GetCurrentState handles GET /api/v1/checks/current
func (h *CheckHandler) GetCurrentState(c *gin.Context) {
	state := h.controller.CurrentState()
	c.JSON(http.StatusOK, StateResponse{
		SubmissionState: state,
		Pending:         state.Status == models.StatusPending,
	})
}
