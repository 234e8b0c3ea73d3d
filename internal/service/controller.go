// internal/service/controller.go
// Submission state machine
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"fraud-check/internal/client"
	"fraud-check/internal/metrics"
	"fraud-check/internal/models"
)

// SubmissionController sequences validation, request building, the oracle
// call and normalization for each operator submission, and owns the visible
// state. Only the latest submission's result is ever published; results of
// superseded submissions are discarded when they arrive.
type SubmissionController struct {
	builder *RequestBuilder
	oracle  client.Oracle
	policy  *FailSafePolicy
	metrics *metrics.Metrics
	logger  *zap.Logger

	mu     sync.Mutex
	lastID uint64
	state  models.SubmissionState

	inflight sync.WaitGroup
}

func NewSubmissionController(builder *RequestBuilder, oracle client.Oracle, policy *FailSafePolicy, m *metrics.Metrics, logger *zap.Logger) *SubmissionController {
	return &SubmissionController{
		builder: builder,
		oracle:  oracle,
		policy:  policy,
		metrics: m,
		logger:  logger,
		state:   models.SubmissionState{Status: models.StatusIdle},
	}
}

// Submit starts a new submission and returns without waiting for the oracle.
// The returned channel receives exactly one Resolution and is then closed.
//
// Invalid input is resolved through the fail-safe policy before Submit
// returns and never reaches the network. The oracle call is detached from
// ctx's cancellation: a superseded or abandoned call runs to completion and
// its result is dropped.
func (c *SubmissionController) Submit(ctx context.Context, raw models.TransactionInput) <-chan models.Resolution {
	out := make(chan models.Resolution, 1)

	c.mu.Lock()
	c.lastID++
	id := c.lastID
	c.state = models.SubmissionState{Status: models.StatusPending, SubmissionID: id}
	c.mu.Unlock()

	card := models.SummarizeCard(raw.CardNumber)
	log := c.logger.With(
		zap.Uint64("submission_id", id),
		zap.String("card_last4", card.Last4),
		zap.String("card_network", card.Network))

	tx, err := Validate(raw)
	if err != nil {
		log.Info("submission rejected by validation", zap.Error(err))
		c.metrics.ObserveSubmission(metrics.OutcomeInvalidInput, string(c.policy.Mode()))
		out <- c.publish(id, c.policy.OnFailure(err), log)
		close(out)
		return out
	}

	callCtx := context.WithoutCancel(ctx)

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		defer close(out)

		result := c.evaluate(callCtx, tx, log)
		out <- c.publish(id, result, log)
	}()

	return out
}

// CurrentState returns the visible state: the latest submission and, once it
// has resolved, its result.
func (c *SubmissionController) CurrentState() models.SubmissionState {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.state
	if state.Result != nil {
		result := *state.Result
		state.Result = &result
	}
	return state
}

// Pending reports whether the latest submission is still waiting on the oracle.
func (c *SubmissionController) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Status == models.StatusPending
}

// Policy returns the deployment's fail-safe mode.
func (c *SubmissionController) Policy() FailSafeMode {
	return c.policy.Mode()
}

// Wait blocks until every in-flight oracle call has finished.
func (c *SubmissionController) Wait() {
	c.inflight.Wait()
}

func (c *SubmissionController) evaluate(ctx context.Context, tx models.ValidatedTransaction, log *zap.Logger) models.PredictionResult {
	req := c.builder.Build(tx)
	policy := string(c.policy.Mode())

	c.metrics.InFlight.Inc()
	startTime := time.Now()
	body, err := c.oracle.Send(ctx, req)
	elapsed := time.Since(startTime)
	c.metrics.InFlight.Dec()

	if err != nil {
		kind := "error"
		var terr *client.TransportError
		if errors.As(err, &terr) {
			kind = terr.Kind.String()
		}
		c.metrics.ObserveOracleCall(kind, elapsed)
		c.metrics.ObserveSubmission(metrics.OutcomeTransportError, policy)
		log.Warn("oracle call failed, applying fail-safe policy",
			zap.Error(err),
			zap.String("kind", kind),
			zap.String("policy", policy))
		return c.policy.OnFailure(err)
	}
	c.metrics.ObserveOracleCall("ok", elapsed)

	result, err := Normalize(body)
	if err != nil {
		c.metrics.ObserveSubmission(metrics.OutcomeNormalizationError, policy)
		log.Warn("oracle response unusable, applying fail-safe policy",
			zap.Error(err),
			zap.String("policy", policy))
		return c.policy.OnFailure(err)
	}

	c.metrics.ObserveSubmission(metrics.OutcomeScored, policy)
	log.Info("transaction scored",
		zap.Bool("is_fraudulent", result.IsFraudulent),
		zap.Float64("fraud_probability", result.FraudProbability),
		zap.Bool("is_valid_card", result.IsValidCard))

	return result
}

// publish applies result if id is still the latest submission.
func (c *SubmissionController) publish(id uint64, result models.PredictionResult, log *zap.Logger) models.Resolution {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id != c.lastID {
		c.metrics.ObserveStale()
		log.Debug("discarding stale result", zap.Uint64("latest_submission_id", c.lastID))
		return models.Resolution{SubmissionID: id, Result: result, Stale: true}
	}

	published := result
	c.state = models.SubmissionState{
		Status:       models.StatusResolved,
		SubmissionID: id,
		Result:       &published,
	}
	return models.Resolution{SubmissionID: id, Result: result}
}
