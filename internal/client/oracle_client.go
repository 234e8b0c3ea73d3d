// internal/client/oracle_client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"fraud-check/internal/models"
)

const (
	predictPath     = "/predict/"
	maxResponseSize = 1 << 20
)

// Oracle is the remote fraud-scoring service as seen by the controller.
type Oracle interface {
	Send(ctx context.Context, req models.PredictionRequest) ([]byte, error)
}

// OracleClient issues one POST per call to the fraud-scoring endpoint.
// It never retries.
type OracleClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewOracleClient(baseURL string, timeout time.Duration, logger *zap.Logger) *OracleClient {
	return &OracleClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Send posts req to {baseURL}/predict/ and returns the raw JSON body.
// Every failure is a *TransportError.
func (c *OracleClient) Send(ctx context.Context, req models.PredictionRequest) ([]byte, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, &TransportError{Kind: ErrUnreachable, Message: "failed to encode request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+predictPath, bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Kind: ErrUnreachable, Message: "failed to build request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	startTime := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifySendError(err)
	}
	defer resp.Body.Close()

	c.logger.Debug("oracle responded",
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(startTime)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			Kind:       ErrHTTPStatus,
			Message:    fmt.Sprintf("oracle returned status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, classifySendError(fmt.Errorf("failed to read response: %w", err))
	}

	if !json.Valid(body) {
		return nil, &TransportError{Kind: ErrMalformedBody, Message: "oracle returned a non-JSON body"}
	}

	return body, nil
}

func classifySendError(err error) *TransportError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &TransportError{Kind: ErrTimeout, Message: "oracle request timed out", Cause: err}
	}
	return &TransportError{Kind: ErrUnreachable, Message: "oracle unreachable", Cause: err}
}
