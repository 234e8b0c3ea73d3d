// internal/service/request_builder.go
package service

import (
	"time"

	"fraud-check/internal/models"
)

// RequestBuilder assembles the oracle request for a validated transaction.
// Some oracle versions do not accept the time feature, so it is opt-in.
type RequestBuilder struct {
	includeTime bool
	now         func() time.Time
}

func NewRequestBuilder(includeTime bool, now func() time.Time) *RequestBuilder {
	if now == nil {
		now = time.Now
	}
	return &RequestBuilder{
		includeTime: includeTime,
		now:         now,
	}
}

// Build returns a fresh request on every call.
func (b *RequestBuilder) Build(tx models.ValidatedTransaction) models.PredictionRequest {
	req := models.PredictionRequest{
		CardNumber: tx.CardNumber,
		Amount:     tx.Amount,
	}

	if b.includeTime {
		ctx := DeriveContext(b.now())
		seconds := ctx.SecondsSinceMidnight
		req.Time = &seconds
	}

	return req
}

// DeriveContext computes submission-time features from t's wall clock.
func DeriveContext(t time.Time) models.DerivedContext {
	return models.DerivedContext{SecondsSinceMidnight: SecondsSinceMidnight(t)}
}

// SecondsSinceMidnight returns the wall-clock seconds elapsed since midnight
// in t's location, in [0, 86399].
func SecondsSinceMidnight(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}
