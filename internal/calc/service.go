// Package calc runs average-of-squares calculations on behalf of the CLI, the
// HTTP API and NATS requesters, recording each one and announcing it.
package calc

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	apperrors "github.com/leylaiskandarli/average-squares/internal/errors"
	"github.com/leylaiskandarli/average-squares/internal/hermes"
	"github.com/leylaiskandarli/average-squares/internal/metrics"
	"github.com/leylaiskandarli/average-squares/internal/parse"
	"github.com/leylaiskandarli/average-squares/internal/squares"
	"github.com/leylaiskandarli/average-squares/internal/store"
)

// NotFinite is the reason given when a calculation overflows.
const NotFinite = "result is not a finite number"

// Input is one calculation request. Nil Weights means equal weighting.
type Input struct {
	Numbers []float64
	Weights []float64
	Source  store.Source
}

// Outcome is a recorded calculation together with its term breakdown.
type Outcome struct {
	Calculation *store.Calculation `json:"calculation"`
	Breakdown   squares.Result     `json:"breakdown"`
}

type Service struct {
	store   store.Store
	hermes  hermes.Client
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewService wires a Service. h may be nil to disable event publishing.
func NewService(s store.Store, h hermes.Client, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{store: s, hermes: h, metrics: m, logger: logger}
}

// Calculate validates the input, computes the breakdown, records it and
// publishes a completion event. Publishing failures are logged only.
func (s *Service) Calculate(ctx context.Context, in Input) (*Outcome, error) {
	start := time.Now()

	breakdown, err := squares.Breakdown(in.Numbers, in.Weights)
	if err == nil && (math.IsInf(breakdown.Total, 0) || math.IsNaN(breakdown.Total)) {
		err = apperrors.NewArgumentError("numbers", NotFinite)
	}
	if err != nil {
		s.Reject(in.Source, err)
		return nil, err
	}

	numbers := in.Numbers
	if numbers == nil {
		numbers = []float64{}
	}
	c := &store.Calculation{
		Numbers: numbers,
		Weights: in.Weights,
		Result:  breakdown.Total,
		Source:  in.Source,
	}
	if err := s.store.CreateCalculation(ctx, c); err != nil {
		return nil, fmt.Errorf("record calculation: %w", err)
	}

	s.publish(hermes.SubjectCalculationCompleted(c.ID.String()), hermes.CalculationCompletedEvent{
		CalculationID: c.ID.String(),
		Source:        string(c.Source),
		Count:         breakdown.Count,
		Weighted:      in.Weights != nil,
		Result:        c.Result,
		Timestamp:     c.CreatedAt,
	})
	s.metrics.ObserveCalculation(string(in.Source), in.Weights != nil, breakdown.Count, time.Since(start))

	s.logger.Debug("calculation recorded",
		"calculation_id", c.ID,
		"source", c.Source,
		"count", breakdown.Count,
		"result", c.Result,
	)
	return &Outcome{Calculation: c, Breakdown: breakdown}, nil
}

// Reject accounts for input that failed before a calculation could run,
// such as unparseable tokens.
func (s *Service) Reject(source store.Source, err error) {
	kind := string(apperrors.KindOf(err))
	s.metrics.ObserveRejection(string(source), kind)
	s.publish(hermes.SubjectCalculationRejected(string(source)), hermes.CalculationRejectedEvent{
		Source:    string(source),
		Kind:      kind,
		Error:     err.Error(),
		Timestamp: time.Now().UTC(),
	})
	s.logger.Info("calculation rejected", "source", source, "kind", kind, "error", err)
}

func (s *Service) publish(subject string, event interface{}) {
	if s.hermes == nil {
		return
	}
	if err := s.hermes.Publish(subject, event); err != nil {
		s.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}

// Resolve picks explicit values when present and otherwise parses tokens.
// Both absent yields nil.
func Resolve(values []float64, tokens []string) ([]float64, error) {
	if values != nil {
		return values, nil
	}
	if tokens != nil {
		return parse.Numbers(tokens)
	}
	return nil, nil
}
