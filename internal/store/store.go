package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Source string

const (
	SourceCLI  Source = "cli"
	SourceAPI  Source = "api"
	SourceNATS Source = "nats"
)

// Calculation is one recorded average-of-squares invocation. Weights is nil
// when the caller relied on equal weighting.
type Calculation struct {
	ID        uuid.UUID `json:"id"`
	Numbers   []float64 `json:"numbers"`
	Weights   []float64 `json:"weights,omitempty"`
	Result    float64   `json:"result"`
	Source    Source    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

type CalculationFilter struct {
	Source Source
	Limit  int
	Offset int
}

type CalculationStats struct {
	TotalCalculations int        `json:"total_calculations"`
	AvgResult         float64    `json:"avg_result"`
	LastCalculatedAt  *time.Time `json:"last_calculated_at,omitempty"`
}

const defaultListLimit = 100

type Store interface {
	CreateCalculation(ctx context.Context, c *Calculation) error
	GetCalculation(ctx context.Context, id uuid.UUID) (*Calculation, error)
	ListCalculations(ctx context.Context, filter CalculationFilter) ([]*Calculation, error)
	GetStats(ctx context.Context) (*CalculationStats, error)

	Close() error
}
