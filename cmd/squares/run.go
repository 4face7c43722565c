package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/leylaiskandarli/average-squares/internal/calc"
	"github.com/leylaiskandarli/average-squares/internal/config"
	apperrors "github.com/leylaiskandarli/average-squares/internal/errors"
	"github.com/leylaiskandarli/average-squares/internal/hermes"
	"github.com/leylaiskandarli/average-squares/internal/metrics"
	"github.com/leylaiskandarli/average-squares/internal/parse"
	"github.com/leylaiskandarli/average-squares/internal/squares"
	"github.com/leylaiskandarli/average-squares/internal/store"
)

// Options is one CLI calculation. Numbers and Weights hold raw argument
// fragments; a nil Weights means no --weights flag was given.
type Options struct {
	Numbers     []string
	Weights     []string
	NumbersFile string
	WeightsFile string
	Record      bool
}

func runCalculation(c *cli.Context, opts Options) error {
	numbers, weights, err := resolveOptions(opts)
	if err != nil {
		return err
	}

	var result float64
	if opts.Record {
		result, err = recordCalculation(c, numbers, weights)
	} else {
		result, err = squares.AverageOfSquares(numbers, weights)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, formatResult(result))
	return nil
}

// resolveOptions parses numbers and weights and checks that they pair up
// before anything is computed.
func resolveOptions(opts Options) ([]float64, []float64, error) {
	if opts.Weights != nil && opts.WeightsFile != "" {
		return nil, nil, apperrors.NewArgumentError("weights", "--weights and --weights-file are mutually exclusive")
	}

	var numbers []float64
	var err error
	switch {
	case opts.NumbersFile != "":
		numbers, err = parse.FirstLine(opts.NumbersFile)
	case len(opts.Numbers) == 0:
		return nil, nil, apperrors.NewArgumentError("numbers", "at least one number is required")
	default:
		numbers, err = parse.Numbers(opts.Numbers)
	}
	if err != nil {
		return nil, nil, err
	}

	var weights []float64
	switch {
	case opts.WeightsFile != "":
		weights, err = parse.FirstLine(opts.WeightsFile)
	case opts.Weights != nil:
		weights, err = parse.Numbers(opts.Weights)
	}
	if err != nil {
		return nil, nil, err
	}

	if err := squares.ValidateLengths(numbers, weights); err != nil {
		return nil, nil, apperrors.NewArgumentError("weights", fmt.Sprintf(
			"got %d weights for %d numbers: the number of weights must match the number of numbers "+
				"(quote several weights in one flag, -w \"1 0.5\", or list them after the numbers)",
			len(weights), len(numbers)))
	}
	return numbers, weights, nil
}

func recordCalculation(c *cli.Context, numbers, weights []float64) (float64, error) {
	cfg, logger, err := loadConfig(c)
	if err != nil {
		return 0, err
	}

	ctx := c.Context
	b, err := openBackends(ctx, cfg, logger)
	if err != nil {
		return 0, err
	}
	defer b.Close()

	svc := calc.NewService(b.store, b.hermesClient(), metrics.New(prometheus.NewRegistry()), logger)
	out, err := svc.Calculate(ctx, calc.Input{Numbers: numbers, Weights: weights, Source: store.SourceCLI})
	if err != nil {
		return 0, err
	}
	logger.Info("calculation recorded", "calculation_id", out.Calculation.ID, "result", out.Calculation.Result)
	return out.Calculation.Result, nil
}

// loadConfig reads configuration and builds the logger, which always writes
// to the error stream so stdout carries only the result.
func loadConfig(c *cli.Context) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	return cfg, cfg.Logging.NewLogger(c.App.ErrWriter), nil
}

type backends struct {
	store store.Store
	nats  *hermes.NATSClient
}

// openBackends connects the calculation history and, when configured, NATS.
// Without a database URL history lives in memory for the life of the process.
// A NATS failure only disables events.
func openBackends(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*backends, error) {
	b := &backends{}

	if cfg.Database.URL != "" {
		db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		b.store = db
		logger.Info("connected to database")
	} else {
		b.store = store.NewMemoryStore()
		logger.Warn("no database configured, calculation history is in memory only")
	}

	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			b.nats = hc
			logger.Info("connected to hermes")
		}
	}
	return b, nil
}

// hermesClient returns the NATS client as a hermes.Client, or a nil
// interface when events are off.
func (b *backends) hermesClient() hermes.Client {
	if b.nats == nil {
		return nil
	}
	return b.nats
}

func (b *backends) Close() {
	if b.nats != nil {
		b.nats.Close()
	}
	_ = b.store.Close()
}

// formatResult prints integral values with one decimal place (7.0) and
// everything else in the shortest form that round-trips.
func formatResult(v float64) string {
	abs := math.Abs(v)
	switch {
	case math.IsInf(v, 0) || math.IsNaN(v):
		return strconv.FormatFloat(v, 'g', -1, 64)
	case abs >= 1e16 || (abs != 0 && abs < 1e-4):
		return strconv.FormatFloat(v, 'g', -1, 64)
	case v == math.Trunc(v):
		return strconv.FormatFloat(v, 'f', 1, 64)
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}
