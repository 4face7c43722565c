package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/leylaiskandarli/average-squares/internal/api"
	"github.com/leylaiskandarli/average-squares/internal/calc"
	"github.com/leylaiskandarli/average-squares/internal/hermes"
	"github.com/leylaiskandarli/average-squares/internal/metrics"
)

const (
	shutdownTimeout = 10 * time.Second
	requestTimeout  = 5 * time.Second
)

func runServe(c *cli.Context) error {
	cfg, logger, err := loadConfig(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := openBackends(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer b.Close()

	svc := calc.NewService(b.store, b.hermesClient(), metrics.New(prometheus.DefaultRegisterer), logger)

	if b.nats != nil {
		if err := b.nats.Respond(hermes.SubjectCalculationRequest, requestTimeout, svc.HandleRequest); err != nil {
			logger.Warn("failed to serve calculation requests", "subject", hermes.SubjectCalculationRequest, "error", err)
		}
	}

	apiServer := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.NewRouter(b.store, svc, api.RouterConfig{
			AdminToken: cfg.Server.AdminToken,
			RateLimit:  cfg.Server.RateLimit,
		}, logger),
	}
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(prometheus.DefaultGatherer),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("API server starting", "port", cfg.Server.Port)
		return listen(apiServer)
	})
	g.Go(func() error {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		return listen(metricsServer)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Join(apiServer.Shutdown(shutdownCtx), metricsServer.Shutdown(shutdownCtx))
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}

func listen(srv *http.Server) error {
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	}
	return nil
}
