package main

import (
	"context"
	"errors"
	"fmt"

	"retrocalc/internal/calculator"
	"retrocalc/internal/observability"
)

type shutdownFunc func(context.Context) error

// initTelemetry sets up logging, tracing and metrics in dependency order and
// returns one function that flushes all of them, last started first.
func initTelemetry(ctx context.Context, cfg config) (shutdownFunc, error) {
	var hooks []shutdownFunc
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(hooks) - 1; i >= 0; i-- {
			errs = append(errs, hooks[i](ctx))
		}
		observability.SyncLogger()
		return errors.Join(errs...)
	}

	if err := observability.InitLogger(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	if observability.LogExportEnabled() {
		logShutdown, err := observability.InitLogging(ctx)
		if err != nil {
			return nil, fmt.Errorf("init log export: %w", err)
		}
		hooks = append(hooks, logShutdown)
	}

	traceShutdown, err := observability.InitTracing(ctx)
	if err != nil {
		_ = shutdown(ctx)
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	hooks = append(hooks, traceShutdown)

	metricShutdown, err := observability.InitMetrics(ctx)
	if err != nil {
		_ = shutdown(ctx)
		return nil, fmt.Errorf("init meter provider: %w", err)
	}
	hooks = append(hooks, metricShutdown)

	// Instruments are created against the provider installed above so they
	// export from the first request.
	if err := calculator.InitMetrics(); err != nil {
		_ = shutdown(ctx)
		return nil, fmt.Errorf("init calculator metrics: %w", err)
	}

	return shutdown, nil
}
