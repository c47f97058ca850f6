package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"retrocalc/internal/clock"
	"retrocalc/internal/engine"
	"retrocalc/internal/tui"
)

// runInteractive starts the TUI with the engine queue and the clock poller
// running beside it. It returns when the user quits or ctx is cancelled.
func runInteractive(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	client := newClient()
	sink := tui.NewSink()
	eng := engine.New(client, sink, sink, logger)
	queue := engine.NewQueue(eng, engine.DefaultQueueSize)

	p := tea.NewProgram(tui.New(queue), tea.WithAltScreen(), tea.WithContext(ctx))
	sink.Attach(p)

	poller := clock.NewPoller(client, sink.SetClock,
		clock.WithInterval(viper.GetDuration("clock_interval")),
		clock.WithLogger(logger),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return queue.Run(gctx) })
	g.Go(func() error { return poller.Run(gctx) })

	_, runErr := p.Run()
	cancel()

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", runErr)
	}
	return nil
}
