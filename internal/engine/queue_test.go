package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"
)

// blockingCalculator holds each calculation until release is closed.
type blockingCalculator struct {
	started chan Request
	release chan struct{}
}

func (b *blockingCalculator) Calculate(ctx context.Context, req Request) (Result, error) {
	b.started <- req
	select {
	case <-b.release:
		return Result{Value: 7, Left: req.Left, Operator: req.Operator.String(), Right: req.Right}, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

func TestQueueAppliesCommandsAfterInFlightCalculation(t *testing.T) {
	defer goleak.VerifyNone(t)

	calc := &blockingCalculator{started: make(chan Request, 1), release: make(chan struct{})}
	display := &recordingDisplay{}
	e := New(calc, display, NewLog(0), zap.NewNop())
	q := NewQueue(e, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- q.Run(ctx) }()

	cmds, _ := ParseKeys("3+4=")
	for _, cmd := range cmds {
		if !q.Submit(cmd) {
			t.Fatalf("submit %v rejected", cmd)
		}
	}

	select {
	case <-calc.started:
	case <-time.After(time.Second):
		t.Fatal("calculation never started")
	}

	// A clear pressed while the request is in flight lands after the result.
	q.Submit(Clear)
	close(calc.release)

	deadline := time.After(time.Second)
	for {
		entry, operation := display.snapshot()
		if entry == "0" && operation == OperationReady && !e.State().Pending() && e.State().Buffer == "0" {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("queue did not drain, display %q/%q", entry, operation)
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestQueueSubmitReportsFull(t *testing.T) {
	e := New(&fakeCalculator{}, &recordingDisplay{}, NewLog(0), zap.NewNop())
	q := NewQueue(e, 1)

	if !q.Submit(DigitKey("1")) {
		t.Fatal("expected first submit to succeed")
	}
	if q.Submit(DigitKey("2")) {
		t.Fatal("expected second submit to be dropped")
	}
}
