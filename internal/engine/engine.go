// Package engine implements the calculator's input state machine and the
// calculation round trip it triggers.
package engine

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Calculator evaluates a pending operation, usually over the network.
type Calculator interface {
	Calculate(ctx context.Context, req Request) (Result, error)
}

// Display receives the entry text and the operation line.
type Display interface {
	SetEntry(text string)
	SetOperation(text string)
}

// LogSink receives history lines.
type LogSink interface {
	Append(entry LogEntry)
}

// Engine owns a State and applies commands to it one at a time.
//
// Dispatch holds the engine lock across the calculation round trip, so
// commands issued while a calculation is in flight are applied after its
// result, in the order they were issued.
type Engine struct {
	calc    Calculator
	display Display
	log     LogSink
	logger  *zap.Logger

	mu    sync.Mutex
	state State
}

// New returns an engine in the cleared state. A nil logger disables logging.
func New(calc Calculator, display Display, log LogSink, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		calc:    calc,
		display: display,
		log:     log,
		logger:  logger,
	}
	e.Reset()
	return e
}

// State returns a snapshot of the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Reset clears the buffer and any pending operation.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

// Dispatch runs cmd to completion and returns the resulting state.
func (e *Engine) Dispatch(ctx context.Context, cmd Command) State {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.logger.Debug("dispatch", zap.Stringer("command", cmd))

	switch cmd.Kind {
	case KindDigit:
		e.state = e.state.PushDigit(cmd.Digit)
		e.display.SetEntry(e.state.Buffer)
	case KindSign:
		e.state = e.state.ApplySign()
		e.display.SetEntry(e.state.Buffer)
	case KindPercent:
		if next, ok := e.state.ApplyPercent(); ok {
			e.state = next
			e.display.SetEntry(e.state.Buffer)
		}
	case KindOperator:
		e.setOperator(ctx, cmd.Operator)
	case KindEquals:
		e.performCalculation(ctx)
	case KindClear:
		e.reset()
	default:
		e.logger.Debug("ignoring unknown command", zap.Stringer("kind", cmd.Kind))
	}

	return e.state
}

func (e *Engine) reset() {
	e.state = NewState()
	e.display.SetEntry(e.state.Buffer)
	e.display.SetOperation(OperationReady)
}

// setOperator evaluates the pending operation first when a new right-hand
// operand was typed since it was installed, so "3 + 4 +" leaves "7 +".
func (e *Engine) setOperator(ctx context.Context, op Operator) {
	if op == OpNone {
		return
	}
	if e.state.Pending() && !e.state.ResetOnDigit {
		e.performCalculation(ctx)
	}
	e.state = e.state.InstallOperator(op)
	e.display.SetOperation(e.state.OperationLine())
}

func (e *Engine) performCalculation(ctx context.Context) {
	req, ok := e.state.Request()
	if !ok {
		return
	}

	res, err := e.calc.Calculate(ctx, req)
	if err != nil {
		e.logger.Warn("calculation failed",
			zap.String("left", req.Left),
			zap.String("operator", req.Operator.String()),
			zap.String("right", req.Right),
			zap.Error(err),
		)
		e.log.Append(LogEntry{Message: err.Error(), Status: StatusError})
		e.display.SetOperation(OperationError)
		e.state = e.state.Failed()
		return
	}

	e.state = e.state.Resolved(res)
	e.log.Append(LogEntry{Message: res.LogLine(), Status: StatusOK})
	e.display.SetEntry(e.state.Buffer)
	e.display.SetOperation(OperationReady)

	e.logger.Debug("calculation completed",
		zap.String("left", req.Left),
		zap.String("operator", req.Operator.String()),
		zap.String("right", req.Right),
		zap.String("result", e.state.Buffer),
	)
}
