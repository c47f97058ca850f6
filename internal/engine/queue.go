package engine

import (
	"context"

	"go.uber.org/zap"
)

// DefaultQueueSize is the number of key presses a Queue buffers.
const DefaultQueueSize = 64

// Queue feeds commands to an Engine from a single goroutine, in submission
// order. Front ends submit from their event loop and never block on the
// network.
type Queue struct {
	engine *Engine
	cmds   chan Command
}

// NewQueue returns a queue in front of e holding up to size pending commands.
func NewQueue(e *Engine, size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{engine: e, cmds: make(chan Command, size)}
}

// Submit enqueues cmd. It reports false when the queue is full and the
// command was dropped.
func (q *Queue) Submit(cmd Command) bool {
	select {
	case q.cmds <- cmd:
		return true
	default:
		q.engine.logger.Warn("command queue full, dropping key", zap.Stringer("command", cmd))
		return false
	}
}

// Run applies queued commands until ctx is done.
func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-q.cmds:
			q.engine.Dispatch(ctx, cmd)
		}
	}
}
