// Package clock polls the server clock and renders it as a time of day.
package clock

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	// Placeholder is rendered whenever the clock cannot be fetched.
	Placeholder = "--:--:--"

	DefaultInterval = 5 * time.Second
	DefaultLayout   = "15:04:05"
)

// Source provides the current time, usually from the API.
type Source interface {
	Time(ctx context.Context) (time.Time, error)
}

// Poller fetches the time once at start and then every interval, handing
// the rendered text to a sink.
type Poller struct {
	src      Source
	sink     func(string)
	interval time.Duration
	layout   string
	loc      *time.Location
	logger   *zap.Logger
}

// Option configures a Poller.
type Option func(*Poller)

func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

func WithLayout(layout string) Option {
	return func(p *Poller) {
		if layout != "" {
			p.layout = layout
		}
	}
}

func WithLocation(loc *time.Location) Option {
	return func(p *Poller) {
		if loc != nil {
			p.loc = loc
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	}
}

func NewPoller(src Source, sink func(string), opts ...Option) *Poller {
	p := &Poller{
		src:      src,
		sink:     sink,
		interval: DefaultInterval,
		layout:   DefaultLayout,
		loc:      time.Local,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run ticks until ctx is done and returns ctx.Err().
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.Tick(ctx)
		}
	}
}

// Tick performs one fetch and returns what it rendered. A fetch never
// outlives the polling interval, so ticks do not overlap.
func (p *Poller) Tick(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	text := Placeholder
	t, err := p.src.Time(ctx)
	if err != nil {
		p.logger.Debug("clock update failed", zap.Error(err))
	} else {
		text = p.Render(t)
	}

	p.sink(text)
	return text
}

// Render formats t as a local time of day.
func (p *Poller) Render(t time.Time) string {
	return t.In(p.loc).Format(p.layout)
}
