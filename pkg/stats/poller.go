// Package stats periodically samples backend cache and request counters
// so the CLI can render a live view of the quote service.
package stats

import (
	"context"
	"time"

	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/client"
)

// DefaultInterval is how often the poller samples the backend when no
// interval is configured.
const DefaultInterval = 5 * time.Second

// Sample is one observation delivered to the poller's handler. Err is set
// when the fetch failed; Stats is nil in that case.
type Sample struct {
	At    time.Time
	Stats *client.Stats
	Err   error
}

// Handler receives each sample as it is taken.
type Handler func(Sample)

// Poller repeatedly fetches backend statistics on a fixed interval.
type Poller struct {
	api      *client.Client
	interval time.Duration
	handle   Handler
}

func New(api *client.Client, interval time.Duration, handle Handler) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		api:      api,
		interval: interval,
		handle:   handle,
	}
}

// Run polls until the context is cancelled. The first sample is taken
// immediately rather than waiting a full interval.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	stats, err := p.api.GetStats(ctx)
	p.handle(Sample{At: time.Now(), Stats: stats, Err: err})
}
