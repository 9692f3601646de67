package monitor

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/densikit/densikit/pkg/scale"
)

// DefaultPollInterval is how often a Poller re-detects when no interval
// is given.
const DefaultPollInterval = 2 * time.Second

// Poller periodically refreshes a scale.State from a provider. It is the
// fallback for platforms with no change notification: cheap to run and
// safe to leave running for the process lifetime.
type Poller struct {
	state    *scale.State
	detect   scale.DetectFunc
	interval time.Duration
	logger   *log.Logger
}

// PollerOptions configures NewPoller. Zero values get defaults.
type PollerOptions struct {
	// Interval between detections. Defaults to DefaultPollInterval.
	Interval time.Duration

	// Logger for refresh activity. Defaults to a silent logger.
	Logger *log.Logger
}

// NewPoller builds a Poller refreshing state from detect.
func NewPoller(state *scale.State, detect scale.DetectFunc, opts PollerOptions) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultPollInterval
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Poller{
		state:    state,
		detect:   detect,
		interval: opts.Interval,
		logger:   opts.Logger,
	}
}

// Run refreshes once immediately, then on every tick until ctx is done.
func (p *Poller) Run(ctx context.Context) {
	p.refresh()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh()
		}
	}
}

func (p *Poller) refresh() {
	before := p.state.Get()
	p.state.Refresh(p.detect)
	if after := p.state.Get(); after != before {
		p.logger.Debug("scale factor changed", "from", before, "to", after)
	}
}
