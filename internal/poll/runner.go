// internal/poll/runner.go
package poll

import (
	"context"
	"strings"
	"time"

	"github.com/gann-cdf/musical-stairs/internal/status"
)

// statusLogEvery is how many sweeps pass between status log lines
// (about a minute at the default interval).
const statusLogEvery = 6000

// Run drives the sweep loop on a ticker and emits every SweepResult on
// out, until the context is cancelled. One goroutine, strictly sequential
// sweeps, no overlap.
func (p *Poller) Run(ctx context.Context, out chan<- SweepResult) {
	p.log.Info("polling started",
		"slots", strings.Join(p.ready(), " "),
		"interval", p.cfg.Interval,
		"cooldown_cycles", p.cfg.CooldownCycles,
	)

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res := p.PollOnce()
			if p.snap.Sweeps%statusLogEvery == 0 {
				p.log.Info("staircase status", status.Attrs(p.snap)...)
			}
			if out == nil {
				continue
			}
			select {
			case <-ctx.Done():
				return
			case out <- res:
			}
		}
	}
}
