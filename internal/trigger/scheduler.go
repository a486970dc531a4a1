// internal/trigger/scheduler.go
package trigger

import "errors"

// CounterWrap is the modulus of the shared poll counter. The counter wraps
// to zero here instead of at the uint32 boundary; cooldown comparisons are
// modular, and the wrap range vastly exceeds any sane cooldown, so a
// wrapped counter can never read as "recently fired".
const CounterWrap uint32 = 1 << 30

// Elapsed returns the number of poll cycles from last to now, modulo
// CounterWrap. Both arguments must be below CounterWrap.
func Elapsed(now, last uint32) uint32 {
	return (now + CounterWrap - last) % CounterWrap
}

// Scheduler suppresses rapid re-triggers per stair.
//
// Both sensors of a stair share one cooldown: it tracks stairs, not slots,
// so a fire from the left beam blocks the right beam for the same window.
type Scheduler struct {
	cooldown  uint32
	lastFired []uint32
	fired     []bool
}

// New creates a scheduler for `stairs` stairs with the given cooldown in
// poll cycles. A stair with no recorded fire yet has no cooldown to wait
// out, so its first qualifying edge fires at whatever counter value it
// arrives.
func New(stairs int, cooldownCycles uint32) (*Scheduler, error) {
	if stairs < 1 {
		return nil, errors.New("trigger: at least one stair required")
	}
	if cooldownCycles >= CounterWrap {
		return nil, errors.New("trigger: cooldown must be below the counter wrap range")
	}

	return &Scheduler{
		cooldown:  cooldownCycles,
		lastFired: make([]uint32, stairs),
		fired:     make([]bool, stairs),
	}, nil
}

// Authorize decides whether an edge on the given stair may fire at poll
// counter `now`. It fires iff the stair has never fired or at least the
// cooldown has elapsed since it last did, and records `now` as the new
// last-fired index when it does. No state changes on a suppressed edge.
func (s *Scheduler) Authorize(stair int, now uint32) bool {
	if stair < 0 || stair >= len(s.lastFired) {
		return false
	}
	if s.fired[stair] && Elapsed(now, s.lastFired[stair]) < s.cooldown {
		return false
	}
	s.fired[stair] = true
	s.lastFired[stair] = now
	return true
}
