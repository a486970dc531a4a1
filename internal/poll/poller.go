// internal/poll/poller.go
package poll

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gann-cdf/musical-stairs/internal/detect"
	"github.com/gann-cdf/musical-stairs/internal/note"
	"github.com/gann-cdf/musical-stairs/internal/sensor"
	"github.com/gann-cdf/musical-stairs/internal/status"
	"github.com/gann-cdf/musical-stairs/internal/trigger"
)

// Config is the minimal runtime config the poller needs.
type Config struct {
	Stairs          int
	Interval        time.Duration
	UnbrokenRangeMm uint16
	RequiredBreaks  int
	CooldownCycles  uint32
	Channel         uint8
	Velocity        uint8
}

// slotState pairs a ready slot's sensor handle with its own break history.
type slotState struct {
	slot *sensor.Slot
	h    sensor.Handle
	det  *detect.Detector
}

// Poller drives one full round of sensing and triggering per sweep.
// All mutable state (histories, cooldowns, the counter) is touched only
// from the goroutine calling PollOnce; the sequential sweep is the bus's
// mutual exclusion.
type Poller struct {
	cfg     Config
	slots   []slotState
	sched   *trigger.Scheduler
	pitches *note.PitchTable
	emit    note.Emitter
	log     *slog.Logger

	counter uint32
	snap    status.Snapshot
}

// New creates a poller over the ready slots, in the order given. Each ready
// slot gets a fresh all-unbroken history. Ignored and failed slots are
// excluded from polling.
func New(cfg Config, bus sensor.Bus, slots []*sensor.Slot, pitches *note.PitchTable, emit note.Emitter, log *slog.Logger) (*Poller, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("poll: interval must be > 0")
	}
	if bus == nil {
		return nil, errors.New("poll: bus required")
	}
	if emit == nil {
		return nil, errors.New("poll: emitter required")
	}
	if pitches == nil {
		return nil, errors.New("poll: pitch table required")
	}
	if log == nil {
		log = slog.Default()
	}

	sched, err := trigger.New(cfg.Stairs, cfg.CooldownCycles)
	if err != nil {
		return nil, err
	}

	p := &Poller{
		cfg:     cfg,
		sched:   sched,
		pitches: pitches,
		emit:    emit,
		log:     log,
		snap:    status.FromSlots(slots),
	}
	for _, s := range slots {
		if s.Ignored || s.State != sensor.StateReady {
			continue
		}
		det, err := detect.New(cfg.RequiredBreaks)
		if err != nil {
			return nil, err
		}
		p.slots = append(p.slots, slotState{
			slot: s,
			h:    sensor.NewHandle(bus, s.Addr),
			det:  det,
		})
	}
	if len(p.slots) == 0 {
		return nil, errors.New("poll: no ready slots to poll")
	}
	return p, nil
}

// Counter returns the current poll counter value.
func (p *Poller) Counter() uint32 { return p.counter }

// Snapshot returns the running status counters.
func (p *Poller) Snapshot() status.Snapshot { return p.snap }

// PollOnce performs exactly one sweep: every ready slot is read, run
// through its break detector, and on a qualifying edge dispatched through
// the shared per-stair cooldown. The counter increments once at the end of
// the sweep, wrapping well before the uint32 boundary.
//
// Nothing in a sweep is fatal: transport errors and sensor timeouts decay
// the slot's break history instead of triggering or aborting.
func (p *Poller) PollOnce() SweepResult {
	res := SweepResult{
		At:      time.Now(),
		Counter: p.counter,
		Reads:   make([]SlotRead, 0, len(p.slots)),
	}

	for _, st := range p.slots {
		r, err := st.h.Read()
		if err != nil {
			// A transport fault reads like a timed-out sensor.
			p.log.Debug("read failed", "slot", st.slot.ID.String(), "err", err)
			r = sensor.Reading{DistanceMm: 0, TimedOut: true}
		}
		if r.TimedOut {
			res.Timeouts++
		}

		broken := detect.Broken(r.DistanceMm, r.TimedOut, p.cfg.UnbrokenRangeMm)
		edge := st.det.Observe(broken)

		if edge && p.sched.Authorize(st.slot.ID.Stair, p.counter) {
			key := p.pitches.ForStair(st.slot.ID.Stair)
			if err := p.emit.NoteOn(p.cfg.Channel, key, p.cfg.Velocity); err != nil {
				p.log.Warn("note emit failed", "slot", st.slot.ID.String(), "key", key, "err", err)
			}
			res.Fired = append(res.Fired, FiredNote{
				Slot:  st.slot.ID,
				Stair: st.slot.ID.Stair,
				Key:   key,
			})
		}

		res.Reads = append(res.Reads, SlotRead{
			Slot:       st.slot.ID,
			DistanceMm: r.DistanceMm,
			TimedOut:   r.TimedOut,
			Broken:     broken,
			Edge:       edge,
		})
	}

	p.counter = (p.counter + 1) % trigger.CounterWrap

	p.snap.Sweeps++
	p.snap.Timeouts += uint64(res.Timeouts)
	p.snap.NotesFired += uint64(len(res.Fired))

	return res
}

// ready returns the polled slot IDs in sweep order.
func (p *Poller) ready() []string {
	ids := make([]string, 0, len(p.slots))
	for _, st := range p.slots {
		ids = append(ids, st.slot.ID.String())
	}
	return ids
}
