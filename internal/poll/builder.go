// internal/poll/builder.go
package poll

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/gann-cdf/musical-stairs/internal/config"
	"github.com/gann-cdf/musical-stairs/internal/note"
	"github.com/gann-cdf/musical-stairs/internal/note/rtmidi"
	"github.com/gann-cdf/musical-stairs/internal/note/serialmidi"
	"github.com/gann-cdf/musical-stairs/internal/sensor"
	"github.com/gann-cdf/musical-stairs/internal/sensor/vl53l0x"
	"github.com/gann-cdf/musical-stairs/internal/status"
)

// Build constructs a ready-to-run Poller from validated, normalized
// configuration: it opens the I2C bus and the note backend, runs sensor
// bring-up, and wires the detectors and the cooldown scheduler.
// Fail fast at startup; the returned closer releases bus and emitter.
func Build(cfg *config.Config, log *slog.Logger) (*Poller, func() error, error) {
	if log == nil {
		log = slog.Default()
	}
	st := cfg.Staircase

	// ---- slots, in fixed deterministic sweep order ----

	slots, err := buildSlots(st)
	if err != nil {
		return nil, nil, err
	}

	// ---- bus + bring-up ----

	bus, err := vl53l0x.New(vl53l0x.Config{
		I2CDev:      st.Bus.I2CDev,
		DefaultAddr: st.Bus.DefaultAddress,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("bus build failed: %w", err)
	}

	assigner, err := sensor.NewAssigner(bus, sensor.AssignConfig{
		Settle:  time.Duration(st.Bringup.SettleMs) * time.Millisecond,
		Timeout: time.Duration(st.Sense.TimeoutMs) * time.Millisecond,
		Strict:  st.Bringup.Strict,
	}, log)
	if err != nil {
		bus.Close()
		return nil, nil, err
	}

	ready, err := assigner.Run(slots)
	if err != nil {
		bus.Close()
		return nil, nil, fmt.Errorf("bring-up failed: %w", err)
	}
	log.Info("bring-up complete", status.Attrs(status.FromSlots(slots))...)
	if ready == 0 {
		bus.Close()
		return nil, nil, fmt.Errorf("bring-up: no sensors came up")
	}

	// ---- note emitter + pitch table ----

	emit, err := buildEmitter(st.Notes, log)
	if err != nil {
		bus.Close()
		return nil, nil, err
	}

	pitches, err := note.NewPitchTable(st.Notes.RootKey, st.Notes.Scale, st.Stairs)
	if err != nil {
		emit.Close()
		bus.Close()
		return nil, nil, err
	}

	// ---- poller ----

	p, err := New(Config{
		Stairs:          st.Stairs,
		Interval:        time.Duration(st.Poll.IntervalMs) * time.Millisecond,
		UnbrokenRangeMm: st.Sense.UnbrokenRangeMm,
		RequiredBreaks:  st.Sense.RequiredBreaks,
		CooldownCycles:  uint32(st.Poll.CooldownCycles),
		Channel:         st.Notes.Channel,
		Velocity:        st.Notes.Velocity,
	}, bus, slots, pitches, emit, log)
	if err != nil {
		emit.Close()
		bus.Close()
		return nil, nil, err
	}

	closer := func() error {
		eerr := emit.Close()
		berr := bus.Close()
		if eerr != nil {
			return eerr
		}
		return berr
	}
	return p, closer, nil
}

// buildSlots materializes the slot wiring, sorted by (stair, side) so the
// bring-up and sweep order never depends on yaml ordering.
func buildSlots(st config.StaircaseConfig) ([]*sensor.Slot, error) {
	slots := make([]*sensor.Slot, 0, len(st.Slots))
	for _, sc := range st.Slots {
		side, err := sensor.ParseSide(sc.Side)
		if err != nil {
			return nil, err
		}
		slots = append(slots, &sensor.Slot{
			ID:        sensor.SlotID{Stair: sc.Stair, Side: side},
			Addr:      sc.Address,
			EnablePin: sc.EnablePin,
			Ignored:   sc.Ignore,
		})
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].ID.Stair != slots[j].ID.Stair {
			return slots[i].ID.Stair < slots[j].ID.Stair
		}
		return slots[i].ID.Side < slots[j].ID.Side
	})
	return slots, nil
}

func buildEmitter(nc config.NoteConfig, log *slog.Logger) (note.Emitter, error) {
	switch nc.Backend {
	case "rtmidi":
		e, err := rtmidi.New(rtmidi.Config{PortPattern: nc.PortPattern})
		if err != nil {
			return nil, fmt.Errorf("note backend failed: %w", err)
		}
		return e, nil
	case "serialmidi":
		e, err := serialmidi.New(serialmidi.Config{Device: nc.SerialDevice, Baud: nc.Baud})
		if err != nil {
			return nil, fmt.Errorf("note backend failed: %w", err)
		}
		return e, nil
	case "log":
		return &note.LogEmitter{Log: log}, nil
	}
	return nil, fmt.Errorf("note backend %q not supported", nc.Backend)
}
