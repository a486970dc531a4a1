// internal/sensor/assign.go
package sensor

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// AssignConfig is the minimal runtime config the assigner needs.
type AssignConfig struct {
	// Settle is how long a sensor gets to boot after its enable line is
	// released, before it is spoken to.
	Settle time.Duration

	// Timeout is the read timeout programmed into every sensor.
	Timeout time.Duration

	// Strict makes any bring-up failure abort the whole sequence.
	// Otherwise a failed slot is driven back into reset, marked failed,
	// and the remaining slots are brought up normally.
	Strict bool
}

// Assigner gives N identically-addressed sensors distinct bus addresses by
// enabling them one at a time. At no point are two sensors simultaneously
// reachable at the default address.
type Assigner struct {
	bus Bus
	cfg AssignConfig
	log *slog.Logger
}

// NewAssigner creates an assigner. Addresses are fixed for the process
// lifetime; there is no runtime re-assignment.
func NewAssigner(bus Bus, cfg AssignConfig, log *slog.Logger) (*Assigner, error) {
	if bus == nil {
		return nil, errors.New("sensor: bus required")
	}
	if cfg.Settle <= 0 {
		return nil, errors.New("sensor: settle delay must be > 0")
	}
	if cfg.Timeout <= 0 {
		return nil, errors.New("sensor: read timeout must be > 0")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Assigner{bus: bus, cfg: cfg, log: log}, nil
}

// Run executes the bring-up sequence over slots, in the order given.
//
// Every enable line (ignored slots included) is driven low before the bus
// is initialized, so no sensor is live when the bus starts. Each
// non-ignored slot is then walked Reset -> Enabled -> Initialized ->
// Addressed -> Ready; on return every ready sensor answers at its own
// distinct address.
//
// Run returns how many slots reached Ready. In strict mode the first
// failure aborts with an error; otherwise failures are logged and the
// failed slot stays disabled.
func (a *Assigner) Run(slots []*Slot) (int, error) {
	// Hold everything in reset before the bus comes up.
	for _, s := range slots {
		if err := a.bus.SetEnable(s.EnablePin, false); err != nil {
			return 0, fmt.Errorf("bring-up: reset %s: %w", s.ID, err)
		}
		s.State = StateReset
	}

	if err := a.bus.Init(); err != nil {
		return 0, fmt.Errorf("bring-up: bus init: %w", err)
	}

	ready := 0
	for _, s := range slots {
		if s.Ignored {
			continue
		}
		if err := a.bringUp(s); err != nil {
			if a.cfg.Strict {
				return ready, fmt.Errorf("bring-up: %s: %w", s.ID, err)
			}
			// Drive the line low again so a half-configured sensor
			// cannot squat the default address for later slots.
			if derr := a.bus.SetEnable(s.EnablePin, false); derr != nil {
				return ready, fmt.Errorf("bring-up: disable failed %s: %w", s.ID, derr)
			}
			s.State = StateFailed
			a.log.Warn("bring-up: slot failed, skipping",
				"slot", s.ID.String(), "addr", s.Addr, "err", err)
			continue
		}
		ready++
		a.log.Debug("bring-up: slot ready", "slot", s.ID.String(), "addr", s.Addr)
	}
	return ready, nil
}

// bringUp walks one slot through the enable/init/address/timeout sequence.
func (a *Assigner) bringUp(s *Slot) error {
	if err := a.bus.SetEnable(s.EnablePin, true); err != nil {
		return fmt.Errorf("enable: %w", err)
	}
	s.State = StateEnabled

	time.Sleep(a.cfg.Settle)

	if err := a.bus.InitDevice(); err != nil {
		return fmt.Errorf("device init: %w", err)
	}
	s.State = StateInitialized

	if err := a.bus.Assign(s.Addr); err != nil {
		return fmt.Errorf("assign addr %#02x: %w", s.Addr, err)
	}
	s.State = StateAddressed

	if err := a.bus.SetTimeout(s.Addr, a.cfg.Timeout); err != nil {
		return fmt.Errorf("set timeout: %w", err)
	}
	s.State = StateReady
	return nil
}
