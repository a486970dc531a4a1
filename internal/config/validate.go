// internal/config/validate.go
package config

import "fmt"

// fallbackDefaultAddress is the factory-default bus address assumed when
// the config leaves it unset. Kept in sync with Normalize.
const fallbackDefaultAddress uint16 = 0x29

// maxDeviceAddress is the top of the usable 7-bit address range; 0x78
// and above are reserved by the bus protocol.
const maxDeviceAddress uint16 = 0x77

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	st := cfg.Staircase

	if st.Stairs < 1 {
		return fmt.Errorf("staircase: stairs must be >= 1, got %d", st.Stairs)
	}
	if len(st.Slots) == 0 {
		return fmt.Errorf("staircase: at least one slot must be wired")
	}

	if st.Bringup.SettleMs < 0 {
		return fmt.Errorf("bringup: settle_ms must be >= 0")
	}
	if st.Sense.TimeoutMs < 0 {
		return fmt.Errorf("sense: timeout_ms must be >= 0")
	}
	if st.Sense.RequiredBreaks < 0 {
		return fmt.Errorf("sense: required_breaks must be >= 0")
	}
	if st.Poll.IntervalMs < 0 {
		return fmt.Errorf("poll: interval_ms must be >= 0")
	}
	if st.Poll.CooldownCycles < 0 {
		return fmt.Errorf("poll: cooldown_cycles must be >= 0")
	}

	// ------------------------------------------------------------
	// NOTE BACKEND VALIDATION
	// ------------------------------------------------------------

	switch st.Notes.Backend {
	case "", "log", "rtmidi", "serialmidi":
	default:
		return fmt.Errorf("notes: unknown backend %q", st.Notes.Backend)
	}
	if st.Notes.Backend == "serialmidi" && st.Notes.SerialDevice == "" {
		return fmt.Errorf("notes: serialmidi backend requires serial_device")
	}
	if st.Notes.Channel > 15 {
		return fmt.Errorf("notes: channel must be 0-15, got %d", st.Notes.Channel)
	}
	if st.Notes.Velocity > 127 {
		return fmt.Errorf("notes: velocity must be 0-127, got %d", st.Notes.Velocity)
	}
	if st.Notes.RootKey > 127 {
		return fmt.Errorf("notes: root_key must be 0-127, got %d", st.Notes.RootKey)
	}

	// ------------------------------------------------------------
	// SLOT WIRING VALIDATION
	// ------------------------------------------------------------

	defaultAddr := st.Bus.DefaultAddress
	if defaultAddr == 0 {
		defaultAddr = fallbackDefaultAddress
	}

	// key = stair | side
	position := make(map[string]bool)
	// key = bus address, value = slot position that owns it
	addrOwner := make(map[uint16]string)

	for _, s := range st.Slots {
		pos := fmt.Sprintf("stair%d/%s", s.Stair, s.Side)

		if s.Stair < 0 || s.Stair >= st.Stairs {
			return fmt.Errorf("slot %s: stair out of range [0,%d)", pos, st.Stairs)
		}
		if s.Side != "left" && s.Side != "right" {
			return fmt.Errorf("slot %s: side must be \"left\" or \"right\"", pos)
		}
		if s.EnablePin == "" {
			// Every enable line is driven low during bring-up, ignored
			// slots included, so the pin is always required.
			return fmt.Errorf("slot %s: enable_pin required", pos)
		}

		if position[pos] {
			return fmt.Errorf("slot %s: wired twice", pos)
		}
		position[pos] = true

		if s.Ignore {
			continue
		}

		// Address 0 means "assign one for me" and is filled by Normalize.
		if s.Address == 0 {
			continue
		}
		if s.Address > maxDeviceAddress {
			return fmt.Errorf("slot %s: address %#02x outside the 7-bit device range", pos, s.Address)
		}
		if s.Address == defaultAddr {
			return fmt.Errorf("slot %s: address %#02x collides with the factory-default address", pos, s.Address)
		}
		if prev, exists := addrOwner[s.Address]; exists {
			return fmt.Errorf("address collision: %#02x used by slots %s and %s", s.Address, prev, pos)
		}
		addrOwner[s.Address] = pos
	}

	return nil
}
