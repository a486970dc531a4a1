// internal/config/normalize.go
package config

import "fmt"

// Defaults applied by Normalize. Zero/empty values in the file mean
// "use the default"; everything here matches a small staircase with
// VL53L0X sensors.
const (
	defaultSettleMs        = 10
	defaultTimeoutMs       = 50
	defaultUnbrokenRangeMm = 600
	defaultRequiredBreaks  = 3
	defaultIntervalMs      = 10
	defaultCooldownCycles  = 30
	defaultVelocity        = 100
	defaultRootKey         = 60 // C4

	// autoAddressBase is the first address handed to slots that did not
	// pick one themselves.
	autoAddressBase uint16 = 0x30
)

// defaultScale is C-major pentatonic, as semitone offsets.
var defaultScale = []int{0, 2, 4, 7, 9}

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
// It fails only when auto-assignment cannot find a free address for
// every slot.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return nil
	}
	st := &cfg.Staircase

	if st.Bus.DefaultAddress == 0 {
		st.Bus.DefaultAddress = fallbackDefaultAddress
	}
	if st.Bringup.SettleMs == 0 {
		st.Bringup.SettleMs = defaultSettleMs
	}
	if st.Sense.TimeoutMs == 0 {
		st.Sense.TimeoutMs = defaultTimeoutMs
	}
	if st.Sense.UnbrokenRangeMm == 0 {
		st.Sense.UnbrokenRangeMm = defaultUnbrokenRangeMm
	}
	if st.Sense.RequiredBreaks == 0 {
		st.Sense.RequiredBreaks = defaultRequiredBreaks
	}
	if st.Poll.IntervalMs == 0 {
		st.Poll.IntervalMs = defaultIntervalMs
	}
	if st.Poll.CooldownCycles == 0 {
		st.Poll.CooldownCycles = defaultCooldownCycles
	}

	if st.Notes.Backend == "" {
		st.Notes.Backend = "log"
	}
	if st.Notes.Velocity == 0 {
		st.Notes.Velocity = defaultVelocity
	}
	if st.Notes.RootKey == 0 {
		st.Notes.RootKey = defaultRootKey
	}
	if len(st.Notes.Scale) == 0 {
		st.Notes.Scale = append([]int(nil), defaultScale...)
	}

	return autoAssignAddresses(st)
}

// autoAssignAddresses hands sequential addresses from autoAddressBase to
// non-ignored slots with address 0, skipping the default address and any
// address already claimed explicitly. Assignment never leaves the 7-bit
// device range.
func autoAssignAddresses(st *StaircaseConfig) error {
	taken := map[uint16]bool{st.Bus.DefaultAddress: true}
	for _, s := range st.Slots {
		if !s.Ignore && s.Address != 0 {
			taken[s.Address] = true
		}
	}

	next := autoAddressBase
	for i := range st.Slots {
		s := &st.Slots[i]
		if s.Ignore || s.Address != 0 {
			continue
		}
		for taken[next] {
			next++
		}
		if next > maxDeviceAddress {
			return fmt.Errorf("slot stair%d/%s: no free address left at or below %#02x",
				s.Stair, s.Side, maxDeviceAddress)
		}
		s.Address = next
		taken[next] = true
	}
	return nil
}
