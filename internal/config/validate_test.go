// internal/config/validate_test.go
package config

import (
	"fmt"
	"testing"
)

// helper to build a minimal valid staircase quickly
func staircase(slots ...SlotConfig) *Config {
	return &Config{
		Staircase: StaircaseConfig{
			Stairs: 4,
			Slots:  slots,
		},
	}
}

func slot(stair int, side string, addr uint16, pin string) SlotConfig {
	return SlotConfig{Stair: stair, Side: side, Address: addr, EnablePin: pin}
}

// ---- tests ----

func TestValidate_MinimalValid(t *testing.T) {
	cfg := staircase(
		slot(0, "left", 0x30, "GPIO5"),
		slot(0, "right", 0x31, "GPIO6"),
	)

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_AddressCollisionDetected(t *testing.T) {
	cfg := staircase(
		slot(0, "left", 0x30, "GPIO5"),
		slot(1, "left", 0x30, "GPIO6"),
	)

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected address collision error, got nil")
	}
}

func TestValidate_DefaultAddressRejected(t *testing.T) {
	cfg := staircase(slot(0, "left", 0x29, "GPIO5"))

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected default-address collision error, got nil")
	}
}

func TestValidate_IgnoredSlotMayShareAddress(t *testing.T) {
	a := slot(0, "left", 0x30, "GPIO5")
	b := slot(1, "left", 0x30, "GPIO6")
	b.Ignore = true

	if err := Validate(staircase(a, b)); err != nil {
		t.Fatalf("ignored slot should not join the address collision check: %v", err)
	}
}

func TestValidate_IgnoredSlotStillNeedsEnablePin(t *testing.T) {
	s := slot(0, "left", 0, "")
	s.Ignore = true

	if err := Validate(staircase(s)); err == nil {
		t.Fatalf("expected enable_pin error for ignored slot, got nil")
	}
}

func TestValidate_StairOutOfRange(t *testing.T) {
	if err := Validate(staircase(slot(4, "left", 0x30, "GPIO5"))); err == nil {
		t.Fatalf("expected stair range error, got nil")
	}
}

func TestValidate_BadSide(t *testing.T) {
	if err := Validate(staircase(slot(0, "middle", 0x30, "GPIO5"))); err == nil {
		t.Fatalf("expected side error, got nil")
	}
}

func TestValidate_DuplicatePosition(t *testing.T) {
	cfg := staircase(
		slot(0, "left", 0x30, "GPIO5"),
		slot(0, "left", 0x31, "GPIO6"),
	)

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected duplicate position error, got nil")
	}
}

func TestValidate_BadBackend(t *testing.T) {
	cfg := staircase(slot(0, "left", 0x30, "GPIO5"))
	cfg.Staircase.Notes.Backend = "osc"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected backend error, got nil")
	}
}

func TestValidate_SerialBackendNeedsDevice(t *testing.T) {
	cfg := staircase(slot(0, "left", 0x30, "GPIO5"))
	cfg.Staircase.Notes.Backend = "serialmidi"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected serial_device error, got nil")
	}
}

func TestNormalize_FillsDefaults(t *testing.T) {
	cfg := staircase(
		slot(0, "left", 0, "GPIO5"),
		slot(0, "right", 0, "GPIO6"),
	)

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	st := cfg.Staircase
	if st.Bus.DefaultAddress != 0x29 {
		t.Fatalf("default_address=%#02x, want 0x29", st.Bus.DefaultAddress)
	}
	if st.Sense.RequiredBreaks != defaultRequiredBreaks {
		t.Fatalf("required_breaks=%d, want %d", st.Sense.RequiredBreaks, defaultRequiredBreaks)
	}
	if st.Notes.Backend != "log" {
		t.Fatalf("backend=%q, want log", st.Notes.Backend)
	}
	if len(st.Notes.Scale) == 0 {
		t.Fatalf("scale not defaulted")
	}
}

func TestNormalize_AutoAddressesAvoidCollisions(t *testing.T) {
	cfg := staircase(
		slot(0, "left", 0x30, "GPIO5"),
		slot(0, "right", 0, "GPIO6"),
		slot(1, "left", 0, "GPIO7"),
	)

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	seen := map[uint16]bool{}
	for _, s := range cfg.Staircase.Slots {
		if s.Address == 0 {
			t.Fatalf("slot stair%d/%s left unaddressed", s.Stair, s.Side)
		}
		if s.Address == cfg.Staircase.Bus.DefaultAddress {
			t.Fatalf("auto-assigned the default address")
		}
		if seen[s.Address] {
			t.Fatalf("address %#02x assigned twice", s.Address)
		}
		seen[s.Address] = true
	}
}

func TestNormalize_AddressSpaceExhausted(t *testing.T) {
	// 40 stairs with both sides populated wants 80 addresses, but only
	// 0x30..0x77 are available for auto-assignment.
	cfg := &Config{Staircase: StaircaseConfig{Stairs: 40}}
	for stair := 0; stair < 40; stair++ {
		for _, side := range []string{"left", "right"} {
			cfg.Staircase.Slots = append(cfg.Staircase.Slots, SlotConfig{
				Stair:     stair,
				Side:      side,
				EnablePin: fmt.Sprintf("GPIO%d_%s", stair, side),
			})
		}
	}

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if err := Normalize(cfg); err == nil {
		t.Fatalf("expected address exhaustion error, got nil")
	}

	for _, s := range cfg.Staircase.Slots {
		if s.Address > maxDeviceAddress {
			t.Fatalf("slot stair%d/%s assigned %#02x past the device range", s.Stair, s.Side, s.Address)
		}
	}
}
