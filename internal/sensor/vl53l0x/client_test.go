// internal/sensor/vl53l0x/client_test.go
package vl53l0x

import (
	"errors"
	"strings"
	"testing"
)

// Enable lines are toggled before Init opens the bus, so the pin lookup
// itself must load the host drivers; an empty registry would otherwise
// report every pin as missing.
func TestSetEnable_LoadsHostDriversBeforeRegistryLookup(t *testing.T) {
	c, err := New(Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	calls := 0
	c.hostInit = func() error {
		calls++
		return nil
	}

	err = c.SetEnable("NOPE99", true)
	if calls != 1 {
		t.Fatalf("host init called %d times before registry lookup, want 1", calls)
	}
	// With the drivers loaded the only acceptable failure for a bogus
	// name is an unknown-pin error, not a silent empty-registry miss.
	if err == nil || !strings.Contains(err.Error(), "no such gpio") {
		t.Fatalf("SetEnable with unknown pin: err = %v, want unknown-pin error", err)
	}
}

func TestSetEnable_HostInitFailureSurfaces(t *testing.T) {
	c, err := New(Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	boom := errors.New("no host drivers")
	c.hostInit = func() error { return boom }

	if err := c.SetEnable("GPIO4", true); !errors.Is(err, boom) {
		t.Fatalf("SetEnable: err = %v, want wrapped %v", err, boom)
	}
}
