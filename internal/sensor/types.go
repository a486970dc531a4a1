// internal/sensor/types.go
package sensor

import "fmt"

// Side is which edge of a stair a sensor sits on.
type Side uint8

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("side(%d)", uint8(s))
}

// ParseSide parses "left" or "right".
func ParseSide(s string) (Side, error) {
	switch s {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, fmt.Errorf("sensor: unknown side %q", s)
}

// SlotID identifies one sensor position on the staircase.
type SlotID struct {
	Stair int
	Side  Side
}

func (id SlotID) String() string {
	return fmt.Sprintf("stair%d/%s", id.Stair, id.Side)
}

// State is a slot's position in the bring-up sequence. The assigner only
// ever advances a slot forward through these, so the required ordering
// (reset-all, enable-one, init, address, ready) is a checkable invariant
// rather than implicit control flow.
type State uint8

const (
	StateReset State = iota // enable line low, sensor powered down
	StateEnabled            // enable line released, live at the default address
	StateInitialized        // device-init accepted
	StateAddressed          // answering at its assigned address
	StateReady              // timeout programmed, available for polling
	StateFailed             // did not respond during bring-up; excluded
)

func (s State) String() string {
	switch s {
	case StateReset:
		return "reset"
	case StateEnabled:
		return "enabled"
	case StateInitialized:
		return "initialized"
	case StateAddressed:
		return "addressed"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Slot is one (stair, side) sensor position: its planned bus address, its
// enable line, and where it is in bring-up. Slots are enumerated once at
// startup and never created or destroyed afterwards.
type Slot struct {
	ID        SlotID
	Addr      uint16 // assigned 7-bit bus address, unique per live slot
	EnablePin string
	Ignored   bool
	State     State
}

// Reading is one raw distance sample from a sensor.
// TimedOut means the sensor did not produce a range within its programmed
// read timeout; the distance is then the zero sentinel.
type Reading struct {
	DistanceMm uint16
	TimedOut   bool
}
