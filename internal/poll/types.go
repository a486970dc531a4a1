// internal/poll/types.go
package poll

import (
	"time"

	"github.com/gann-cdf/musical-stairs/internal/sensor"
)

// SlotRead is the outcome of polling one slot within a sweep.
type SlotRead struct {
	Slot       sensor.SlotID
	DistanceMm uint16
	TimedOut   bool
	Broken     bool
	Edge       bool
}

// FiredNote records one authorized trigger.
type FiredNote struct {
	Slot  sensor.SlotID
	Stair int
	Key   uint8
}

// SweepResult is a snapshot produced by one full sweep of all slots.
type SweepResult struct {
	At time.Time

	// Counter is the poll counter value during this sweep, before the
	// post-sweep increment.
	Counter uint32

	Reads    []SlotRead
	Fired    []FiredNote
	Timeouts int
}
