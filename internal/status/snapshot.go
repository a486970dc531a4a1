// internal/status/snapshot.go
package status

import "github.com/gann-cdf/musical-stairs/internal/sensor"

// Snapshot represents exactly what diagnostics are allowed to report.
// It contains no logic and no memory of the past beyond current counters.
type Snapshot struct {
	SlotsReady   int
	SlotsFailed  int
	SlotsIgnored int

	Sweeps     uint64
	Timeouts   uint64
	NotesFired uint64
}

// HealthOf maps a slot's bring-up state to its health code.
func HealthOf(s *sensor.Slot) uint16 {
	switch {
	case s.Ignored:
		return HealthIgnored
	case s.State == sensor.StateReady:
		return HealthReady
	case s.State == sensor.StateFailed:
		return HealthFailed
	}
	return HealthUnknown
}

// FromSlots tallies the slot health counts of a fresh snapshot.
func FromSlots(slots []*sensor.Slot) Snapshot {
	var snap Snapshot
	for _, s := range slots {
		switch HealthOf(s) {
		case HealthReady:
			snap.SlotsReady++
		case HealthFailed:
			snap.SlotsFailed++
		case HealthIgnored:
			snap.SlotsIgnored++
		}
	}
	return snap
}
