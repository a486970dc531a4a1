// internal/status/encode.go
package status

// Attrs flattens a Snapshot into slog key/value pairs.
// No IO. No side effects.
func Attrs(s Snapshot) []any {
	return []any{
		"slots_ready", s.SlotsReady,
		"slots_failed", s.SlotsFailed,
		"slots_ignored", s.SlotsIgnored,
		"sweeps", s.Sweeps,
		"timeouts", s.Timeouts,
		"notes_fired", s.NotesFired,
	}
}
