// internal/note/emitter.go
package note

import "log/slog"

// Emitter delivers note-on events. Fire-and-forget: no acknowledgement is
// awaited and a failed send never stops the poll loop.
type Emitter interface {
	NoteOn(channel, key, velocity uint8) error
	Close() error
}

// LogEmitter is the dry-run backend: notes go to the log instead of an
// instrument. Useful on a desk with no MIDI hardware attached.
type LogEmitter struct {
	Log *slog.Logger
}

func (e *LogEmitter) NoteOn(channel, key, velocity uint8) error {
	log := e.Log
	if log == nil {
		log = slog.Default()
	}
	log.Info("note on", "pitch", Name(key), "key", key, "velocity", velocity, "channel", channel)
	return nil
}

func (e *LogEmitter) Close() error { return nil }
