// internal/note/rtmidi/client.go
package rtmidi

import (
	"errors"
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// excludedPatterns are virtual/system ports that are never auto-selected.
var excludedPatterns = []string{"Midi Through", "Through Port", "Dummy"}

// Config is minimal output config.
type Config struct {
	// PortPattern selects the output port by case-insensitive substring.
	// Empty picks the only real port available, if there is exactly one.
	PortPattern string
}

// Client implements note.Emitter on a real MIDI output via rtmidi.
type Client struct {
	drv  *rtmididrv.Driver
	out  drivers.Out
	send func(midi.Message) error
}

// New opens the rtmidi driver and connects to a matching output port.
// Fails fast when no usable port is found.
func New(cfg Config) (*Client, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmidi: %w", err)
	}

	out, err := pickOut(drv, cfg.PortPattern)
	if err != nil {
		drv.Close()
		return nil, err
	}
	if err := out.Open(); err != nil {
		drv.Close()
		return nil, fmt.Errorf("rtmidi: open %q: %w", out.String(), err)
	}
	send, err := midi.SendTo(out)
	if err != nil {
		out.Close()
		drv.Close()
		return nil, fmt.Errorf("rtmidi: sender for %q: %w", out.String(), err)
	}

	return &Client{drv: drv, out: out, send: send}, nil
}

func (c *Client) NoteOn(channel, key, velocity uint8) error {
	return c.send(midi.NoteOn(channel, key, velocity))
}

func (c *Client) Close() error {
	if c.out != nil {
		_ = c.out.Close()
		c.out = nil
	}
	if c.drv != nil {
		err := c.drv.Close()
		c.drv = nil
		return err
	}
	return nil
}

// ---- port selection ----

func pickOut(drv *rtmididrv.Driver, pattern string) (drivers.Out, error) {
	outs, err := drv.Outs()
	if err != nil {
		return nil, fmt.Errorf("rtmidi: list outputs: %w", err)
	}

	var candidates []drivers.Out
	for _, o := range outs {
		if excluded(o.String()) {
			continue
		}
		candidates = append(candidates, o)
	}

	if pattern != "" {
		for _, o := range candidates {
			if containsCI(o.String(), pattern) {
				return o, nil
			}
		}
		return nil, fmt.Errorf("rtmidi: no output matching %q (have %s)", pattern, names(candidates))
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	return nil, errors.New("rtmidi: no unambiguous output port; set a port pattern")
}

func excluded(name string) bool {
	for _, pat := range excludedPatterns {
		if containsCI(name, pat) {
			return true
		}
	}
	return false
}

func names(outs []drivers.Out) string {
	var ns []string
	for _, o := range outs {
		ns = append(ns, o.String())
	}
	return strings.Join(ns, ", ")
}

func containsCI(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
