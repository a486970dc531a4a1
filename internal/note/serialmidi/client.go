// internal/note/serialmidi/client.go
package serialmidi

import (
	"errors"
	"fmt"

	"go.bug.st/serial"
)

// BaudDIN is the classic DIN-MIDI wire rate. USB serial adapters and
// Arduino relays usually want something faster; that comes from config.
const BaudDIN = 31250

// Config is minimal transport config.
type Config struct {
	Device string // e.g. /dev/ttyACM0
	Baud   int    // zero means BaudDIN
}

// Client implements note.Emitter by writing raw MIDI status bytes to a
// serial port, for DIN-MIDI hardware or a microcontroller relay.
type Client struct {
	port serial.Port
}

// New opens the serial device.
func New(cfg Config) (*Client, error) {
	if cfg.Device == "" {
		return nil, errors.New("serialmidi: device required")
	}
	baud := cfg.Baud
	if baud == 0 {
		baud = BaudDIN
	}
	port, err := serial.Open(cfg.Device, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("serialmidi: open %s: %w", cfg.Device, err)
	}
	return &Client{port: port}, nil
}

// NoteOn writes a three-byte note-on message: status, key, velocity.
func (c *Client) NoteOn(channel, key, velocity uint8) error {
	msg := []byte{0x90 | channel&0x0F, key & 0x7F, velocity & 0x7F}
	if _, err := c.port.Write(msg); err != nil {
		return fmt.Errorf("serialmidi: write: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.port.Close()
}
