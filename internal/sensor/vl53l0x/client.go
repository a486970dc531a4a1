// internal/sensor/vl53l0x/client.go
package vl53l0x

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/gann-cdf/musical-stairs/internal/sensor"
)

// DefaultAddr is the VL53L0X factory-default 7-bit bus address. Every
// sensor boots here, which is the whole reason bring-up sequences the
// XSHUT lines.
const DefaultAddr uint16 = 0x29

// Register map (subset).
const (
	regSysrangeStart         = 0x00
	regSystemInterruptClear  = 0x0B
	regResultInterruptStatus = 0x13
	regResultRangeMm         = 0x1E // result block 0x14, range value at +10
	regSlaveDeviceAddress    = 0x8A
	regVhvConfigExtsupHV     = 0x89
	regIdentificationModelID = 0xC0

	modelID = 0xEE
)

// interruptPollStep is how often the data-ready flag is re-read while a
// single-shot ranging measurement is in flight.
const interruptPollStep = time.Millisecond

// Config is minimal transport config.
type Config struct {
	// I2CDev is the bus name or alias for i2creg ("1", "/dev/i2c-1",
	// empty for the platform default).
	I2CDev string

	// DefaultAddr overrides the factory-default address; zero means
	// DefaultAddr.
	DefaultAddr uint16
}

// Client implements sensor.Bus on a periph.io I2C bus with GPIO-driven
// XSHUT enable lines. Register access only: no ranging semantics beyond
// single-shot reads.
type Client struct {
	cfg      Config
	bus      i2c.BusCloser
	pins     map[string]gpio.PinIO
	timeouts map[uint16]time.Duration

	// hostInit loads the periph host drivers. host.Init is safe to call
	// repeatedly; swapped out in tests.
	hostInit func() error
}

// New creates an unopened client; Init opens the host and the bus.
func New(cfg Config) (*Client, error) {
	if cfg.DefaultAddr == 0 {
		cfg.DefaultAddr = DefaultAddr
	}
	return &Client{
		cfg:      cfg,
		pins:     map[string]gpio.PinIO{},
		timeouts: map[uint16]time.Duration{},
		hostInit: func() error {
			_, err := host.Init()
			return err
		},
	}, nil
}

// Init opens the I2C bus.
func (c *Client) Init() error {
	if c.bus != nil {
		return nil
	}
	if err := c.hostInit(); err != nil {
		return fmt.Errorf("vl53l0x: host init: %w", err)
	}
	bus, err := i2creg.Open(c.cfg.I2CDev)
	if err != nil {
		return fmt.Errorf("vl53l0x: open i2c %q: %w", c.cfg.I2CDev, err)
	}
	c.bus = bus
	return nil
}

// SetEnable drives an XSHUT line. XSHUT low holds the sensor in hardware
// standby; releasing it boots the sensor at the default address.
func (c *Client) SetEnable(pin string, live bool) error {
	p, err := c.pin(pin)
	if err != nil {
		return err
	}
	return p.Out(gpio.Level(live))
}

// InitDevice verifies the model ID of the sensor at the default address
// and switches it to 2.8V I/O mode.
func (c *Client) InitDevice() error {
	dev, err := c.dev(c.cfg.DefaultAddr)
	if err != nil {
		return err
	}

	id, err := readReg(dev, regIdentificationModelID)
	if err != nil {
		return fmt.Errorf("vl53l0x: read model id: %w", err)
	}
	if id != modelID {
		return fmt.Errorf("vl53l0x: model id %#02x, want %#02x", id, modelID)
	}

	hv, err := readReg(dev, regVhvConfigExtsupHV)
	if err != nil {
		return fmt.Errorf("vl53l0x: read hv config: %w", err)
	}
	if err := writeReg(dev, regVhvConfigExtsupHV, hv|0x01); err != nil {
		return fmt.Errorf("vl53l0x: set 2v8 mode: %w", err)
	}
	return nil
}

// Assign reprograms the default-addressed sensor to addr.
func (c *Client) Assign(addr uint16) error {
	dev, err := c.dev(c.cfg.DefaultAddr)
	if err != nil {
		return err
	}
	if err := writeReg(dev, regSlaveDeviceAddress, byte(addr&0x7F)); err != nil {
		return fmt.Errorf("vl53l0x: assign %#02x: %w", addr, err)
	}
	return nil
}

// SetTimeout records the host-side read deadline for the sensor at addr.
func (c *Client) SetTimeout(addr uint16, timeout time.Duration) error {
	if timeout <= 0 {
		return errors.New("vl53l0x: timeout must be > 0")
	}
	c.timeouts[addr] = timeout
	return nil
}

// ReadDistance performs one single-shot ranging measurement: start, poll
// the data-ready flag until the programmed deadline, read the range in
// millimeters, clear the interrupt. A deadline miss returns the zero
// sentinel with TimedOut set, not an error.
func (c *Client) ReadDistance(addr uint16) (sensor.Reading, error) {
	dev, err := c.dev(addr)
	if err != nil {
		return sensor.Reading{}, err
	}
	timeout, ok := c.timeouts[addr]
	if !ok {
		return sensor.Reading{}, fmt.Errorf("vl53l0x: no timeout programmed for %#02x", addr)
	}

	if err := writeReg(dev, regSysrangeStart, 0x01); err != nil {
		return sensor.Reading{}, fmt.Errorf("vl53l0x: start ranging %#02x: %w", addr, err)
	}

	deadline := time.Now().Add(timeout)
	for {
		st, err := readReg(dev, regResultInterruptStatus)
		if err != nil {
			return sensor.Reading{}, fmt.Errorf("vl53l0x: poll %#02x: %w", addr, err)
		}
		if st&0x07 != 0 {
			break
		}
		if time.Now().After(deadline) {
			return sensor.Reading{DistanceMm: 0, TimedOut: true}, nil
		}
		time.Sleep(interruptPollStep)
	}

	var raw [2]byte
	if err := dev.Tx([]byte{regResultRangeMm}, raw[:]); err != nil {
		return sensor.Reading{}, fmt.Errorf("vl53l0x: read range %#02x: %w", addr, err)
	}
	if err := writeReg(dev, regSystemInterruptClear, 0x01); err != nil {
		return sensor.Reading{}, fmt.Errorf("vl53l0x: clear interrupt %#02x: %w", addr, err)
	}

	return sensor.Reading{DistanceMm: binary.BigEndian.Uint16(raw[:])}, nil
}

// Close closes the I2C bus. Enable lines are left as driven.
func (c *Client) Close() error {
	if c.bus == nil {
		return nil
	}
	err := c.bus.Close()
	c.bus = nil
	return err
}

// ---- internal ----

func (c *Client) dev(addr uint16) (*i2c.Dev, error) {
	if c.bus == nil {
		return nil, errors.New("vl53l0x: bus not initialized")
	}
	return &i2c.Dev{Bus: c.bus, Addr: addr}, nil
}

func (c *Client) pin(name string) (gpio.PinIO, error) {
	if p, ok := c.pins[name]; ok {
		return p, nil
	}
	// Enable lines are driven before Init opens the bus, and the gpio
	// registry is empty until the host drivers load.
	if err := c.hostInit(); err != nil {
		return nil, fmt.Errorf("vl53l0x: host init: %w", err)
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("vl53l0x: no such gpio %q", name)
	}
	c.pins[name] = p
	return p, nil
}

func readReg(dev *i2c.Dev, reg byte) (byte, error) {
	var b [1]byte
	if err := dev.Tx([]byte{reg}, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func writeReg(dev *i2c.Dev, reg, val byte) error {
	return dev.Tx([]byte{reg, val}, nil)
}
