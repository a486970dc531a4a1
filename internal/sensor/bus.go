// internal/sensor/bus.go
package sensor

import "time"

// Bus abstracts the shared rangefinder bus. The assigner and poller depend
// on these operations only; the periph.io adapter lives in the vl53l0x
// subpackage, fakes live in tests.
//
// InitDevice and Assign address the one sensor currently live at the
// factory-default address; the caller guarantees exactly one is live by
// sequencing enable lines. All other operations target assigned addresses.
type Bus interface {
	// Init brings up the shared bus itself. Called once, after every
	// enable line has been driven low.
	Init() error

	// SetEnable drives a sensor's enable line. Low holds the sensor in
	// reset; releasing it boots the sensor at the default address.
	SetEnable(pin string, live bool) error

	// InitDevice issues the device-init command to the sensor live at the
	// default address. An unresponsive sensor is a bring-up failure.
	InitDevice() error

	// Assign reprograms the default-addressed sensor to addr.
	Assign(addr uint16) error

	// SetTimeout programs the read timeout for the sensor at addr.
	SetTimeout(addr uint16, timeout time.Duration) error

	// ReadDistance performs one blocking ranging read, bounded by the
	// sensor's programmed timeout. The error covers transport failures
	// only; a sensor timeout comes back as Reading.TimedOut with the
	// zero distance sentinel.
	ReadDistance(addr uint16) (Reading, error)

	// Close releases the bus.
	Close() error
}
