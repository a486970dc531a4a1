// internal/sensor/handle.go
package sensor

// Handle wraps one configured, addressed rangefinder. Valid only after the
// assigner has walked its slot to StateReady.
type Handle struct {
	bus  Bus
	addr uint16
}

// NewHandle binds a bus and an assigned address.
func NewHandle(bus Bus, addr uint16) Handle {
	return Handle{bus: bus, addr: addr}
}

// Read performs one blocking distance read, bounded by the sensor's
// programmed timeout.
func (h Handle) Read() (Reading, error) {
	return h.bus.ReadDistance(h.addr)
}
