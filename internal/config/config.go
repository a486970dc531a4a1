// internal/config/config.go
package config

type Config struct {
	Staircase StaircaseConfig `yaml:"staircase"`
}

type StaircaseConfig struct {
	Stairs  int           `yaml:"stairs"`
	Bus     BusConfig     `yaml:"bus"`
	Bringup BringupConfig `yaml:"bringup"`
	Sense   SenseConfig   `yaml:"sense"`
	Poll    PollConfig    `yaml:"poll"`
	Notes   NoteConfig    `yaml:"notes"`
	Slots   []SlotConfig  `yaml:"slots"`
}

// ---- BUS ----

type BusConfig struct {
	I2CDev         string `yaml:"i2c_dev"`
	DefaultAddress uint16 `yaml:"default_address"`
}

// ---- BRING-UP ----

type BringupConfig struct {
	SettleMs int  `yaml:"settle_ms"`
	Strict   bool `yaml:"strict"`
}

// ---- SENSING ----

type SenseConfig struct {
	TimeoutMs       int    `yaml:"timeout_ms"`
	UnbrokenRangeMm uint16 `yaml:"unbroken_range_mm"`
	RequiredBreaks  int    `yaml:"required_breaks"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs     int `yaml:"interval_ms"`
	CooldownCycles int `yaml:"cooldown_cycles"`
}

// ---- NOTES ----

type NoteConfig struct {
	Backend      string `yaml:"backend"` // rtmidi | serialmidi | log
	PortPattern  string `yaml:"port_pattern"`
	SerialDevice string `yaml:"serial_device"`
	Baud         int    `yaml:"baud"`
	Channel      uint8  `yaml:"channel"`
	Velocity     uint8  `yaml:"velocity"`
	RootKey      uint8  `yaml:"root_key"`
	Scale        []int  `yaml:"scale"`
}

// ---- SLOT WIRING ----

type SlotConfig struct {
	Stair     int    `yaml:"stair"`
	Side      string `yaml:"side"` // left | right
	Address   uint16 `yaml:"address"`
	EnablePin string `yaml:"enable_pin"`
	Ignore    bool   `yaml:"ignore"`
}
