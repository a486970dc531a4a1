// internal/status/constants.go
package status

// Slot health codes reported in diagnostics. These values are part of the
// monitoring contract and MUST NOT be configurable.

// HealthUnknown represents a slot that has not finished bring-up.
const HealthUnknown uint16 = 0

// HealthReady represents a slot polling normally.
const HealthReady uint16 = 1

// HealthFailed represents a slot that did not respond during bring-up.
const HealthFailed uint16 = 2

// HealthIgnored represents a slot excluded by configuration.
const HealthIgnored uint16 = 3
