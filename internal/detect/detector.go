// internal/detect/detector.go
package detect

import "errors"

// Broken classifies a single raw reading.
// A reading is broken when it is strictly below the unbroken range.
// A zero reading that coincides with a sensor timeout is the timeout
// sentinel, not an obstruction touching the lens, and counts as unbroken.
func Broken(distanceMm uint16, timedOut bool, unbrokenRangeMm uint16) bool {
	if distanceMm == 0 && timedOut {
		return false
	}
	return distanceMm < unbrokenRangeMm
}

// Detector holds the recent break classifications for one sensor slot.
// It is pure per-sample logic: no I/O, no clock, no locking.
//
// The history is a ring of the last `required` classifications. An edge is
// reported on the sample that completes a run of exactly `required`
// consecutive broken readings preceded by an unbroken one, so a sustained
// obstruction fires once, not on every sample.
type Detector struct {
	history []bool
	head    int // index of the most recent classification
}

// New creates a detector requiring `required` consecutive broken readings
// to confirm an edge. The history starts entirely unbroken.
func New(required int) (*Detector, error) {
	if required < 1 {
		return nil, errors.New("detect: required breaks must be >= 1")
	}
	return &Detector{history: make([]bool, required)}, nil
}

// Reset clears the history to all-unbroken.
func (d *Detector) Reset() {
	for i := range d.history {
		d.history[i] = false
	}
	d.head = 0
}

// at returns the classification i readings back; at(0) is the most recent.
func (d *Detector) at(i int) bool {
	n := len(d.history)
	return d.history[(d.head-i+n)%n]
}

// Observe feeds one classification and reports whether it is a fresh edge.
//
// Edge requires: the current reading broken, the previous required-1
// readings broken, and the reading before that run unbroken. The history
// is updated unconditionally, edge or not.
func (d *Detector) Observe(broken bool) bool {
	edge := broken
	for i := 0; i < len(d.history)-1; i++ {
		if !d.at(i) {
			edge = false
			break
		}
	}
	if d.at(len(d.history) - 1) {
		edge = false
	}

	d.head = (d.head + 1) % len(d.history)
	d.history[d.head] = broken

	return edge
}
