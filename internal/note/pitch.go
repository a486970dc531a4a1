// internal/note/pitch.go
package note

import (
	"errors"
	"fmt"
)

// PentatonicMajor is the default stair scale, as semitone offsets from the
// root. Adjacent stairs always sound consonant with it, which matters when
// several people climb at once.
var PentatonicMajor = []int{0, 2, 4, 7, 9}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Name renders a MIDI key as a human-readable pitch name, e.g. 60 -> "C4".
func Name(key uint8) string {
	return fmt.Sprintf("%s%d", noteNames[key%12], int(key/12)-1)
}

// PitchTable is the stateless stair -> MIDI key lookup, computed once at
// startup. Stair 0 is the bottom stair and sounds the root; each following
// stair walks up the scale, octave-folding past the end of the intervals.
type PitchTable struct {
	keys []uint8
}

// NewPitchTable builds the lookup for `stairs` stairs from a root key and
// a strictly ascending interval list within one octave.
func NewPitchTable(root uint8, intervals []int, stairs int) (*PitchTable, error) {
	if stairs < 1 {
		return nil, errors.New("note: at least one stair required")
	}
	if len(intervals) == 0 {
		return nil, errors.New("note: empty scale")
	}
	for i, iv := range intervals {
		if iv < 0 || iv > 11 {
			return nil, fmt.Errorf("note: interval %d out of octave range", iv)
		}
		if i > 0 && iv <= intervals[i-1] {
			return nil, errors.New("note: scale intervals must be strictly ascending")
		}
	}

	keys := make([]uint8, stairs)
	for i := 0; i < stairs; i++ {
		k := int(root) + 12*(i/len(intervals)) + intervals[i%len(intervals)]
		if k > 127 {
			return nil, fmt.Errorf("note: stair %d maps to key %d, beyond MIDI range", i, k)
		}
		keys[i] = uint8(k)
	}
	return &PitchTable{keys: keys}, nil
}

// ForStair returns the MIDI key for a stair index.
func (t *PitchTable) ForStair(stair int) uint8 {
	return t.keys[stair]
}
