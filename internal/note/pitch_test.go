// internal/note/pitch_test.go
package note

import "testing"

func TestNewPitchTable_PentatonicWalk(t *testing.T) {
	tbl, err := NewPitchTable(60, PentatonicMajor, 7)
	if err != nil {
		t.Fatalf("NewPitchTable() err=%v", err)
	}

	want := []uint8{60, 62, 64, 67, 69, 72, 74} // C4 D4 E4 G4 A4 C5 D5
	for i, w := range want {
		if got := tbl.ForStair(i); got != w {
			t.Fatalf("stair %d: key=%d want %d", i, got, w)
		}
	}
}

func TestNewPitchTable_MonotoneAndStable(t *testing.T) {
	tbl, err := NewPitchTable(48, []int{0, 2, 4, 5, 7, 9, 11}, 14)
	if err != nil {
		t.Fatalf("NewPitchTable() err=%v", err)
	}

	prev := tbl.ForStair(0)
	for i := 1; i < 14; i++ {
		k := tbl.ForStair(i)
		if k <= prev {
			t.Fatalf("stair %d: key %d not above stair %d key %d", i, k, i-1, prev)
		}
		prev = k
	}
	// Pure lookup: repeated queries agree.
	if tbl.ForStair(5) != tbl.ForStair(5) {
		t.Fatalf("lookup not stable")
	}
}

func TestNewPitchTable_Rejects(t *testing.T) {
	if _, err := NewPitchTable(60, PentatonicMajor, 0); err == nil {
		t.Fatalf("expected error for zero stairs")
	}
	if _, err := NewPitchTable(60, nil, 3); err == nil {
		t.Fatalf("expected error for empty scale")
	}
	if _, err := NewPitchTable(60, []int{0, 4, 2}, 3); err == nil {
		t.Fatalf("expected error for non-ascending scale")
	}
	if _, err := NewPitchTable(126, PentatonicMajor, 4); err == nil {
		t.Fatalf("expected error for key beyond MIDI range")
	}
}

func TestName(t *testing.T) {
	cases := map[uint8]string{60: "C4", 69: "A4", 0: "C-1", 127: "G9"}
	for key, want := range cases {
		if got := Name(key); got != want {
			t.Fatalf("Name(%d)=%q, want %q", key, got, want)
		}
	}
}
