// internal/trigger/scheduler_test.go
package trigger

import "testing"

func TestNew_FirstEdgeAlwaysFires(t *testing.T) {
	s, err := New(4, 30)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	for stair := 0; stair < 4; stair++ {
		if !s.Authorize(stair, 0) {
			t.Fatalf("stair %d: first edge at counter 0 should fire", stair)
		}
	}
}

func TestAuthorize_FirstEdgeFiresAtAnyCounter(t *testing.T) {
	const cooldown = 30

	// A process starts its counter at zero, but a long-running one can see
	// a stair's very first step anywhere in the counter range, including
	// just below the wrap.
	starts := []uint32{0, 1, cooldown - 1, CounterWrap - 1, CounterWrap - 5, CounterWrap - 2*cooldown + 1}

	s, err := New(len(starts), cooldown)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}
	for stair, now := range starts {
		if !s.Authorize(stair, now) {
			t.Fatalf("stair %d: first edge at counter %d suppressed", stair, now)
		}
	}
}

func TestAuthorize_CooldownBoundary(t *testing.T) {
	const cooldown = 30
	s, err := New(1, cooldown)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	const fired = 100
	if !s.Authorize(0, fired) {
		t.Fatalf("expected fire at counter %d", fired)
	}
	if s.Authorize(0, fired+cooldown-1) {
		t.Fatalf("fired one cycle before cooldown expiry")
	}
	if !s.Authorize(0, fired+cooldown) {
		t.Fatalf("did not fire at cooldown expiry")
	}
}

func TestAuthorize_SuppressedEdgeKeepsCooldown(t *testing.T) {
	s, err := New(1, 10)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	if !s.Authorize(0, 50) {
		t.Fatalf("expected fire at 50")
	}
	// Suppressed edges must not extend the window.
	if s.Authorize(0, 55) {
		t.Fatalf("fired within cooldown")
	}
	if !s.Authorize(0, 60) {
		t.Fatalf("suppressed edge at 55 extended the cooldown")
	}
}

func TestAuthorize_StairsIndependent(t *testing.T) {
	s, err := New(2, 30)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	if !s.Authorize(0, 10) {
		t.Fatalf("stair 0 should fire")
	}
	if !s.Authorize(1, 11) {
		t.Fatalf("stair 1 cooldown should be independent of stair 0")
	}
}

func TestAuthorize_AcrossCounterWrap(t *testing.T) {
	const cooldown = 30
	s, err := New(1, cooldown)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	// Establish a real fire just before the wrap, then check the window
	// straddling it.
	last := CounterWrap - 5
	if !s.Authorize(0, last) {
		t.Fatalf("expected first fire at %d", last)
	}
	if s.Authorize(0, 10) { // elapsed = 15
		t.Fatalf("fired within cooldown across wrap")
	}
	if !s.Authorize(0, cooldown-5) { // elapsed = 30
		t.Fatalf("did not fire at cooldown expiry across wrap")
	}
}

func TestAuthorize_OutOfRangeStair(t *testing.T) {
	s, err := New(2, 1)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}
	if s.Authorize(-1, 0) || s.Authorize(2, 0) {
		t.Fatalf("out-of-range stair must never fire")
	}
}

func TestNew_RejectsBadConfig(t *testing.T) {
	if _, err := New(0, 1); err == nil {
		t.Fatalf("expected error for zero stairs")
	}
	if _, err := New(1, CounterWrap); err == nil {
		t.Fatalf("expected error for cooldown >= wrap")
	}
}
