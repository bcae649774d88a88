package gesture

import "testing"

func TestPinchHold_Hysteresis(t *testing.T) {
	cfg := DefaultConfig() // engage at 20px, release at 60px
	hold := NewPinchHold(cfg)

	// Above the engage threshold: nothing happens.
	started, ended := hold.Update(30)
	if started || ended || hold.Holding() {
		t.Fatal("expected no hold at 30px")
	}

	// Crossing below the engage threshold starts the hold.
	started, ended = hold.Update(15)
	if !started || ended {
		t.Fatalf("expected hold start, got started=%v ended=%v", started, ended)
	}
	if !hold.Holding() {
		t.Fatal("expected holding after start")
	}

	// Jitter between the two thresholds does not release.
	started, ended = hold.Update(45)
	if started || ended {
		t.Errorf("expected no edge at 45px while holding, got started=%v ended=%v", started, ended)
	}
	if !hold.Holding() {
		t.Error("expected hold to survive jitter below release threshold")
	}

	// Crossing the release threshold ends the hold.
	started, ended = hold.Update(60)
	if started || !ended {
		t.Errorf("expected hold end, got started=%v ended=%v", started, ended)
	}
	if hold.Holding() {
		t.Error("expected not holding after release")
	}

	// Between the thresholds while released: still nothing.
	started, ended = hold.Update(45)
	if started || ended || hold.Holding() {
		t.Error("expected no edge at 45px while released")
	}
}

func TestPinchHold_ResetReleasesWithoutEdge(t *testing.T) {
	hold := NewPinchHold(DefaultConfig())

	hold.Update(10)
	if !hold.Holding() {
		t.Fatal("expected holding")
	}

	hold.Reset()
	if hold.Holding() {
		t.Error("expected reset to release the hold")
	}

	// The next engage reports a fresh start edge.
	started, _ := hold.Update(10)
	if !started {
		t.Error("expected start edge after reset")
	}
}
