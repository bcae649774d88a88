package gesture

import (
	"math"

	"github.com/ranjeetds/gestify/internal/detector"
)

// TwoHandTracker recognizes composite zoom and rotate gestures from two
// simultaneous hand states. It keeps a distance/angle baseline captured when
// both index fingers first extend, and emits a discrete tick whenever the
// cumulative change from the baseline crosses a threshold, re-baselining to
// the current value on each emission. Sustained spreading or turning motion
// therefore produces a train of ticks rather than a single event.
type TwoHandTracker struct {
	cfg  Config
	gate *cooldownGate

	baselineSet      bool
	baselineDistance float64
	baselineAngle    float64
}

// NewTwoHandTracker creates a tracker with its own cooldown gate. Use
// newTwoHandTrackerWithGate to share the gate with a single-hand machine.
func NewTwoHandTracker(cfg Config) *TwoHandTracker {
	return newTwoHandTrackerWithGate(cfg, newCooldownGate(cfg.Cooldown))
}

func newTwoHandTrackerWithGate(cfg Config, gate *cooldownGate) *TwoHandTracker {
	return &TwoHandTracker{cfg: cfg, gate: gate}
}

// Step runs one frame of composite recognition. The precondition is both
// hands holding their index fingers extended; any break clears the baseline,
// so the next qualifying frame only re-captures the reference and never fires
// against stale state.
func (t *TwoHandTracker) Step(left, right HandState) Gesture {
	if !left.Fingers[1] || !right.Fingers[1] {
		t.Reset()
		return None
	}

	distance := detector.DistancePx(left.Position, right.Position)
	angle := math.Atan2(
		float64(right.Position.Y-left.Position.Y),
		float64(right.Position.X-left.Position.X),
	)

	// First qualifying frame of a gesture episode only establishes the
	// reference.
	if !t.baselineSet {
		t.baselineSet = true
		t.baselineDistance = distance
		t.baselineAngle = angle
		return None
	}

	// Zoom is checked before rotation: a single ambiguous movement must not
	// fire both in one frame.
	distanceDelta := distance - t.baselineDistance
	if math.Abs(distanceDelta) > t.cfg.ZoomThreshold {
		if t.gate.ready() {
			g := ZoomOut
			if distanceDelta > 0 {
				g = ZoomIn
			}
			t.gate.fire(g)
			t.baselineDistance = distance
			return g
		}
		return None
	}

	angleDelta := normalizeAngle(angle - t.baselineAngle)
	if math.Abs(angleDelta) > t.cfg.RotationThreshold {
		if t.gate.ready() {
			g := RotateCW
			if angleDelta > 0 {
				g = RotateCCW
			}
			t.gate.fire(g)
			t.baselineAngle = angle
			return g
		}
	}

	return None
}

// Reset clears the baseline. Called when the precondition breaks, a hand
// disappears, or the caller restarts recognition.
func (t *TwoHandTracker) Reset() {
	t.baselineSet = false
	t.baselineDistance = 0
	t.baselineAngle = 0
}

// normalizeAngle wraps an angle difference into (-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
