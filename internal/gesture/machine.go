package gesture

import "time"

// clickEdgeHistorySize bounds the pinch rising-edge history kept for
// multi-click detection.
const clickEdgeHistorySize = 3

// Machine is the single-hand gesture state machine. It consumes one HandState
// per frame and emits at most one gesture, applying the cooldown, the
// drag-state invariant, and pinch edge detection.
//
// Classification is an ordered rule list evaluated first-match-wins; the
// order is the tie-break policy for overlapping poses and must not be
// shuffled.
type Machine struct {
	cfg  Config
	gate *cooldownGate
	hold *PinchHold

	dragging   bool
	clickEdges []time.Time
}

// singleHandRules is the ordered classification table. A rule returns
// (gesture, true) to claim the frame; (None, false) passes the pose to the
// next rule, which is also how a cooldown-blocked candidate falls through.
var singleHandRules = []struct {
	name string
	fn   func(*Machine, HandState) (Gesture, bool)
}{
	{"cursor-move", (*Machine).ruleCursorMove},
	{"drag-hold", (*Machine).ruleDragHold},
	{"drag-release", (*Machine).ruleDragRelease},
	{"palm-pause", (*Machine).rulePalmPause},
	{"thumb-confirm", (*Machine).ruleThumbConfirm},
	{"thumb-cancel", (*Machine).ruleThumbCancel},
	{"pinch-click", (*Machine).rulePinchClick},
	{"fist-scroll", (*Machine).ruleFistScroll},
}

// NewMachine creates a single-hand gesture machine with its own cooldown
// gate. Use newMachineWithGate to share a gate with a two-hand tracker.
func NewMachine(cfg Config) *Machine {
	return newMachineWithGate(cfg, newCooldownGate(cfg.Cooldown))
}

func newMachineWithGate(cfg Config, gate *cooldownGate) *Machine {
	return &Machine{
		cfg:        cfg,
		gate:       gate,
		hold:       NewPinchHold(cfg),
		clickEdges: make([]time.Time, 0, clickEdgeHistorySize),
	}
}

// Step runs one frame of classification. When attending is false the frame
// emits None and any active drag is force-released, so a drag cannot stay
// stuck while the user looks away.
func (m *Machine) Step(state HandState, attending bool) Gesture {
	if !attending {
		m.dragging = false
		return None
	}

	for _, rule := range singleHandRules {
		if g, ok := rule.fn(m, state); ok {
			return g
		}
	}
	return None
}

// ReleaseDrag clears the drag flag without emitting, used when the hand
// disappears or attention is lost.
func (m *Machine) ReleaseDrag() {
	m.dragging = false
}

// Dragging reports whether a drag is currently active.
func (m *Machine) Dragging() bool {
	return m.dragging
}

// Reset clears all per-hand state.
func (m *Machine) Reset() {
	m.dragging = false
	m.hold.Reset()
	m.clickEdges = m.clickEdges[:0]
}

// ruleCursorMove: only the index finger extended. Continuous, no cooldown.
func (m *Machine) ruleCursorMove(state HandState) (Gesture, bool) {
	if state.Pattern(false, true, false, false, false) {
		return CursorMove, true
	}
	return None, false
}

// ruleDragHold: peace sign (index + middle). Starts a drag on the first
// frame, subject to cooldown; while the drag is held the frame re-emits
// CursorMove so the consumer keeps tracking the fingertip. A cooldown-blocked
// start still engages the drag and reports CursorMove for the frame.
func (m *Machine) ruleDragHold(state HandState) (Gesture, bool) {
	if !state.Pattern(false, true, true, false, false) {
		return None, false
	}
	if m.dragging {
		return CursorMove, true
	}
	m.dragging = true
	if m.gate.ready() {
		m.gate.fire(DragStart)
		return DragStart, true
	}
	return CursorMove, true
}

// ruleDragRelease: the drag pattern was dropped while dragging.
func (m *Machine) ruleDragRelease(state HandState) (Gesture, bool) {
	if !m.dragging || state.Pattern(false, true, true, false, false) {
		return None, false
	}
	m.dragging = false
	if m.gate.ready() {
		m.gate.fire(DragEnd)
		return DragEnd, true
	}
	return None, false
}

// rulePalmPause: all five fingers extended.
func (m *Machine) rulePalmPause(state HandState) (Gesture, bool) {
	if !state.IsPalm {
		return None, false
	}
	if m.gate.ready() {
		m.gate.fire(Pause)
		return Pause, true
	}
	return None, false
}

// ruleThumbConfirm: only the thumb extended, tip above the wrist.
func (m *Machine) ruleThumbConfirm(state HandState) (Gesture, bool) {
	if !state.Pattern(true, false, false, false, false) || state.ThumbTip.Y >= state.WristPos.Y {
		return None, false
	}
	if m.gate.ready() {
		m.gate.fire(Confirm)
		return Confirm, true
	}
	return None, false
}

// ruleThumbCancel: only the thumb extended, tip below the wrist. The tip-Y
// comparison is sensitive to forearm rotation; the thumb ruleset is the
// weakest heuristic in the vocabulary and both rules share the cooldown.
func (m *Machine) ruleThumbCancel(state HandState) (Gesture, bool) {
	if !state.Pattern(true, false, false, false, false) || state.ThumbTip.Y <= state.WristPos.Y {
		return None, false
	}
	if m.gate.ready() {
		m.gate.fire(Cancel)
		return Cancel, true
	}
	return None, false
}

// rulePinchClick: engage edge of the pinch hold. Engaging uses the strict
// pinch threshold and releasing a looser one (ReleaseMultiplier), so jitter
// near the threshold cannot produce repeated edges. Two edges inside the
// multi-click window form a double click and clear the edge history so a
// third edge starts a fresh sequence.
func (m *Machine) rulePinchClick(state HandState) (Gesture, bool) {
	started, _ := m.hold.Update(state.PinchDistance)
	if !started {
		return None, false
	}

	now := m.gate.now()
	if len(m.clickEdges) >= clickEdgeHistorySize {
		copy(m.clickEdges, m.clickEdges[1:])
		m.clickEdges = m.clickEdges[:clickEdgeHistorySize-1]
	}
	m.clickEdges = append(m.clickEdges, now)

	if len(m.clickEdges) >= 2 {
		latest := m.clickEdges[len(m.clickEdges)-1]
		previous := m.clickEdges[len(m.clickEdges)-2]
		if latest.Sub(previous) < m.cfg.MultiClickWindow {
			m.clickEdges = m.clickEdges[:0]
			if m.gate.ready() {
				m.gate.fire(DoubleClick)
				return DoubleClick, true
			}
			return None, false
		}
	}

	if m.gate.ready() {
		m.gate.fire(Click)
		return Click, true
	}
	return None, false
}

// ruleFistScroll: fist with significant vertical fingertip velocity.
// Continuous, no cooldown; direction and magnitude travel in the velocity.
func (m *Machine) ruleFistScroll(state HandState) (Gesture, bool) {
	if state.IsFist && abs(state.Velocity.Y) > m.cfg.ScrollMinVelocity {
		return Scroll, true
	}
	return None, false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
