package gesture

import (
	"image"
	"math"

	"github.com/ranjeetds/gestify/internal/detector"
)

// thumbExtensionRatio is the extension ratio used for the thumb. The thumb is
// measured against its own IP joint rather than a PIP, and needs a slightly
// stricter ratio to avoid reading a curled thumb as extended.
const thumbExtensionRatio = 1.2

// positionHistorySize bounds the fingertip history used for velocity.
const positionHistorySize = 5

// HandState is the instantaneous pose descriptor for one hand, recomputed
// every frame from a single observation plus a short position history.
type HandState struct {
	Handedness string

	// Position is the index fingertip in camera pixels.
	Position image.Point

	// Fingers flags extension per finger: thumb, index, middle, ring, pinky.
	Fingers [5]bool

	// IsFist is true when no fingers are extended, IsPalm when all are.
	IsFist bool
	IsPalm bool

	// PinchDistance is the thumb-tip to index-tip distance in pixels.
	PinchDistance float64

	// Velocity is the index fingertip velocity in pixels/frame, averaged
	// over the position history.
	Velocity Vec2

	// ThumbTip and WristPos are carried for thumb-orientation checks.
	ThumbTip image.Point
	WristPos image.Point
}

// Pattern reports whether the extension flags match the given pattern.
func (s HandState) Pattern(thumb, index, middle, ring, pinky bool) bool {
	return s.Fingers == [5]bool{thumb, index, middle, ring, pinky}
}

// PoseAnalyzer derives HandState values for one hand slot. It owns the
// bounded fingertip history that feeds the velocity estimate, so each tracked
// hand slot needs its own analyzer.
type PoseAnalyzer struct {
	extensionRatio float64
	history        []image.Point
}

// NewPoseAnalyzer creates a PoseAnalyzer with the given finger-extension
// ratio (see Config.ExtensionRatio).
func NewPoseAnalyzer(extensionRatio float64) *PoseAnalyzer {
	return &PoseAnalyzer{
		extensionRatio: extensionRatio,
		history:        make([]image.Point, 0, positionHistorySize),
	}
}

// Analyze computes the hand state for one observation. A nil or malformed
// observation yields the neutral state: no fingers extended, zero velocity,
// infinite pinch distance. The neutral state matches no gesture rule, so a
// bad frame suppresses emission without crashing the pipeline.
func (a *PoseAnalyzer) Analyze(hand *detector.HandLandmarks, width, height int) HandState {
	wrist, okW := hand.Landmark(detector.Wrist)
	thumbTip, okT := hand.Landmark(detector.ThumbTip)
	indexTip, okI := hand.Landmark(detector.IndexTip)
	if !okW || !okT || !okI || width <= 0 || height <= 0 {
		return neutralState()
	}

	state := HandState{
		Handedness: hand.Handedness,
		Position:   indexTip.Px(width, height),
		ThumbTip:   thumbTip.Px(width, height),
		WristPos:   wrist.Px(width, height),
	}

	state.Fingers = [5]bool{
		a.fingerExtended(hand, detector.ThumbTip, detector.ThumbIP, thumbExtensionRatio),
		a.fingerExtended(hand, detector.IndexTip, detector.IndexPIP, a.extensionRatio),
		a.fingerExtended(hand, detector.MiddleTip, detector.MiddlePIP, a.extensionRatio),
		a.fingerExtended(hand, detector.RingTip, detector.RingPIP, a.extensionRatio),
		a.fingerExtended(hand, detector.PinkyTip, detector.PinkyPIP, a.extensionRatio),
	}

	state.IsFist = state.Fingers == [5]bool{}
	state.IsPalm = state.Fingers == [5]bool{true, true, true, true, true}

	state.PinchDistance = detector.DistancePx(state.ThumbTip, state.Position)
	state.Velocity = a.updateVelocity(state.Position)

	return state
}

// Reset clears the fingertip history, e.g. after the hand leaves the frame.
func (a *PoseAnalyzer) Reset() {
	a.history = a.history[:0]
}

// fingerExtended applies the ratio test: a finger is extended iff its tip is
// sufficiently farther from the wrist than its proximal joint is. Both
// distances share the wrist origin, which makes the test robust to hand scale
// and rotation.
func (a *PoseAnalyzer) fingerExtended(hand *detector.HandLandmarks, tipIdx, proximalIdx int, ratio float64) bool {
	wrist, okW := hand.Landmark(detector.Wrist)
	tip, okT := hand.Landmark(tipIdx)
	proximal, okP := hand.Landmark(proximalIdx)
	if !okW || !okT || !okP {
		return false
	}

	tipDist := detector.Distance2D(tip, wrist)
	proximalDist := detector.Distance2D(proximal, wrist)

	return tipDist > proximalDist*ratio
}

// updateVelocity appends the position to the bounded history and returns the
// average velocity between the oldest and newest entries.
func (a *PoseAnalyzer) updateVelocity(pos image.Point) Vec2 {
	if len(a.history) >= positionHistorySize {
		copy(a.history, a.history[1:])
		a.history = a.history[:positionHistorySize-1]
	}
	a.history = append(a.history, pos)

	if len(a.history) < 2 {
		return Vec2{}
	}

	frames := float64(len(a.history) - 1)
	oldest := a.history[0]
	newest := a.history[len(a.history)-1]

	return Vec2{
		X: float64(newest.X-oldest.X) / frames,
		Y: float64(newest.Y-oldest.Y) / frames,
	}
}

func neutralState() HandState {
	return HandState{
		IsFist:        true,
		PinchDistance: math.Inf(1),
	}
}
