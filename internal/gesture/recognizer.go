package gesture

import (
	"image"
	"time"

	"github.com/ranjeetds/gestify/internal/detector"
)

// Recognizer is the per-frame entry point of the recognition pipeline. It
// owns one pose analyzer per hand slot, a single-hand machine, and a
// two-hand tracker, all sharing one cooldown gate. Frames must be fed in
// order, one at a time; the recognizer keeps per-frame edge and baseline
// state and is not safe for concurrent use.
type Recognizer struct {
	cfg       Config
	gate      *cooldownGate
	machine   *Machine
	twoHand   *TwoHandTracker
	analyzers [2]*PoseAnalyzer
}

// Result is the outcome of recognizing one frame.
type Result struct {
	// Event carries the recognized gesture; Event.Gesture is None when the
	// frame produced nothing.
	Event Event

	// Primary is the dominant hand's pose state, nil when no hand was
	// observed. Consumers use it for cursor mapping and scroll velocity.
	Primary *HandState
}

// New creates a Recognizer with the given configuration.
func New(cfg Config) *Recognizer {
	gate := newCooldownGate(cfg.Cooldown)
	return &Recognizer{
		cfg:     cfg,
		gate:    gate,
		machine: newMachineWithGate(cfg, gate),
		twoHand: newTwoHandTrackerWithGate(cfg, gate),
		analyzers: [2]*PoseAnalyzer{
			NewPoseAnalyzer(cfg.ExtensionRatio),
			NewPoseAnalyzer(cfg.ExtensionRatio),
		},
	}
}

// Recognize processes one frame's hand observations. The attention boolean
// comes from the attention gate; while it is false every frame emits None and
// any active drag is released. Missing hands clear the drag flag and the
// two-hand baseline, so a tracking dropout can never leave a gesture stuck.
func (r *Recognizer) Recognize(hands []detector.HandLandmarks, width, height int, attending bool) Result {
	now := r.gate.now()

	if !attending {
		r.machine.ReleaseDrag()
		return Result{Event: Event{Gesture: None, At: now}}
	}

	switch len(hands) {
	case 0:
		r.machine.ReleaseDrag()
		r.twoHand.Reset()
		r.analyzers[0].Reset()
		r.analyzers[1].Reset()
		return Result{Event: Event{Gesture: None, At: now}}

	case 1:
		state := r.analyzers[0].Analyze(&hands[0], width, height)
		r.twoHand.Reset()
		g := r.machine.Step(state, true)
		return Result{
			Event:   r.event(g, &state, now),
			Primary: &state,
		}

	default:
		first := r.analyzers[0].Analyze(&hands[0], width, height)
		second := r.analyzers[1].Analyze(&hands[1], width, height)

		// Composite recognition runs first so a two-hand gesture can never
		// double-fire as a single-hand gesture in the same frame.
		if g := r.twoHand.Step(first, second); g != None {
			mid := image.Point{
				X: (first.Position.X + second.Position.X) / 2,
				Y: (first.Position.Y + second.Position.Y) / 2,
			}
			return Result{
				Event:   Event{Gesture: g, Position: mid, At: now},
				Primary: dominant(&first, &second),
			}
		}

		// Single-hand fallback applies only to the dominant hand, never to
		// both.
		state := dominant(&first, &second)
		g := r.machine.Step(*state, true)
		return Result{
			Event:   r.event(g, state, now),
			Primary: state,
		}
	}
}

// Reset clears all recognition state: drag flag, pinch edges, two-hand
// baseline, and position histories.
func (r *Recognizer) Reset() {
	r.machine.Reset()
	r.twoHand.Reset()
	r.analyzers[0].Reset()
	r.analyzers[1].Reset()
}

// event wraps a gesture emission with the hand's position and velocity.
func (r *Recognizer) event(g Gesture, state *HandState, now time.Time) Event {
	return Event{
		Gesture:  g,
		Hand:     state.Handedness,
		Position: state.Position,
		Velocity: state.Velocity,
		At:       now,
	}
}

// dominant selects the hand the single-hand fallback applies to, preferring
// the right hand when handedness labels are available.
func dominant(first, second *HandState) *HandState {
	if first.Handedness == "Right" && second.Handedness != "Right" {
		return first
	}
	return second
}
