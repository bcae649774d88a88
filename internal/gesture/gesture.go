// Package gesture converts per-frame hand landmark observations into
// discrete, debounced gesture events.
package gesture

import (
	"image"
	"time"
)

// Gesture identifies one entry in the closed gesture vocabulary.
type Gesture int

const (
	// None means no gesture was recognized this frame.
	None Gesture = iota

	// Single hand gestures.
	CursorMove  // index finger pointing, continuous
	Click       // quick thumb-index pinch
	DoubleClick // two quick pinches
	Scroll      // fist moving up/down, continuous
	DragStart   // peace sign while not dragging
	DragEnd     // leaving the peace sign while dragging

	// Two-hand gestures.
	ZoomIn    // index fingertips moving apart
	ZoomOut   // index fingertips moving together
	RotateCW  // inter-hand angle rotating clockwise
	RotateCCW // inter-hand angle rotating counter-clockwise

	// Control gestures.
	Pause   // open palm
	Confirm // thumbs up
	Cancel  // thumbs down
)

var gestureNames = map[Gesture]string{
	None:        "none",
	CursorMove:  "cursor_move",
	Click:       "click",
	DoubleClick: "double_click",
	Scroll:      "scroll",
	DragStart:   "drag_start",
	DragEnd:     "drag_end",
	ZoomIn:      "zoom_in",
	ZoomOut:     "zoom_out",
	RotateCW:    "rotate_cw",
	RotateCCW:   "rotate_ccw",
	Pause:       "pause",
	Confirm:     "confirm",
	Cancel:      "cancel",
}

// String returns the wire name of the gesture.
func (g Gesture) String() string {
	if name, ok := gestureNames[g]; ok {
		return name
	}
	return "unknown"
}

// Continuous reports whether the gesture is level-triggered: it represents
// ongoing state, may repeat every frame, and bypasses the cooldown.
func (g Gesture) Continuous() bool {
	return g == CursorMove || g == Scroll
}

// Event is one recognized gesture emission.
type Event struct {
	Gesture  Gesture     `json:"gesture"`
	Hand     string      `json:"hand,omitempty"` // "Left" or "Right", empty for two-hand gestures
	Position image.Point `json:"position"`       // index fingertip in camera pixels
	Velocity Vec2        `json:"velocity"`       // fingertip velocity, pixels/frame
	At       time.Time   `json:"at"`
}

// Vec2 is a 2D velocity in pixels per frame.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
