// Package detector provides hand and face detection interfaces and types for
// gesture recognition.
package detector

import (
	"image"
	"math"
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a 3D point in normalized coordinate space.
// X and Y are in [0,1] relative to the frame; Z is relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Px converts the normalized point to pixel coordinates for a frame of the
// given dimensions.
func (p Point3D) Px(width, height int) image.Point {
	return image.Point{
		X: int(p.X * float64(width)),
		Y: int(p.Y * float64(height)),
	}
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Landmark returns the normalized landmark at the given index. Out-of-range
// indices and non-finite coordinates return false so callers can degrade to a
// neutral pose instead of panicking.
func (h *HandLandmarks) Landmark(index int) (Point3D, bool) {
	if h == nil || index < 0 || index >= NumLandmarks {
		return Point3D{}, false
	}
	p := h.Points[index]
	if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
		return Point3D{}, false
	}
	return p, true
}

// LandmarkPx returns the landmark at the given index in pixel coordinates.
func (h *HandLandmarks) LandmarkPx(index, width, height int) (image.Point, bool) {
	p, ok := h.Landmark(index)
	if !ok {
		return image.Point{}, false
	}
	return p.Px(width, height), true
}

// Distance2D calculates the Euclidean distance between two points in the
// image plane, ignoring depth. Pose heuristics are calibrated against the
// camera image, where the model's relative depth is too noisy to help.
func Distance2D(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// DistancePx calculates the Euclidean distance between two pixel positions.
func DistancePx(a, b image.Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
