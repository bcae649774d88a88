// Package cursor maps fingertip positions from camera-frame space into a
// target coordinate space with mirroring, clamping, and a small moving
// average for jitter suppression.
package cursor

import "image"

// DefaultSmoothing is the default moving-average window size.
const DefaultSmoothing = 5

// Mapper transforms camera-space fingertip positions into target-space
// cursor positions. The transform itself is stateless; the only state is the
// bounded history feeding the moving average.
type Mapper struct {
	targetWidth  int
	targetHeight int
	mirror       bool
	window       int
	history      []image.Point
}

// NewMapper creates a Mapper for the given target space. When mirror is true
// the horizontal axis is flipped, correcting the mirror effect of a
// front-facing camera. A smoothing window below 1 falls back to the default.
func NewMapper(targetWidth, targetHeight int, mirror bool, smoothing int) *Mapper {
	if smoothing < 1 {
		smoothing = DefaultSmoothing
	}
	return &Mapper{
		targetWidth:  targetWidth,
		targetHeight: targetHeight,
		mirror:       mirror,
		window:       smoothing,
		history:      make([]image.Point, 0, smoothing),
	}
}

// Map converts one camera-space position to target space and returns the
// moving average of the recent mapped positions.
func (m *Mapper) Map(pos image.Point, frameWidth, frameHeight int) image.Point {
	mapped := m.transform(pos, frameWidth, frameHeight)

	if len(m.history) >= m.window {
		copy(m.history, m.history[1:])
		m.history = m.history[:m.window-1]
	}
	m.history = append(m.history, mapped)

	var sumX, sumY int
	for _, p := range m.history {
		sumX += p.X
		sumY += p.Y
	}
	n := len(m.history)
	return image.Point{X: sumX / n, Y: sumY / n}
}

// Reset clears the smoothing history, e.g. when the hand leaves the frame,
// so the cursor does not glide from its old position when tracking resumes.
func (m *Mapper) Reset() {
	m.history = m.history[:0]
}

func (m *Mapper) transform(pos image.Point, frameWidth, frameHeight int) image.Point {
	if frameWidth <= 0 || frameHeight <= 0 {
		return image.Point{}
	}

	nx := float64(pos.X) / float64(frameWidth)
	ny := float64(pos.Y) / float64(frameHeight)
	if m.mirror {
		nx = 1 - nx
	}

	x := int(nx * float64(m.targetWidth))
	y := int(ny * float64(m.targetHeight))

	return image.Point{
		X: clamp(x, 0, m.targetWidth-1),
		Y: clamp(y, 0, m.targetHeight-1),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
