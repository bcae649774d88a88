package gesture

import "time"

// Config holds the tuning knobs for gesture recognition. All thresholds were
// calibrated against a 640x480 camera frame; pixel thresholds scale with the
// frame dimensions passed to Recognize.
type Config struct {
	// Cooldown is the minimum wall-clock interval between two discrete
	// gesture emissions. Continuous gestures are exempt.
	Cooldown time.Duration

	// PinchThreshold is the thumb-to-index distance in pixels below which
	// the hand counts as pinching.
	PinchThreshold float64

	// ExtensionRatio is the tip-to-wrist over proximal-to-wrist distance
	// ratio above which a finger counts as extended.
	ExtensionRatio float64

	// MultiClickWindow is the maximum interval between two pinch edges for
	// them to count as a double click.
	MultiClickWindow time.Duration

	// ScrollMinVelocity is the minimum absolute vertical fingertip velocity
	// in pixels/frame for a fist to count as scrolling.
	ScrollMinVelocity float64

	// ZoomThreshold is the change in inter-hand index fingertip distance in
	// pixels that fires a zoom tick.
	ZoomThreshold float64

	// RotationThreshold is the change in inter-hand angle in radians that
	// fires a rotation tick.
	RotationThreshold float64

	// ReleaseMultiplier scales PinchThreshold up to form the release
	// threshold of a pinch hold, providing hysteresis against jitter.
	ReleaseMultiplier float64
}

// DefaultConfig returns a Config with the calibrated default values.
func DefaultConfig() Config {
	return Config{
		Cooldown:          250 * time.Millisecond,
		PinchThreshold:    20,
		ExtensionRatio:    1.15,
		MultiClickWindow:  500 * time.Millisecond,
		ScrollMinVelocity: 5,
		ZoomThreshold:     50,
		RotationThreshold: 0.3, // ~17 degrees
		ReleaseMultiplier: 3.0,
	}
}
