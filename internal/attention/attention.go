// Package attention derives a smoothed "user is attending" signal from face
// landmarks, used to suppress gesture actions while the user looks away.
package attention

import (
	"math"

	"github.com/ranjeetds/gestify/internal/detector"
)

// Per-frame gaze heuristic bounds, calibrated for a user seated in front of
// a screen with a slightly downward natural gaze.
const (
	maxGazeOffsetX = 0.015
	minGazeOffsetY = -0.005
	maxGazeOffsetY = 0.020
	minNoseX       = 0.3
	maxNoseX       = 0.7
	minFaceWidth   = 0.15
)

// Config holds the smoothing parameters of the attention gate.
type Config struct {
	// BufferSize is the capacity of the sliding window of per-frame
	// looking observations.
	BufferSize int

	// MinSamples is the minimum number of buffered observations before the
	// gate can output true. Until then the output is false, so actions stay
	// blocked until enough evidence accumulates.
	MinSamples int

	// VoteThreshold is the number of true observations in the buffer
	// required for the smoothed signal to be true.
	VoteThreshold int
}

// DefaultConfig returns the calibrated default smoothing parameters.
func DefaultConfig() Config {
	return Config{
		BufferSize:    10,
		MinSamples:    3,
		VoteThreshold: 3,
	}
}

// Gate smooths the per-frame gaze heuristic through a majority-style vote
// over a fixed-size sliding window, trading a short delay for resistance to
// single-frame misclassification.
type Gate struct {
	cfg    Config
	buffer []bool
}

// NewGate creates a Gate with the given configuration.
func NewGate(cfg Config) *Gate {
	if cfg.BufferSize < 1 {
		cfg.BufferSize = 1
	}
	return &Gate{
		cfg:    cfg,
		buffer: make([]bool, 0, cfg.BufferSize),
	}
}

// Update feeds one frame's face observation (nil when no face was detected)
// and returns the smoothed attention signal.
func (g *Gate) Update(face *detector.FaceLandmarks) bool {
	return g.push(Looking(face))
}

// Attending returns the current smoothed signal without consuming a frame.
func (g *Gate) Attending() bool {
	return g.vote()
}

// Reset clears the observation buffer.
func (g *Gate) Reset() {
	g.buffer = g.buffer[:0]
}

func (g *Gate) push(looking bool) bool {
	if len(g.buffer) >= g.cfg.BufferSize {
		copy(g.buffer, g.buffer[1:])
		g.buffer = g.buffer[:g.cfg.BufferSize-1]
	}
	g.buffer = append(g.buffer, looking)
	return g.vote()
}

func (g *Gate) vote() bool {
	if len(g.buffer) < g.cfg.MinSamples {
		return false
	}
	count := 0
	for _, looking := range g.buffer {
		if looking {
			count++
		}
	}
	return count >= g.cfg.VoteThreshold
}

// Looking applies the per-frame gaze heuristic: the iris offset from the eye
// center must be small horizontally and inside a narrow slightly-downward
// band vertically, the nose tip must fall in a centered horizontal band, and
// the face must be wide enough in the frame to rule out an extreme head
// turn. Any missing landmark yields false; absence of evidence is treated as
// absence of attention.
func Looking(face *detector.FaceLandmarks) bool {
	leftEye, ok1 := face.Landmark(detector.LeftEyeCenter)
	leftIris, ok2 := face.Landmark(detector.LeftIris)
	rightEye, ok3 := face.Landmark(detector.RightEyeCenter)
	rightIris, ok4 := face.Landmark(detector.RightIris)
	nose, ok5 := face.Landmark(detector.NoseTip)
	leftEdge, ok6 := face.Landmark(detector.LeftFaceEdge)
	rightEdge, ok7 := face.Landmark(detector.RightFaceEdge)
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 || !ok6 || !ok7 {
		return false
	}

	gazeX := ((leftIris.X - leftEye.X) + (rightIris.X - rightEye.X)) / 2
	gazeY := ((leftIris.Y - leftEye.Y) + (rightIris.Y - rightEye.Y)) / 2

	lookingForward := math.Abs(gazeX) < maxGazeOffsetX
	lookingAtScreen := gazeY > minGazeOffsetY && gazeY < maxGazeOffsetY

	faceCentered := nose.X > minNoseX && nose.X < maxNoseX
	faceFrontal := math.Abs(rightEdge.X-leftEdge.X) > minFaceWidth

	return lookingForward && lookingAtScreen && faceCentered && faceFrontal
}
