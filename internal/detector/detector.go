package detector

import "gocv.io/x/gocv"

// Observation is the result of running detection on a single frame:
// zero or more hands and zero or one face.
type Observation struct {
	Hands []HandLandmarks
	Face  *FaceLandmarks
}

// Detector defines the interface for landmark detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns the detected hand and face
	// landmarks. An observation with no hands and a nil face means nothing
	// was detected; that is not an error.
	Detect(frame *gocv.Mat) (*Observation, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for landmark detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 2).
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64

	// TrackFace enables face mesh detection for attention tracking.
	TrackFace bool
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:        2,
		MinConfidence:   0.7,
		MinTrackingConf: 0.5,
		TrackFace:       true,
	}
}
