package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results, including swapping them
// while a pipeline goroutine is calling Detect.
type MockDetector struct {
	mu    sync.Mutex
	hands []HandLandmarks
	face  *FaceLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetFace sets the face that will be returned by Detect.
func (m *MockDetector) SetFace(face *FaceLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.face = face
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Detect returns the pre-configured observation or error.
func (m *MockDetector) Detect(frame *gocv.Mat) (*Observation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return &Observation{Hands: m.hands, Face: m.face}, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Canonical finger directions in normalized space, fanning out from the
// wrist. Y decreases upward in image coordinates.
var fingerDirs = [5][2]float64{
	{0.87, -0.50}, // thumb, angled to the side
	{0.17, -0.98}, // index
	{0.00, -1.00}, // middle
	{-0.17, -0.98}, // ring
	{-0.34, -0.94}, // pinky
}

// handPose builds a synthetic HandLandmarks with the given fingers extended.
// Joint positions are placed along per-finger rays from the wrist so that the
// tip-to-wrist vs proximal-to-wrist ratio test classifies each finger as
// requested for any extension ratio up to ~1.8.
func handPose(extended [5]bool) HandLandmarks {
	h := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	wrist := Point3D{X: 0.5, Y: 0.85}
	h.Points[Wrist] = wrist

	along := func(finger int, dist float64) Point3D {
		return Point3D{
			X: wrist.X + fingerDirs[finger][0]*dist,
			Y: wrist.Y + fingerDirs[finger][1]*dist,
		}
	}

	// Thumb chain: CMC, MCP, IP, Tip. The IP joint is the thumb's proximal
	// reference for the extension test.
	h.Points[ThumbCMC] = along(0, 0.05)
	h.Points[ThumbMCP] = along(0, 0.10)
	h.Points[ThumbIP] = along(0, 0.16)
	if extended[0] {
		h.Points[ThumbTip] = along(0, 0.30)
	} else {
		h.Points[ThumbTip] = along(0, 0.10)
	}

	// Remaining fingers: MCP, PIP, DIP, Tip with PIP as proximal reference.
	bases := [4]int{IndexMCP, MiddleMCP, RingMCP, PinkyMCP}
	for f := 1; f < 5; f++ {
		base := bases[f-1]
		h.Points[base] = along(f, 0.12)
		h.Points[base+1] = along(f, 0.18) // PIP
		if extended[f] {
			h.Points[base+2] = along(f, 0.26) // DIP
			h.Points[base+3] = along(f, 0.34) // Tip
		} else {
			h.Points[base+2] = along(f, 0.14)
			h.Points[base+3] = along(f, 0.12)
		}
	}

	return h
}

// PointingLandmarks returns a hand with only the index finger extended.
func PointingLandmarks() HandLandmarks {
	return handPose([5]bool{false, true, false, false, false})
}

// PeaceSignLandmarks returns a hand with index and middle fingers extended.
func PeaceSignLandmarks() HandLandmarks {
	return handPose([5]bool{false, true, true, false, false})
}

// FistLandmarks returns a hand with no fingers extended.
func FistLandmarks() HandLandmarks {
	return handPose([5]bool{false, false, false, false, false})
}

// OpenPalmLandmarks returns a hand with all five fingers extended.
func OpenPalmLandmarks() HandLandmarks {
	return handPose([5]bool{true, true, true, true, true})
}

// ThumbsUpLandmarks returns a hand with only the thumb extended, tip above
// the wrist.
func ThumbsUpLandmarks() HandLandmarks {
	h := handPose([5]bool{true, false, false, false, false})
	wrist := h.Points[Wrist]
	// Redirect the thumb chain straight up.
	h.Points[ThumbCMC] = Point3D{X: wrist.X + 0.02, Y: wrist.Y - 0.05}
	h.Points[ThumbMCP] = Point3D{X: wrist.X + 0.03, Y: wrist.Y - 0.10}
	h.Points[ThumbIP] = Point3D{X: wrist.X + 0.03, Y: wrist.Y - 0.16}
	h.Points[ThumbTip] = Point3D{X: wrist.X + 0.03, Y: wrist.Y - 0.30}
	return h
}

// ThumbsDownLandmarks returns a hand with only the thumb extended, tip below
// the wrist.
func ThumbsDownLandmarks() HandLandmarks {
	h := handPose([5]bool{true, false, false, false, false})
	wrist := h.Points[Wrist]
	h.Points[ThumbCMC] = Point3D{X: wrist.X + 0.02, Y: wrist.Y + 0.05}
	h.Points[ThumbMCP] = Point3D{X: wrist.X + 0.03, Y: wrist.Y + 0.10}
	h.Points[ThumbIP] = Point3D{X: wrist.X + 0.03, Y: wrist.Y + 0.16}
	h.Points[ThumbTip] = Point3D{X: wrist.X + 0.03, Y: wrist.Y + 0.30}
	return h
}

// PinchLandmarks returns a hand with the index extended and the thumb tip
// touching the index tip, the pose that produces a near-zero pinch distance.
func PinchLandmarks() HandLandmarks {
	h := handPose([5]bool{false, true, false, false, false})
	tip := h.Points[IndexTip]
	h.Points[ThumbTip] = Point3D{X: tip.X + 0.01, Y: tip.Y + 0.01}
	return h
}

// AttentiveFaceLandmarks returns a face looking straight at the camera with
// a slight downward gaze, satisfying every attention heuristic.
func AttentiveFaceLandmarks() *FaceLandmarks {
	f := &FaceLandmarks{
		Points: make([]Point3D, NumFaceLandmarks),
		Score:  0.9,
	}
	f.Points[NoseTip] = Point3D{X: 0.5, Y: 0.5}
	f.Points[LeftEyeCenter] = Point3D{X: 0.40, Y: 0.40}
	f.Points[RightEyeCenter] = Point3D{X: 0.60, Y: 0.40}
	f.Points[LeftIris] = Point3D{X: 0.405, Y: 0.405}
	f.Points[RightIris] = Point3D{X: 0.605, Y: 0.405}
	f.Points[LeftFaceEdge] = Point3D{X: 0.35, Y: 0.5}
	f.Points[RightFaceEdge] = Point3D{X: 0.65, Y: 0.5}
	return f
}

// DistractedFaceLandmarks returns a face with the irises shifted far to the
// side, failing the forward-gaze heuristic.
func DistractedFaceLandmarks() *FaceLandmarks {
	f := AttentiveFaceLandmarks()
	f.Points[LeftIris] = Point3D{X: 0.45, Y: 0.405}
	f.Points[RightIris] = Point3D{X: 0.65, Y: 0.405}
	return f
}
