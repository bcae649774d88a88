package detector

// Face mesh landmark indices used for attention tracking, following the
// MediaPipe face mesh convention with refined (iris) landmarks enabled.
const (
	NoseTip        = 1
	LeftEyeCenter  = 33
	RightEyeCenter = 263
	LeftFaceEdge   = 234
	RightFaceEdge  = 454
	LeftIris       = 468
	RightIris      = 473

	// NumFaceLandmarks is the refined face mesh size (468 mesh + 10 iris).
	NumFaceLandmarks = 478
)

// FaceLandmarks represents the face mesh landmarks detected by MediaPipe.
// Only the subset addressed by the index constants above is consumed; the
// full mesh is carried so the web UI can render it.
type FaceLandmarks struct {
	Points []Point3D `json:"points"`
	Score  float64   `json:"score"`
}

// Landmark returns the normalized face landmark at the given index.
// Indices beyond the detected mesh return false; a face model run without
// iris refinement produces only 468 points, in which case the iris indices
// are simply absent and attention checks fail safe.
func (f *FaceLandmarks) Landmark(index int) (Point3D, bool) {
	if f == nil || index < 0 || index >= len(f.Points) {
		return Point3D{}, false
	}
	p := f.Points[index]
	if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
		return Point3D{}, false
	}
	return p, true
}
