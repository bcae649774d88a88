package detector

import "testing"

func TestJSONHand_TruncatedPointListIsRejected(t *testing.T) {
	// A partial hand from the landmark service must not become a zero-filled
	// observation: every landmark at the origin reads as a fist with a zero
	// pinch distance downstream.
	points := make([]jsonPoint, NumLandmarks-1)
	for i := range points {
		points[i] = jsonPoint{X: 0.5, Y: 0.5}
	}

	hand := jsonHand{Points: points, Handedness: "Right", Score: 0.9}
	if _, ok := hand.toHandLandmarks(); ok {
		t.Error("expected truncated hand to be rejected")
	}

	if _, ok := (jsonHand{}).toHandLandmarks(); ok {
		t.Error("expected empty hand to be rejected")
	}
}

func TestJSONHand_CompleteHandConverts(t *testing.T) {
	points := make([]jsonPoint, NumLandmarks)
	for i := range points {
		points[i] = jsonPoint{X: float64(i) * 0.01, Y: 0.5, Z: -0.02}
	}

	hand := jsonHand{Points: points, Handedness: "Left", Score: 0.8}
	lm, ok := hand.toHandLandmarks()
	if !ok {
		t.Fatal("expected complete hand to convert")
	}

	if lm.Handedness != "Left" || lm.Score != 0.8 {
		t.Errorf("unexpected metadata: %q %f", lm.Handedness, lm.Score)
	}
	if lm.Points[IndexTip].Y != 0.5 || lm.Points[IndexTip].Z != -0.02 {
		t.Errorf("unexpected index tip: %+v", lm.Points[IndexTip])
	}
}
