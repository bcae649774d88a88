package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestMockCamera_ReadBeforeOpen(t *testing.T) {
	cam := NewMockCamera(nil, false)

	if _, err := cam.ReadFrame(); err != ErrCameraNotOpen {
		t.Errorf("expected ErrCameraNotOpen, got %v", err)
	}
}

func TestMockCamera_PlaysBackFrames(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	f1 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer f1.Close()
	f2 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer f2.Close()

	cam := NewMockCamera([]*gocv.Mat{&f1, &f2}, false)
	if err := cam.Open(); err != nil {
		t.Fatalf("failed to open mock camera: %v", err)
	}
	defer cam.Close()

	for i := 0; i < 2; i++ {
		frame, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("frame %d: unexpected error: %v", i, err)
		}
		frame.Close()
	}

	// Without looping the sequence is exhausted.
	if _, err := cam.ReadFrame(); err == nil {
		t.Error("expected error after frames are exhausted")
	}
}

func TestMockCamera_Loops(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	f1 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer f1.Close()

	cam := NewMockCamera([]*gocv.Mat{&f1}, true)
	if err := cam.Open(); err != nil {
		t.Fatalf("failed to open mock camera: %v", err)
	}
	defer cam.Close()

	for i := 0; i < 5; i++ {
		frame, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("loop read %d: unexpected error: %v", i, err)
		}
		frame.Close()
	}
}

func TestMockCamera_Dimensions(t *testing.T) {
	cam := NewMockCamera(nil, false)

	w, h := cam.Dimensions()
	if w != DefaultWidth || h != DefaultHeight {
		t.Errorf("expected %dx%d, got %dx%d", DefaultWidth, DefaultHeight, w, h)
	}
}
