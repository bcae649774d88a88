package app

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/ranjeetds/gestify/internal/capture"
	"github.com/ranjeetds/gestify/internal/config"
	"github.com/ranjeetds/gestify/internal/detector"
	"github.com/ranjeetds/gestify/internal/gesture"
	"github.com/ranjeetds/gestify/internal/store"
)

func newTestApp(t *testing.T) (*App, *store.Store, *detector.MockDetector) {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cfg := config.Default()
	a := New(cfg, st)

	// Alternating black and white frames keep the motion pre-gate open so
	// the pipeline stays in the active mode.
	black := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	white := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	white.SetTo(gocv.NewScalar(255, 255, 255, 0))
	t.Cleanup(func() {
		black.Close()
		white.Close()
	})

	a.SetCamera(capture.NewMockCamera([]*gocv.Mat{&black, &white}, true))

	mock := detector.NewMockDetector()
	a.SetDetector(mock)

	return a, st, mock
}

func TestApp_PipelineEmitsRecognizedGesture(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, st, mock := newTestApp(t)

	// Every frame shows a pinching hand and an attentive face. Once the
	// attention gate accumulates enough samples, the pinch rising edge
	// produces a single click.
	mock.SetHands([]detector.HandLandmarks{detector.PinchLandmarks()})
	mock.SetFace(detector.AttentiveFaceLandmarks())

	events := make(chan gesture.Event, 16)
	a.AddListener(func(ev gesture.Event) {
		select {
		case events <- ev:
		default:
		}
	})

	if err := a.Start(); err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer a.Stop()

	select {
	case ev := <-events:
		if ev.Gesture != gesture.Click {
			t.Errorf("expected Click, got %v", ev.Gesture)
		}
		if ev.Hand != "Right" {
			t.Errorf("expected Right hand, got %q", ev.Hand)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for gesture event")
	}

	// Discrete events are logged to the store.
	deadline := time.Now().Add(2 * time.Second)
	for {
		logged, err := st.Events().Recent(10)
		if err != nil {
			t.Fatalf("failed to query events: %v", err)
		}
		if len(logged) > 0 {
			if logged[0].Gesture != "click" {
				t.Errorf("expected click in event log, got %q", logged[0].Gesture)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for logged event")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestApp_InattentiveUserSuppressesGestures(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, _, mock := newTestApp(t)

	// Pinching hand, but the user is looking away.
	mock.SetHands([]detector.HandLandmarks{detector.PinchLandmarks()})
	mock.SetFace(detector.DistractedFaceLandmarks())

	events := make(chan gesture.Event, 16)
	a.AddListener(func(ev gesture.Event) {
		select {
		case events <- ev:
		default:
		}
	})

	if err := a.Start(); err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer a.Stop()

	select {
	case ev := <-events:
		t.Errorf("expected no events while inattentive, got %v", ev.Gesture)
	case <-time.After(1 * time.Second):
	}
}

func TestApp_DisabledEmitsNothing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, _, mock := newTestApp(t)
	mock.SetHands([]detector.HandLandmarks{detector.PinchLandmarks()})
	mock.SetFace(detector.AttentiveFaceLandmarks())

	events := make(chan gesture.Event, 16)
	a.AddListener(func(ev gesture.Event) {
		select {
		case events <- ev:
		default:
		}
	})

	a.SetEnabled(false)
	if err := a.Start(); err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer a.Stop()

	select {
	case ev := <-events:
		t.Errorf("expected no events while disabled, got %v", ev.Gesture)
	case <-time.After(1 * time.Second):
	}
}

func TestApp_DetectorOutageReleasesDrag(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, _, mock := newTestApp(t)

	// A held peace sign starts a drag.
	mock.SetHands([]detector.HandLandmarks{detector.PeaceSignLandmarks()})
	mock.SetFace(detector.AttentiveFaceLandmarks())

	events := make(chan gesture.Event, 64)
	a.AddListener(func(ev gesture.Event) {
		select {
		case events <- ev:
		default:
		}
	})

	if err := a.Start(); err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer a.Stop()

	deadline := time.After(5 * time.Second)
	for started := false; !started; {
		select {
		case ev := <-events:
			if ev.Gesture == gesture.DragStart {
				started = true
			}
		case <-deadline:
			t.Fatal("timed out waiting for drag to start")
		}
	}

	// The detector fails mid-drag. The outage must count as "hand absent"
	// and release the drag rather than leave it stuck.
	mock.SetError(errors.New("landmark service crashed"))
	time.Sleep(500 * time.Millisecond)

	mock.SetHands([]detector.HandLandmarks{detector.FistLandmarks()})
	mock.SetError(nil)

	// With the drag released during the outage, the fist after recovery
	// must not produce a DragEnd.
	timeout := time.After(1 * time.Second)
	for {
		select {
		case ev := <-events:
			if ev.Gesture == gesture.DragEnd {
				t.Fatal("drag survived the detector outage")
			}
		case <-timeout:
			return
		}
	}
}

func TestApp_StartStopIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, _, _ := newTestApp(t)

	if err := a.Start(); err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	if err := a.Start(); err != nil {
		t.Errorf("second Start should be a no-op, got: %v", err)
	}

	a.Stop()
	a.Stop()
}
