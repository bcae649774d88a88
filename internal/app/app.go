// Package app wires the capture, detection, recognition, and dispatch
// components into the frame-processing pipeline of the gestify daemon.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/ranjeetds/gestify/internal/action"
	"github.com/ranjeetds/gestify/internal/attention"
	"github.com/ranjeetds/gestify/internal/capture"
	"github.com/ranjeetds/gestify/internal/config"
	"github.com/ranjeetds/gestify/internal/cursor"
	"github.com/ranjeetds/gestify/internal/detector"
	"github.com/ranjeetds/gestify/internal/gesture"
	"github.com/ranjeetds/gestify/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active recognition.
	ActiveFPS = 15
	// IdleTimeout is how long without motion before switching back to idle.
	IdleTimeout = 2 * time.Second
)

// App is the main application that orchestrates gesture recognition and
// action dispatch.
type App struct {
	cfg        config.Config
	store      *store.Store
	camera     capture.Camera
	motion     *capture.MotionDetector
	det        detector.Detector
	gate       *attention.Gate
	recognizer *gesture.Recognizer
	mapper     *cursor.Mapper
	dispatcher *action.Dispatcher

	listeners []func(gesture.Event)

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// New creates an App from the given configuration and store.
func New(cfg config.Config, st *store.Store) *App {
	a := &App{
		cfg:        cfg,
		store:      st,
		camera:     capture.NewCamera(cfg.Camera.Index, cfg.Camera.Width, cfg.Camera.Height),
		motion:     capture.NewMotionDetector(cfg.Camera.MotionThreshold),
		gate:       attention.NewGate(cfg.Attention.Gate()),
		recognizer: gesture.New(cfg.Gesture.Recognizer()),
		mapper: cursor.NewMapper(
			cfg.Cursor.TargetWidth, cfg.Cursor.TargetHeight,
			cfg.Cursor.Mirror, cfg.Cursor.Smoothing,
		),
		dispatcher: action.NewDispatcher(
			action.NewExecutor(time.Duration(cfg.Actions.TimeoutMS)*time.Millisecond),
			time.Duration(cfg.Actions.RateLimitMS)*time.Millisecond,
		),
		enabled: true,
	}

	// Try the MediaPipe service first, fall back to the mock detector so
	// the daemon stays usable without the Python side installed.
	detCfg := detector.Config{
		MaxHands:        cfg.Detector.MaxHands,
		MinConfidence:   cfg.Detector.MinConfidence,
		MinTrackingConf: cfg.Detector.MinTracking,
		TrackFace:       cfg.Detector.TrackFace,
	}
	if mp, err := detector.NewMediaPipeDetector(detCfg); err == nil {
		a.det = mp
		log.Println("Using MediaPipe landmark detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.det = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables gesture recognition.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture recognition is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector replaces the landmark detector, used by tests.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.det = d
}

// SetCamera replaces the camera, used by tests.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// AddListener registers a callback invoked for every emitted gesture event.
// Listeners run on the pipeline goroutine and must be fast.
func (a *App) AddListener(fn func(gesture.Event)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners = append(a.listeners, fn)
}

// LoadBindings loads action bindings from the store into the dispatcher.
func (a *App) LoadBindings() error {
	if a.store == nil {
		return nil
	}

	bindings, err := a.store.Bindings().List()
	if err != nil {
		return err
	}

	a.dispatcher.LoadBindings(bindings)
	log.Printf("Loaded %d action bindings", len(bindings))
	return nil
}

// Start opens the camera and begins the recognition pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	a.wg.Add(1)
	go a.runPipeline(a.stopCh)

	log.Println("Recognition pipeline started")
	return nil
}

// Stop halts the pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	if a.stopCh == nil {
		a.mu.Unlock()
		return
	}
	close(a.stopCh)
	a.stopCh = nil
	a.mu.Unlock()

	a.wg.Wait()

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.det != nil {
		if err := a.det.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Recognition pipeline stopped")
}

// Attending reports the current smoothed attention signal. Only safe to
// call from an event listener, which runs on the pipeline goroutine.
func (a *App) Attending() bool {
	return a.gate.Attending()
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Detector returns the landmark detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.det
}

func (a *App) detectorAndListeners() (detector.Detector, []func(gesture.Event)) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.det, a.listeners
}
