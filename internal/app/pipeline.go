package app

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ranjeetds/gestify/internal/gesture"
	"github.com/ranjeetds/gestify/internal/store"
)

// runPipeline is the main frame-processing loop. It runs at IdleFPS while
// the scene is still, switches to ActiveFPS on motion, and falls back to
// idle after IdleTimeout without motion. Landmark detection only runs in
// the active mode, which keeps the idle CPU cost at frame differencing.
func (a *App) runPipeline(stop chan struct{}) {
	defer a.wg.Done()

	ticker := time.NewTicker(time.Second / IdleFPS)
	defer ticker.Stop()

	active := false
	lastMotion := time.Time{}

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			a.processFrame(ticker, &active, &lastMotion)
		}
	}
}

func (a *App) processFrame(ticker *time.Ticker, active *bool, lastMotion *time.Time) {
	if !a.IsEnabled() {
		if *active {
			a.goIdle(ticker, active)
		}
		return
	}

	frame, err := a.camera.ReadFrame()
	if err != nil {
		if *active {
			a.clearRecognitionState()
		}
		return
	}
	defer frame.Close()

	motion, _ := a.motion.Detect(frame)
	now := time.Now()

	if motion {
		*lastMotion = now
		if !*active {
			*active = true
			a.camera.SetFPS(ActiveFPS)
			ticker.Reset(time.Second / ActiveFPS)
			log.Println("Motion detected, recognition active")
		}
	} else if *active && now.Sub(*lastMotion) > IdleTimeout {
		a.goIdle(ticker, active)
		return
	}

	if !*active {
		return
	}

	det, listeners := a.detectorAndListeners()

	obs, err := det.Detect(frame)
	if err != nil {
		log.Printf("Detection error: %v", err)
		a.clearRecognitionState()
		return
	}
	if obs == nil {
		a.clearRecognitionState()
		return
	}

	attending := true
	if a.cfg.Attention.Enabled {
		attending = a.gate.Update(obs.Face)
	}

	width, height := frame.Cols(), frame.Rows()
	result := a.recognizer.Recognize(obs.Hands, width, height, attending)

	ev := result.Event
	if result.Primary != nil {
		mapped := a.mapper.Map(result.Primary.Position, width, height)
		if ev.Gesture == gesture.CursorMove {
			ev.Position = mapped
		}
	} else {
		a.mapper.Reset()
	}

	if ev.Gesture == gesture.None {
		return
	}

	a.dispatcher.Dispatch(ev)

	// Continuous gestures repeat every frame; only discrete emissions go
	// into the event log.
	if a.store != nil && !ev.Gesture.Continuous() {
		record := &store.Event{
			ID:        uuid.NewString(),
			Gesture:   ev.Gesture.String(),
			Hand:      ev.Hand,
			X:         ev.Position.X,
			Y:         ev.Position.Y,
			EmittedAt: ev.At,
		}
		if err := a.store.Events().Insert(record); err != nil {
			log.Printf("Failed to log event: %v", err)
		}
	}

	for _, fn := range listeners {
		fn(ev)
	}
}

// clearRecognitionState treats a frame the collaborators could not deliver as
// "hand and face absent": any drag is released, the two-hand baseline and
// position histories are cleared, and a no-face observation is fed to the
// attention gate. A detector outage can then never leave a gesture stuck.
func (a *App) clearRecognitionState() {
	a.recognizer.Reset()
	a.gate.Update(nil)
	a.mapper.Reset()
}

// goIdle drops the pipeline back to the idle frame rate and clears all
// recognition state so the next activation starts fresh.
func (a *App) goIdle(ticker *time.Ticker, active *bool) {
	*active = false
	a.camera.SetFPS(IdleFPS)
	ticker.Reset(time.Second / IdleFPS)
	a.recognizer.Reset()
	a.gate.Reset()
	a.mapper.Reset()
	log.Println("No motion, recognition idle")
}
