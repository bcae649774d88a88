package action

import (
	"log"
	"sync"
	"time"

	"github.com/ranjeetds/gestify/internal/gesture"
	"github.com/ranjeetds/gestify/internal/store"
)

// Dispatcher routes gesture events to their bound commands. Discrete events
// arrive already debounced by the recognizer cooldown and pass straight
// through; continuous events (cursor move, scroll) repeat every frame and
// are rate-limited here so a held pose does not spawn a command per frame.
type Dispatcher struct {
	executor  *Executor
	rateLimit time.Duration

	mu       sync.RWMutex
	bindings map[string]store.Binding
	lastRun  map[string]time.Time
}

// NewDispatcher creates a Dispatcher using the given executor and the rate
// limit applied to continuous gestures.
func NewDispatcher(executor *Executor, rateLimit time.Duration) *Dispatcher {
	return &Dispatcher{
		executor:  executor,
		rateLimit: rateLimit,
		bindings:  make(map[string]store.Binding),
		lastRun:   make(map[string]time.Time),
	}
}

// LoadBindings replaces the binding table, keeping only enabled bindings.
func (d *Dispatcher) LoadBindings(bindings []store.Binding) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.bindings = make(map[string]store.Binding, len(bindings))
	for _, b := range bindings {
		if b.Enabled {
			d.bindings[b.Gesture] = b
		}
	}
}

// Dispatch runs the command bound to the event's gesture, if any. Unbound
// gestures and None are silently ignored.
func (d *Dispatcher) Dispatch(ev gesture.Event) {
	if ev.Gesture == gesture.None {
		return
	}

	name := ev.Gesture.String()

	d.mu.Lock()
	binding, ok := d.bindings[name]
	if ok && ev.Gesture.Continuous() {
		if time.Since(d.lastRun[name]) < d.rateLimit {
			d.mu.Unlock()
			return
		}
		d.lastRun[name] = time.Now()
	}
	d.mu.Unlock()

	if !ok {
		return
	}

	output, err := d.executor.Execute(&binding, ev)
	if err != nil {
		log.Printf("action %s: %v", name, err)
		return
	}
	if output != "" {
		log.Printf("action %s: %s", name, output)
	}
}
