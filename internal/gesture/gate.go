package gesture

import "time"

// cooldownGate enforces the minimum interval between discrete gesture
// emissions. The single-hand machine and the two-hand tracker share one gate,
// so a zoom tick and a click from the same frame window debounce against each
// other.
type cooldownGate struct {
	cooldown    time.Duration
	now         func() time.Time
	lastGesture Gesture
	lastAt      time.Time
}

func newCooldownGate(cooldown time.Duration) *cooldownGate {
	return &cooldownGate{
		cooldown: cooldown,
		now:      time.Now,
	}
}

// ready reports whether the cooldown period has passed since the last
// discrete emission.
func (g *cooldownGate) ready() bool {
	return g.now().Sub(g.lastAt) >= g.cooldown
}

// fire records a discrete emission.
func (g *cooldownGate) fire(gesture Gesture) {
	g.lastGesture = gesture
	g.lastAt = g.now()
}
