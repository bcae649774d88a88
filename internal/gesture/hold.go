package gesture

// PinchHold tracks a sustained pinch with hysteresis, for consumers that
// need stable pick/hold semantics instead of click edges. Engaging uses the
// strict pinch threshold; releasing uses a looser one, so natural jitter near
// the boundary cannot flap the hold. While the hold is active only the
// release threshold is evaluated, and vice versa.
type PinchHold struct {
	engageThreshold  float64
	releaseThreshold float64
	holding          bool
}

// NewPinchHold creates a PinchHold from the configured pinch threshold and
// release multiplier.
func NewPinchHold(cfg Config) *PinchHold {
	return &PinchHold{
		engageThreshold:  cfg.PinchThreshold,
		releaseThreshold: cfg.PinchThreshold * cfg.ReleaseMultiplier,
	}
}

// Update feeds one frame's pinch distance and reports the hold edges:
// started is true on the frame the hold engages, ended on the frame it
// releases. At most one of the two is true.
func (p *PinchHold) Update(pinchDistance float64) (started, ended bool) {
	if p.holding {
		if pinchDistance >= p.releaseThreshold {
			p.holding = false
			return false, true
		}
		return false, false
	}

	if pinchDistance < p.engageThreshold {
		p.holding = true
		return true, false
	}
	return false, false
}

// Holding reports whether the hold is currently engaged.
func (p *PinchHold) Holding() bool {
	return p.holding
}

// Reset releases the hold without reporting an edge, used when the hand
// leaves the frame.
func (p *PinchHold) Reset() {
	p.holding = false
}
