package gesture

import "github.com/redjex/Framer-Bot/internal/config"

// Buffer debounces noisy per-frame classifications into a stable confirmed
// gesture. A label is confirmed once it fills ConfirmRatio of a full
// ConfirmFrames window; a confirmed label is cleared only after ClearFrames
// consecutive empty detections. The asymmetry is deliberate hysteresis:
// a single missed frame never makes the overlay flicker.
type Buffer struct {
	cfg    config.Gesture
	window []Label
	streak int

	confirmed    Label
	skipRotation bool

	// Last known gesture position, kept across empty frames so the
	// overlay holds its place while fading out.
	lastX float64
	lastY float64
}

// NewBuffer creates an empty Buffer.
func NewBuffer(cfg config.Gesture) *Buffer {
	return &Buffer{
		cfg:    cfg,
		window: make([]Label, 0, cfg.ConfirmFrames),
		lastX:  0.5,
		lastY:  0.5,
	}
}

// Push records one raw classification and returns the current confirmed
// label, which may be None.
func (b *Buffer) Push(ev Event) Label {
	if ev.Label == None {
		b.streak++
	} else {
		b.streak = 0
		b.lastX, b.lastY = ev.X, ev.Y
	}

	if len(b.window) >= b.cfg.ConfirmFrames {
		copy(b.window, b.window[1:])
		b.window = b.window[:len(b.window)-1]
	}
	b.window = append(b.window, ev.Label)

	if best, ok := b.majority(); ok {
		b.confirmed = best
		b.skipRotation = true
	} else if b.confirmed != None && b.streak >= b.cfg.ClearFrames {
		b.confirmed = None
		b.skipRotation = false
	}

	return b.confirmed
}

// majority evaluates the confirmation rule. Only a full window counts.
// Ties are broken by fixed label order (like, dislike, heart), so the
// result never depends on map iteration.
func (b *Buffer) majority() (Label, bool) {
	if len(b.window) < b.cfg.ConfirmFrames {
		return None, false
	}

	counts := make(map[Label]int, len(labelOrder))
	for _, l := range b.window {
		if l != None {
			counts[l]++
		}
	}

	best := None
	bestCount := 0
	for _, l := range labelOrder {
		if counts[l] > bestCount {
			best = l
			bestCount = counts[l]
		}
	}
	if best == None {
		return None, false
	}

	if float64(bestCount)/float64(len(b.window)) >= b.cfg.ConfirmRatio {
		return best, true
	}
	return None, false
}

// Confirmed returns the current debounced gesture label.
func (b *Buffer) Confirmed() Label {
	return b.confirmed
}

// SkipRotation reports whether the classifier may try the canonical
// orientation first. Set while a gesture is confirmed.
func (b *Buffer) SkipRotation() bool {
	return b.skipRotation
}

// LastPosition returns the most recent normalized gesture position.
func (b *Buffer) LastPosition() (float64, float64) {
	return b.lastX, b.lastY
}
