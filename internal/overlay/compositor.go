package overlay

import (
	"gocv.io/x/gocv"

	"github.com/redjex/Framer-Bot/internal/config"
	"github.com/redjex/Framer-Bot/internal/gesture"
)

// Compositor owns one player per gesture label plus the shared position
// tracker, and draws the active overlays onto each frame. It is owned by
// the processor stage of a single job and is not safe for concurrent use.
type Compositor struct {
	cfg     config.Overlay
	players map[gesture.Label]*Player
	offsets map[gesture.Label]int

	frameW int
	frameH int
	size   int

	cache *resizeCache

	// Smoothed overlay center; defined only while at least one player
	// is non-idle.
	hasCenter bool
	cx        int
	cy        int
}

// NewCompositor creates a Compositor for the given clips and frame
// geometry. The compositor takes ownership of the clips and releases them
// on Close. A missing or empty clip leaves that gesture without a visual
// overlay.
func NewCompositor(clips map[gesture.Label]Clip, fps float64, frameW, frameH int, cfg config.Overlay) *Compositor {
	players := make(map[gesture.Label]*Player, len(gesture.Labels()))
	for _, label := range gesture.Labels() {
		players[label] = NewPlayer(clips[label], fps, cfg.FadeFrames)
	}

	short := frameW
	if frameH < short {
		short = frameH
	}

	return &Compositor{
		cfg:     cfg,
		players: players,
		offsets: map[gesture.Label]int{gesture.Heart: cfg.HeartOffsetY},
		frameW:  frameW,
		frameH:  frameH,
		size:    int(float64(short)*cfg.SizeMult) + cfg.SizeAdd,
		cache:   newResizeCache(),
	}
}

// UpdateAndDraw advances every player by one output frame and composites
// the visible overlays onto frame in place.
//
// confirmed drives playback; raw drives fading. A playing overlay starts
// its fade as soon as the raw signal for its label disappears, even while
// the confirmation buffer still reports the label confirmed; otherwise a
// vanished hand would keep a frozen sticker on screen for ClearFrames.
func (o *Compositor) UpdateAndDraw(frame *gocv.Mat, confirmed, raw gesture.Label, nx, ny float64) {
	for _, label := range gesture.Labels() {
		p := o.players[label]
		if p.State() == StatePlaying && raw != label {
			p.StartFade()
		}
	}

	// A player is actively driven only while both signals agree: the
	// confirmation buffer lags the raw signal, so confirmed alone would
	// cancel the fade just started above.
	alphas := make(map[gesture.Label]float64, len(o.players))
	for _, label := range gesture.Labels() {
		alphas[label] = o.players[label].Update(confirmed == label && raw == label)
	}

	anyActive := false
	for _, p := range o.players {
		if p.Active() {
			anyActive = true
			break
		}
	}

	if anyActive {
		tx := int(nx * float64(o.frameW))
		ty := int(ny * float64(o.frameH))
		if !o.hasCenter {
			o.cx, o.cy = tx, ty
			o.hasCenter = true
		} else {
			k := o.cfg.Smooth
			o.cx += int(float64(tx-o.cx) * k)
			o.cy += int(float64(ty-o.cy) * k)
		}
	} else {
		o.hasCenter = false
	}

	if !o.hasCenter {
		return
	}

	for _, label := range gesture.Labels() {
		alpha := alphas[label]
		if alpha <= 0.0 {
			continue
		}
		p := o.players[label]
		f := p.CurrentFrame()
		if f == nil {
			continue
		}
		entry := o.cache.get(label, p.FrameIndex(), &f.BGRA, o.size)
		blendOverlay(frame, entry, o.cx, o.cy+o.offsets[label], alpha)
	}
}

// AnyActive reports whether any overlay is currently playing or fading.
func (o *Compositor) AnyActive() bool {
	for _, p := range o.players {
		if p.Active() {
			return true
		}
	}
	return false
}

// Player returns the player for a label. Intended for tests.
func (o *Compositor) Player(label gesture.Label) *Player {
	return o.players[label]
}

// Close releases the resize cache and the clips owned by the players.
func (o *Compositor) Close() {
	o.cache.Close()
	for _, p := range o.players {
		p.clip.Close()
	}
}
