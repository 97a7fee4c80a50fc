package overlay

// State is the playback state of a Player.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StateFading
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StateFading:
		return "fading"
	}
	return "unknown"
}

// Player runs one clip through the Idle -> Playing -> Fading -> Idle
// lifecycle. Playback advances in lockstep with the output video: each
// Update call accounts for one output frame (1000/fps ms) against the
// clip's own per-frame durations, looping at clip end. The fade ramp is a
// fixed number of update calls, independent of the clip's frame rate.
type Player struct {
	clip       Clip
	frameMS    float64
	fadeFrames int

	state     State
	idx       int
	msAccum   float64
	fadeCount int
	alpha     float64
}

// NewPlayer creates a Player for the clip at the given output frame rate.
// An empty clip yields a permanently idle player.
func NewPlayer(clip Clip, fps float64, fadeFrames int) *Player {
	if fps < 1.0 {
		fps = 1.0
	}
	return &Player{
		clip:       clip,
		frameMS:    1000.0 / fps,
		fadeFrames: fadeFrames,
		alpha:      1.0,
	}
}

// Update advances the player by one output frame and returns the current
// draw alpha. active means the player's gesture is the confirmed one; it
// (re)starts playback and cancels any fade in progress.
func (p *Player) Update(active bool) float64 {
	if p.clip.Empty() {
		return 0.0
	}

	if active {
		if p.state == StateIdle {
			p.idx = 0
			p.msAccum = 0.0
		}
		p.state = StatePlaying
		p.fadeCount = 0
		p.alpha = 1.0
	}

	switch p.state {
	case StatePlaying:
		p.advance()
		return p.alpha

	case StateFading:
		p.fadeCount++
		p.alpha = 1.0 - float64(p.fadeCount)/float64(p.fadeFrames)
		if p.alpha <= 0.0 {
			p.alpha = 0.0
			p.state = StateIdle
		}
		return p.alpha
	}

	return 0.0
}

// StartFade begins the linear fade-out ramp. Only a Playing player fades;
// calling it in any other state is a no-op.
func (p *Player) StartFade() {
	if p.state == StatePlaying {
		p.state = StateFading
		p.fadeCount = 0
		p.alpha = 1.0
	}
}

// CurrentFrame returns the clip frame to draw, or nil for an empty clip.
func (p *Player) CurrentFrame() *Frame {
	if p.clip.Empty() {
		return nil
	}
	return p.clip.Frame(p.idx)
}

// FrameIndex returns the current clip frame index.
func (p *Player) FrameIndex() int {
	return p.idx
}

// Alpha returns the current draw alpha.
func (p *Player) Alpha() float64 {
	return p.alpha
}

// State returns the current playback state.
func (p *Player) State() State {
	return p.state
}

// Active reports whether the player contributes to the frame (non-idle).
func (p *Player) Active() bool {
	return p.state != StateIdle
}

// advance consumes one output-frame interval against the clip's own
// frame durations, wrapping at clip end.
func (p *Player) advance() {
	p.msAccum += p.frameMS
	for {
		dur := float64(p.clip.Frame(p.idx).DurationMS)
		if p.msAccum < dur {
			return
		}
		p.msAccum -= dur
		p.idx = (p.idx + 1) % p.clip.Len()
	}
}
