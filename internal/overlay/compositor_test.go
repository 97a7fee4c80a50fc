package overlay

import (
	"testing"

	"gocv.io/x/gocv"

	"github.com/redjex/Framer-Bot/internal/config"
	"github.com/redjex/Framer-Bot/internal/gesture"
)

func testOverlayConfig() config.Overlay {
	return config.Overlay{
		FadeFrames:   15,
		SizeMult:     0.28,
		SizeAdd:      40,
		Smooth:       0.25,
		HeartOffsetY: 20,
	}
}

// solidClip builds a one-frame clip filled with the given BGRA color.
func solidClip(t *testing.T, size int, b, g, r, a float64) Clip {
	t.Helper()
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(b, g, r, a), size, size, gocv.MatTypeCV8UC4)
	return Clip{frames: []Frame{{BGRA: mat, DurationMS: 50}}}
}

// grayFrame builds a frame filled with a uniform gray value.
func grayFrame(rows, cols int, v float64) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(v, v, v, 0), rows, cols, gocv.MatTypeCV8UC3)
}

func newTestEntry(t *testing.T, size int, b, g, r, a float64) (cacheEntry, func()) {
	t.Helper()
	cache := newResizeCache()
	clip := solidClip(t, size, b, g, r, a)
	entry := cache.get(gesture.Like, 0, &clip.frames[0].BGRA, size)
	return entry, func() {
		cache.Close()
		clip.Close()
	}
}

func TestBlendOverlay_TransparentLeavesDestination(t *testing.T) {
	entry, cleanup := newTestEntry(t, 8, 200, 50, 25, 0)
	defer cleanup()

	dst := grayFrame(24, 32, 100)
	defer dst.Close()

	blendOverlay(&dst, entry, 16, 12, 1.0)

	for _, p := range [][2]int{{0, 0}, {12, 16}, {23, 31}} {
		for c := 0; c < 3; c++ {
			if got := dst.GetUCharAt(p[0], p[1]*3+c); got != 100 {
				t.Fatalf("pixel (%d,%d) channel %d = %d after transparent blend, want 100", p[0], p[1], c, got)
			}
		}
	}
}

func TestBlendOverlay_OpaqueReplacesDestination(t *testing.T) {
	entry, cleanup := newTestEntry(t, 8, 10, 20, 30, 255)
	defer cleanup()

	dst := grayFrame(24, 32, 100)
	defer dst.Close()

	blendOverlay(&dst, entry, 16, 12, 1.0)

	// Inside the 8x8 overlay centered at (16,12).
	want := []uint8{10, 20, 30}
	for c := 0; c < 3; c++ {
		if got := dst.GetUCharAt(12, 16*3+c); got != want[c] {
			t.Errorf("center channel %d = %d, want %d", c, got, want[c])
		}
	}

	// Outside the overlay region.
	if got := dst.GetUCharAt(0, 0); got != 100 {
		t.Errorf("corner pixel = %d, want untouched 100", got)
	}
}

func TestBlendOverlay_HalfAlphaMixes(t *testing.T) {
	entry, cleanup := newTestEntry(t, 8, 200, 200, 200, 255)
	defer cleanup()

	dst := grayFrame(24, 32, 100)
	defer dst.Close()

	blendOverlay(&dst, entry, 16, 12, 0.5)

	// 200*0.5 + 100*0.5 = 150.
	got := dst.GetUCharAt(12, 16*3)
	if got < 149 || got > 151 {
		t.Errorf("center pixel = %d, want ~150", got)
	}
}

func TestBlendOverlay_ClipsAtFrameEdge(t *testing.T) {
	entry, cleanup := newTestEntry(t, 8, 10, 20, 30, 255)
	defer cleanup()

	dst := grayFrame(24, 32, 100)
	defer dst.Close()

	// Center in the top-left corner: most of the overlay is off-frame.
	blendOverlay(&dst, entry, 0, 0, 1.0)

	if got := dst.GetUCharAt(0, 0); got != 10 {
		t.Errorf("corner pixel B = %d, want 10", got)
	}
	if got := dst.GetUCharAt(10, 10*3); got != 100 {
		t.Errorf("pixel outside clipped overlay = %d, want 100", got)
	}

	// Fully off-frame draw is a no-op.
	blendOverlay(&dst, entry, -100, -100, 1.0)
}

func TestResizeCache_StructuralKeys(t *testing.T) {
	cache := newResizeCache()
	defer cache.Close()

	clip := solidClip(t, 16, 1, 2, 3, 255)
	defer clip.Close()

	first := cache.get(gesture.Like, 0, &clip.frames[0].BGRA, 24)
	second := cache.get(gesture.Like, 0, &clip.frames[0].BGRA, 24)
	if first.bgr.Ptr() != second.bgr.Ptr() {
		t.Error("same (label, frame, size) did not hit the cache")
	}

	other := cache.get(gesture.Dislike, 0, &clip.frames[0].BGRA, 24)
	if other.bgr.Ptr() == first.bgr.Ptr() {
		t.Error("different label shared a cache entry")
	}

	if n := len(cache.entries); n != 2 {
		t.Errorf("cache has %d entries, want 2", n)
	}
}

func TestCompositor_PlaysOnConfirmAndDraws(t *testing.T) {
	clips := map[gesture.Label]Clip{
		gesture.Like: solidClip(t, 8, 0, 0, 255, 255),
	}
	o := NewCompositor(clips, 30, 64, 48, testOverlayConfig())
	defer o.Close()

	frame := grayFrame(48, 64, 100)
	defer frame.Close()

	o.UpdateAndDraw(&frame, gesture.Like, gesture.Like, 0.5, 0.5)

	if o.Player(gesture.Like).State() != StatePlaying {
		t.Fatalf("player state = %v, want playing", o.Player(gesture.Like).State())
	}
	if !o.AnyActive() {
		t.Fatal("AnyActive() = false while playing")
	}

	// Overlay size is min(64,48)*0.28+40 = 53, centered at (32,24):
	// the frame center must now be pure red.
	if got := frame.GetUCharAt(24, 32*3+2); got != 255 {
		t.Errorf("center R = %d, want 255", got)
	}
	if got := frame.GetUCharAt(24, 32*3); got != 0 {
		t.Errorf("center B = %d, want 0", got)
	}
}

func TestCompositor_RawLossStartsFade(t *testing.T) {
	clips := map[gesture.Label]Clip{
		gesture.Like: solidClip(t, 8, 0, 0, 255, 255),
	}
	o := NewCompositor(clips, 30, 64, 48, testOverlayConfig())
	defer o.Close()

	frame := grayFrame(48, 64, 100)
	defer frame.Close()

	o.UpdateAndDraw(&frame, gesture.Like, gesture.Like, 0.5, 0.5)

	// Raw signal gone, buffer still confirms: the overlay must fade,
	// not freeze.
	o.UpdateAndDraw(&frame, gesture.Like, gesture.None, 0.5, 0.5)
	if o.Player(gesture.Like).State() != StateFading {
		t.Errorf("player state = %v after raw loss, want fading", o.Player(gesture.Like).State())
	}
}

func TestCompositor_TrackerUndefinedWhenAllIdle(t *testing.T) {
	clips := map[gesture.Label]Clip{
		gesture.Like: solidClip(t, 8, 0, 0, 255, 255),
	}
	cfg := testOverlayConfig()
	cfg.FadeFrames = 1
	o := NewCompositor(clips, 30, 64, 48, cfg)
	defer o.Close()

	frame := grayFrame(48, 64, 100)
	defer frame.Close()

	o.UpdateAndDraw(&frame, gesture.Like, gesture.Like, 0.5, 0.5)
	if !o.hasCenter {
		t.Fatal("tracker undefined while a player is active")
	}

	// One fade frame returns the player to idle; the tracker resets.
	o.UpdateAndDraw(&frame, gesture.None, gesture.None, 0.5, 0.5)
	o.UpdateAndDraw(&frame, gesture.None, gesture.None, 0.5, 0.5)
	if o.hasCenter {
		t.Error("tracker still defined after all players idled")
	}
}

func TestCompositor_EmptyClipsNeverDraw(t *testing.T) {
	o := NewCompositor(map[gesture.Label]Clip{}, 30, 64, 48, testOverlayConfig())
	defer o.Close()

	frame := grayFrame(48, 64, 100)
	defer frame.Close()

	o.UpdateAndDraw(&frame, gesture.Like, gesture.Like, 0.5, 0.5)

	if o.AnyActive() {
		t.Error("AnyActive() = true with no clips loaded")
	}
	if got := frame.GetUCharAt(24, 32*3); got != 100 {
		t.Errorf("frame mutated without any clip, pixel = %d", got)
	}
}

func TestCompositor_PositionSmoothing(t *testing.T) {
	clips := map[gesture.Label]Clip{
		gesture.Like: solidClip(t, 8, 0, 0, 255, 255),
	}
	o := NewCompositor(clips, 30, 100, 100, testOverlayConfig())
	defer o.Close()

	frame := grayFrame(100, 100, 100)
	defer frame.Close()

	// First update snaps to the target.
	o.UpdateAndDraw(&frame, gesture.Like, gesture.Like, 0.2, 0.2)
	if o.cx != 20 || o.cy != 20 {
		t.Fatalf("initial center = (%d, %d), want (20, 20)", o.cx, o.cy)
	}

	// Subsequent updates move a quarter of the way (smooth = 0.25).
	o.UpdateAndDraw(&frame, gesture.Like, gesture.Like, 1.0, 1.0)
	if o.cx != 40 || o.cy != 40 {
		t.Errorf("smoothed center = (%d, %d), want (40, 40)", o.cx, o.cy)
	}
}
