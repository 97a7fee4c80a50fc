package detector

import (
	"math"
	"testing"
)

func TestDist_IgnoresDepth(t *testing.T) {
	a := Point3D{X: 0.0, Y: 0.0, Z: 0.5}
	b := Point3D{X: 0.3, Y: 0.4, Z: -0.5}

	if got := Dist(a, b); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Dist() = %v, want 0.5 (depth must not contribute)", got)
	}
}

func TestPalmSize(t *testing.T) {
	var h HandLandmarks
	h.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}
	h.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66}

	if got := h.PalmSize(); math.Abs(got-0.14) > 1e-9 {
		t.Errorf("PalmSize() = %v, want 0.14", got)
	}
}

func TestCenter(t *testing.T) {
	var h HandLandmarks
	h.Points[Wrist] = Point3D{X: 0.2, Y: 0.4}
	h.Points[IndexMCP] = Point3D{X: 0.6, Y: 0.8}

	x, y := h.Center([]int{Wrist, IndexMCP})
	if math.Abs(x-0.4) > 1e-9 || math.Abs(y-0.6) > 1e-9 {
		t.Errorf("Center() = (%v, %v), want (0.4, 0.6)", x, y)
	}
}

// The preset hands underpin the gesture tests; pin down their geometry so
// a fixture edit cannot silently change what those tests exercise.
func TestFixtureGeometry(t *testing.T) {
	t.Run("thumbs up", func(t *testing.T) {
		h := ThumbsUpLandmarks()
		if got := h.PalmSize(); math.Abs(got-0.14) > 1e-9 {
			t.Errorf("palm size = %v, want 0.14", got)
		}
		if h.Points[ThumbTip].Y >= h.Points[ThumbMCP].Y {
			t.Error("thumb tip not above MCP")
		}

		// Every non-thumb tip sits closer to the wrist than its PIP.
		tips := [4][2]int{
			{IndexTip, IndexPIP},
			{MiddleTip, MiddlePIP},
			{RingTip, RingPIP},
			{PinkyTip, PinkyPIP},
		}
		for _, pair := range tips {
			tip := Dist(h.Points[pair[0]], h.Points[Wrist])
			pip := Dist(h.Points[pair[1]], h.Points[Wrist])
			if tip >= pip {
				t.Errorf("landmark %d: tip distance %v >= pip distance %v", pair[0], tip, pip)
			}
		}
	})

	t.Run("thumbs down", func(t *testing.T) {
		h := ThumbsDownLandmarks()
		if h.Points[ThumbTip].Y <= h.Points[ThumbMCP].Y {
			t.Error("thumb tip not below MCP")
		}
	})

	t.Run("heart hands", func(t *testing.T) {
		left, right := HeartHandsLandmarks()
		indexGap := Dist(left.Points[IndexTip], right.Points[IndexTip])
		avgPalm := (left.PalmSize() + right.PalmSize()) / 2
		if indexGap >= avgPalm*0.5 {
			t.Errorf("index tips %v apart with avg palm %v, not a heart", indexGap, avgPalm)
		}
		if dy := math.Abs(left.Points[Wrist].Y - right.Points[Wrist].Y); dy > 1e-9 {
			t.Errorf("wrists not level, dy = %v", dy)
		}
	})

	t.Run("open palm", func(t *testing.T) {
		h := OpenPalmLandmarks()
		tip := Dist(h.Points[IndexTip], h.Points[Wrist])
		pip := Dist(h.Points[IndexPIP], h.Points[Wrist])
		if tip < pip {
			t.Error("open palm index reads as folded")
		}
	})
}
