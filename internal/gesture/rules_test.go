package gesture

import (
	"math"
	"testing"

	"github.com/redjex/Framer-Bot/internal/detector"
)

func TestFingersFolded(t *testing.T) {
	folded := detector.ThumbsUpLandmarks()
	if !fingersFolded(&folded) {
		t.Error("fingersFolded() = false for curled fingers, want true")
	}

	open := detector.OpenPalmLandmarks()
	if fingersFolded(&open) {
		t.Error("fingersFolded() = true for open palm, want false")
	}
}

func TestDetectLikeDislike(t *testing.T) {
	tests := []struct {
		name  string
		hand  detector.HandLandmarks
		want  Label
		match bool
	}{
		{name: "thumb up", hand: detector.ThumbsUpLandmarks(), want: Like, match: true},
		{name: "thumb down", hand: detector.ThumbsDownLandmarks(), want: Dislike, match: true},
		{name: "open palm", hand: detector.OpenPalmLandmarks(), match: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := detectLikeDislike(&tt.hand)
			if ok != tt.match {
				t.Fatalf("detectLikeDislike() match = %v, want %v", ok, tt.match)
			}
			if !tt.match {
				return
			}
			if ev.Label != tt.want {
				t.Errorf("label = %q, want %q", ev.Label, tt.want)
			}
			if ev.X < 0 || ev.X > 1 || ev.Y < 0 || ev.Y > 1 {
				t.Errorf("position (%v, %v) outside [0,1]", ev.X, ev.Y)
			}
		})
	}
}

func TestDetectLikeDislike_DegeneratePalm(t *testing.T) {
	hand := detector.ThumbsUpLandmarks()
	// Collapse the palm: wrist on top of the middle knuckle.
	hand.Points[detector.MiddleMCP] = hand.Points[detector.Wrist]

	if _, ok := detectLikeDislike(&hand); ok {
		t.Error("detectLikeDislike() matched a degenerate palm")
	}
}

func TestDetectHeart(t *testing.T) {
	left, right := detector.HeartHandsLandmarks()

	ev, ok := detectHeart(&left, &right)
	if !ok {
		t.Fatal("detectHeart() = no match for heart hands")
	}
	if ev.Label != Heart {
		t.Errorf("label = %q, want %q", ev.Label, Heart)
	}

	// The fixture is symmetric around x = 0.5.
	if math.Abs(ev.X-0.5) > 1e-9 {
		t.Errorf("position x = %v, want 0.5", ev.X)
	}
}

func TestDetectHeart_HandsApart(t *testing.T) {
	left, right := detector.HeartHandsLandmarks()
	// Pull the index tips far apart; proximity ratios must fail.
	left.Points[detector.IndexTip] = detector.Point3D{X: 0.1, Y: 0.2}
	right.Points[detector.IndexTip] = detector.Point3D{X: 0.9, Y: 0.2}

	if _, ok := detectHeart(&left, &right); ok {
		t.Error("detectHeart() matched hands that are far apart")
	}
}

func TestUnrotate(t *testing.T) {
	tests := []struct {
		angle  int
		nx, ny float64
		wantX  float64
		wantY  float64
	}{
		{angle: 0, nx: 0.2, ny: 0.7, wantX: 0.2, wantY: 0.7},
		{angle: 90, nx: 0.2, ny: 0.7, wantX: 0.7, wantY: 0.8},
		{angle: 180, nx: 0.2, ny: 0.7, wantX: 0.8, wantY: 0.3},
		{angle: 270, nx: 0.2, ny: 0.7, wantX: 0.3, wantY: 0.2},
	}

	for _, tt := range tests {
		x, y := unrotate(tt.nx, tt.ny, tt.angle)
		if math.Abs(x-tt.wantX) > 1e-9 || math.Abs(y-tt.wantY) > 1e-9 {
			t.Errorf("unrotate(%v, %v, %d) = (%v, %v), want (%v, %v)",
				tt.nx, tt.ny, tt.angle, x, y, tt.wantX, tt.wantY)
		}
	}
}
