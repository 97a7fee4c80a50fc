// Package gesture turns hand landmarks into debounced gesture events.
package gesture

import (
	"github.com/redjex/Framer-Bot/internal/detector"
)

// Label identifies a recognized gesture. The empty string means none.
type Label string

const (
	None    Label = ""
	Like    Label = "like"
	Dislike Label = "dislike"
	Heart   Label = "heart"
)

// labelOrder fixes iteration order wherever label traversal must be
// deterministic: majority-vote tie-breaking and overlay draw order.
var labelOrder = []Label{Like, Dislike, Heart}

// Labels returns the recognized gesture labels in their fixed order.
func Labels() []Label {
	return labelOrder
}

// Event is the raw per-frame classification result. X and Y are the
// gesture position normalized to the unrotated frame ([0,1]).
type Event struct {
	Label Label
	X     float64
	Y     float64
}

// Landmark subsets used to center the overlay on the gesture.
var (
	likeCenterIDs  = []int{0, 1, 2, 5, 9, 13, 17}
	heartCenterIDs = []int{5, 6, 7, 8}
)

// minPalmSize rejects degenerate or too-small hand detections.
const minPalmSize = 0.01

// thumbThresholdMult scales the palm size into the minimum thumb
// displacement for like/dislike.
const thumbThresholdMult = 0.3

// fingersFolded reports whether all four fingers are curled toward the
// palm: each fingertip must sit closer to the wrist than 0.95x its
// mid-joint's wrist distance.
func fingersFolded(h *detector.HandLandmarks) bool {
	wrist := h.Points[detector.Wrist]
	pairs := [4][2]int{
		{detector.IndexTip, detector.IndexPIP},
		{detector.MiddleTip, detector.MiddlePIP},
		{detector.RingTip, detector.RingPIP},
		{detector.PinkyTip, detector.PinkyPIP},
	}
	for _, p := range pairs {
		if detector.Dist(h.Points[p[0]], wrist) >= detector.Dist(h.Points[p[1]], wrist)*0.95 {
			return false
		}
	}
	return true
}

// detectLikeDislike classifies a single hand as like or dislike: fingers
// folded plus the thumb tip displaced vertically from its MCP joint by
// more than 0.3x palm size.
func detectLikeDislike(h *detector.HandLandmarks) (Event, bool) {
	palm := h.PalmSize()
	if palm < minPalmSize || !fingersFolded(h) {
		return Event{}, false
	}

	nx, ny := h.Center(likeCenterIDs)
	threshold := palm * thumbThresholdMult
	thumbMCP := h.Points[detector.ThumbMCP]
	thumbTip := h.Points[detector.ThumbTip]

	// Image y grows downward, so an upward thumb has a smaller tip y.
	if thumbMCP.Y-thumbTip.Y > threshold {
		return Event{Label: Like, X: nx, Y: ny}, true
	}
	if thumbTip.Y-thumbMCP.Y > threshold {
		return Event{Label: Dislike, X: nx, Y: ny}, true
	}
	return Event{}, false
}

// Heart proximity thresholds, in units of average palm size.
const (
	heartIndexRatio = 0.5
	heartThumbRatio = 0.7
	heartWristDyMax = 1.5
)

// detectHeart classifies two hands as a heart: index tips and thumb tips
// near each other and wrists roughly level, all relative to the average
// palm size.
func detectHeart(a, b *detector.HandLandmarks) (Event, bool) {
	avgPalm := (a.PalmSize()+b.PalmSize())/2 + 1e-6

	indexRatio := detector.Dist(a.Points[detector.IndexTip], b.Points[detector.IndexTip]) / avgPalm
	thumbRatio := detector.Dist(a.Points[detector.ThumbTip], b.Points[detector.ThumbTip]) / avgPalm
	wristDy := a.Points[detector.Wrist].Y - b.Points[detector.Wrist].Y
	if wristDy < 0 {
		wristDy = -wristDy
	}
	wristDy /= avgPalm

	if indexRatio >= heartIndexRatio || thumbRatio >= heartThumbRatio || wristDy >= heartWristDyMax {
		return Event{}, false
	}

	ax, ay := a.Center(heartCenterIDs)
	bx, by := b.Center(heartCenterIDs)
	return Event{Label: Heart, X: (ax + bx) / 2, Y: (ay + by) / 2}, true
}

// unrotate maps a normalized position detected in a rotated frame back
// into the unrotated frame's coordinate space.
func unrotate(nx, ny float64, angle int) (float64, float64) {
	switch angle {
	case 90:
		return ny, 1.0 - nx
	case 180:
		return 1.0 - nx, 1.0 - ny
	case 270:
		return 1.0 - ny, nx
	}
	return nx, ny
}
