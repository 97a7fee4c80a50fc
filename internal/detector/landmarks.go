// Package detector provides hand-landmark detection interfaces and types.
package detector

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D is a normalized landmark coordinate. X and Y are relative to the
// image ([0,1]); Z is depth relative to the wrist.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks is one detected hand: 21 landmarks plus metadata.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Dist returns the planar (x,y) distance between two landmarks. Gesture
// geometry is evaluated in image space, so depth is ignored.
func Dist(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// PalmSize returns the wrist-to-middle-knuckle distance. It normalizes
// other landmark distances against hand scale and camera distance.
func (h *HandLandmarks) PalmSize() float64 {
	return Dist(h.Points[Wrist], h.Points[MiddleMCP])
}

// Center returns the mean (x, y) position of the given landmark indices.
func (h *HandLandmarks) Center(ids []int) (float64, float64) {
	var sx, sy float64
	for _, i := range ids {
		sx += h.Points[i].X
		sy += h.Points[i].Y
	}
	n := float64(len(ids))
	return sx / n, sy / n
}
