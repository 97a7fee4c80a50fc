package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// ThumbsUpLandmarks returns a preset hand with all four fingers folded and
// the thumb extended upward. Palm size (wrist to middle MCP) is 0.14.
func ThumbsUpLandmarks() HandLandmarks {
	lm := HandLandmarks{Handedness: "Right", Score: 0.95}

	lm.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}

	// Thumb pointing up: tip well above the MCP joint.
	lm.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75}
	lm.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.65}
	lm.Points[ThumbIP] = Point3D{X: 0.58, Y: 0.55}
	lm.Points[ThumbTip] = Point3D{X: 0.58, Y: 0.45}

	// Fingers folded: every tip closer to the wrist than its PIP joint.
	lm.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.70}
	lm.Points[IndexPIP] = Point3D{X: 0.55, Y: 0.66}
	lm.Points[IndexDIP] = Point3D{X: 0.54, Y: 0.69}
	lm.Points[IndexTip] = Point3D{X: 0.53, Y: 0.71}

	lm.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66}
	lm.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.64}
	lm.Points[MiddleDIP] = Point3D{X: 0.49, Y: 0.67}
	lm.Points[MiddleTip] = Point3D{X: 0.49, Y: 0.70}

	lm.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68}
	lm.Points[RingPIP] = Point3D{X: 0.45, Y: 0.66}
	lm.Points[RingDIP] = Point3D{X: 0.46, Y: 0.69}
	lm.Points[RingTip] = Point3D{X: 0.46, Y: 0.71}

	lm.Points[PinkyMCP] = Point3D{X: 0.41, Y: 0.70}
	lm.Points[PinkyPIP] = Point3D{X: 0.41, Y: 0.68}
	lm.Points[PinkyDIP] = Point3D{X: 0.42, Y: 0.71}
	lm.Points[PinkyTip] = Point3D{X: 0.43, Y: 0.73}

	return lm
}

// ThumbsDownLandmarks returns ThumbsUpLandmarks with the thumb pointing
// down instead of up.
func ThumbsDownLandmarks() HandLandmarks {
	lm := ThumbsUpLandmarks()
	lm.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.72}
	lm.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.65}
	lm.Points[ThumbIP] = Point3D{X: 0.58, Y: 0.75}
	lm.Points[ThumbTip] = Point3D{X: 0.58, Y: 0.85}
	return lm
}

// HeartHandsLandmarks returns two hands forming a heart shape: index tips
// and thumb tips nearly touching, wrists level.
func HeartHandsLandmarks() (HandLandmarks, HandLandmarks) {
	left := HandLandmarks{Handedness: "Left", Score: 0.9}
	right := HandLandmarks{Handedness: "Right", Score: 0.9}

	left.Points[Wrist] = Point3D{X: 0.40, Y: 0.70}
	left.Points[MiddleMCP] = Point3D{X: 0.45, Y: 0.55}
	left.Points[IndexMCP] = Point3D{X: 0.44, Y: 0.56}
	left.Points[IndexPIP] = Point3D{X: 0.46, Y: 0.52}
	left.Points[IndexDIP] = Point3D{X: 0.48, Y: 0.48}
	left.Points[IndexTip] = Point3D{X: 0.49, Y: 0.45}
	left.Points[ThumbTip] = Point3D{X: 0.48, Y: 0.60}

	right.Points[Wrist] = Point3D{X: 0.60, Y: 0.70}
	right.Points[MiddleMCP] = Point3D{X: 0.55, Y: 0.55}
	right.Points[IndexMCP] = Point3D{X: 0.56, Y: 0.56}
	right.Points[IndexPIP] = Point3D{X: 0.54, Y: 0.52}
	right.Points[IndexDIP] = Point3D{X: 0.52, Y: 0.48}
	right.Points[IndexTip] = Point3D{X: 0.51, Y: 0.45}
	right.Points[ThumbTip] = Point3D{X: 0.52, Y: 0.60}

	return left, right
}

// OpenPalmLandmarks returns a preset hand with all fingers extended.
// It matches no gesture: the fold test fails for every finger.
func OpenPalmLandmarks() HandLandmarks {
	lm := HandLandmarks{Handedness: "Right", Score: 0.95}

	lm.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}

	lm.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75}
	lm.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70}
	lm.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65}
	lm.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60}

	lm.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68}
	lm.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55}
	lm.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45}
	lm.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35}

	lm.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66}
	lm.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52}
	lm.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40}
	lm.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28}

	lm.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68}
	lm.Points[RingPIP] = Point3D{X: 0.43, Y: 0.55}
	lm.Points[RingDIP] = Point3D{X: 0.42, Y: 0.45}
	lm.Points[RingTip] = Point3D{X: 0.42, Y: 0.35}

	lm.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70}
	lm.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.60}
	lm.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.50}
	lm.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.42}

	return lm
}
